package repository

import (
	"context"
	"fmt"

	"billing-habit/internal/data/entity"
	"billing-habit/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindBySubCategory(ctx context.Context, accountID, subCategoryID uuid.UUID) ([]*entity.Product, error)
	FindByIDsForAccount(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]*entity.Product, error)
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, account_id, sub_category_id, label, unit, input_type, selling_price, cost_price, created_at`

func (r *productRepository) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.AccountID,
		p.SubCategoryID,
		p.Label,
		p.Unit,
		p.InputType,
		p.SellingPrice,
		p.CostPrice,
		p.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("sub_category_id", p.SubCategoryID.String()),
			zap.String("label", p.Label),
		)
		return fmt.Errorf("create product %s: %w", p.Label, err)
	}

	return nil
}

func (r *productRepository) FindBySubCategory(ctx context.Context, accountID, subCategoryID uuid.UUID) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE account_id = $1 AND sub_category_id = $2
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, accountID, subCategoryID)
	if err != nil {
		r.log.Error("Failed to list products", zap.Error(err), zap.String("sub_category_id", subCategoryID.String()))
		return nil, fmt.Errorf("list products for %s: %w", subCategoryID, err)
	}

	return r.collect(rows)
}

// FindByIDsForAccount returns the caller's products among ids. Unknown or foreign ids are skipped.
func (r *productRepository) FindByIDsForAccount(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE account_id = $1 AND id = ANY($2)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, accountID, ids)
	if err != nil {
		r.log.Error("Failed to find products by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find %d products: %w", len(ids), err)
	}

	return r.collect(rows)
}

func (r *productRepository) collect(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		var p entity.Product
		err := rows.Scan(
			&p.ID,
			&p.AccountID,
			&p.SubCategoryID,
			&p.Label,
			&p.Unit,
			&p.InputType,
			&p.SellingPrice,
			&p.CostPrice,
			&p.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}
