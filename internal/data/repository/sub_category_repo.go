package repository

import (
	"context"
	"errors"
	"fmt"

	"billing-habit/internal/data/entity"
	"billing-habit/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SubCategoryRepository interface {
	Create(ctx context.Context, subCategory *entity.SubCategory) error
	FindByCategory(ctx context.Context, accountID, categoryID uuid.UUID) ([]*entity.SubCategory, error)
	FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*entity.SubCategory, error)
}

type subCategoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubCategoryRepository(db database.PgxIface, log *zap.Logger) SubCategoryRepository {
	return &subCategoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "sub_category")),
	}
}

func (r *subCategoryRepository) Create(ctx context.Context, sc *entity.SubCategory) error {
	query := `
		INSERT INTO sub_categories (id, account_id, category_id, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.db.Exec(ctx, query, sc.ID, sc.AccountID, sc.CategoryID, sc.Name, sc.CreatedAt); err != nil {
		r.log.Error("Failed to create sub-category",
			zap.Error(err),
			zap.String("category_id", sc.CategoryID.String()),
			zap.String("name", sc.Name),
		)
		return fmt.Errorf("create sub-category %s: %w", sc.Name, err)
	}

	return nil
}

func (r *subCategoryRepository) FindByCategory(ctx context.Context, accountID, categoryID uuid.UUID) ([]*entity.SubCategory, error) {
	query := `
		SELECT id, account_id, category_id, name, created_at
		FROM sub_categories
		WHERE account_id = $1 AND category_id = $2
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, accountID, categoryID)
	if err != nil {
		r.log.Error("Failed to list sub-categories", zap.Error(err), zap.String("category_id", categoryID.String()))
		return nil, fmt.Errorf("list sub-categories for %s: %w", categoryID, err)
	}
	defer rows.Close()

	subCategories := []*entity.SubCategory{}
	for rows.Next() {
		var sc entity.SubCategory
		if err := rows.Scan(&sc.ID, &sc.AccountID, &sc.CategoryID, &sc.Name, &sc.CreatedAt); err != nil {
			r.log.Error("Failed to scan sub-category row", zap.Error(err))
			return nil, fmt.Errorf("scan sub-category row: %w", err)
		}
		subCategories = append(subCategories, &sc)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate sub-category rows: %w", err)
	}

	return subCategories, nil
}

func (r *subCategoryRepository) FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*entity.SubCategory, error) {
	query := `
		SELECT id, account_id, category_id, name, created_at
		FROM sub_categories
		WHERE id = $1 AND account_id = $2
	`

	var sc entity.SubCategory
	err := r.db.QueryRow(ctx, query, id, accountID).Scan(&sc.ID, &sc.AccountID, &sc.CategoryID, &sc.Name, &sc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sub-category", zap.Error(err), zap.String("sub_category_id", id.String()))
		return nil, fmt.Errorf("find sub-category %s: %w", id, err)
	}

	return &sc, nil
}
