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

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Category, error)
	FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*entity.Category, error)
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

// Create inserts a category. A name already used by the same account yields ErrDuplicate.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, account_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		category.ID,
		category.AccountID,
		category.Name,
		category.Description,
		category.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create category",
			zap.Error(err),
			zap.String("account_id", category.AccountID.String()),
			zap.String("name", category.Name),
		)
		return fmt.Errorf("create category %s: %w", category.Name, err)
	}

	return nil
}

func (r *categoryRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Category, error) {
	query := `
		SELECT id, account_id, name, description, created_at
		FROM categories
		WHERE account_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		r.log.Error("Failed to list categories", zap.Error(err), zap.String("account_id", accountID.String()))
		return nil, fmt.Errorf("list categories for %s: %w", accountID, err)
	}
	defer rows.Close()

	categories := []*entity.Category{}
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*entity.Category, error) {
	query := `
		SELECT id, account_id, name, description, created_at
		FROM categories
		WHERE id = $1 AND account_id = $2
	`

	var c entity.Category
	err := r.db.QueryRow(ctx, query, id, accountID).Scan(&c.ID, &c.AccountID, &c.Name, &c.Description, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("find category %s: %w", id, err)
	}

	return &c, nil
}
