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

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Customer, error)
	FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*entity.Customer, error)
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func (r *customerRepository) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, account_id, name, address, number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := r.db.Exec(ctx, query, c.ID, c.AccountID, c.Name, c.Address, c.Number, c.CreatedAt); err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("account_id", c.AccountID.String()),
			zap.String("number", c.Number),
		)
		return fmt.Errorf("create customer %s: %w", c.Name, err)
	}

	return nil
}

// FindByAccount lists the caller's customers, newest first.
func (r *customerRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Customer, error) {
	query := `
		SELECT id, account_id, name, address, number, created_at
		FROM customers
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		r.log.Error("Failed to list customers", zap.Error(err), zap.String("account_id", accountID.String()))
		return nil, fmt.Errorf("list customers for %s: %w", accountID, err)
	}
	defer rows.Close()

	customers := []*entity.Customer{}
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Address, &c.Number, &c.CreatedAt); err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*entity.Customer, error) {
	query := `
		SELECT id, account_id, name, address, number, created_at
		FROM customers
		WHERE id = $1 AND account_id = $2
	`

	var c entity.Customer
	err := r.db.QueryRow(ctx, query, id, accountID).Scan(&c.ID, &c.AccountID, &c.Name, &c.Address, &c.Number, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer", zap.Error(err), zap.String("customer_id", id.String()))
		return nil, fmt.Errorf("find customer %s: %w", id, err)
	}

	return &c, nil
}
