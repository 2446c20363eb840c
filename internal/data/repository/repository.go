package repository

import (
	"errors"

	"billing-habit/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInsufficientCredit is returned when an account has no credit left to debit.
	ErrInsufficientCredit = errors.New("insufficient credit")
	// ErrAccountNotFound is returned by credit operations on a missing account.
	ErrAccountNotFound = errors.New("account not found")
)

type Repository struct {
	Account     AccountRepository
	Category    CategoryRepository
	SubCategory SubCategoryRepository
	Product     ProductRepository
	Customer    CustomerRepository
	Quote       QuoteRepository

	db database.PgxIface
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Account:     NewAccountRepository(db, log),
		Category:    NewCategoryRepository(db, log),
		SubCategory: NewSubCategoryRepository(db, log),
		Product:     NewProductRepository(db, log),
		Customer:    NewCustomerRepository(db, log),
		Quote:       NewQuoteRepository(db, log),
		db:          db,
	}
}

// DB exposes the pool for health checks
func (r *Repository) DB() database.PgxIface {
	return r.db
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
