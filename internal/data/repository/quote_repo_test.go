package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"billing-habit/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleQuote() *entity.Quote {
	return &entity.Quote{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		AccountID:   uuid.New(),
		CustomerID:  uuid.New(),
		TotalAmount: decimal.NewFromInt(200),
		Status:      entity.QuoteStatusDraft,
		Items: []entity.QuoteItem{
			{Position: 1, ProductID: uuid.New(), Label: "Cement bag", SellingPrice: decimal.NewFromInt(100), Quantity: 2, LineTotal: decimal.NewFromInt(200)},
		},
	}
}

func TestQuoteRepository_CreateAndDebit(t *testing.T) {
	mock := newMock(t)
	repo := NewQuoteRepository(mock, zap.NewNop())
	q := sampleQuote()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE accounts\s+SET credit = credit - 1`).
		WithArgs(q.AccountID).
		WillReturnRows(pgxmock.NewRows([]string{"credit"}).AddRow(4))
	mock.ExpectExec(`INSERT INTO quotes`).
		WithArgs(q.ID, q.AccountID, q.CustomerID, pgxmock.AnyArg(), q.Status, q.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO quote_items`).
		WithArgs(q.ID, 1, q.Items[0].ProductID, "Cement bag", pgxmock.AnyArg(), 2, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	credit, err := repo.CreateAndDebit(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 4, credit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_CreateAndDebit_NoCredit(t *testing.T) {
	mock := newMock(t)
	repo := NewQuoteRepository(mock, zap.NewNop())
	q := sampleQuote()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE accounts\s+SET credit = credit - 1`).
		WithArgs(q.AccountID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CreateAndDebit(context.Background(), q)
	assert.ErrorIs(t, err, ErrInsufficientCredit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_CreateAndDebit_ItemFailureRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewQuoteRepository(mock, zap.NewNop())
	q := sampleQuote()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE accounts\s+SET credit = credit - 1`).
		WithArgs(q.AccountID).
		WillReturnRows(pgxmock.NewRows([]string{"credit"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO quotes`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO quote_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("check constraint"))
	mock.ExpectRollback()

	_, err := repo.CreateAndDebit(context.Background(), q)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientCredit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_FindByIDForAccount(t *testing.T) {
	mock := newMock(t)
	repo := NewQuoteRepository(mock, zap.NewNop())
	q := sampleQuote()

	mock.ExpectQuery(`FROM quotes q\s+JOIN customers c ON c.id = q.customer_id\s+WHERE q.id = \$1 AND q.account_id = \$2`).
		WithArgs(q.ID, q.AccountID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "account_id", "customer_id", "total_amount", "status", "created_at", "name", "number", "address"}).
			AddRow(q.ID, q.AccountID, q.CustomerID, q.TotalAmount, entity.QuoteStatusDraft, q.CreatedAt, "Ravi", "9123456780", "12 Market Rd"))
	mock.ExpectQuery(`FROM quote_items\s+WHERE quote_id = ANY\(\$1\)`).
		WithArgs([]uuid.UUID{q.ID}).
		WillReturnRows(pgxmock.NewRows([]string{"quote_id", "position", "product_id", "label", "selling_price", "quantity", "line_total"}).
			AddRow(q.ID, 1, q.Items[0].ProductID, "Cement bag", decimal.NewFromInt(100), 2, decimal.NewFromInt(200)))

	got, err := repo.FindByIDForAccount(context.Background(), q.ID, q.AccountID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ravi", got.Customer.Name)
	assert.Equal(t, "12 Market Rd", got.Customer.Address)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_FindByIDForAccount_NotOwned(t *testing.T) {
	mock := newMock(t)
	repo := NewQuoteRepository(mock, zap.NewNop())
	id, accountID := uuid.New(), uuid.New()

	mock.ExpectQuery(`FROM quotes q`).
		WithArgs(id, accountID).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByIDForAccount(context.Background(), id, accountID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_FindByAccount_Unlimited(t *testing.T) {
	mock := newMock(t)
	repo := NewQuoteRepository(mock, zap.NewNop())
	accountID := uuid.New()

	mock.ExpectQuery(`WHERE q.account_id = \$1\s+ORDER BY q.created_at DESC, q.id\s+LIMIT \$2 OFFSET \$3`).
		WithArgs(accountID, pgxmock.AnyArg(), 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "account_id", "customer_id", "total_amount", "status", "created_at", "name", "number", "address"}))

	quotes, err := repo.FindByAccount(context.Background(), accountID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, quotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_CountByAccount(t *testing.T) {
	mock := newMock(t)
	repo := NewQuoteRepository(mock, zap.NewNop())
	accountID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM quotes WHERE account_id = \$1`).
		WithArgs(accountID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := repo.CountByAccount(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
