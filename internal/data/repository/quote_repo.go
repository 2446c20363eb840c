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

type QuoteRepository interface {
	CreateAndDebit(ctx context.Context, quote *entity.Quote) (int, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.Quote, error)
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*entity.Quote, error)
}

type quoteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQuoteRepository(db database.PgxIface, log *zap.Logger) QuoteRepository {
	return &quoteRepository{
		db:  db,
		log: log.With(zap.String("repository", "quote")),
	}
}

// CreateAndDebit takes one credit from the owning account and stores the quote with
// its items in a single transaction. It returns the remaining credit, or
// ErrInsufficientCredit with nothing written.
func (r *quoteRepository) CreateAndDebit(ctx context.Context, q *entity.Quote) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin quote transaction", zap.Error(err))
		return 0, fmt.Errorf("begin quote transaction: %w", err)
	}

	credit, err := debitCredit(ctx, tx, q.AccountID)
	if err != nil {
		r.rollback(ctx, tx)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInsufficientCredit
		}
		r.log.Error("Failed to debit credit", zap.Error(err), zap.String("account_id", q.AccountID.String()))
		return 0, fmt.Errorf("debit credit for %s: %w", q.AccountID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO quotes (id, account_id, customer_id, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, q.ID, q.AccountID, q.CustomerID, q.TotalAmount, q.Status, q.CreatedAt)
	if err != nil {
		r.rollback(ctx, tx)
		r.log.Error("Failed to insert quote", zap.Error(err), zap.String("quote_id", q.ID.String()))
		return 0, fmt.Errorf("insert quote %s: %w", q.ID, err)
	}

	for _, item := range q.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO quote_items (quote_id, position, product_id, label, selling_price, quantity, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, q.ID, item.Position, item.ProductID, item.Label, item.SellingPrice, item.Quantity, item.LineTotal)
		if err != nil {
			r.rollback(ctx, tx)
			r.log.Error("Failed to insert quote item",
				zap.Error(err),
				zap.String("quote_id", q.ID.String()),
				zap.String("product_id", item.ProductID.String()),
			)
			return 0, fmt.Errorf("insert quote item %d: %w", item.Position, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit quote", zap.Error(err), zap.String("quote_id", q.ID.String()))
		return 0, fmt.Errorf("commit quote %s: %w", q.ID, err)
	}

	r.log.Info("Quote created",
		zap.String("quote_id", q.ID.String()),
		zap.String("account_id", q.AccountID.String()),
		zap.Int("items", len(q.Items)),
		zap.Int("credit", credit),
	)

	return credit, nil
}

func (r *quoteRepository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.log.Warn("Rollback failed", zap.Error(err))
	}
}

const quoteSelect = `
	SELECT q.id, q.account_id, q.customer_id, q.total_amount, q.status, q.created_at,
	       c.name, c.number, c.address
	FROM quotes q
	JOIN customers c ON c.id = q.customer_id
`

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	q := entity.Quote{Customer: &entity.Customer{}}
	err := row.Scan(
		&q.ID,
		&q.AccountID,
		&q.CustomerID,
		&q.TotalAmount,
		&q.Status,
		&q.CreatedAt,
		&q.Customer.Name,
		&q.Customer.Number,
		&q.Customer.Address,
	)
	if err != nil {
		return nil, err
	}
	q.Customer.ID = q.CustomerID
	q.Customer.AccountID = q.AccountID
	return &q, nil
}

// FindByAccount lists the caller's quotes newest first with items and customer.
// A limit of zero or less returns every quote.
func (r *quoteRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.Quote, error) {
	query := quoteSelect + `
		WHERE q.account_id = $1
		ORDER BY q.created_at DESC, q.id
		LIMIT $2 OFFSET $3
	`

	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	rows, err := r.db.Query(ctx, query, accountID, limitArg, offset)
	if err != nil {
		r.log.Error("Failed to list quotes",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list quotes for %s: %w", accountID, err)
	}
	defer rows.Close()

	quotes := []*entity.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			r.log.Error("Failed to scan quote row", zap.Error(err))
			return nil, fmt.Errorf("scan quote row: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate quote rows: %w", err)
	}

	if err := r.loadItems(ctx, quotes); err != nil {
		return nil, err
	}

	return quotes, nil
}

func (r *quoteRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quotes WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count quotes", zap.Error(err), zap.String("account_id", accountID.String()))
		return 0, fmt.Errorf("count quotes for %s: %w", accountID, err)
	}

	return count, nil
}

func (r *quoteRepository) FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*entity.Quote, error) {
	query := quoteSelect + `WHERE q.id = $1 AND q.account_id = $2`

	q, err := scanQuote(r.db.QueryRow(ctx, query, id, accountID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find quote", zap.Error(err), zap.String("quote_id", id.String()))
		return nil, fmt.Errorf("find quote %s: %w", id, err)
	}

	if err := r.loadItems(ctx, []*entity.Quote{q}); err != nil {
		return nil, err
	}

	return q, nil
}

func (r *quoteRepository) loadItems(ctx context.Context, quotes []*entity.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(quotes))
	byID := make(map[uuid.UUID]*entity.Quote, len(quotes))
	for i, q := range quotes {
		ids[i] = q.ID
		byID[q.ID] = q
		q.Items = []entity.QuoteItem{}
	}

	query := `
		SELECT quote_id, position, product_id, label, selling_price, quantity, line_total
		FROM quote_items
		WHERE quote_id = ANY($1)
		ORDER BY quote_id, position
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load quote items", zap.Error(err), zap.Int("quotes", len(ids)))
		return fmt.Errorf("load quote items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var quoteID uuid.UUID
		var item entity.QuoteItem
		err := rows.Scan(
			&quoteID,
			&item.Position,
			&item.ProductID,
			&item.Label,
			&item.SellingPrice,
			&item.Quantity,
			&item.LineTotal,
		)
		if err != nil {
			r.log.Error("Failed to scan quote item row", zap.Error(err))
			return fmt.Errorf("scan quote item row: %w", err)
		}
		if q, ok := byID[quoteID]; ok {
			q.Items = append(q.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return fmt.Errorf("iterate quote item rows: %w", err)
	}

	return nil
}
