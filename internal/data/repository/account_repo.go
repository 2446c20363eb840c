package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"billing-habit/internal/data/entity"
	"billing-habit/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AccountRepository interface {
	UpsertOTP(ctx context.Context, number, otp string, expiresAt time.Time, initialCredit int) (*entity.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByNumber(ctx context.Context, number string) (*entity.Account, error)
	ConsumeOTP(ctx context.Context, id uuid.UUID, otp string, at time.Time) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, address, pinHash string) (*entity.Account, error)
	UseCredit(ctx context.Context, id uuid.UUID) (int, error)
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type accountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccountRepository(db database.PgxIface, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log.With(zap.String("repository", "account")),
	}
}

const accountColumns = `id, number, name, address, otp, otp_expires_at, is_verified, pin_hash, credit, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.Name,
		&a.Address,
		&a.OTP,
		&a.OTPExpiresAt,
		&a.IsVerified,
		&a.PINHash,
		&a.Credit,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertOTP creates the account on first contact, otherwise replaces its pending OTP.
func (r *accountRepository) UpsertOTP(ctx context.Context, number, otp string, expiresAt time.Time, initialCredit int) (*entity.Account, error) {
	query := `
		INSERT INTO accounts (id, number, otp, otp_expires_at, credit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (number) DO UPDATE
		SET otp = EXCLUDED.otp, otp_expires_at = EXCLUDED.otp_expires_at, updated_at = NOW()
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, uuid.New(), number, otp, expiresAt, initialCredit))
	if err != nil {
		r.log.Error("Failed to upsert account OTP", zap.Error(err), zap.String("number", number))
		return nil, fmt.Errorf("upsert otp for %s: %w", number, err)
	}

	return account, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by ID", zap.Error(err), zap.String("account_id", id.String()))
		return nil, fmt.Errorf("find account %s: %w", id, err)
	}

	return account, nil
}

func (r *accountRepository) FindByNumber(ctx context.Context, number string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE number = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by number", zap.Error(err), zap.String("number", number))
		return nil, fmt.Errorf("find account by number %s: %w", number, err)
	}

	return account, nil
}

// ConsumeOTP clears a matching, unexpired OTP and marks the account verified.
// It reports false and changes nothing when the code is wrong or expired.
func (r *accountRepository) ConsumeOTP(ctx context.Context, id uuid.UUID, otp string, at time.Time) (bool, error) {
	query := `
		UPDATE accounts
		SET otp = NULL, otp_expires_at = NULL, is_verified = TRUE, updated_at = NOW()
		WHERE id = $1 AND otp = $2 AND otp_expires_at > $3
	`

	result, err := r.db.Exec(ctx, query, id, otp, at)
	if err != nil {
		r.log.Error("Failed to consume OTP", zap.Error(err), zap.String("account_id", id.String()))
		return false, fmt.Errorf("consume otp for %s: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, address, pinHash string) (*entity.Account, error) {
	query := `
		UPDATE accounts
		SET name = $2, address = $3, pin_hash = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, id, name, address, pinHash))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update profile", zap.Error(err), zap.String("account_id", id.String()))
		return nil, fmt.Errorf("update profile %s: %w", id, err)
	}

	return account, nil
}

// UseCredit decrements credit by one and returns the new balance.
func (r *accountRepository) UseCredit(ctx context.Context, id uuid.UUID) (int, error) {
	credit, err := debitCredit(ctx, r.db, id)
	if err == nil {
		return credit, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("Failed to use credit", zap.Error(err), zap.String("account_id", id.String()))
		return 0, fmt.Errorf("use credit %s: %w", id, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		r.log.Error("Failed to check account", zap.Error(err), zap.String("account_id", id.String()))
		return 0, fmt.Errorf("check account %s: %w", id, err)
	}
	if !exists {
		return 0, ErrAccountNotFound
	}

	return 0, ErrInsufficientCredit
}

func (r *accountRepository) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM accounts WHERE is_verified = FALSE AND created_at < $1`

	result, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to delete unverified accounts", zap.Error(err), zap.Time("cutoff", cutoff))
		return 0, fmt.Errorf("delete unverified accounts before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	deleted := result.RowsAffected()
	if deleted > 0 {
		r.log.Info("Unverified accounts deleted", zap.Int64("count", deleted), zap.Time("cutoff", cutoff))
	}

	return deleted, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// debitCredit runs the guarded decrement on either the pool or a transaction.
// pgx.ErrNoRows means the account is missing or has no credit.
func debitCredit(ctx context.Context, q queryRower, id uuid.UUID) (int, error) {
	query := `
		UPDATE accounts
		SET credit = credit - 1, updated_at = NOW()
		WHERE id = $1 AND credit > 0
		RETURNING credit
	`

	var credit int
	if err := q.QueryRow(ctx, query, id).Scan(&credit); err != nil {
		return 0, err
	}
	return credit, nil
}
