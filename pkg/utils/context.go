package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	TokenIDKey   contextKey = "token_id"
)

func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(AccountIDKey).(uuid.UUID)
	if !ok || accountID == uuid.Nil {
		return uuid.Nil, false
	}
	return accountID, true
}

func SetAccountContext(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, AccountIDKey, accountID)
}

// GetTokenIDFromContext returns the jti of the session token that authenticated the request.
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	jti, ok := ctx.Value(TokenIDKey).(string)
	return jti, ok && jti != ""
}

func SetTokenIDContext(ctx context.Context, jti string) context.Context {
	return context.WithValue(ctx, TokenIDKey, jti)
}
