package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"billing-habit/pkg/auth"
	"billing-habit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionCookie carries the session token set on OTP verification.
const SessionCookie = "token"

// Authenticator resolves a raw session token into its claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthSession rejects requests without a valid session and stores the account id
// and token id in the request context.
func AuthSession(authenticator Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := TokenFromRequest(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Please log in to continue.")
				return
			}

			claims, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, utils.ErrUnauthenticated) {
					logger.Debug("Session rejected", zap.Error(err), zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, utils.Message(err))
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			accountID, err := uuid.Parse(claims.AccountID)
			if err != nil {
				logger.Warn("Session carries malformed account id", zap.String("jti", claims.ID))
				utils.ResponseUnauthorized(w, "invalid session")
				return
			}

			ctx := utils.SetAccountContext(r.Context(), accountID)
			ctx = utils.SetTokenIDContext(ctx, claims.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest reads the session cookie, falling back to an
// "Authorization: Bearer <token>" header.
func TokenFromRequest(r *http.Request) (string, bool) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, true
	}

	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
