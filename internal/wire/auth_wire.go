package wire

import (
	"net/http"

	"billing-habit/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authSession func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/user/send-otp", authHandler.SendOTP)
	r.Post("/user/verify-otp", authHandler.VerifyOTP)

	// ==================== PROTECTED ROUTES ====================
	r.With(authSession).Post("/user/logout", authHandler.Logout)
}
