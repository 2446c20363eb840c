package wire

import (
	"net/http"

	"billing-habit/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile and credit routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authSession func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(authSession).Route("/user", func(r chi.Router) {
		r.Get("/profile", userHandler.GetProfile)
		r.Post("/update-details", userHandler.UpdateDetails)
		r.Post("/use-credit", userHandler.UseCredit)
	})
}
