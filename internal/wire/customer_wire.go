package wire

import (
	"net/http"

	"billing-habit/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCustomer(
	r chi.Router,
	customerHandler *adaptor.CustomerHandler,
	authSession func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED CUSTOMER ROUTES ====================
	r.With(authSession).Route("/customer", func(r chi.Router) {
		r.Post("/create", customerHandler.Create)
		r.Get("/get-my-customers", customerHandler.GetMine)
	})
}
