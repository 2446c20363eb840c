package wire

import (
	"net/http"

	"billing-habit/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireQuote(
	r chi.Router,
	quoteHandler *adaptor.QuoteHandler,
	authSession func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED QUOTE ROUTES ====================
	r.With(authSession).Route("/quote", func(r chi.Router) {
		r.Post("/create", quoteHandler.Create)
		r.Get("/get-my-quotes", quoteHandler.GetMine)
		r.Get("/export", quoteHandler.Export)
		r.Get("/{id}", quoteHandler.GetByID)
		r.Get("/{id}/pdf", quoteHandler.PDF)
	})
}
