package wire

import (
	"net/http"

	"billing-habit/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCatalog configures category, sub-category and product routes
func wireCatalog(
	r chi.Router,
	handler *adaptor.Handler,
	authSession func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED CATALOG ROUTES ====================
	r.With(authSession).Route("/category", func(r chi.Router) {
		r.Post("/create", handler.Category.Create)
		r.Get("/get-all", handler.Category.GetAll)
		r.Get("/get/{id}", handler.Category.GetByID)
	})

	r.With(authSession).Route("/subcategory", func(r chi.Router) {
		r.Post("/create", handler.SubCategory.Create)
		r.Get("/get-for-category/{categoryId}", handler.SubCategory.GetForCategory)
		r.Get("/get/{id}", handler.SubCategory.GetByID)
	})

	r.With(authSession).Route("/product", func(r chi.Router) {
		r.Post("/create", handler.Product.Create)
		r.Get("/get-for-subcategory/{subCategoryId}", handler.Product.GetForSubCategory)
		r.Post("/get-for-subcategory/{subCategoryId}", handler.Product.GetForSubCategory)
		r.Post("/get-details-for-list", handler.Product.GetDetailsForList)
	})
}
