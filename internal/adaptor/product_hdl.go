package adaptor

import (
	"net/http"

	"billing-habit/internal/dto/request"
	"billing-habit/internal/usecase"
	"billing-habit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// Create handles POST /product/create
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req request.CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.service.Create(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully.", utils.Payload{"product": product})
}

// GetForSubCategory handles GET and POST /product/get-for-subcategory/{subCategoryId}
func (h *ProductHandler) GetForSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	products, err := h.service.GetForSubCategory(r.Context(), id, chi.URLParam(r, "subCategoryId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get products")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"products": products})
}

// GetDetailsForList handles POST /product/get-details-for-list
func (h *ProductHandler) GetDetailsForList(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req request.ProductDetailsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	products, err := h.service.GetDetailsForList(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get product details")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"products": products})
}
