package adaptor

import (
	"net/http"

	"billing-habit/internal/dto/request"
	"billing-habit/internal/usecase"
	"billing-habit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SubCategoryHandler struct {
	service usecase.SubCategoryService
	log     *zap.Logger
}

func NewSubCategoryHandler(service usecase.SubCategoryService, log *zap.Logger) *SubCategoryHandler {
	return &SubCategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "sub_category")),
	}
}

// Create handles POST /subcategory/create
func (h *SubCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req request.CreateSubCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subCategory, err := h.service.Create(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create sub-category")
		return
	}

	utils.ResponseCreated(w, "Sub-category created successfully.", utils.Payload{"subCategory": subCategory})
}

// GetForCategory handles GET /subcategory/get-for-category/{categoryId}
func (h *SubCategoryHandler) GetForCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	subCategories, err := h.service.GetForCategory(r.Context(), id, chi.URLParam(r, "categoryId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get sub-categories")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"subCategories": subCategories})
}

// GetByID handles GET /subcategory/get/{id}
func (h *SubCategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	subCategory, err := h.service.GetByID(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get sub-category")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"subCategory": subCategory})
}
