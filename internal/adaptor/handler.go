package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"billing-habit/internal/usecase"
	"billing-habit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Category    *CategoryHandler
	SubCategory *SubCategoryHandler
	Product     *ProductHandler
	Customer    *CustomerHandler
	Quote       *QuoteHandler
	Health      *HealthHandler
}

func NewHandler(service *usecase.Service, db Pinger, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, config, log),
		User:        NewUserHandler(service.Account, log),
		Category:    NewCategoryHandler(service.Category, log),
		SubCategory: NewSubCategoryHandler(service.SubCategory, log),
		Product:     NewProductHandler(service.Product, log),
		Customer:    NewCustomerHandler(service.Customer, log),
		Quote:       NewQuoteHandler(service.Quote, log),
		Health:      NewHealthHandler(db, log),
	}
}

// decodeAndValidate reads a JSON body into dst and writes the 400 response itself
// when the body is malformed or fails validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// maxBodyBytes caps request bodies; the largest is a draft list of product ids.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// handleServiceError maps service error kinds to status codes. Unexpected errors
// are logged and never shown to the caller.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	msg := utils.Message(err)

	switch {
	case errors.Is(err, utils.ErrValidation), errors.Is(err, utils.ErrInvalidState):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	case errors.Is(err, utils.ErrUnauthenticated):
		log.Warn(operation+" failed - unauthenticated", zap.Error(err))
		utils.ResponseUnauthorized(w, msg)

	case errors.Is(err, utils.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, msg)

	case errors.Is(err, utils.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	case errors.Is(err, utils.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, msg)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// accountID reads the caller set by AuthSession.
func accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "User not authenticated.")
	}
	return id, ok
}
