package adaptor

import (
	"net/http"

	"billing-habit/internal/dto/request"
	"billing-habit/internal/usecase"
	"billing-habit/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewUserHandler(service usecase.AccountService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	user, err := h.service.Profile(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"user": user})
}

// UpdateDetails handles POST /user/update-details
func (h *UserHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req request.UpdateDetailsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.UpdateDetails(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update details")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully.", utils.Payload{"user": user})
}

// UseCredit handles POST /user/use-credit
func (h *UserHandler) UseCredit(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	credit, err := h.service.UseCredit(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "use credit")
		return
	}

	utils.ResponseSuccess(w, "Credit used.", utils.Payload{"newCredit": credit})
}
