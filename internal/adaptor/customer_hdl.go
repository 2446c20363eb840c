package adaptor

import (
	"net/http"

	"billing-habit/internal/dto/request"
	"billing-habit/internal/usecase"
	"billing-habit/pkg/utils"

	"go.uber.org/zap"
)

type CustomerHandler struct {
	service usecase.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// Create handles POST /customer/create
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req request.CreateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customer, err := h.service.Create(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "Customer created successfully.", utils.Payload{"customer": customer})
}

// GetMine handles GET /customer/get-my-customers
func (h *CustomerHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	customers, err := h.service.GetMine(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get customers")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"customers": customers})
}
