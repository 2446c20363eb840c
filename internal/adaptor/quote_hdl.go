package adaptor

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"billing-habit/internal/dto/request"
	"billing-habit/internal/usecase"
	"billing-habit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type QuoteHandler struct {
	service usecase.QuoteService
	log     *zap.Logger
}

func NewQuoteHandler(service usecase.QuoteService, log *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		log:     log.With(zap.String("handler", "quote")),
	}
}

// Create handles POST /quote/create
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req request.CreateQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Create(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create quote")
		return
	}

	utils.ResponseCreated(w, "Quote created successfully!", utils.Payload{
		"quote":     resp.Quote,
		"newCredit": resp.NewCredit,
	})
}

// GetMine handles GET /quote/get-my-quotes?page=&per_page=
func (h *QuoteHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}

	quotes, err := h.service.List(r.Context(), id, page)
	if err != nil {
		handleServiceError(w, h.log, err, "get quotes")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{
		"quotes":     quotes.Data,
		"pagination": quotes.Pagination,
	})
}

// GetByID handles GET /quote/{id}
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	quote, err := h.service.Get(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get quote")
		return
	}

	utils.ResponseSuccess(w, "", utils.Payload{"quote": quote})
}

// PDF handles GET /quote/{id}/pdf
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	quoteID := chi.URLParam(r, "id")
	out, err := h.service.PDF(r.Context(), id, quoteID)
	if err != nil {
		handleServiceError(w, h.log, err, "render quote PDF")
		return
	}

	writeAttachment(w, contentTypePDF, fmt.Sprintf("quote-%s.pdf", quoteID), out)
}

// Export handles GET /quote/export
func (h *QuoteHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	out, err := h.service.Export(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "export quotes")
		return
	}

	writeAttachment(w, contentTypeXLSX, fmt.Sprintf("quotes-%s.xlsx", time.Now().Format("20060102")), out)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
