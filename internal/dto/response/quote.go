package response

import (
	"time"

	"billing-habit/internal/data/entity"

	"github.com/shopspring/decimal"
)

type QuoteCustomer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Number  string `json:"number"`
	Address string `json:"address,omitempty"`
}

type QuoteItemResponse struct {
	Product      string          `json:"product"`
	ProductLabel string          `json:"productLabel"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
}

type QuoteResponse struct {
	ID          string              `json:"id"`
	Customer    QuoteCustomer       `json:"customer"`
	Items       []QuoteItemResponse `json:"items"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Status      entity.QuoteStatus  `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type CreateQuoteResponse struct {
	Quote     QuoteResponse `json:"quote"`
	NewCredit int           `json:"newCredit"`
}

// QuoteToResponse renders a quote. withAddress adds the customer address, which
// only the detail view shows.
func QuoteToResponse(q *entity.Quote, withAddress bool) QuoteResponse {
	resp := QuoteResponse{
		ID:          q.ID.String(),
		Items:       make([]QuoteItemResponse, 0, len(q.Items)),
		TotalAmount: q.TotalAmount,
		Status:      q.Status,
		CreatedAt:   q.CreatedAt,
		Customer:    QuoteCustomer{ID: q.CustomerID.String()},
	}

	if q.Customer != nil {
		resp.Customer.Name = q.Customer.Name
		resp.Customer.Number = q.Customer.Number
		if withAddress {
			resp.Customer.Address = q.Customer.Address
		}
	}

	for _, item := range q.Items {
		resp.Items = append(resp.Items, QuoteItemResponse{
			Product:      item.ProductID.String(),
			ProductLabel: item.Label,
			SellingPrice: item.SellingPrice,
			Quantity:     item.Quantity,
			Total:        item.LineTotal,
		})
	}

	return resp
}
