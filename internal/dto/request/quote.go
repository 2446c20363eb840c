package request

// CreateQuoteRequest carries the client draft: product id -> requested quantity.
// Prices are never taken from the client.
type CreateQuoteRequest struct {
	CustomerID string         `json:"customerId" validate:"required,uuid"`
	ItemsList  map[string]int `json:"itemsList" validate:"required,min=1"`
}
