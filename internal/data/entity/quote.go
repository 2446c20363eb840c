package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "Draft"
	QuoteStatusSent      QuoteStatus = "Sent"
	QuoteStatusFinalized QuoteStatus = "Finalized"
)

// Quote is a priced snapshot. Items and TotalAmount never change after insert.
type Quote struct {
	BaseSimple
	AccountID   uuid.UUID       `db:"account_id"`
	CustomerID  uuid.UUID       `db:"customer_id"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Status      QuoteStatus     `db:"status"`
	Items       []QuoteItem

	// populated by reads that join the customer
	Customer *Customer
}

type QuoteItem struct {
	Position     int             `db:"position"`
	ProductID    uuid.UUID       `db:"product_id"`
	Label        string          `db:"label"`
	SellingPrice decimal.Decimal `db:"selling_price"`
	Quantity     int             `db:"quantity"`
	LineTotal    decimal.Decimal `db:"line_total"`
}
