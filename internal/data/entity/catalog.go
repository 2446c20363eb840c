package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultUnit      = "pcs"
	DefaultInputType = "number"
)

// Largest values the money columns hold: prices are NUMERIC(12,2),
// line and quote totals NUMERIC(14,2).
var (
	MaxPrice  = decimal.RequireFromString("9999999999.99")
	MaxAmount = decimal.RequireFromString("999999999999.99")
)

type Category struct {
	BaseSimple
	AccountID   uuid.UUID `db:"account_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
}

type SubCategory struct {
	BaseSimple
	AccountID  uuid.UUID `db:"account_id"`
	CategoryID uuid.UUID `db:"category_id"`
	Name       string    `db:"name"`
}

type Product struct {
	BaseSimple
	AccountID     uuid.UUID       `db:"account_id"`
	SubCategoryID uuid.UUID       `db:"sub_category_id"`
	Label         string          `db:"label"`
	Unit          string          `db:"unit"`
	InputType     string          `db:"input_type"`
	SellingPrice  decimal.Decimal `db:"selling_price"`
	CostPrice     decimal.Decimal `db:"cost_price"`
}

type Customer struct {
	BaseSimple
	AccountID uuid.UUID `db:"account_id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	Number    string    `db:"number"`
}
