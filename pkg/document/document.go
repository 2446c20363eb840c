// Package document renders quotes as PDF and as a spreadsheet history.
package document

import (
	"time"

	"github.com/shopspring/decimal"
)

type Party struct {
	Name    string
	Number  string
	Address string
}

type Line struct {
	Label    string
	Quantity int
	Price    decimal.Decimal
	Total    decimal.Decimal
}

type Quote struct {
	ID        string
	CreatedAt time.Time
	Status    string
	Seller    Party
	Customer  Party
	Lines     []Line
	Total     decimal.Decimal
}

const dateLayout = "02-Jan-2006"
