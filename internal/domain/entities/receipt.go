package entities

import "github.com/shopspring/decimal"

// ReceiptLine is one priced line of a receipt (tax included)
type ReceiptLine struct {
	Quantity int
	Name     string
	Amount   decimal.Decimal
}

// Receipt is the structured form of a rendered receipt
type Receipt struct {
	Lines      []ReceiptLine
	SalesTaxes decimal.Decimal
	Total      decimal.Decimal
}
