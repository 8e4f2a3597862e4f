// Package entities defines core domain models and data structures.
package entities

import "github.com/shopspring/decimal"

// PurchaseEntry represents one parsed purchase line.
// Entries are values: a copy held by a basket is unaffected by later changes to the caller's copy.
type PurchaseEntry struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Imported  bool
	TaxExempt bool
}

// TotalPrice returns quantity * unit price, before tax
func (e PurchaseEntry) TotalPrice() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}
