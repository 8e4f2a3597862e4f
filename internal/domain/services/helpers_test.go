package services

import (
	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/shopspring/decimal"
)

func newEntry(name string, quantity int, unitPrice string, imported, taxExempt bool) entities.PurchaseEntry {
	return entities.PurchaseEntry{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: decimal.RequireFromString(unitPrice),
		Imported:  imported,
		TaxExempt: taxExempt,
	}
}

// stubCalculator returns a fixed amount and records every entry it was asked about
type stubCalculator struct {
	amount decimal.Decimal
	calls  []entities.PurchaseEntry
}

func (s *stubCalculator) Calculate(entry entities.PurchaseEntry) decimal.Decimal {
	s.calls = append(s.calls, entry)
	return s.amount
}
