// Package services implements domain business logic and use cases.
package services

import (
	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/ochairo/salestax/internal/domain/interfaces/services"
	"github.com/shopspring/decimal"
)

// Fixed tax rates. Jurisdictions are not configurable.
var (
	// BasicTaxRate applies to every item that is not tax-exempt
	BasicTaxRate = decimal.RequireFromString("0.10")
	// ImportDutyRate applies to every imported item, exempt or not
	ImportDutyRate = decimal.RequireFromString("0.05")

	nickelsPerUnit = decimal.NewFromInt(20)
)

// taxCalculator implements TaxCalculator with the fixed basic/import rules
type taxCalculator struct{}

// NewTaxCalculator creates the default stateless tax calculator
func NewTaxCalculator() services.TaxCalculator {
	return &taxCalculator{}
}

// Calculate returns the tax owed for the whole entry.
// Rounding happens on the per-unit tax, before multiplying by quantity.
func (c *taxCalculator) Calculate(entry entities.PurchaseEntry) decimal.Decimal {
	perUnit := decimal.Zero

	if !entry.TaxExempt {
		perUnit = perUnit.Add(entry.UnitPrice.Mul(BasicTaxRate))
	}
	if entry.Imported {
		perUnit = perUnit.Add(entry.UnitPrice.Mul(ImportDutyRate))
	}

	total := RoundUpToNearestNickel(perUnit).Mul(decimal.NewFromInt(int64(entry.Quantity)))

	return total.Round(2)
}

// RoundUpToNearestNickel rounds amount up to the next multiple of 0.05.
// Exact multiples are returned unchanged: 1.01 -> 1.05, 1.05 -> 1.05, 1.06 -> 1.10.
func RoundUpToNearestNickel(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(nickelsPerUnit).Ceil().Div(nickelsPerUnit)
}
