// Package services defines interfaces for domain service contracts.
package services

import (
	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// TaxCalculator computes the tax owed for a whole purchase entry (already multiplied by quantity).
// Implementations must be stateless and never return a negative amount.
type TaxCalculator interface {
	Calculate(entry entities.PurchaseEntry) decimal.Decimal
}
