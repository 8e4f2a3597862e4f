package services

import (
	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/ochairo/salestax/internal/domain/interfaces/services"
	"github.com/shopspring/decimal"
)

// Basket is an ordered collection of purchase entries for one run.
// It is not safe for concurrent use; give each run its own Basket.
type Basket struct {
	items      []entities.PurchaseEntry
	calculator services.TaxCalculator
}

// NewBasket creates an empty basket. A nil calculator selects the default one.
func NewBasket(calculator services.TaxCalculator) *Basket {
	if calculator == nil {
		calculator = NewTaxCalculator()
	}

	return &Basket{calculator: calculator}
}

// AddItem appends an entry, preserving insertion order
func (b *Basket) AddItem(entry entities.PurchaseEntry) {
	b.items = append(b.items, entry)
}

// Items returns a copy of the entries in insertion order
func (b *Basket) Items() []entities.PurchaseEntry {
	items := make([]entities.PurchaseEntry, len(b.items))
	copy(items, b.items)
	return items
}

// Len returns the number of entries in the basket
func (b *Basket) Len() int {
	return len(b.items)
}

// TotalTax sums the tax of every entry. It is recomputed on each call.
func (b *Basket) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.items {
		total = total.Add(b.calculator.Calculate(item))
	}
	return total
}

// TotalPrice sums the pre-tax price of every entry plus TotalTax
func (b *Basket) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.items {
		total = total.Add(item.TotalPrice())
	}
	return total.Add(b.TotalTax())
}
