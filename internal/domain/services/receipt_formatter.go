package services

import (
	"fmt"
	"strings"

	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/ochairo/salestax/internal/domain/interfaces/services"
	"github.com/shopspring/decimal"
)

// ReceiptFormatter turns a basket into a receipt. It holds no business rules of its own.
type ReceiptFormatter struct {
	calculator services.TaxCalculator
}

// NewReceiptFormatter creates a formatter. A nil calculator selects the default one.
func NewReceiptFormatter(calculator services.TaxCalculator) *ReceiptFormatter {
	if calculator == nil {
		calculator = NewTaxCalculator()
	}

	return &ReceiptFormatter{calculator: calculator}
}

// Build computes the structured receipt for the basket's current contents
func (f *ReceiptFormatter) Build(basket *Basket) entities.Receipt {
	items := basket.Items()

	receipt := entities.Receipt{
		Lines:      make([]entities.ReceiptLine, 0, len(items)),
		SalesTaxes: basket.TotalTax(),
		Total:      basket.TotalPrice(),
	}

	for _, item := range items {
		receipt.Lines = append(receipt.Lines, entities.ReceiptLine{
			Quantity: item.Quantity,
			Name:     item.Name,
			Amount:   item.TotalPrice().Add(f.calculator.Calculate(item)),
		})
	}

	return receipt
}

// Render formats the basket as receipt text, lines joined by "\n" with no trailing newline
func (f *ReceiptFormatter) Render(basket *Basket) string {
	return RenderReceipt(f.Build(basket))
}

// RenderReceipt formats an already built receipt as text
func RenderReceipt(receipt entities.Receipt) string {
	lines := make([]string, 0, len(receipt.Lines)+2)

	for _, line := range receipt.Lines {
		lines = append(lines, fmt.Sprintf("%d %s: %s", line.Quantity, line.Name, FormatAmount(line.Amount)))
	}

	lines = append(lines,
		"Sales Taxes: "+FormatAmount(receipt.SalesTaxes),
		"Total: "+FormatAmount(receipt.Total),
	)

	return strings.Join(lines, "\n")
}

// FormatAmount renders a monetary amount with exactly two decimal places
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
