// Package orchestrators coordinates workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/ochairo/salestax/internal/domain/interfaces"
	"github.com/ochairo/salestax/internal/domain/interfaces/repositories"
	domainServices "github.com/ochairo/salestax/internal/domain/interfaces/services"
	"github.com/ochairo/salestax/internal/domain/services"
)

// LineParser turns one raw line into a purchase entry, or an error for unrecognized lines
type LineParser interface {
	Parse(line string) (entities.PurchaseEntry, error)
}

// CheckoutOrchestrator runs shopping lists through parsing, the basket and the receipt formatter
type CheckoutOrchestrator struct {
	parser     LineParser
	calculator domainServices.TaxCalculator
	formatter  *services.ReceiptFormatter
	lists      repositories.ShoppingListRepository
	logger     interfaces.Logger
}

// CheckoutOrchestratorConfig holds optional collaborators for the orchestrator
type CheckoutOrchestratorConfig struct {
	// Calculator defaults to the standard tax calculator
	Calculator domainServices.TaxCalculator
	// Lists is required only by CheckoutStored
	Lists      repositories.ShoppingListRepository
	Logger     interfaces.Logger
}

// CheckoutResult contains the outcome of one run
type CheckoutResult struct {
	Name    string
	Basket  *services.Basket
	Receipt entities.Receipt
	// Skipped holds the non-blank lines that were not recognized, in input order
	Skipped []string
}

// Text renders the receipt as text
func (r *CheckoutResult) Text() string {
	return services.RenderReceipt(r.Receipt)
}

// NewCheckoutOrchestrator creates a new checkout orchestrator
func NewCheckoutOrchestrator(parser LineParser, config CheckoutOrchestratorConfig) *CheckoutOrchestrator {
	calculator := config.Calculator
	if calculator == nil {
		calculator = services.NewTaxCalculator()
	}

	logger := config.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &CheckoutOrchestrator{
		parser:     parser,
		calculator: calculator,
		formatter:  services.NewReceiptFormatter(calculator),
		lists:      config.Lists,
		logger:     logger,
	}
}

// Checkout processes one shopping list in a fresh basket.
// Unrecognized lines are skipped and never fail the run; blank lines are ignored.
func (o *CheckoutOrchestrator) Checkout(ctx context.Context, list *entities.ShoppingList) (*CheckoutResult, error) {
	if list == nil {
		return nil, errors.New("shopping list is nil")
	}

	basket := services.NewBasket(o.calculator)
	result := &CheckoutResult{Name: list.Name, Basket: basket}

	for _, line := range list.Lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := o.parser.Parse(line)
		if err != nil {
			o.logger.Warn("skipping unrecognized line",
				interfaces.F("list", list.Name),
				interfaces.F("line", line),
			)
			result.Skipped = append(result.Skipped, line)
			continue
		}

		o.logger.Debug("added item",
			interfaces.F("list", list.Name),
			interfaces.F("name", entry.Name),
			interfaces.F("quantity", entry.Quantity),
			interfaces.F("imported", entry.Imported),
			interfaces.F("tax_exempt", entry.TaxExempt),
		)
		basket.AddItem(entry)
	}

	result.Receipt = o.formatter.Build(basket)

	o.logger.Info("checkout complete",
		interfaces.F("list", list.Name),
		interfaces.F("items", basket.Len()),
		interfaces.F("skipped", len(result.Skipped)),
		interfaces.F("sales_taxes", services.FormatAmount(result.Receipt.SalesTaxes)),
		interfaces.F("total", services.FormatAmount(result.Receipt.Total)),
	)

	return result, nil
}

// CheckoutAll processes each list independently, in order
func (o *CheckoutOrchestrator) CheckoutAll(ctx context.Context, lists []*entities.ShoppingList) ([]*CheckoutResult, error) {
	results := make([]*CheckoutResult, 0, len(lists))
	for _, list := range lists {
		result, err := o.Checkout(ctx, list)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// CheckoutStored loads a shopping list by name from the configured store and checks it out
func (o *CheckoutOrchestrator) CheckoutStored(ctx context.Context, name string) (*CheckoutResult, error) {
	if o.lists == nil {
		return nil, errors.New("no shopping list store configured")
	}

	list, err := o.lists.GetShoppingList(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading shopping list %q: %w", name, err)
	}

	return o.Checkout(ctx, list)
}
