// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/salestax/internal/domain/entities"
)

// ShoppingListRepository defines the interface for accessing stored shopping lists
type ShoppingListRepository interface {
	// GetShoppingList retrieves a shopping list by name
	GetShoppingList(ctx context.Context, name string) (*entities.ShoppingList, error)

	// ListShoppingLists returns all available shopping lists
	ListShoppingLists(ctx context.Context) ([]*entities.ShoppingList, error)
}
