package yaml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/ochairo/salestax/internal/domain/interfaces"
)

// ErrShoppingListNotFound is returned when no file in the directory defines the requested list
var ErrShoppingListNotFound = errors.New("shopping list not found")

// ShoppingListRepository implements repositories.ShoppingListRepository using YAML files
type ShoppingListRepository struct {
	listsDir string
	parser   *ShoppingListParser
	logger   interfaces.Logger
}

// NewShoppingListRepository creates a new YAML-based shopping list repository
func NewShoppingListRepository(listsDir string, logger interfaces.Logger) *ShoppingListRepository {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ShoppingListRepository{
		listsDir: listsDir,
		parser:   NewShoppingListParser(),
		logger:   logger,
	}
}

// GetShoppingList retrieves a shopping list by name
func (r *ShoppingListRepository) GetShoppingList(ctx context.Context, name string) (*entities.ShoppingList, error) {
	lists, err := r.ListShoppingLists(ctx)
	if err != nil {
		return nil, err
	}

	for _, list := range lists {
		if list.Name == name {
			return list, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrShoppingListNotFound, name)
}

// ListShoppingLists returns all lists, ordered by file name then document order.
// Files that fail to parse are logged and skipped.
func (r *ShoppingListRepository) ListShoppingLists(ctx context.Context) ([]*entities.ShoppingList, error) {
	entries, err := os.ReadDir(r.listsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read shopping lists directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	lists := make([]*entities.ShoppingList, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parsed, err := r.parser.ParseFile(filepath.Join(r.listsDir, name))
		if err != nil {
			r.logger.Warn("skipping shopping list file", interfaces.F("file", name), interfaces.F("error", err))
			continue
		}

		lists = append(lists, parsed...)
	}

	return lists, nil
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}
