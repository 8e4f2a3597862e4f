// Package yaml provides YAML-based shopping list parsing, repository and receipt encoding.
package yaml

import (
	"errors"
	"fmt"
	"os"

	"github.com/ochairo/salestax/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlShoppingList represents the raw YAML structure of one list
type yamlShoppingList struct {
	Name  string   `yaml:"name"`
	Lines []string `yaml:"lines"`
}

// yamlDocument accepts either a single list at the top level or several under "lists"
type yamlDocument struct {
	Name  string             `yaml:"name"`
	Lines []string           `yaml:"lines"`
	Lists []yamlShoppingList `yaml:"lists"`
}

// ShoppingListParser parses YAML shopping list files
type ShoppingListParser struct{}

// NewShoppingListParser creates a new YAML parser
func NewShoppingListParser() *ShoppingListParser {
	return &ShoppingListParser{}
}

// ParseFile parses a YAML file into shopping lists, tagging each with its source path
func (p *ShoppingListParser) ParseFile(filePath string) ([]*entities.ShoppingList, error) {
	//nolint:gosec // G304: filePath is a shopping list path chosen by the user
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	lists, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	for _, list := range lists {
		list.Source = filePath
	}

	return lists, nil
}

// Parse parses YAML bytes into shopping lists, in document order
func (p *ShoppingListParser) Parse(data []byte) ([]*entities.ShoppingList, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	raw := doc.Lists
	if doc.Name != "" || len(doc.Lines) > 0 {
		if len(raw) > 0 {
			return nil, errors.New("use either a top-level list or 'lists', not both")
		}
		raw = []yamlShoppingList{{Name: doc.Name, Lines: doc.Lines}}
	}

	if len(raw) == 0 {
		return nil, errors.New("no shopping lists found")
	}

	lists := make([]*entities.ShoppingList, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, yl := range raw {
		if yl.Name == "" {
			return nil, fmt.Errorf("shopping list #%d must have a name", i+1)
		}
		if len(yl.Lines) == 0 {
			return nil, fmt.Errorf("shopping list %q must have at least one line", yl.Name)
		}
		if seen[yl.Name] {
			return nil, fmt.Errorf("duplicate shopping list name %q", yl.Name)
		}
		seen[yl.Name] = true

		lists = append(lists, &entities.ShoppingList{
			Name:  yl.Name,
			Lines: yl.Lines,
		})
	}

	return lists, nil
}
