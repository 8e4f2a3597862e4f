// Package text parses free-text purchase lines into purchase entries.
package text

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// ErrLineNotRecognized marks a line that does not match "<qty> <description> at <price>".
// It is a classification outcome, not a failure: callers skip such lines.
var ErrLineNotRecognized = errors.New("line not recognized")

// ImportedMarker is the literal word that flags an item as imported
const ImportedMarker = "imported"

// TaxExemptKeywords mark books, food and medical products
var TaxExemptKeywords = []string{"book", "chocolate", "pills"}

var (
	// non-greedy description, so the last " at <price>" through end of line is the delimiter
	lineRe     = regexp.MustCompile(`^(\d+)\s+(.+?)\s+at\s+([\d.]+)$`)
	importedRe = regexp.MustCompile(`\b` + ImportedMarker + `\s+`)
)

// LineParser turns raw purchase lines into entries
type LineParser struct{}

// NewLineParser creates a new line parser
func NewLineParser() *LineParser {
	return &LineParser{}
}

// Parse parses one line. Unrecognized lines yield an error wrapping ErrLineNotRecognized.
func (p *LineParser) Parse(line string) (entities.PurchaseEntry, error) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return entities.PurchaseEntry{}, fmt.Errorf("%w: %q", ErrLineNotRecognized, line)
	}

	quantity, err := strconv.Atoi(m[1])
	if err != nil {
		return entities.PurchaseEntry{}, fmt.Errorf("%w: quantity %q: %v", ErrLineNotRecognized, m[1], err)
	}

	unitPrice, err := decimal.NewFromString(m[3])
	if err != nil {
		return entities.PurchaseEntry{}, fmt.Errorf("%w: price %q: %v", ErrLineNotRecognized, m[3], err)
	}

	description := strings.TrimSpace(m[2])
	imported := IsImported(description)

	return entities.PurchaseEntry{
		Name:      normalizeName(description, imported),
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Imported:  imported,
		TaxExempt: IsTaxExempt(description),
	}, nil
}

// ParseLines parses every line in order, returning recognized entries and the skipped lines
func (p *LineParser) ParseLines(lines []string) ([]entities.PurchaseEntry, []string) {
	entries := make([]entities.PurchaseEntry, 0, len(lines))
	var skipped []string

	for _, line := range lines {
		entry, err := p.Parse(line)
		if err != nil {
			skipped = append(skipped, line)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, skipped
}

// IsImported reports whether the description contains the imported marker (plain substring match)
func IsImported(description string) bool {
	return strings.Contains(description, ImportedMarker)
}

// IsTaxExempt reports whether the description contains any exemption keyword.
// Matching is case-sensitive substring search, so "pills" also matches inside longer words.
func IsTaxExempt(description string) bool {
	for _, keyword := range TaxExemptKeywords {
		if strings.Contains(description, keyword) {
			return true
		}
	}
	return false
}

// normalizeName strips every "imported " and re-prefixes it once at the front
func normalizeName(description string, imported bool) string {
	name := strings.TrimSpace(importedRe.ReplaceAllString(description, ""))
	if imported {
		name = ImportedMarker + " " + name
	}
	return name
}
