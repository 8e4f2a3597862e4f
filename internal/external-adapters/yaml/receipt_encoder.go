package yaml

import (
	"fmt"
	"io"

	"github.com/ochairo/salestax/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlReceipt is the YAML form of a receipt. Amounts are fixed two-decimal strings.
type yamlReceipt struct {
	Name       string            `yaml:"name,omitempty"`
	Items      []yamlReceiptLine `yaml:"items"`
	SalesTaxes string            `yaml:"sales_taxes"`
	Total      string            `yaml:"total"`
}

type yamlReceiptLine struct {
	Quantity int    `yaml:"quantity"`
	Name     string `yaml:"name"`
	Amount   string `yaml:"amount"`
}

// EncodeReceipt writes a receipt as a YAML document, labelled with name when it is not empty
func EncodeReceipt(w io.Writer, name string, receipt entities.Receipt) error {
	doc := yamlReceipt{
		Name:       name,
		Items:      make([]yamlReceiptLine, 0, len(receipt.Lines)),
		SalesTaxes: receipt.SalesTaxes.StringFixed(2),
		Total:      receipt.Total.StringFixed(2),
	}

	for _, line := range receipt.Lines {
		doc.Items = append(doc.Items, yamlReceiptLine{
			Quantity: line.Quantity,
			Name:     line.Name,
			Amount:   line.Amount.StringFixed(2),
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}

	return encoder.Close()
}
