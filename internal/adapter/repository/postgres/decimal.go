package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// numericColumn pairs a NUMERIC column scanned as text with its destination
type numericColumn struct {
	name string
	raw  string
	dst  *decimal.Decimal
}

// parseNumeric parses NUMERIC (DECIMAL) columns scanned as strings
func parseNumeric(columns ...*numericColumn) error {
	for _, c := range columns {
		d, err := decimal.NewFromString(c.raw)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", c.name, err)
		}
		*c.dst = d
	}
	return nil
}
