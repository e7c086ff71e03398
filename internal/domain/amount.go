package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of decimal places kept for currency values
const CurrencyPlaces = 2

// RoundCurrency rounds a currency value to the nearest cent (half away from zero)
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// CurrencyFromFloat converts a user-entered float into a cent-rounded decimal.
// NaN and infinities are treated as zero.
func CurrencyFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return RoundCurrency(decimal.NewFromFloat(f))
}

// RateFromFloat converts a user-entered percentage into a decimal without rounding.
// NaN and infinities are treated as zero.
func RateFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ParseAmount parses free-form numeric text such as "1,250.50" or "$300".
// Text that cannot be parsed yields zero rather than an error.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Float returns the float64 value of d for use in the affordability formulas
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
