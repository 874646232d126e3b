// Package money handles parsing and formatting of monetary amounts and
// percentage rates. Lease records store these as free-form strings; parsing
// goes through shopspring/decimal so malformed input fails loudly instead of
// silently coercing to zero.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary amount string such as "120000" or "9,500.25".
// An empty string is an error; callers that allow a zero default must opt in
// via ParseAmountOrZero.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("amount is required")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// ParseAmountOrZero parses a monetary amount string, treating an empty string
// as zero. Used for fields with an explicit zero default, e.g. an absent
// market-review override.
func ParseAmountOrZero(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return ParseAmount(s)
}

// ParseRate parses a percentage rate string such as "6" or "3.25" (meaning
// 6% and 3.25%).
func ParseRate(s string) (float64, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(s), "%")
	if cleaned == "" {
		return 0, fmt.Errorf("rate is required")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// FormatAmount renders a monetary value with exactly two decimal places,
// without grouping separators. Used for CSV output and JSON round-tripping.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatRate renders a percentage rate without trailing zeros, the inverse
// of ParseRate for the store's string-typed rate fields.
func FormatRate(v float64) string {
	return decimal.NewFromFloat(v).String()
}
