// Package core holds the transaction domain model shared by the ledger,
// aggregation and summary packages.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a signed monetary value. Decimals keep grouping sums exact;
// values are converted to float64 only at the export boundary.
type Amount = decimal.Decimal

// CoerceAmount converts a raw amount cell to a decimal. Unparseable input
// yields zero with coerced=true: this is a documented lossy coercion, not an
// error, so a single bad cell never aborts a run. A second attempt strips
// thousands separators ("1,234.56") before giving up. A blank cell is treated
// as an ordinary zero, not a coercion.
func CoerceAmount(s string) (amount Amount, coerced bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, false
	}
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "")); err == nil {
		return d, false
	}
	return decimal.Zero, true
}
