// Package aggregate computes grouped sums and counts over the ledger.
//
// Every dimension orders groups by descending sum with first-seen order
// breaking ties; the month dimension alone orders by its YYYY-MM key so that
// monthly series read chronologically.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"matumizi/internal/core"
)

// Group is one aggregation bucket.
type Group struct {
	Key   string
	Sum   core.Amount
	Count int
}

// KeyFunc extracts the grouping key from a transaction.
type KeyFunc func(core.Transaction) string

func ByType(tx core.Transaction) string     { return tx.Type }
func ByPayment(tx core.Transaction) string  { return tx.PaymentType }
func ByMerchant(tx core.Transaction) string { return tx.Merchant }
func ByArea(tx core.Transaction) string     { return tx.Area }

// GroupBy sums amounts and counts rows per key, ordered by descending sum.
// The stable sort preserves first-seen group order on exact ties.
func GroupBy(txns core.Ledger, key KeyFunc) []Group {
	groups := collect(txns, key)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Sum.Cmp(groups[j].Sum) > 0
	})
	return groups
}

// ByMonth sums amounts per YYYY-MM label in ascending chronological order.
func ByMonth(txns core.Ledger) []Group {
	groups := collect(txns, func(tx core.Transaction) string { return tx.Month })
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func collect(txns core.Ledger, key KeyFunc) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, tx := range txns {
		k := key(tx)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Sum = groups[i].Sum.Add(tx.Amount)
		groups[i].Count++
	}
	return groups
}

// TopN returns the first n groups; fewer if the dimension is smaller.
func TopN(groups []Group, n int) []Group {
	if n > len(groups) {
		n = len(groups)
	}
	if n < 0 {
		n = 0
	}
	return groups[:n]
}

// Filter returns the transactions satisfying pred, in ledger order.
func Filter(txns core.Ledger, pred func(core.Transaction) bool) core.Ledger {
	var out core.Ledger
	for _, tx := range txns {
		if pred(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Total sums all amounts in the ledger.
func Total(txns core.Ledger) core.Amount {
	sum := decimal.Zero
	for _, tx := range txns {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// Share is a group's percentage of the grand total, rounded to one decimal.
// A zero total makes the share undefined; the chosen policy is to emit 0 for
// every group rather than divide by zero.
func Share(sum, total core.Amount) float64 {
	if total.IsZero() {
		return 0
	}
	f, _ := sum.Mul(decimal.NewFromInt(100)).Div(total).Round(1).Float64()
	return f
}

// Pivot is a two-dimensional sum table. Every (row, col) cell is present;
// combinations absent from the ledger hold zero.
type Pivot struct {
	RowKeys []string
	ColKeys []string
	Cells   [][]core.Amount // Cells[i][j] for RowKeys[i] x ColKeys[j]
}

// PivotSum cross-tabulates amounts for the given row keys only. Column keys
// are every colFn value seen in the ledger, sorted ascending.
func PivotSum(txns core.Ledger, rowKeys []string, rowFn, colFn KeyFunc) Pivot {
	rowIndex := make(map[string]int, len(rowKeys))
	for i, k := range rowKeys {
		rowIndex[k] = i
	}

	colSet := make(map[string]struct{})
	for _, tx := range txns {
		colSet[colFn(tx)] = struct{}{}
	}
	colKeys := make([]string, 0, len(colSet))
	for k := range colSet {
		colKeys = append(colKeys, k)
	}
	sort.Strings(colKeys)
	colIndex := make(map[string]int, len(colKeys))
	for j, k := range colKeys {
		colIndex[k] = j
	}

	cells := make([][]core.Amount, len(rowKeys))
	for i := range cells {
		cells[i] = make([]core.Amount, len(colKeys))
	}
	for _, tx := range txns {
		i, ok := rowIndex[rowFn(tx)]
		if !ok {
			continue
		}
		j := colIndex[colFn(tx)]
		cells[i][j] = cells[i][j].Add(tx.Amount)
	}
	return Pivot{RowKeys: append([]string(nil), rowKeys...), ColKeys: colKeys, Cells: cells}
}
