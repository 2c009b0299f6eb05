// Package ledger builds the enriched in-memory ledger from raw input rows.
//
// Error policy: an unparseable date aborts the whole run with row context; an
// unparseable amount is coerced to zero and the row is kept; a blank or
// unclassifiable location becomes ("Unknown", "Unknown"). The coercions are
// deliberate lossy defaults, not silent failures.
package ledger

import (
	"fmt"
	"log/slog"

	"matumizi/internal/cache"
	"matumizi/internal/core"
	"matumizi/internal/location"
	"matumizi/internal/source"
)

// parseCacheSize bounds the location-parse memo. Personal ledgers repeat the
// same handful of locations, so even a small cache removes most parses.
const parseCacheSize = 512

type locPair struct {
	merchant string
	area     string
}

// Build enriches raw rows into a Ledger in one synchronous pass.
func Build(rows []source.Row) (core.Ledger, error) {
	if len(rows) == 0 {
		return nil, core.ErrEmptyLedger
	}

	memo := cache.NewLRU[locPair](parseCacheSize, 0)
	out := make(core.Ledger, 0, len(rows))
	coerced := 0

	for i, row := range rows {
		date, err := core.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: date %q: %w", i+1, row.Date, err)
		}

		amount, wasCoerced := core.CoerceAmount(row.Amount)
		if wasCoerced {
			coerced++
		}

		pair, ok := memo.Get(row.Location)
		if !ok {
			m, a := location.Parse(row.Location)
			pair = locPair{merchant: m, area: a}
			memo.Set(row.Location, pair)
		}

		out = append(out, core.Transaction{
			Date:        date,
			Amount:      amount,
			LocationRaw: row.Location,
			Type:        row.Type,
			PaymentType: row.PaymentType,
			Merchant:    pair.merchant,
			Area:        pair.area,
			Month:       date.MonthLabel(),
		})
	}

	if coerced > 0 {
		slog.Warn("Coerced non-numeric amounts to zero", "rows", coerced)
	}
	return out, nil
}
