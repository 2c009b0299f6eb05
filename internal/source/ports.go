// Package source defines the inbound row port and the column contract every
// adapter must satisfy.
package source

import (
	"context"
	"fmt"
	"strings"
)

// Required column headers. Presence is a hard contract: a table missing any
// of them fails the run before any parsing happens.
const (
	ColDate     = "Date"
	ColAmount   = "Amount"
	ColLocation = "Location"
	ColType     = "Type"
	ColPayment  = "Payment type"
)

var RequiredColumns = []string{ColDate, ColAmount, ColLocation, ColType, ColPayment}

// Row is one raw ledger row, column values verbatim.
type Row struct {
	Date        string
	Amount      string
	Location    string
	Type        string
	PaymentType string
}

// RowReader is the inbound port implemented by the csvfile, google and
// memory adapters.
type RowReader interface {
	ReadRows(ctx context.Context) ([]Row, error)
}

// ColumnIndex maps required column names to their position in the header.
// Header cells are trimmed; extra columns are ignored. All missing columns
// are reported at once.
func ColumnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("input is missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// FromTable converts a header plus records into Rows, enforcing the column
// contract. Short records are padded with empty cells so a trailing blank
// Location does not shift columns.
func FromTable(header []string, records [][]string) ([]Row, error) {
	idx, err := ColumnIndex(header)
	if err != nil {
		return nil, err
	}
	cell := func(rec []string, col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			Date:        cell(rec, ColDate),
			Amount:      cell(rec, ColAmount),
			Location:    cell(rec, ColLocation),
			Type:        cell(rec, ColType),
			PaymentType: cell(rec, ColPayment),
		})
	}
	return rows, nil
}
