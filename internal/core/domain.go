package core

import (
	"errors"
	"time"
)

type (
	Date struct {
		time.Time
	}

	// Transaction is one enriched ledger row. The raw columns come from the
	// input as-is; Merchant, Area and Month are derived exactly once during
	// ledger construction and never change afterwards.
	Transaction struct {
		Date        Date
		Amount      Amount
		LocationRaw string
		Type        string
		PaymentType string

		Merchant string
		Area     string
		Month    string // YYYY-MM
	}

	// Ledger is the ordered sequence of enriched transactions for one run.
	// Order is input order; aggregation only uses it for tie-breaking.
	Ledger []Transaction
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrEmptyLedger = errors.New("ledger is empty")
)

// dateLayouts are the accepted input date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
}

// ParseDate parses an input date string against the accepted layouts.
// A date that matches none of them is a fatal input error for the run.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, ErrInvalidDate
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MonthLabel returns the YYYY-MM grouping key for the date.
func (d Date) MonthLabel() string {
	return d.Format("2006-01")
}

// ISO returns the YYYY-MM-DD form used in the exported date range.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}
