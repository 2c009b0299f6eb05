package source

import (
	"strings"
	"testing"
)

func TestColumnIndex(t *testing.T) {
	idx, err := ColumnIndex([]string{" Date ", "Amount", "Location", "Type", "Payment type", "Notes"})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if idx[ColDate] != 0 || idx[ColPayment] != 4 {
		t.Fatalf("unexpected index map: %v", idx)
	}
}

func TestColumnIndexMissing(t *testing.T) {
	_, err := ColumnIndex([]string{"Date", "Amount"})
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"Location", "Type", "Payment type"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not name missing column %q", err, want)
		}
	}
}

func TestFromTable(t *testing.T) {
	header := []string{"Type", "Date", "Amount", "Location", "Payment type"}
	records := [][]string{
		{"Food", "2025-01-02", "100", "Shell Dagoretti", "Mpesa"},
		{"Rent", "2025-01-03", "200"}, // short record
	}
	rows, err := FromTable(header, records)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Location != "Shell Dagoretti" || rows[0].Type != "Food" {
		t.Fatalf("column mapping wrong: %+v", rows[0])
	}
	if rows[1].Location != "" || rows[1].PaymentType != "" {
		t.Fatalf("short record not padded: %+v", rows[1])
	}
}
