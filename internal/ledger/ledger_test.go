package ledger

import (
	"strings"
	"testing"

	"matumizi/internal/source"
)

func row(date, amount, loc, typ, pay string) source.Row {
	return source.Row{Date: date, Amount: amount, Location: loc, Type: typ, PaymentType: pay}
}

func TestBuildEnriches(t *testing.T) {
	rows := []source.Row{
		row("2025-01-02", "100", "Shell Dagoretti", "Transport", "Mpesa"),
		row("2025-02-10", "250.50", "Home_Kikuyu Road", "Food", "Cash"),
		row("2025-02-11", "75", "", "Food", "Cash"),
	}
	led, err := Build(rows)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(led) != 3 {
		t.Fatalf("got %d transactions", len(led))
	}
	if led[0].Merchant != "Shell" || led[0].Area != "Dagoretti" || led[0].Month != "2025-01" {
		t.Fatalf("row 0 enrichment wrong: %+v", led[0])
	}
	if led[1].Merchant != "Home" || led[1].Area != "Kikuyu Road" {
		t.Fatalf("row 1 enrichment wrong: %+v", led[1])
	}
	if led[2].Merchant != "Unknown" || led[2].Area != "Unknown" {
		t.Fatalf("blank location must classify as Unknown: %+v", led[2])
	}
	if led[1].Amount.String() != "250.5" {
		t.Fatalf("amount = %s", led[1].Amount)
	}
}

func TestBuildBadDateIsFatal(t *testing.T) {
	rows := []source.Row{
		row("2025-01-02", "100", "Shell", "Transport", "Mpesa"),
		row("soon", "100", "Shell", "Transport", "Mpesa"),
	}
	_, err := Build(rows)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "row 2") || !strings.Contains(err.Error(), "soon") {
		t.Fatalf("error %q should identify the offending row and value", err)
	}
}

func TestBuildCoercesBadAmount(t *testing.T) {
	rows := []source.Row{row("2025-01-02", "pending", "Shell", "Transport", "Mpesa")}
	led, err := Build(rows)
	if err != nil {
		t.Fatalf("coercion must not fail the run: %v", err)
	}
	if !led[0].Amount.IsZero() {
		t.Fatalf("amount = %s, want 0", led[0].Amount)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestBuildMemoMatchesDirectParse(t *testing.T) {
	// Many rows sharing a location must classify identically to a fresh parse.
	rows := make([]source.Row, 0, 20)
	for i := 0; i < 20; i++ {
		rows = append(rows, row("2025-01-02", "10", "Junction Pizza Inn", "Food", "Card"))
	}
	led, err := Build(rows)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, tx := range led {
		if tx.Merchant != "Pizza Inn" || tx.Area != "Junction Mall" {
			t.Fatalf("memoized parse diverged: %+v", tx)
		}
	}
}
