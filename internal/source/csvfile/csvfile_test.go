package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestReadRows(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"Date,Amount,Location,Type,Payment type",
		"2025-01-02,100,Shell Dagoretti,Transport,Mpesa",
		"2025-01-05,250.50,Home_Kikuyu Road,Food,Cash",
	}, "\n"))

	rows, err := New(path).ReadRows(context.Background())
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1].Location != "Home_Kikuyu Road" || rows[1].Amount != "250.50" {
		t.Fatalf("unexpected row: %+v", rows[1])
	}
}

func TestReadRowsMissingColumn(t *testing.T) {
	path := writeCSV(t, "Date,Amount,Type\n2025-01-02,100,Food\n")
	_, err := New(path).ReadRows(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "Location") {
		t.Fatalf("error %q should name the missing column", err)
	}
}

func TestReadRowsMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.csv")).ReadRows(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
