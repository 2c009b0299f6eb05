package google

import (
	"context"
	"testing"
)

func TestToStrings(t *testing.T) {
	got := toStrings([]interface{}{"Shell Dagoretti", 1250.5, nil, true})
	want := []string{"Shell Dagoretti", "1250.5", "", "true"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatalf("expected error without GOOGLE_SPREADSHEET_ID")
	}
}
