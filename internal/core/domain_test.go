package core

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in    string
		ok    bool
		month string
	}{
		{"2025-03-14", true, "2025-03"},
		{"14/03/2025", true, "2025-03"},
		{"2025-03-14 09:30:00", true, "2025-03"},
		{"03/14/2025 09:30:00", true, "2025-03"},
		{"not a date", false, ""},
		{"", false, ""},
		{"2025-13-40", false, ""},
	}
	for i, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d: expected ok, got %v", i, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("case %d: expected error for %q", i, tc.in)
			}
			continue
		}
		if got := d.MonthLabel(); got != tc.month {
			t.Fatalf("case %d: month %q, want %q", i, got, tc.month)
		}
	}
}

func TestParseDateDeterministic(t *testing.T) {
	a, err := ParseDate("2025-01-02")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, _ := ParseDate("2025-01-02")
	if !a.Equal(b.Time) {
		t.Fatalf("same input parsed to different dates: %v vs %v", a, b)
	}
	if a.ISO() != "2025-01-02" {
		t.Fatalf("ISO = %q", a.ISO())
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 1, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}
