package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"matumizi/internal/aggregate"
	"matumizi/internal/core"
	"matumizi/internal/summary"
)

func testLedger() core.Ledger {
	mk := func(date string, amount int64, typ, pay, merchant, area string) core.Transaction {
		d, _ := core.ParseDate(date)
		return core.Transaction{
			Date: d, Amount: decimal.NewFromInt(amount),
			Type: typ, PaymentType: pay, Merchant: merchant, Area: area,
			Month: d.MonthLabel(),
		}
	}
	return core.Ledger{
		mk("2025-01-03", 500, "Transport", "Card", "Shell", "Dagoretti"),
		mk("2025-01-10", 900, "Transport", "Card", "Shell", "Lavington"),
		mk("2025-02-01", 400, "Food", "Mpesa", "Naivas", "Kikuyu"),
		mk("2025-02-14", 1200, "Rent", "Bank", "Home", "Kikuyu Road"),
	}
}

func buildFixtures() (summary.Summary, []aggregate.Group, aggregate.Pivot) {
	led := testLedger()
	s := summary.Build(led, summary.Options{
		Currency: "KES", DetailMerchant: "Shell", TopMerchants: 10, TopAreas: 10,
	})
	areas := aggregate.TopN(aggregate.GroupBy(led, aggregate.ByArea), 8)
	rowKeys := make([]string, len(areas))
	for i, g := range areas {
		rowKeys[i] = g.Key
	}
	pivot := aggregate.PivotSum(led, rowKeys, aggregate.ByArea, aggregate.ByType)
	return s, areas, pivot
}

func TestRenderAll(t *testing.T) {
	s, _, pivot := buildFixtures()
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	dir := t.TempDir()
	paths, err := r.RenderAll(context.Background(), dir, s, pivot)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if len(paths) != 6 {
		t.Fatalf("got %d charts", len(paths))
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("chart %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("chart %s is empty", p)
		}
	}
}

func TestNewRendererBadFont(t *testing.T) {
	if _, err := NewRenderer(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatalf("expected error for missing font file")
	}
}

func TestComposeHTML(t *testing.T) {
	s, areas, _ := buildFixtures()
	data := NewData(s, areas, []string{
		ChartMonthly, ChartByType, ChartByPayment,
		ChartTopMerchants, ChartTopAreas, ChartAreaTypePivot,
	})
	path := filepath.Join(t.TempDir(), "report.html")
	if err := ComposeHTML(path, data); err != nil {
		t.Fatalf("ComposeHTML: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(raw)
	for _, want := range []string{
		"Monthly Spending Analysis (KES)",
		"2025-01-03", "2025-02-14", // date range
		ChartMonthly, ChartAreaTypePivot,
		"Lavington",   // station table
		"Kikuyu Road", // area table
		"Practical recommendations",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}

func TestNewDataCapsStations(t *testing.T) {
	s, areas, _ := buildFixtures()
	for i := 0; i < 10; i++ {
		s.ByStation = append(s.ByStation, summary.StationAmount{Station: "S", Amount: 1})
	}
	data := NewData(s, areas, nil)
	if len(data.Stations) != stationTableLimit {
		t.Fatalf("stations = %d, want %d", len(data.Stations), stationTableLimit)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567.8, "1,234,568"},
		{-4500, "-4,500"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Fatalf("formatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInsights(t *testing.T) {
	s, _, _ := buildFixtures()
	lines := insights(s)
	if len(lines) != 4 {
		t.Fatalf("got %d insight lines", len(lines))
	}
	if !strings.Contains(lines[0], "Transport") {
		t.Fatalf("top category insight = %q", lines[0])
	}
}
