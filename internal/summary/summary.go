// Package summary assembles the exported run summary: KPIs plus every
// aggregation view, in the exact JSON shape downstream tooling consumes.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"matumizi/internal/aggregate"
	"matumizi/internal/core"
)

// Field names, list orderings and numeric JSON types are a compatibility
// contract with the companion slide-generation tooling. Do not rename.
type (
	Summary struct {
		Currency     string           `json:"currency"`
		DateRange    DateRange        `json:"date_range"`
		KPIs         KPIs             `json:"kpis"`
		ByType       []TypeShare      `json:"by_type"`
		ByPayment    []PaymentShare   `json:"by_payment"`
		TopMerchants []MerchantAmount `json:"top_merchants"`
		TopAreas     []AreaAmount     `json:"top_areas"`
		ByStation    []StationAmount  `json:"shell_by_station"`
		Monthly      []MonthAmount    `json:"monthly_totals"`
	}

	DateRange struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}

	KPIs struct {
		TotalSpend   float64     `json:"total_spend"`
		Transactions int         `json:"transactions"`
		AvgTxn       float64     `json:"avg_txn"`
		MedianTxn    float64     `json:"median_txn"`
		HighestMonth MonthAmount `json:"highest_month"`
		LowestMonth  MonthAmount `json:"lowest_month"`
	}

	MonthAmount struct {
		Month  string  `json:"month"`
		Amount float64 `json:"amount"`
	}

	TypeShare struct {
		Type     string  `json:"type"`
		Amount   float64 `json:"amount"`
		SharePct float64 `json:"share_pct"`
	}

	PaymentShare struct {
		PaymentType string  `json:"payment_type"`
		Amount      float64 `json:"amount"`
		SharePct    float64 `json:"share_pct"`
	}

	MerchantAmount struct {
		Merchant string  `json:"merchant"`
		Amount   float64 `json:"amount"`
	}

	AreaAmount struct {
		Area   string  `json:"area"`
		Amount float64 `json:"amount"`
	}

	StationAmount struct {
		Station string  `json:"station"`
		Amount  float64 `json:"amount"`
	}
)

// Options tune the summary without changing its shape.
type Options struct {
	Currency       string // e.g. "KES"
	DetailMerchant string // merchant broken out per area, e.g. "Shell"
	TopMerchants   int
	TopAreas       int
}

// Build assembles the Summary from an enriched, non-empty ledger. All
// aggregation passes are order-independent over the ledger; monetary values
// leave as plain numbers, formatting is the renderer's concern.
func Build(led core.Ledger, opts Options) Summary {
	total := aggregate.Total(led)
	monthly := aggregate.ByMonth(led)

	// Lists start non-nil so they marshal as [] rather than null when a
	// dimension is empty (e.g. no rows for the detail merchant).
	s := Summary{
		Currency:     opts.Currency,
		DateRange:    dateRange(led),
		KPIs:         kpis(led, total, monthly),
		ByType:       []TypeShare{},
		ByPayment:    []PaymentShare{},
		TopMerchants: []MerchantAmount{},
		TopAreas:     []AreaAmount{},
		ByStation:    []StationAmount{},
		Monthly:      []MonthAmount{},
	}

	for _, g := range aggregate.GroupBy(led, aggregate.ByType) {
		s.ByType = append(s.ByType, TypeShare{
			Type:     g.Key,
			Amount:   f64(g.Sum),
			SharePct: aggregate.Share(g.Sum, total),
		})
	}
	for _, g := range aggregate.GroupBy(led, aggregate.ByPayment) {
		s.ByPayment = append(s.ByPayment, PaymentShare{
			PaymentType: g.Key,
			Amount:      f64(g.Sum),
			SharePct:    aggregate.Share(g.Sum, total),
		})
	}
	for _, g := range aggregate.TopN(aggregate.GroupBy(led, aggregate.ByMerchant), opts.TopMerchants) {
		s.TopMerchants = append(s.TopMerchants, MerchantAmount{Merchant: g.Key, Amount: f64(g.Sum)})
	}
	for _, g := range aggregate.TopN(aggregate.GroupBy(led, aggregate.ByArea), opts.TopAreas) {
		s.TopAreas = append(s.TopAreas, AreaAmount{Area: g.Key, Amount: f64(g.Sum)})
	}

	detail := aggregate.Filter(led, func(tx core.Transaction) bool {
		return tx.Merchant == opts.DetailMerchant
	})
	for _, g := range aggregate.GroupBy(detail, aggregate.ByArea) {
		s.ByStation = append(s.ByStation, StationAmount{Station: g.Key, Amount: f64(g.Sum)})
	}

	for _, g := range monthly {
		s.Monthly = append(s.Monthly, MonthAmount{Month: g.Key, Amount: f64(g.Sum)})
	}
	return s
}

func dateRange(led core.Ledger) DateRange {
	min, max := led[0].Date, led[0].Date
	for _, tx := range led[1:] {
		if tx.Date.Before(min.Time) {
			min = tx.Date
		}
		if tx.Date.After(max.Time) {
			max = tx.Date
		}
	}
	return DateRange{Start: min.ISO(), End: max.ISO()}
}

func kpis(led core.Ledger, total core.Amount, monthly []aggregate.Group) KPIs {
	n := len(led)
	avg := total.Div(decimal.NewFromInt(int64(n)))

	k := KPIs{
		TotalSpend:   f64(total),
		Transactions: n,
		AvgTxn:       f64(avg),
		MedianTxn:    f64(median(led)),
	}

	// Highest month: first maximum scanning months chronologically.
	hi := monthly[0]
	for _, g := range monthly[1:] {
		if g.Sum.Cmp(hi.Sum) > 0 {
			hi = g
		}
	}
	// Lowest month: first minimum scanning in reverse chronological order.
	lo := monthly[len(monthly)-1]
	for i := len(monthly) - 2; i >= 0; i-- {
		if monthly[i].Sum.Cmp(lo.Sum) < 0 {
			lo = monthly[i]
		}
	}
	k.HighestMonth = MonthAmount{Month: hi.Key, Amount: f64(hi.Sum)}
	k.LowestMonth = MonthAmount{Month: lo.Key, Amount: f64(lo.Sum)}
	return k
}

func median(led core.Ledger) core.Amount {
	amounts := make([]core.Amount, len(led))
	for i, tx := range led {
		amounts[i] = tx.Amount
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].Cmp(amounts[j]) < 0 })
	mid := len(amounts) / 2
	if len(amounts)%2 == 1 {
		return amounts[mid]
	}
	return amounts[mid-1].Add(amounts[mid]).Div(decimal.NewFromInt(2))
}

func f64(d core.Amount) float64 {
	f, _ := d.Float64()
	return f
}
