package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/sync/errgroup"

	"matumizi/internal/aggregate"
	"matumizi/internal/summary"
)

// Chart file names keep the original numeric-prefix convention so downstream
// tooling can address them positionally.
const (
	ChartMonthly       = "01_monthly_spend.png"
	ChartByType        = "02_spend_by_type.png"
	ChartByPayment     = "03_payment_method.png"
	ChartTopMerchants  = "04_top_merchants.png"
	ChartTopAreas      = "05_top_areas.png"
	ChartAreaTypePivot = "06_area_type_heatmap.png"
)

// Renderer draws the chart set. A TTF font may be supplied for labels;
// without one gg falls back to its built-in basic face.
type Renderer struct {
	face font.Face
}

// NewRenderer loads the optional label font. An empty path is valid.
func NewRenderer(fontPath string) (*Renderer, error) {
	r := &Renderer{}
	if fontPath == "" {
		return r, nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	r.face = truetype.NewFace(f, &truetype.Options{Size: 13})
	return r, nil
}

// RenderAll draws every chart into dir. The charts are independent read-only
// views over the summary, so they render in parallel; the first failure
// cancels the rest.
func (r *Renderer) RenderAll(ctx context.Context, dir string, s summary.Summary, pivot aggregate.Pivot) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}

	g, _ := errgroup.WithContext(ctx)

	monthLabels, monthValues := monthSeries(s.Monthly)
	typeLabels, typeValues := shareSeries(s.ByType)
	payLabels, payValues := paymentSeries(s.ByPayment)
	merchLabels, merchValues := merchantSeries(s.TopMerchants)
	areaLabels, areaValues := areaSeries(s.TopAreas)

	paths := []string{
		filepath.Join(dir, ChartMonthly),
		filepath.Join(dir, ChartByType),
		filepath.Join(dir, ChartByPayment),
		filepath.Join(dir, ChartTopMerchants),
		filepath.Join(dir, ChartTopAreas),
		filepath.Join(dir, ChartAreaTypePivot),
	}

	g.Go(func() error {
		return r.lineChart(paths[0], "Monthly spend ("+s.Currency+")", monthLabels, monthValues)
	})
	g.Go(func() error {
		return r.barChart(paths[1], "Spend by category/type ("+s.Currency+")", typeLabels, typeValues)
	})
	g.Go(func() error {
		return r.barChart(paths[2], "Spend by payment method ("+s.Currency+")", payLabels, payValues)
	})
	g.Go(func() error {
		return r.hbarChart(paths[3], "Top merchants by spend ("+s.Currency+")", merchLabels, merchValues)
	})
	g.Go(func() error {
		return r.hbarChart(paths[4], "Top locations/areas by spend ("+s.Currency+")", areaLabels, areaValues)
	})
	g.Go(func() error {
		return r.heatmap(paths[5], "Spend mix by top areas vs type ("+s.Currency+")", pivot)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

const (
	chartW = 900
	chartH = 520

	marginLeft   = 90.0
	marginRight  = 30.0
	marginTop    = 60.0
	marginBottom = 80.0
)

func (r *Renderer) newContext(title string) *gg.Context {
	dc := gg.NewContext(chartW, chartH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if r.face != nil {
		dc.SetFontFace(r.face)
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(title, chartW/2, marginTop/2, 0.5, 0.5)
	return dc
}

func (r *Renderer) lineChart(path, title string, labels []string, values []float64) error {
	dc := r.newContext(title)
	plotW := chartW - marginLeft - marginRight
	plotH := chartH - marginTop - marginBottom
	max := maxOf(values)

	drawAxes(dc)
	dc.SetRGB(0.2, 0.4, 0.7)
	dc.SetLineWidth(2)
	n := len(values)
	for i := 0; i < n; i++ {
		x := marginLeft + plotW*pointPos(i, n)
		y := marginTop + plotH*(1-values[i]/max)
		if i > 0 {
			px := marginLeft + plotW*pointPos(i-1, n)
			py := marginTop + plotH*(1-values[i-1]/max)
			dc.DrawLine(px, py, x, y)
			dc.Stroke()
		}
		dc.DrawCircle(x, y, 4)
		dc.Fill()
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	for i, label := range labels {
		x := marginLeft + plotW*pointPos(i, n)
		dc.DrawStringAnchored(label, x, chartH-marginBottom+20, 0.5, 0.5)
	}
	return dc.SavePNG(path)
}

func (r *Renderer) barChart(path, title string, labels []string, values []float64) error {
	dc := r.newContext(title)
	plotW := chartW - marginLeft - marginRight
	plotH := chartH - marginTop - marginBottom
	max := maxOf(values)

	drawAxes(dc)
	n := len(values)
	slot := plotW / float64(maxInt(n, 1))
	barW := slot * 0.6
	for i := 0; i < n; i++ {
		h := plotH * values[i] / max
		x := marginLeft + slot*float64(i) + (slot-barW)/2
		y := marginTop + plotH - h
		dc.SetRGB(0.2, 0.4, 0.7)
		dc.DrawRectangle(x, y, barW, h)
		dc.Fill()
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(formatAmount(values[i]), x+barW/2, y-10, 0.5, 0.5)
		dc.DrawStringAnchored(labels[i], x+barW/2, chartH-marginBottom+20, 0.5, 0.5)
	}
	return dc.SavePNG(path)
}

func (r *Renderer) hbarChart(path, title string, labels []string, values []float64) error {
	dc := r.newContext(title)
	// Wider left margin so area/merchant names fit.
	left := marginLeft + 90
	plotW := chartW - left - marginRight
	plotH := chartH - marginTop - marginBottom
	max := maxOf(values)

	n := len(values)
	slot := plotH / float64(maxInt(n, 1))
	barH := slot * 0.6
	for i := 0; i < n; i++ {
		w := plotW * values[i] / max
		y := marginTop + slot*float64(i) + (slot-barH)/2
		dc.SetRGB(0.2, 0.4, 0.7)
		dc.DrawRectangle(left, y, w, barH)
		dc.Fill()
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(labels[i], left-8, y+barH/2, 1, 0.5)
		dc.DrawStringAnchored(formatAmount(values[i]), left+w+8, y+barH/2, 0, 0.5)
	}
	return dc.SavePNG(path)
}

func (r *Renderer) heatmap(path, title string, pivot aggregate.Pivot) error {
	dc := r.newContext(title)
	left := marginLeft + 90
	plotW := chartW - left - marginRight
	plotH := chartH - marginTop - marginBottom

	rows, cols := len(pivot.RowKeys), len(pivot.ColKeys)
	if rows == 0 || cols == 0 {
		return dc.SavePNG(path)
	}
	cellW := plotW / float64(cols)
	cellH := plotH / float64(rows)

	var max float64
	for i := range pivot.Cells {
		for j := range pivot.Cells[i] {
			if v, _ := pivot.Cells[i][j].Float64(); v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, _ := pivot.Cells[i][j].Float64()
			t := v / max
			x := left + cellW*float64(j)
			y := marginTop + cellH*float64(i)
			dc.SetRGB(1-0.8*t, 1-0.55*t, 1-0.2*t)
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Fill()
			if v > 0 {
				if t > 0.6 {
					dc.SetRGB(1, 1, 1)
				} else {
					dc.SetRGB(0.1, 0.1, 0.1)
				}
				dc.DrawStringAnchored(formatAmount(v), x+cellW/2, y+cellH/2, 0.5, 0.5)
			}
		}
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	for i, k := range pivot.RowKeys {
		dc.DrawStringAnchored(k, left-8, marginTop+cellH*(float64(i)+0.5), 1, 0.5)
	}
	for j, k := range pivot.ColKeys {
		dc.DrawStringAnchored(k, left+cellW*(float64(j)+0.5), chartH-marginBottom+20, 0.5, 0.5)
	}
	return dc.SavePNG(path)
}

func drawAxes(dc *gg.Context) {
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.SetLineWidth(1)
	dc.DrawLine(marginLeft, marginTop, marginLeft, chartH-marginBottom)
	dc.DrawLine(marginLeft, chartH-marginBottom, chartW-marginRight, chartH-marginBottom)
	dc.Stroke()
}

// pointPos spreads n points across [0,1]; a single point sits in the middle.
func pointPos(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

func maxOf(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func monthSeries(in []summary.MonthAmount) ([]string, []float64) {
	labels := make([]string, len(in))
	values := make([]float64, len(in))
	for i, m := range in {
		labels[i], values[i] = m.Month, m.Amount
	}
	return labels, values
}

func shareSeries(in []summary.TypeShare) ([]string, []float64) {
	labels := make([]string, len(in))
	values := make([]float64, len(in))
	for i, g := range in {
		labels[i], values[i] = g.Type, g.Amount
	}
	return labels, values
}

func paymentSeries(in []summary.PaymentShare) ([]string, []float64) {
	labels := make([]string, len(in))
	values := make([]float64, len(in))
	for i, g := range in {
		labels[i], values[i] = g.PaymentType, g.Amount
	}
	return labels, values
}

func merchantSeries(in []summary.MerchantAmount) ([]string, []float64) {
	labels := make([]string, len(in))
	values := make([]float64, len(in))
	for i, g := range in {
		labels[i], values[i] = g.Merchant, g.Amount
	}
	return labels, values
}

func areaSeries(in []summary.AreaAmount) ([]string, []float64) {
	labels := make([]string, len(in))
	values := make([]float64, len(in))
	for i, g := range in {
		labels[i], values[i] = g.Area, g.Amount
	}
	return labels, values
}
