// Package render draws result tables as PNG charts.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/smartcity/prizedash/internal/domain"
)

const (
	width  = 1024
	height = 512
)

var background = chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}

// Table renders any result table as a PNG. Empty tables render an empty
// chart rather than failing.
func Table(table any, w io.Writer) error {
	var err error
	switch t := table.(type) {
	case domain.CategoryTable:
		err = categoryChart(t, w)
	case domain.PieChart:
		err = pieChart(t, w)
	case domain.SeriesTable:
		err = seriesChart(t, w)
	case domain.RouteSchedule:
		err = scheduleChart(t, w)
	case domain.FleetMixTable:
		err = fleetMixChart(t, w)
	case domain.FaresTable:
		err = faresChart(t, w)
	case domain.IncentivesTable:
		err = incentivesChart(t, w)
	default:
		return fmt.Errorf("render: unsupported table type %T", table)
	}
	if err != nil {
		return fmt.Errorf("render: failed to draw chart: %w", err)
	}
	return nil
}

func color(hex string) drawing.Color {
	if hex == "" {
		return chart.ColorAlternateGray
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func yRange(values ...float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo == 0 {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi * 1.1}
}

func barChart(title, valueLabel string, bars []chart.Value, w io.Writer) error {
	values := make([]float64, len(bars))
	for i, b := range bars {
		values[i] = b.Value
	}
	if len(bars) == 0 {
		bars = []chart.Value{{Label: "no rows", Value: 0}}
	}

	bc := chart.BarChart{
		Title:      title,
		Background: background,
		Width:      width,
		Height:     height,
		BarWidth:   max(8, (width-100)/len(bars)-8),
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Name:  valueLabel,
			Range: yRange(values...),
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

func categoryChart(t domain.CategoryTable, w io.Writer) error {
	bars := make([]chart.Value, len(t.Rows))
	for i, r := range t.Rows {
		bars[i] = chart.Value{
			Label: r.Label,
			Value: r.Value,
			Style: chart.Style{FillColor: color(r.Color), StrokeColor: color(r.Color)},
		}
	}
	return barChart(t.Title, t.ValueLabel, bars, w)
}

func pieChart(t domain.PieChart, w io.Writer) error {
	var values []chart.Value
	for _, wedge := range t.Wedges {
		if wedge.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: wedge.Label,
			Value: float64(wedge.Count),
			Style: chart.Style{FillColor: color(wedge.Color)},
		})
	}
	if len(values) == 0 {
		values = []chart.Value{{Label: "no trips", Value: 1, Style: chart.Style{FillColor: chart.ColorAlternateGray}}}
	}

	pc := chart.PieChart{
		Title:      t.Title,
		Background: background,
		Width:      height,
		Height:     height,
		Values:     values,
	}
	return pc.Render(chart.PNG, w)
}

// lineChart draws one line per series over a categorical x axis
func lineChart(title, xName, yName string, ticks []chart.Tick, series []chart.Series, ys []float64, xMax float64, w io.Writer) error {
	ch := chart.Chart{
		Title:      title,
		Background: background,
		Width:      width,
		Height:     height,
		XAxis: chart.XAxis{
			Name:  xName,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(xMax, 1)},
		},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: yRange(ys...),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func seriesChart(t domain.SeriesTable, w io.Writer) error {
	ticks := make([]chart.Tick, len(t.Axis))
	xs := make([]float64, len(t.Axis))
	for i, a := range t.Axis {
		ticks[i] = chart.Tick{Value: float64(i), Label: a}
		xs[i] = float64(i)
	}

	var all []float64
	series := make([]chart.Series, 0, len(t.Series))
	for s, name := range t.Series {
		ys := make([]float64, len(t.Axis))
		for a := range t.Axis {
			ys[a] = t.Values[a][s]
		}
		all = append(all, ys...)
		c := chart.ColorAlternateGray
		if s < len(t.Colors) {
			c = color(t.Colors[s])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: c, StrokeWidth: 2, DotColor: c, DotWidth: 3},
		})
	}
	if len(series) == 0 || len(xs) == 0 {
		return barChart(t.Title, t.ValueLabel, nil, w)
	}

	return lineChart(t.Title, t.AxisLabel, t.ValueLabel, ticks, series, all, float64(len(xs)-1), w)
}

func scheduleChart(t domain.RouteSchedule, w io.Writer) error {
	var all []float64
	series := make([]chart.Series, 0, len(t.Lines))
	for _, l := range t.Lines {
		if len(l.Xs) == 0 {
			continue
		}
		all = append(all, l.Ys...)
		c := color(l.Color)
		series = append(series, chart.ContinuousSeries{
			Name:    l.RouteID,
			XValues: l.Xs,
			YValues: l.Ys,
			Style:   chart.Style{StrokeColor: c, StrokeWidth: 2},
		})
	}
	if len(series) == 0 {
		return barChart(t.Title, "Headway [h]", nil, w)
	}

	ticks := make([]chart.Tick, 0, 13)
	for h := 0; h <= 24; h += 2 {
		ticks = append(ticks, chart.Tick{Value: float64(h), Label: fmt.Sprintf("%d", h)})
	}
	return lineChart(t.Title, "Hour", "Headway [h]", ticks, series, all, 24, w)
}

func fleetMixChart(t domain.FleetMixTable, w io.Writer) error {
	counts := make(map[string]int)
	var order []string
	for _, r := range t.Rows {
		if counts[r.VehicleType] == 0 {
			order = append(order, r.VehicleType)
		}
		counts[r.VehicleType]++
	}
	bars := make([]chart.Value, len(order))
	for i, vt := range order {
		bars[i] = chart.Value{Label: vt, Value: float64(counts[vt])}
	}
	return barChart(t.Title, "Routes", bars, w)
}

func faresChart(t domain.FaresTable, w io.Writer) error {
	bars := make([]chart.Value, len(t.Rows))
	for i, r := range t.Rows {
		bars[i] = chart.Value{Label: fmt.Sprintf("%s [%g, %g)", r.RouteID, r.MinAge, r.MaxAge), Value: r.Amount}
	}
	return barChart(t.Title, "Fare [$]", bars, w)
}

func incentivesChart(t domain.IncentivesTable, w io.Writer) error {
	bars := make([]chart.Value, len(t.Rows))
	for i, r := range t.Rows {
		bars[i] = chart.Value{Label: fmt.Sprintf("%s %g-%g", r.Mode, r.MinAge, r.MaxAge), Value: r.Amount}
	}
	return barChart(t.Title, "Incentive [$]", bars, w)
}
