package aggregate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/smartcity/prizedash/internal/domain"
)

// Reducer collapses the values that fall into one cell
type Reducer int

const (
	Count Reducer = iota
	Sum
	Mean
)

// Grouping describes one axis x series aggregation over rows of type R.
// Key returns the cell of a row; rows with ok == false or an out of range
// cell are dropped. Value defaults to 1 when nil.
type Grouping[R any] struct {
	Axis   []string
	Series []string
	Key    func(R) (axis, series int, ok bool)
	Value  func(R) float64
	Reduce Reducer
}

// Group reduces rows into the full axis x series skeleton. Cells that
// receive no rows are 0.
func Group[R any](rows []R, g Grouping[R]) [][]float64 {
	cells := make([][][]float64, len(g.Axis))
	for a := range cells {
		cells[a] = make([][]float64, len(g.Series))
	}

	for _, r := range rows {
		a, s, ok := g.Key(r)
		if !ok || a < 0 || a >= len(g.Axis) || s < 0 || s >= len(g.Series) {
			continue
		}
		v := 1.0
		if g.Value != nil {
			v = g.Value(r)
		}
		cells[a][s] = append(cells[a][s], v)
	}

	out := make([][]float64, len(g.Axis))
	for a := range out {
		out[a] = make([]float64, len(g.Series))
		for s := range out[a] {
			out[a][s] = reduce(cells[a][s], g.Reduce)
		}
	}
	return out
}

func reduce(values []float64, r Reducer) float64 {
	if len(values) == 0 {
		return 0
	}
	switch r {
	case Sum:
		return floats.Sum(values)
	case Mean:
		return stat.Mean(values, nil)
	default:
		return float64(len(values))
	}
}

// positions maps labels to their index on an axis
func positions(labels []string) map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}

func lookup(m map[string]int, key string) int {
	if i, ok := m[key]; ok {
		return i
	}
	return -1
}

func seriesTable(title, axisLabel, valueLabel string, axis, series []string, colors []string, values [][]float64) domain.SeriesTable {
	return domain.SeriesTable{
		Title:      title,
		AxisLabel:  axisLabel,
		ValueLabel: valueLabel,
		Axis:       append([]string(nil), axis...),
		Series:     append([]string(nil), series...),
		Colors:     append([]string(nil), colors...),
		Values:     values,
	}
}

// categoryTable flattens a single-series grouping into labelled rows
func categoryTable(title, valueLabel string, labels, colors []string, values [][]float64) domain.CategoryTable {
	rows := make([]domain.CategoryValue, len(labels))
	for i, l := range labels {
		rows[i] = domain.CategoryValue{Label: l, Value: values[i][0], Color: colors[i%len(colors)]}
	}
	return domain.CategoryTable{Title: title, ValueLabel: valueLabel, Rows: rows}
}
