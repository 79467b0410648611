package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Bins is an ordered edge list. Bin i covers [Edges[i], Edges[i+1]) and the
// last bin is unbounded above.
type Bins struct {
	Edges  []float64
	Labels []string
}

// NewBins builds labelled bins from ascending edges
func NewBins(edges []float64, format func(float64) string) Bins {
	labels := make([]string, len(edges))
	for i, lo := range edges {
		hi := "inf"
		if i+1 < len(edges) {
			hi = format(edges[i+1])
		}
		labels[i] = fmt.Sprintf("[%s, %s)", format(lo), hi)
	}
	return Bins{Edges: edges, Labels: labels}
}

// Index returns the bin holding v, or -1 when v is below the first edge or not finite
func (b Bins) Index(v float64) int {
	if len(b.Edges) == 0 || math.IsNaN(v) || math.IsInf(v, 0) || v < b.Edges[0] {
		return -1
	}
	return sort.Search(len(b.Edges), func(i int) bool { return b.Edges[i] > v }) - 1
}

// Len returns the number of bins
func (b Bins) Len() int {
	return len(b.Edges)
}

func plainLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dollarLabel(v float64) string {
	if v == 0 {
		return "$0"
	}
	return fmt.Sprintf("$%gk", v/1000)
}
