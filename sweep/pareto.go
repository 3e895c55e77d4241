package sweep

import (
	"fmt"
	"sort"
)

// Direction declares whether a metric is minimized, maximized or excluded
// from frontier extraction.
type Direction int

const (
	// Minimize: lower values dominate.
	Minimize Direction = iota
	// Maximize: higher values dominate.
	Maximize
	// Neutral: the metric is not an objective unless explicitly selected
	// as a frontier axis; when selected it is treated as maximized.
	Neutral
)

// ParseDirection parses a direction string from configuration.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "min":
		return Minimize, nil
	case "max":
		return Maximize, nil
	case "neutral":
		return Neutral, nil
	default:
		return Minimize, fmt.Errorf("unknown direction %q (want min, max or neutral)", s)
	}
}

// IsMinimized resolves the dominance sense of a direction when the metric is
// used as a frontier axis. Neutral metrics are maximized once selected.
func (d Direction) IsMinimized() bool {
	return d == Minimize
}

// DefaultDirections is the stock metric-direction table. Process-wide,
// read-only; experiment configs may override it per metric.
var DefaultDirections = map[string]Direction{
	MetricCost:      Minimize,
	MetricValidity:  Maximize,
	MetricDiversity: Neutral,
	MetricManifold:  Minimize,
	MetricDPP:       Minimize,
}

// ParetoFront extracts the non-dominated frontier from paired series,
// honoring the per-axis minimize/maximize sense. The output preserves
// ascending-x order and excludes every dominated point; ties on x keep the
// point with the better y, ties on both axes keep a single representative.
//
// This is the O(n log n) dominance sweep: sort by x, then one pass keeping
// only points that strictly improve y in the direction the x-sort already
// favors.
func ParetoFront(xs, ys []float64, minimizeX, minimizeY bool) ([]float64, []float64, error) {
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("pareto: %d x values but %d y values", len(xs), len(ys))
	}
	n := len(xs)
	if n == 0 {
		return nil, nil, nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// Sweep from the best x toward the worst (ascending when x is
	// minimized, descending otherwise); on an x tie the better y comes
	// first so the sweep keeps exactly one representative per x.
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if xs[i] != xs[j] {
			if minimizeX {
				return xs[i] < xs[j]
			}
			return xs[i] > xs[j]
		}
		if minimizeY {
			return ys[i] < ys[j]
		}
		return ys[i] > ys[j]
	})

	better := func(a, b float64) bool {
		if minimizeY {
			return a < b
		}
		return a > b
	}

	kept := make([]int, 0, n)
	for _, i := range idx {
		if len(kept) == 0 {
			kept = append(kept, i)
			continue
		}
		last := kept[len(kept)-1]
		if xs[i] == xs[last] {
			continue // worse-or-equal y at the same x: dominated or duplicate
		}
		if better(ys[i], ys[last]) {
			kept = append(kept, i)
		}
	}
	if !minimizeX {
		for a, b := 0, len(kept)-1; a < b; a, b = a+1, b-1 {
			kept[a], kept[b] = kept[b], kept[a]
		}
	}

	outX := make([]float64, len(kept))
	outY := make([]float64, len(kept))
	for i, k := range kept {
		outX[i] = xs[k]
		outY[i] = ys[k]
	}
	return outX, outY, nil
}
