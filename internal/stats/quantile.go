// Package stats holds small numeric helpers shared by the summary and plot code.
package stats

import (
	"math"
	"sort"
)

// Quantile interpolates linearly between the closest ranks of sorted data
// (numpy/pandas "linear" rule). gonum's stat.Quantile only offers the
// empirical and LinearInterp CDF rules, which give different quartiles.
// Returns NaN for empty input.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// Quartiles sorts a copy of vals and returns the 25th, 50th and 75th percentiles.
func Quartiles(vals []float64) (q1, median, q3 float64) {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	return Quantile(s, 0.25), Quantile(s, 0.5), Quantile(s, 0.75)
}
