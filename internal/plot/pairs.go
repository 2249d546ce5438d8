package plot

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
	"github.com/KaramelBytes/zillow-eda/internal/split"
)

// PairOptions controls VariablePairs.
type PairOptions struct {
	// Columns to cross; defaults to every used column.
	Columns []string
	// Bins for the diagonal histograms.
	Bins int
	// SampleRows caps the plotted rows; 0 plots all of them.
	SampleRows int
	// Seed picks the sample.
	Seed int64
}

// DefaultPairOptions returns options that plot all columns and rows.
func DefaultPairOptions() PairOptions {
	return PairOptions{Columns: dataset.Columns, Bins: defaultBins, Seed: split.DefaultSeed}
}

// VariablePairs builds a lower-triangle pair plot. Off-diagonal panels hold a
// scatter of column j (x) against column i (y) with a least-squares line;
// diagonal panels hold a histogram.
func VariablePairs(t *dataset.Table, opt PairOptions) (*Figure, error) {
	cols := opt.Columns
	if len(cols) == 0 {
		cols = dataset.Columns
	}
	if len(cols) < 2 {
		return nil, errors.New("pair plot needs at least two columns")
	}
	t = sample(t, opt.SampleRows, opt.Seed)

	data := make([][]float64, len(cols))
	for i, c := range cols {
		v, err := t.Column(c)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}

	f := newFigure(PairPlot, "Variable pairs", t.Len())
	f.GridRows, f.GridCols = len(cols), len(cols)
	for i := range cols {
		for j := 0; j <= i; j++ {
			p := Panel{Row: i, Col: j, XLabel: cols[j], YLabel: cols[i]}
			if i == j {
				p.YLabel = "count"
				p.Series = []Series{{Name: cols[i], Type: "histogram", Bins: histogram(data[i], opt.Bins)}}
				f.Panels = append(f.Panels, p)
				continue
			}
			p.Series = []Series{{Name: cols[i] + " ~ " + cols[j], Type: "scatter", X: data[j], Y: data[i]}}
			if fit, ok := fitLine(data[j], data[i]); ok {
				lo, hi := minMax(data[j])
				p.Series = append(p.Series, Series{
					Name: "fit",
					Type: "line",
					X:    []float64{lo, hi},
					Y:    []float64{fit.Intercept + fit.Slope*lo, fit.Intercept + fit.Slope*hi},
					Fit:  &fit,
				})
			}
			f.Panels = append(f.Panels, p)
		}
	}
	return f, nil
}

// sample returns at most n rows chosen by a seeded shuffle, kept in table order.
func sample(t *dataset.Table, n int, seed int64) *dataset.Table {
	if n <= 0 || n >= t.Len() {
		return t
	}
	pos := rand.New(rand.NewSource(seed)).Perm(t.Len())[:n]
	sort.Ints(pos)
	return t.Subset(pos)
}
