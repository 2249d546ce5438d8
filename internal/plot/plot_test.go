package plot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
	"github.com/stretchr/testify/require"
)

func linearTable(n int) *dataset.Table {
	t := &dataset.Table{}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, dataset.Property{
			Index:      i,
			Bedrooms:   2 + i%3,
			Bathrooms:  1 + float64(i%2),
			SquareFeet: 1000 + 100*i,
			TaxValue:   50000 + 20000*i, // exactly linear in SquareFeet
			YearBuilt:  1950 + i,
			TaxAmount:  600 + 240*float64(i),
			FIPS:       []int{6037, 6059, 6111}[i%3],
		})
	}
	return t
}

func TestVariablePairsCornerLayout(t *testing.T) {
	f, err := VariablePairs(linearTable(12), DefaultPairOptions())
	require.NoError(t, err)
	k := len(dataset.Columns)
	require.Equal(t, PairPlot, f.Kind)
	require.Equal(t, k, f.GridRows)
	require.Len(t, f.Panels, k*(k+1)/2)
	require.NotEmpty(t, f.ID)

	diag := f.Panel(0, 0)
	require.NotNil(t, diag)
	require.Equal(t, "histogram", diag.Series[0].Type)
	total := 0
	for _, b := range diag.Series[0].Bins {
		total += b.Count
	}
	require.Equal(t, 12, total)

	require.Nil(t, f.Panel(0, 1), "upper triangle is omitted")
}

func TestVariablePairsRegressionLine(t *testing.T) {
	opt := DefaultPairOptions()
	opt.Columns = []string{dataset.SquareFeet, dataset.TaxValue}
	f, err := VariablePairs(linearTable(10), opt)
	require.NoError(t, err)

	p := f.Panel(1, 0)
	require.NotNil(t, p)
	require.Equal(t, dataset.SquareFeet, p.XLabel)
	require.Equal(t, dataset.TaxValue, p.YLabel)
	require.Len(t, p.Series, 2)
	fit := p.Series[1].Fit
	require.NotNil(t, fit)
	require.InDelta(t, 200.0, fit.Slope, 1e-6)
	require.InDelta(t, -150000.0, fit.Intercept, 1e-3)
	require.InDelta(t, 1.0, fit.R2, 1e-9)
}

func TestVariablePairsConstantColumnHasNoFit(t *testing.T) {
	opt := DefaultPairOptions()
	opt.Columns = []string{dataset.Bathrooms, dataset.TaxValue}
	tbl := linearTable(5)
	for i := range tbl.Rows {
		tbl.Rows[i].Bathrooms = 2
	}
	f, err := VariablePairs(tbl, opt)
	require.NoError(t, err)
	require.Len(t, f.Panel(1, 0).Series, 1)
	_, err = f.JSON()
	require.NoError(t, err)
}

func TestVariablePairsSample(t *testing.T) {
	opt := DefaultPairOptions()
	opt.SampleRows = 4
	a, err := VariablePairs(linearTable(30), opt)
	require.NoError(t, err)
	b, err := VariablePairs(linearTable(30), opt)
	require.NoError(t, err)
	require.Equal(t, 4, a.Rows)
	require.Equal(t, a.Panel(1, 0).Series[0].X, b.Panel(1, 0).Series[0].X)
}

func TestVariablePairsUnknownColumn(t *testing.T) {
	opt := DefaultPairOptions()
	opt.Columns = []string{dataset.TaxValue, "poolcnt"}
	_, err := VariablePairs(linearTable(3), opt)
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestCategoricalVsContinuous(t *testing.T) {
	f, err := CategoricalVsContinuous(linearTable(9), dataset.FIPS, dataset.TaxValue)
	require.NoError(t, err)
	require.Len(t, f.Panels, 3)
	require.Equal(t, "Boxplot", f.Panels[0].Title)
	require.Equal(t, "Violinplot", f.Panels[1].Title)
	require.Equal(t, "Barplot", f.Panels[2].Title)

	bars := f.Panels[2].Series
	require.Len(t, bars, 3)
	require.Equal(t, "6037", bars[0].Category)
	// 6037 rows: i = 0, 3, 6
	require.InDelta(t, 110000.0, bars[0].Bar.Mean, 1e-9)
	require.Equal(t, 3, bars[0].Bar.N)
	require.Less(t, bars[0].Bar.Low, bars[0].Bar.Mean)

	box := f.Panels[0].Series[0].Box
	require.InDelta(t, 110000.0, box.Median, 1e-9)
	require.InDelta(t, 80000.0, box.Q1, 1e-9)
	require.InDelta(t, 140000.0, box.Q3, 1e-9)
	require.Empty(t, box.Outliers)

	d := f.Panels[1].Series[0].Density
	require.NotNil(t, d)
	require.Len(t, d.X, kdeGrid)
}

func TestCategoricalVsContinuousUnknownColumn(t *testing.T) {
	_, err := CategoricalVsContinuous(linearTable(3), "county", dataset.TaxValue)
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestBoxStatsOutliers(t *testing.T) {
	b := boxStats([]float64{1, 2, 3, 4, 100})
	require.Equal(t, []float64{100}, b.Outliers)
	require.Equal(t, 1.0, b.WhiskerLow)
	require.Equal(t, 4.0, b.WhiskerHigh)
}

func TestWriteJSON(t *testing.T) {
	f, err := CategoricalVsContinuous(linearTable(4), dataset.Bedrooms, dataset.TaxAmount)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plots", "catcont.json")
	require.NoError(t, f.WriteJSON(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var back Figure
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, f.ID, back.ID)
	require.Equal(t, CategoricalContinuous, back.Kind)
}

func TestHistogramHalfOpenBinsCountMax(t *testing.T) {
	bins := histogram([]float64{4, 0, 3, 1, 2}, 2)
	require.Len(t, bins, 2)
	require.Equal(t, Bin{Lo: 0, Hi: 2, Count: 2}, bins[0])
	require.Equal(t, 2.0, bins[1].Lo)
	require.Equal(t, 4.0, bins[1].Hi)
	require.Equal(t, 3, bins[1].Count)

	require.Equal(t, []Bin{{Lo: 5, Hi: 5, Count: 3}}, histogram([]float64{5, 5, 5}, 4))
	require.Nil(t, histogram(nil, 4))
}

func TestBoxStatsLinearQuartiles(t *testing.T) {
	b := boxStats([]float64{4, 1, 3, 2})
	require.InDelta(t, 1.75, b.Q1, 1e-12)
	require.InDelta(t, 2.5, b.Median, 1e-12)
	require.InDelta(t, 3.25, b.Q3, 1e-12)
}
