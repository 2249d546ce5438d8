package plot

import (
	"math"
	"sort"

	"github.com/KaramelBytes/zillow-eda/internal/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LinearFit is an ordinary least squares line y = Intercept + Slope*x.
type LinearFit struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	R2        float64 `json:"r2"`
}

// BoxStats summarizes a distribution Tukey-style.
type BoxStats struct {
	Q1          float64   `json:"q1"`
	Median      float64   `json:"median"`
	Q3          float64   `json:"q3"`
	WhiskerLow  float64   `json:"whisker_low"`
	WhiskerHigh float64   `json:"whisker_high"`
	Outliers    []float64 `json:"outliers,omitempty"`
	N           int       `json:"n"`
}

// Density is a kernel density estimate evaluated on a grid.
type Density struct {
	Bandwidth float64   `json:"bandwidth"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
}

// BarStats is a mean with a 95% confidence interval.
type BarStats struct {
	Mean float64 `json:"mean"`
	Low  float64 `json:"ci_low"`
	High float64 `json:"ci_high"`
	N    int     `json:"n"`
}

const (
	whiskerIQR  = 1.5
	kdeGrid     = 50
	kdeCut      = 2.0
	z95         = 1.959963984540054
	defaultBins = 10
)

// fitLine regresses y on x. ok is false when x has no spread.
func fitLine(x, y []float64) (LinearFit, bool) {
	if len(x) < 2 {
		return LinearFit{}, false
	}
	if _, sd := stat.MeanStdDev(x, nil); sd == 0 || math.IsNaN(sd) {
		return LinearFit{}, false
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, alpha, beta)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		r2 = 0
	}
	return LinearFit{Intercept: alpha, Slope: beta, R2: r2}, true
}

func boxStats(vals []float64) *BoxStats {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	b := &BoxStats{
		Q1:     stats.Quantile(s, 0.25),
		Median: stats.Quantile(s, 0.5),
		Q3:     stats.Quantile(s, 0.75),
		N:      len(s),
	}
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-whiskerIQR*iqr, b.Q3+whiskerIQR*iqr
	b.WhiskerLow, b.WhiskerHigh = b.Q1, b.Q3
	for _, v := range s {
		if v < lo || v > hi {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		if v < b.WhiskerLow {
			b.WhiskerLow = v
		}
		if v > b.WhiskerHigh {
			b.WhiskerHigh = v
		}
	}
	return b
}

// kde evaluates a Gaussian kernel density with Scott's bandwidth. Returns nil
// for fewer than two points or zero spread.
func kde(vals []float64) *Density {
	n := float64(len(vals))
	if len(vals) < 2 {
		return nil
	}
	_, sd := stat.MeanStdDev(vals, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	bw := sd * math.Pow(n, -1.0/5)
	lo, hi := minMax(vals)
	lo -= kdeCut * bw
	hi += kdeCut * bw
	d := &Density{Bandwidth: bw, X: make([]float64, kdeGrid), Y: make([]float64, kdeGrid)}
	step := (hi - lo) / float64(kdeGrid-1)
	for i := 0; i < kdeGrid; i++ {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range vals {
			sum += distuv.UnitNormal.Prob((x - v) / bw)
		}
		d.X[i] = x
		d.Y[i] = sum / (n * bw)
	}
	return d
}

func barStats(vals []float64) *BarStats {
	b := &BarStats{N: len(vals)}
	if len(vals) == 0 {
		return b
	}
	if len(vals) == 1 {
		b.Mean, b.Low, b.High = vals[0], vals[0], vals[0]
		return b
	}
	mean, sd := stat.MeanStdDev(vals, nil)
	half := z95 * sd / math.Sqrt(float64(len(vals)))
	b.Mean, b.Low, b.High = mean, mean-half, mean+half
	return b
}

func histogram(vals []float64, bins int) []Bin {
	if len(vals) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = defaultBins
	}
	lo, hi := minMax(vals)
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(vals)}}
	}
	width := (hi - lo) / float64(bins)
	dividers := make([]float64, bins+1)
	for i := range dividers {
		dividers[i] = lo + float64(i)*width
	}
	// stat.Histogram bins are half-open; nudge the top edge so the max is counted
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	counts := stat.Histogram(nil, dividers, s, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: int(counts[i])}
	}
	out[bins-1].Hi = hi
	return out
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
