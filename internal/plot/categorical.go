package plot

import (
	"sort"
	"strconv"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
)

// CategoricalVsContinuous builds three side-by-side panels (box, violin and bar)
// showing how cont is distributed within each value of cat.
func CategoricalVsContinuous(t *dataset.Table, cat, cont string) (*Figure, error) {
	keys, err := t.Column(cat)
	if err != nil {
		return nil, err
	}
	vals, err := t.Column(cont)
	if err != nil {
		return nil, err
	}

	groups := map[float64][]float64{}
	for i, k := range keys {
		groups[k] = append(groups[k], vals[i])
	}
	order := make([]float64, 0, len(groups))
	for k := range groups {
		order = append(order, k)
	}
	sort.Float64s(order)

	box := Panel{Row: 0, Col: 0, Title: "Boxplot", XLabel: cat, YLabel: cont}
	violin := Panel{Row: 0, Col: 1, Title: "Violinplot", XLabel: cat, YLabel: cont}
	bar := Panel{Row: 0, Col: 2, Title: "Barplot", XLabel: cat, YLabel: cont}
	for _, k := range order {
		label := strconv.FormatFloat(k, 'f', -1, 64)
		g := groups[k]
		box.Series = append(box.Series, Series{Name: label, Type: "box", Category: label, Box: boxStats(g)})
		violin.Series = append(violin.Series, Series{Name: label, Type: "violin", Category: label, Box: boxStats(g), Density: kde(g)})
		bar.Series = append(bar.Series, Series{Name: label, Type: "bar", Category: label, Bar: barStats(g)})
	}

	f := newFigure(CategoricalContinuous, cont+" by "+cat, t.Len())
	f.GridRows, f.GridCols = 1, 3
	f.Panels = []Panel{box, violin, bar}
	return f, nil
}
