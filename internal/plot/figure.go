// Package plot computes the data behind the exploratory charts and serializes it
// as JSON documents for an external renderer.
package plot

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/zillow-eda/internal/utils"
	"github.com/google/uuid"
)

// Kind names a figure layout.
type Kind string

const (
	PairPlot              Kind = "pair_plot"
	CategoricalContinuous Kind = "categorical_continuous"
)

// Figure is a grid of panels.
type Figure struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Rows      int       `json:"rows"` // table rows plotted
	GridRows  int       `json:"grid_rows"`
	GridCols  int       `json:"grid_cols"`
	Panels    []Panel   `json:"panels"`
}

// Panel is one axes cell of the figure.
type Panel struct {
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	Title  string   `json:"title,omitempty"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Series []Series `json:"series"`
}

// Series is a drawable layer. Which fields are set depends on Type:
// scatter and line use X/Y, histogram uses Bins, box/violin/bar use Category
// with Box, Density or Bar.
type Series struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	X        []float64  `json:"x,omitempty"`
	Y        []float64  `json:"y,omitempty"`
	Bins     []Bin      `json:"bins,omitempty"`
	Category string     `json:"category,omitempty"`
	Box      *BoxStats  `json:"box,omitempty"`
	Density  *Density   `json:"density,omitempty"`
	Bar      *BarStats  `json:"bar,omitempty"`
	Fit      *LinearFit `json:"fit,omitempty"`
}

// Bin is a histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

func newFigure(kind Kind, title string, rows int) *Figure {
	return &Figure{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Timestamp: time.Now().UTC(),
		Rows:      rows,
	}
}

// Panel returns the panel at grid position (row, col), or nil.
func (f *Figure) Panel(row, col int) *Panel {
	for i := range f.Panels {
		if f.Panels[i].Row == row && f.Panels[i].Col == col {
			return &f.Panels[i]
		}
	}
	return nil
}

// JSON encodes the figure as indented JSON.
func (f *Figure) JSON() ([]byte, error) {
	return utils.PrettyJSON(f)
}

// WriteJSON writes the figure to path atomically.
func (f *Figure) WriteJSON(path string) error {
	b, err := f.JSON()
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	return nil
}
