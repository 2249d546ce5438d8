package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
	"github.com/KaramelBytes/zillow-eda/internal/stats"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Report is a markdown-friendly description of a cleaned table.
type Report struct {
	Name  string
	Rows  int
	Cols  []ColumnSummary
	Notes []string
}

// ColumnSummary holds pandas-style describe statistics for one column.
type ColumnSummary struct {
	Name   string
	Kind   string // int|float
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe computes count, mean, std, min, quartiles and max for every used column.
func Describe(name string, t *dataset.Table) (*Report, error) {
	rep := &Report{Name: name, Rows: t.Len()}
	if t.Len() == 0 {
		for _, c := range dataset.Columns {
			rep.Cols = append(rep.Cols, ColumnSummary{Name: c})
		}
		rep.Notes = append(rep.Notes, "table is empty; no statistics computed")
		return rep, nil
	}
	df := dataframe.LoadStructs(t.Rows)
	if df.Err != nil {
		return nil, fmt.Errorf("load dataframe: %w", df.Err)
	}
	for _, c := range dataset.Columns {
		s := df.Col(c)
		if s.Err != nil {
			return nil, fmt.Errorf("column %s: %w", c, s.Err)
		}
		rep.Cols = append(rep.Cols, summarize(c, s))
	}
	if t.Len() == 1 {
		rep.Notes = append(rep.Notes, "single row; std is undefined")
	}
	return rep, nil
}

func summarize(name string, s series.Series) ColumnSummary {
	cs := ColumnSummary{
		Name:   name,
		Kind:   string(s.Type()),
		Mean:   s.Mean(),
		Std:    s.StdDev(),
		Min:    s.Min(),
		Max:    s.Max(),
	}
	// gota's Quantile is gonum's empirical rule; describe uses linear interpolation
	cs.Q1, cs.Median, cs.Q3 = stats.Quartiles(s.Float())
	for _, na := range s.IsNaN() {
		if !na {
			cs.Count++
		}
	}
	return cs
}

// Markdown renders the report in the dataset-summary layout.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		if c.Count == 0 {
			b.WriteString(fmt.Sprintf("- %s: (no values)\n", c.Name))
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %s (count %d) — mean %s, std %s, min %s, 25%% %s, 50%% %s, 75%% %s, max %s\n",
			c.Name, c.Kind, c.Count, num(c.Mean), num(c.Std), num(c.Min), num(c.Q1), num(c.Median), num(c.Q3), num(c.Max)))
	}
	if len(r.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range r.Notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func num(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.6g", f)
}
