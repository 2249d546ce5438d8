package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a required column is absent.
var ErrMissingColumn = errors.New("missing column")

// missing cell spellings accepted on read
var naValues = map[string]bool{
	"":     true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
}

// ReadCSV decodes a row-labelled CSV: the first column holds the row index, the
// remaining columns are located by header name. Extra columns are ignored.
func ReadCSV(r io.Reader) (RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			continue
		}
		pos[strings.TrimSpace(h)] = i
	}
	var cols [numColumns]int
	for i, name := range Columns {
		p, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[i] = p
	}

	var out RawTable
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(rec))
		}
		idx, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: row index: %w", line, err)
		}
		row := RawRow{Index: idx}
		for i, p := range cols {
			s := strings.TrimSpace(rec[p])
			if naValues[s] {
				continue
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %s: %w", line, Columns[i], err)
			}
			if math.IsNaN(f) {
				continue
			}
			row.Values[i].Float64 = f
			row.Values[i].Valid = true
		}
		out = append(out, row)
	}
	return out, nil
}

// WriteCSV encodes raw rows in the format ReadCSV accepts. Missing values become empty cells.
func WriteCSV(w io.Writer, rows RawTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{""}, Columns...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, numColumns+1)
	for _, r := range rows {
		rec[0] = strconv.Itoa(r.Index)
		for i, v := range r.Values {
			if v.Valid {
				rec[i+1] = strconv.FormatFloat(v.Float64, 'f', -1, 64)
			} else {
				rec[i+1] = ""
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV encodes the cleaned table with the same layout as the cache file.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{""}, Columns...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range t.Rows {
		rec := []string{
			strconv.Itoa(p.Index),
			strconv.Itoa(p.Bedrooms),
			strconv.FormatFloat(p.Bathrooms, 'f', -1, 64),
			strconv.Itoa(p.SquareFeet),
			strconv.Itoa(p.TaxValue),
			strconv.Itoa(p.YearBuilt),
			strconv.FormatFloat(p.TaxAmount, 'f', -1, 64),
			strconv.Itoa(p.FIPS),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", p.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
