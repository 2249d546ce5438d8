// Package dataset acquires and cleans the single-family property table.
package dataset

import (
	"database/sql"
	"fmt"
)

// Column names as they appear in the remote schema and the cache file.
const (
	Bedrooms   = "bedroomcnt"
	Bathrooms  = "bathroomcnt"
	SquareFeet = "calculatedfinishedsquarefeet"
	TaxValue   = "taxvaluedollarcnt"
	YearBuilt  = "yearbuilt"
	TaxAmount  = "taxamount"
	FIPS       = "fips"
)

// Columns lists the used columns in query order. RawRow.Values follows this order.
var Columns = []string{Bedrooms, Bathrooms, SquareFeet, TaxValue, YearBuilt, TaxAmount, FIPS}

// IntColumns are truncated to whole numbers after incomplete rows are dropped.
var IntColumns = []string{YearBuilt, Bedrooms, FIPS, TaxValue, SquareFeet}

// positions within RawRow.Values
const (
	colBedrooms = iota
	colBathrooms
	colSquareFeet
	colTaxValue
	colYearBuilt
	colTaxAmount
	colFIPS
	numColumns
)

// RawRow is a row as read from the cache file or the database, before cleaning.
type RawRow struct {
	Index  int
	Values [numColumns]sql.NullFloat64
}

// Complete reports whether no value in the row is missing.
func (r RawRow) Complete() bool {
	for _, v := range r.Values {
		if !v.Valid {
			return false
		}
	}
	return true
}

// RawTable is an ordered set of uncleaned rows.
type RawTable []RawRow

// Property is one cleaned row of the table.
type Property struct {
	Index      int     `dataframe:"-" json:"index"`
	Bedrooms   int     `dataframe:"bedroomcnt" json:"bedroomcnt"`
	Bathrooms  float64 `dataframe:"bathroomcnt" json:"bathroomcnt"`
	SquareFeet int     `dataframe:"calculatedfinishedsquarefeet" json:"calculatedfinishedsquarefeet"`
	TaxValue   int     `dataframe:"taxvaluedollarcnt" json:"taxvaluedollarcnt"`
	YearBuilt  int     `dataframe:"yearbuilt" json:"yearbuilt"`
	TaxAmount  float64 `dataframe:"taxamount" json:"taxamount"`
	FIPS       int     `dataframe:"fips" json:"fips"`
}

// Value returns the named column of p as a float64.
func (p Property) Value(column string) (float64, error) {
	switch column {
	case Bedrooms:
		return float64(p.Bedrooms), nil
	case Bathrooms:
		return p.Bathrooms, nil
	case SquareFeet:
		return float64(p.SquareFeet), nil
	case TaxValue:
		return float64(p.TaxValue), nil
	case YearBuilt:
		return float64(p.YearBuilt), nil
	case TaxAmount:
		return p.TaxAmount, nil
	case FIPS:
		return float64(p.FIPS), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

// Table is an ordered collection of cleaned properties.
type Table struct {
	Rows []Property
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Subset returns a new table holding the rows at the given positions, in that order.
func (t *Table) Subset(positions []int) *Table {
	out := &Table{Rows: make([]Property, 0, len(positions))}
	for _, p := range positions {
		out.Rows = append(out.Rows, t.Rows[p])
	}
	return out
}

// Indexes returns the row labels in order.
func (t *Table) Indexes() []int {
	idx := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		idx[i] = r.Index
	}
	return idx
}

// Column extracts a column by name as float64 values.
func (t *Table) Column(name string) ([]float64, error) {
	if _, err := (Property{}).Value(name); err != nil {
		return nil, err
	}
	vals := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		vals[i], _ = r.Value(name)
	}
	return vals, nil
}
