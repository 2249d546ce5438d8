package dataset

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/KaramelBytes/zillow-eda/internal/env"
	"github.com/KaramelBytes/zillow-eda/internal/source"
	"github.com/KaramelBytes/zillow-eda/internal/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const propertiesQuery = `SELECT bedroomcnt, bathroomcnt, calculatedfinishedsquarefeet, taxvaluedollarcnt, yearbuilt, taxamount, fips
FROM propertylandusetype
JOIN properties_2017 USING (propertylandusetypeid)
WHERE propertylandusedesc = ?`

// ErrNotInteger is returned when a whole-number column cannot be converted.
var ErrNotInteger = errors.New("value cannot be converted to integer")

// 2^63; float64 values at or beyond it do not fit in int
const maxIntFloat = float64(1 << 63)

// statusOutput receives the default status lines; swapped in tests.
var statusOutput zapcore.WriteSyncer = zapcore.Lock(os.Stderr)

// Origin records which path produced a raw table.
type Origin string

const (
	FromCache  Origin = "cache"
	FromRemote Origin = "remote"
)

// Options controls where the table is read from.
type Options struct {
	// CacheFile is read when present and written after a remote fetch.
	CacheFile string
	// Database is passed to URL to obtain the connection URL.
	Database string
	// Category filters the property-type description.
	Category string
	// URL resolves a database name to a connection URL. Only called on a cache miss.
	URL env.URLFunc
	// Logger receives the status lines; nil logs Info and above to stderr.
	Logger *zap.Logger
}

// DefaultOptions returns the fixed defaults for the single-family dataset.
func DefaultOptions() Options {
	return Options{
		CacheFile: "zillow.csv",
		Database:  "zillow",
		Category:  "Single Family Residential",
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.TimeKey = ""
		enc.CallerKey = ""
		return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), statusOutput, zapcore.InfoLevel))
	}
	return o.Logger
}

// Wrangle acquires the table (cache first, remote otherwise), drops incomplete rows
// and truncates the whole-number columns.
func Wrangle(ctx context.Context, opt Options) (*Table, error) {
	raw, _, err := Acquire(ctx, opt)
	if err != nil {
		return nil, err
	}
	return Prepare(raw)
}

// Acquire reads the cache file if it exists. Otherwise it queries the remote
// database and persists the result to the cache file.
func Acquire(ctx context.Context, opt Options) (RawTable, Origin, error) {
	log := opt.logger()
	ok, err := utils.FileExists(opt.CacheFile)
	if err != nil {
		return nil, "", fmt.Errorf("stat cache: %w", err)
	}
	if ok {
		log.Info("cache file found, reading from csv", zap.String("path", opt.CacheFile))
		f, err := os.Open(opt.CacheFile)
		if err != nil {
			return nil, "", fmt.Errorf("open cache: %w", err)
		}
		defer f.Close()
		raw, err := ReadCSV(f)
		if err != nil {
			return nil, "", fmt.Errorf("parse cache %s: %w", opt.CacheFile, err)
		}
		log.Debug("cache read", zap.Int("rows", len(raw)))
		return raw, FromCache, nil
	}

	log.Info("cache file missing, reading from sql and saving to csv",
		zap.String("path", opt.CacheFile), zap.String("database", opt.Database))
	if opt.URL == nil {
		return nil, "", errors.New("no cache file and no database url resolver configured")
	}
	dbURL, err := opt.URL(opt.Database)
	if err != nil {
		return nil, "", fmt.Errorf("resolve database url: %w", err)
	}
	db, err := source.Open(ctx, dbURL)
	if err != nil {
		return nil, "", err
	}
	defer db.Close()

	raw, err := FetchProperties(ctx, db, opt.Category)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, raw); err != nil {
		return nil, "", fmt.Errorf("encode cache: %w", err)
	}
	if err := utils.SafeWriteFile(opt.CacheFile, buf.Bytes()); err != nil {
		return nil, "", fmt.Errorf("write cache: %w", err)
	}
	log.Debug("cache written", zap.String("path", opt.CacheFile), zap.Int("rows", len(raw)))
	return raw, FromRemote, nil
}

// FetchProperties runs the property join for one category. Rows are labelled 0..n-1
// in result order.
func FetchProperties(ctx context.Context, db *sql.DB, category string) (RawTable, error) {
	rows, err := db.QueryContext(ctx, propertiesQuery, category)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var out RawTable
	for rows.Next() {
		r := RawRow{Index: len(out)}
		dest := make([]any, numColumns)
		for i := range r.Values {
			dest[i] = &r.Values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan property row %d: %w", r.Index, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return out, nil
}

// Prepare drops incomplete rows then casts the whole-number columns.
func Prepare(raw RawTable) (*Table, error) {
	return Cast(DropMissing(raw))
}

// DropMissing keeps only rows with every value present.
func DropMissing(raw RawTable) RawTable {
	out := make(RawTable, 0, len(raw))
	for _, r := range raw {
		if r.Complete() {
			out = append(out, r)
		}
	}
	return out
}

// Cast converts complete raw rows into properties, truncating the whole-number
// columns toward zero. Rows must be complete. A whole-number column holding a
// non-finite or out-of-range value fails with ErrNotInteger.
func Cast(raw RawTable) (*Table, error) {
	t := &Table{Rows: make([]Property, 0, len(raw))}
	for _, r := range raw {
		var ints [numColumns]int
		for _, c := range []int{colBedrooms, colSquareFeet, colTaxValue, colYearBuilt, colFIPS} {
			f := r.Values[c].Float64
			if math.IsNaN(f) || f >= maxIntFloat || f < -maxIntFloat {
				return nil, fmt.Errorf("%w: row %d column %s value %v", ErrNotInteger, r.Index, Columns[c], f)
			}
			ints[c] = int(f)
		}
		t.Rows = append(t.Rows, Property{
			Index:      r.Index,
			Bedrooms:   ints[colBedrooms],
			Bathrooms:  r.Values[colBathrooms].Float64,
			SquareFeet: ints[colSquareFeet],
			TaxValue:   ints[colTaxValue],
			YearBuilt:  ints[colYearBuilt],
			TaxAmount:  r.Values[colTaxAmount].Float64,
			FIPS:       ints[colFIPS],
		})
	}
	return t, nil
}
