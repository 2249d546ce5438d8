// Package split partitions a table into train, validate and test subsets.
package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
)

// DefaultSeed is the fixed seed used by the CLI and analysis notebooks.
const DefaultSeed int64 = 123

const (
	trainFraction    = 0.6
	validateFraction = 0.5 // of the held-out remainder
)

// ErrTooFewRows is returned when a partition stage would leave one side empty.
var ErrTooFewRows = errors.New("too few rows to split")

// Result holds the three disjoint partitions.
type Result struct {
	Train    *dataset.Table
	Validate *dataset.Table
	Test     *dataset.Table
}

// Sizes returns the row counts of train, validate and test.
func (r Result) Sizes() (train, validate, test int) {
	return r.Train.Len(), r.Validate.Len(), r.Test.Len()
}

// Split partitions t roughly 60/20/20. The first stage separates train from a
// held-out remainder, the second halves the remainder into validate and test.
// Both stages shuffle with a fresh source seeded by seed, so the result is
// reproducible for a given input.
func Split(t *dataset.Table, seed int64) (Result, error) {
	train, rest, err := Partition(t, trainFraction, seed)
	if err != nil {
		return Result{}, fmt.Errorf("train split: %w", err)
	}
	validate, test, err := Partition(rest, validateFraction, seed)
	if err != nil {
		return Result{}, fmt.Errorf("validate/test split: %w", err)
	}
	return Result{Train: train, Validate: validate, Test: test}, nil
}

// Partition shuffles the rows of t and returns a kept part with floor(frac*n)
// rows and the held-out remainder. The held-out rows are taken from the front
// of the permutation.
func Partition(t *dataset.Table, frac float64, seed int64) (kept, held *dataset.Table, err error) {
	n := t.Len()
	nKept, nHeld := Sizes(n, frac)
	if nKept == 0 || nHeld == 0 {
		return nil, nil, fmt.Errorf("%w: n=%d gives %d/%d", ErrTooFewRows, n, nKept, nHeld)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	held = t.Subset(perm[:nHeld])
	kept = t.Subset(perm[nHeld : nHeld+nKept])
	return kept, held, nil
}

// Sizes returns floor(frac*n) and the remainder.
func Sizes(n int, frac float64) (kept, held int) {
	// small epsilon so that e.g. 0.6*10 does not floor to 5
	kept = int(math.Floor(frac*float64(n) + 1e-9))
	return kept, n - kept
}
