package split

import (
	"testing"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func makeTable(n int) *dataset.Table {
	t := &dataset.Table{}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, dataset.Property{
			Index:      100 + i,
			Bedrooms:   i % 5,
			Bathrooms:  float64(i%4) + 0.5,
			SquareFeet: 1000 + 10*i,
			TaxValue:   200000 + 1000*i,
			YearBuilt:  1950 + i,
			TaxAmount:  2500.5 + float64(i),
			FIPS:       6037,
		})
	}
	return t
}

func TestSplitTenRows(t *testing.T) {
	res, err := Split(makeTable(10), DefaultSeed)
	require.NoError(t, err)
	train, validate, test := res.Sizes()
	require.Equal(t, 6, train)
	require.Equal(t, 2, validate)
	require.Equal(t, 2, test)
}

func TestSplitCompleteAndDisjoint(t *testing.T) {
	for _, n := range []int{3, 7, 10, 11, 97, 1000} {
		src := makeTable(n)
		res, err := Split(src, DefaultSeed)
		require.NoError(t, err, "n=%d", n)

		train, validate, test := res.Sizes()
		require.Equal(t, n, train+validate+test, "n=%d", n)

		seen := map[int]string{}
		for name, part := range map[string]*dataset.Table{"train": res.Train, "validate": res.Validate, "test": res.Test} {
			for _, idx := range part.Indexes() {
				prev, dup := seen[idx]
				require.False(t, dup, "n=%d: index %d in %s and %s", n, idx, prev, name)
				seen[idx] = name
			}
		}
		require.ElementsMatch(t, src.Indexes(), keys(seen))
	}
}

func TestSplitDeterministic(t *testing.T) {
	src := makeTable(50)
	a, err := Split(src, DefaultSeed)
	require.NoError(t, err)
	b, err := Split(src, DefaultSeed)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed gave different partitions (-a +b):\n%s", diff)
	}

	c, err := Split(src, 7)
	require.NoError(t, err)
	require.NotEqual(t, a.Train.Indexes(), c.Train.Indexes())
}

func TestSplitTooSmall(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		_, err := Split(makeTable(n), DefaultSeed)
		require.ErrorIs(t, err, ErrTooFewRows, "n=%d", n)
	}
}

func TestSizes(t *testing.T) {
	cases := []struct {
		n          int
		frac       float64
		kept, held int
	}{
		{10, 0.6, 6, 4},
		{4, 0.5, 2, 2},
		{5, 0.5, 2, 3},
		{11, 0.6, 6, 5},
		{100, 0.6, 60, 40},
	}
	for _, c := range cases {
		kept, held := Sizes(c.n, c.frac)
		require.Equal(t, c.kept, kept, "n=%d", c.n)
		require.Equal(t, c.held, held, "n=%d", c.n)
	}
}

func keys(m map[int]string) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
