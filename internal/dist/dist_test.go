package dist

import (
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableMatchesWeights(t *testing.T) {
	table := MustTable(
		Choice[string]{Value: "Completed", Weight: 0.85},
		Choice[string]{Value: "Cancelled", Weight: 0.08},
		Choice[string]{Value: "Refunded", Weight: 0.05},
		Choice[string]{Value: "Processing", Weight: 0.02},
	)
	r := rand.New(rand.NewSource(7))

	const draws = 200000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		counts[table.Pick(r)]++
	}

	want := map[string]float64{"Completed": 0.85, "Cancelled": 0.08, "Refunded": 0.05, "Processing": 0.02}
	for value, p := range want {
		got := float64(counts[value]) / draws
		assert.InDelta(t, p, got, 0.01, value)
	}
}

func TestTableSkipsZeroWeights(t *testing.T) {
	table := MustTable(
		Choice[int]{Value: 1, Weight: 0},
		Choice[int]{Value: 2, Weight: 3},
	)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		require.Equal(t, 2, table.Pick(r))
	}
}

func TestNewTableRejectsInvalid(t *testing.T) {
	_, err := NewTable[int]()
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = NewTable(Choice[int]{Value: 1, Weight: -1})
	assert.Error(t, err)

	_, err = NewTable(Choice[int]{Value: 1, Weight: 0})
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestTablePicksOnlyKnownValues(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every pick is a value with positive weight", prop.ForAll(
		func(weights []float64, seed int64) bool {
			choices := make([]Choice[int], len(weights))
			for i, w := range weights {
				choices[i] = Choice[int]{Value: i, Weight: w}
			}
			table, err := NewTable(choices...)
			if err != nil {
				return err == ErrEmptyTable
			}
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < 50; i++ {
				v := table.Pick(r)
				if v < 0 || v >= len(weights) || weights[v] <= 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0, 10)),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestSampleIndicesDistinctAndClamped(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("indices are distinct, in range and clamped to n", prop.ForAll(
		func(n, k int, seed int64) bool {
			r := rand.New(rand.NewSource(seed))
			got := SampleIndices(r, n, k)
			want := k
			if want > n {
				want = n
			}
			if len(got) != want {
				return false
			}
			seen := make(map[int]bool)
			for _, i := range got {
				if i < 0 || i >= n || seen[i] {
					return false
				}
				seen[i] = true
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 60),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestMoneyBetweenStaysInRangeWithTwoDigits(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	lo := decimal.RequireFromString("49.90")
	hi := decimal.RequireFromString("999.90")
	for i := 0; i < 5000; i++ {
		v := MoneyBetween(r, lo, hi)
		require.False(t, v.LessThan(lo))
		require.False(t, v.GreaterThan(hi))
		require.True(t, v.Equal(v.Round(2)))
	}
}

func TestDateBetweenInclusive(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	from := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 2, 0, 0, 0, time.UTC)

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		d := DateBetween(r, from, to)
		require.Equal(t, 0, d.Hour())
		seen[d.Day()] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}

func TestTimeBetweenHalfOpen(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	for i := 0; i < 2000; i++ {
		ts := TimeBetween(r, from, to)
		require.False(t, ts.Before(from))
		require.True(t, ts.Before(to))
	}
	assert.Equal(t, from, TimeBetween(r, from, from))
}

func TestJitterBounds(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for i := 0; i < 2000; i++ {
		v := Jitter(r, 100, 0.2)
		require.GreaterOrEqual(t, v, 80.0)
		require.Less(t, v, 120.0)
	}
}
