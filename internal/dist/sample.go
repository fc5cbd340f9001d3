package dist

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// IntBetween draws uniformly from [lo, hi].
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// FloatBetween draws uniformly from [lo, hi).
func FloatBetween(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// MoneyBetween draws a 2-digit decimal uniformly from [lo, hi].
func MoneyBetween(r *rand.Rand, lo, hi decimal.Decimal) decimal.Decimal {
	loCents := lo.Shift(2).Round(0).IntPart()
	hiCents := hi.Shift(2).Round(0).IntPart()
	if hiCents <= loCents {
		return decimal.New(loCents, -2)
	}
	return decimal.New(loCents+r.Int63n(hiCents-loCents+1), -2)
}

// Bernoulli succeeds with probability p.
func Bernoulli(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// Jitter scales v by a uniform factor in [1-spread, 1+spread).
func Jitter(r *rand.Rand, v, spread float64) float64 {
	return v * FloatBetween(r, 1-spread, 1+spread)
}

// TimeBetween draws a timestamp uniformly from [from, to), at second resolution.
func TimeBetween(r *rand.Rand, from, to time.Time) time.Time {
	span := int64(to.Sub(from) / time.Second)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(r.Int63n(span)) * time.Second)
}

// DateBetween draws a calendar date uniformly from [from, to], both inclusive.
func DateBetween(r *rand.Rand, from, to time.Time) time.Time {
	from = truncateDay(from)
	to = truncateDay(to)
	days := int(math.Round(to.Sub(from).Hours() / 24))
	if days <= 0 {
		return from
	}
	return from.AddDate(0, 0, r.Intn(days+1))
}

// SampleIndices picks k distinct indices from [0, n) without replacement.
// k is clamped to n rather than failing on an undersized population.
func SampleIndices(r *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	// partial Fisher-Yates over a lazily materialized permutation
	swapped := make(map[int]int, k)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + r.Intn(n-i)
		vi, vj := at(i), at(j)
		swapped[i], swapped[j] = vj, vi
		out[i] = vj
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
