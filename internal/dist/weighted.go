// Package dist holds the sampling primitives every generator draws from.
package dist

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var ErrEmptyTable = errors.New("weighted table has no positive weights")

// Choice pairs a value with its relative weight.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Table is an immutable weighted-choice table. Weights need not sum to one.
type Table[T any] struct {
	values []T
	cum    []float64
	total  float64
}

func NewTable[T any](choices ...Choice[T]) (*Table[T], error) {
	t := &Table[T]{}
	for _, c := range choices {
		if c.Weight < 0 {
			return nil, fmt.Errorf("negative weight %v", c.Weight)
		}
		if c.Weight == 0 {
			continue
		}
		t.total += c.Weight
		t.values = append(t.values, c.Value)
		t.cum = append(t.cum, t.total)
	}
	if len(t.values) == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// MustTable panics on an invalid table; for package-level fixed tables.
func MustTable[T any](choices ...Choice[T]) *Table[T] {
	t, err := NewTable(choices...)
	if err != nil {
		panic(err)
	}
	return t
}

// Uniform builds a table giving every value the same weight.
func Uniform[T any](values ...T) *Table[T] {
	choices := make([]Choice[T], len(values))
	for i, v := range values {
		choices[i] = Choice[T]{Value: v, Weight: 1}
	}
	return MustTable(choices...)
}

func (t *Table[T]) Pick(r *rand.Rand) T {
	x := r.Float64() * t.total
	i := sort.SearchFloat64s(t.cum, x)
	// SearchFloat64s returns the first index with cum >= x; x == cum[i] belongs to i+1.
	if i < len(t.cum) && t.cum[i] == x {
		i++
	}
	if i >= len(t.values) {
		i = len(t.values) - 1
	}
	return t.values[i]
}
