package seeder

import (
	"math/rand"
	"time"

	"github.com/Rana718/ecomseed/internal/model"
)

// Context carries everything one generation run draws from: the seeded random
// source, the text provider, and a monotonically increasing ID counter per entity set.
// It replaces package-level random state so runs are reproducible.
type Context struct {
	Rand  *rand.Rand
	Faker *DataGenerator
	Seed  int64

	ids map[model.EntitySet]int64
}

// NewContext seeds a context. A zero seed picks one from the clock.
func NewContext(seed int64) *Context {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	return &Context{
		Rand:  r,
		Faker: NewDataGenerator(r),
		Seed:  seed,
		ids:   make(map[model.EntitySet]int64),
	}
}

// NextID returns the next ID for set, starting at 1.
func (c *Context) NextID(set model.EntitySet) int64 {
	c.ids[set]++
	return c.ids[set]
}

// StartAfter moves the counter for set so the next ID is max+1.
func (c *Context) StartAfter(set model.EntitySet, max int64) {
	if max > c.ids[set] {
		c.ids[set] = max
	}
}
