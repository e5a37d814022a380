package rng

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Source is the only randomness the simulation consumes. Every draw is
// sequential, so a match seeded with the same value replays identically.
type Source interface {
	// Float64 returns a uniform draw in [0,1).
	Float64() float64
	// Uniform returns a uniform draw in [min,max).
	Uniform(min, max float64) float64
	// Bernoulli returns true with probability p.
	Bernoulli(p float64) bool
}

// Rand is a Source backed by a single math/rand generator.
type Rand struct {
	r *rand.Rand
}

// New returns a Source seeded once with seed.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// NewFromClock seeds from the wall clock, for runs that do not need replay.
func NewFromClock() *Rand {
	return New(time.Now().UnixNano())
}

func (s *Rand) Float64() float64 {
	return s.r.Float64()
}

func (s *Rand) Uniform(min, max float64) float64 {
	return min + s.r.Float64()*(max-min)
}

// Bernoulli panics when p is not a probability: a clamp was skipped upstream.
func (s *Rand) Bernoulli(p float64) bool {
	if math.IsNaN(p) || p < 0 || p > 1 {
		panic(fmt.Sprintf("rng: bernoulli probability out of range: %v", p))
	}
	return s.r.Float64() < p
}

// Int63 exposes a raw draw, used to derive child seeds for batch runs.
func (s *Rand) Int63() int64 {
	return s.r.Int63()
}
