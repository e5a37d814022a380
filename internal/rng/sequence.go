package rng

import (
	"fmt"
	"math"
)

// Sequence replays a fixed list of [0,1) draws, cycling when exhausted.
// Tests use it to force specific branches of the engine.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a Sequence over values. An empty list always draws 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Constant returns a Sequence that always draws v.
func Constant(v float64) *Sequence {
	return NewSequence(v)
}

func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *Sequence) Uniform(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

func (s *Sequence) Bernoulli(p float64) bool {
	if math.IsNaN(p) || p < 0 || p > 1 {
		panic(fmt.Sprintf("rng: bernoulli probability out of range: %v", p))
	}
	return s.Float64() < p
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
