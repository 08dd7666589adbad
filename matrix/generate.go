// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Generator produces matrix element values, one per call.
// Implementations need not be safe for concurrent use: Fill drives them
// from a single goroutine.
type Generator[T Integers] interface {
	Next() T
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc[T Integers] func() T

// Next calls f.
func (f GeneratorFunc[T]) Next() T { return f() }

// pcgStream is the second PCG word. Fixed so that the seed alone determines
// the sequence.
const pcgStream = 0x9e3779b97f4a7c15

// Uniform draws integers uniformly from the inclusive range [lo, hi] using a
// seeded PCG source. Two Uniform values built with the same seed and range
// yield identical sequences.
type Uniform[T Integers] struct {
	rng  *rand.Rand
	lo   int64
	span uint64 // hi - lo, as an unsigned distance
}

// NewUniform returns a generator for [lo, hi] seeded with seed.
// Both bounds must be representable in T and lo must not exceed hi.
func NewUniform[T Integers](seed uint64, lo, hi int64) (*Uniform[T], error) {
	if lo > hi {
		return nil, fmt.Errorf("NewUniform: lo=%d > hi=%d: %w", lo, hi, ErrBadRange)
	}
	if !fits[T](lo) || !fits[T](hi) {
		return nil, fmt.Errorf("NewUniform: [%d, %d] does not fit %T: %w", lo, hi, T(0), ErrBadRange)
	}

	return &Uniform[T]{
		rng:  rand.New(rand.NewPCG(seed, pcgStream)),
		lo:   lo,
		span: uint64(hi) - uint64(lo),
	}, nil
}

// Next returns the next value of the sequence.
func (u *Uniform[T]) Next() T {
	var off uint64
	if u.span == math.MaxUint64 {
		off = u.rng.Uint64()
	} else {
		off = u.rng.Uint64N(u.span + 1)
	}
	return T(int64(uint64(u.lo) + off))
}

// fits reports whether v converts to T and back without loss or sign change.
func fits[T Integers](v int64) bool {
	t := T(v)
	return int64(t) == v && (t < 0) == (v < 0)
}
