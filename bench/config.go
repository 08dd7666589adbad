// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"errors"
	"fmt"
	"math"

	"github.com/ajroetker/matbench/matmul"
)

var (
	// ErrInvalidConfig is returned by Config.Validate and wraps every
	// argument problem the driver can detect before running.
	ErrInvalidConfig = errors.New("bench: invalid config")

	// ErrMismatch is returned when verification finds that the sequential and
	// parallel products differ.
	ErrMismatch = errors.New("bench: sequential and parallel products differ")
)

// Config describes one benchmark run: A is M×N, B is N×K.
type Config struct {
	M, N, K      int
	Lower, Upper int64 // inclusive element range

	Seed    uint64
	HasSeed bool // when false, a fresh seed is drawn and reported in Result.Seed

	Workers   int // pool size; 0 selects GOMAXPROCS
	Strategy  matmul.Strategy
	StripRows int
	// TransposeB multiplies against a transposed copy of B on the parallel path.
	TransposeB bool

	// IncludeGeneration adds the construction and fill of the inputs to both
	// timed sections. By default only the multiplications are timed.
	IncludeGeneration bool

	Verify        bool // compare the two products element by element
	PrintMatrices bool // keep inputs and product in the Result for printing
}

// DefaultConfig returns the defaults of the command-line tool.
func DefaultConfig() Config {
	return Config{
		M: 3, N: 2, K: 2,
		Lower: 0, Upper: 10,
		StripRows: matmul.RowsPerStrip,
		Verify:    true,
	}
}

// Validate checks dimensions and the value range.
func (c Config) Validate() error {
	if c.M <= 0 || c.N <= 0 || c.K <= 0 {
		return fmt.Errorf("dimensions m=%d n=%d k=%d must be positive: %w", c.M, c.N, c.K, ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers=%d must not be negative: %w", c.Workers, ErrInvalidConfig)
	}
	if c.Lower > c.Upper {
		return fmt.Errorf("lower bound %d exceeds upper bound %d: %w", c.Lower, c.Upper, ErrInvalidConfig)
	}
	if c.Lower < math.MinInt32 || c.Upper > math.MaxInt32 {
		return fmt.Errorf("range [%d, %d] does not fit int32 elements: %w", c.Lower, c.Upper, ErrInvalidConfig)
	}
	return nil
}

// Tasks returns the number of output cells, M*K, which is the unit of work
// throughput and latency are measured in.
func (c Config) Tasks() int { return c.M * c.K }
