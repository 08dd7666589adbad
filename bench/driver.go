// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package bench times the sequential and parallel multipliers on the same
// seeded inputs and turns the timings into metrics.
//
// The driver performs no arithmetic of its own. It generates A and B from a
// single seeded stream, times matmul.Sequential, times matmul.Multiply up to
// and including Future.Get, and hands both durations to metrics.Compute.
package bench

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
	"github.com/ajroetker/matbench/metrics"
	"github.com/ajroetker/matbench/workerpool"
)

// Element is the matrix element type the driver benchmarks.
type Element = int32

// Result is the outcome of one Driver.Run.
type Result struct {
	Config Config
	Seed   uint64

	Threads        int
	Chunks         int           // row ranges the parallel product was split into
	GenerationTime time.Duration // time to build and fill both inputs once
	Verified       bool          // products were compared and matched

	Metrics metrics.Report

	// Set only when Config.PrintMatrices is true.
	A, B, Product *matrix.Dense[Element]
}

// Driver runs one benchmark configuration.
type Driver struct {
	cfg  Config
	pool *workerpool.Pool
	log  logrus.FieldLogger
	now  func() time.Time
	seed func() (uint64, error)
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithPool runs the parallel multiplier on an existing pool. The driver does
// not close it, and Config.Workers is ignored.
func WithPool(pool *workerpool.Pool) DriverOption {
	return func(d *Driver) { d.pool = pool }
}

// WithLogger sets the logger. Default logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) DriverOption {
	return func(d *Driver) { d.log = log }
}

// withClock replaces time.Now in tests.
func withClock(now func() time.Time) DriverOption {
	return func(d *Driver) { d.now = now }
}

// NewDriver returns a driver for cfg. The configuration is validated by Run.
func NewDriver(cfg Config, opts ...DriverOption) *Driver {
	d := &Driver{
		cfg:  cfg,
		log:  logrus.StandardLogger(),
		now:  time.Now,
		seed: randomSeed,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// randomSeed draws a seed from the operating system's entropy source.
func randomSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("bench: drawing seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// inputs builds A (M×N) and B (N×K) from one generator seeded with seed.
// A is filled first, then B, both in row-major order.
func (d *Driver) inputs(seed uint64) (a, b *matrix.Dense[Element], err error) {
	gen, err := matrix.NewUniform[Element](seed, d.cfg.Lower, d.cfg.Upper)
	if err != nil {
		return nil, nil, err
	}
	if a, err = matrix.New[Element](d.cfg.M, d.cfg.N); err != nil {
		return nil, nil, err
	}
	if b, err = matrix.New[Element](d.cfg.N, d.cfg.K); err != nil {
		return nil, nil, err
	}
	a.Fill(gen)
	b.Fill(gen)
	return a, b, nil
}

// Run executes the benchmark. ctx is checked between phases; a
// multiplication that has started always runs to completion.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	cfg := d.cfg
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	seed := cfg.Seed
	if !cfg.HasSeed {
		var err error
		if seed, err = d.seed(); err != nil {
			return Result{}, err
		}
	}
	log := d.log.WithFields(logrus.Fields{"m": cfg.M, "n": cfg.N, "k": cfg.K, "seed": seed})
	// Warn so the seed reaches stderr at the default level; CSV output
	// has no column for it.
	if !cfg.HasSeed {
		log.Warnf("Using seed: %d", seed)
	}

	pool := d.pool
	if pool == nil {
		pool = workerpool.New(cfg.Workers)
		defer pool.Close()
	}
	mul := matmul.NewMultiplier(pool,
		matmul.WithStrategy(cfg.Strategy),
		matmul.WithStripRows(cfg.StripRows),
		matmul.WithTransposedB(cfg.TransposeB))

	res := Result{Config: cfg, Seed: seed, Threads: mul.Threads()}

	start := d.now()
	a, b, err := d.inputs(seed)
	if err != nil {
		return Result{}, err
	}
	res.GenerationTime = d.now().Sub(start)
	log.WithField("elapsed", res.GenerationTime).Debug("generated inputs")

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Each timed section regenerates its own inputs when generation is
	// included; the seed makes them identical to a and b.
	start = d.now()
	sa, sb := a, b
	if cfg.IncludeGeneration {
		if sa, sb, err = d.inputs(seed); err != nil {
			return Result{}, err
		}
	}
	seqC, err := matmul.Sequential(sa, sb)
	if err != nil {
		return Result{}, err
	}
	seqTime := d.now().Sub(start)
	log.WithField("elapsed", seqTime).Debug("sequential multiply done")

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start = d.now()
	pa, pb := a, b
	if cfg.IncludeGeneration {
		if pa, pb, err = d.inputs(seed); err != nil {
			return Result{}, err
		}
	}
	fut, err := matmul.Multiply(mul, pa, pb)
	if err != nil {
		return Result{}, err
	}
	parC, err := fut.Get()
	if err != nil {
		return Result{}, fmt.Errorf("parallel multiply: %w", err)
	}
	parTime := d.now().Sub(start)
	res.Chunks = fut.Tasks()
	log.WithFields(logrus.Fields{
		"elapsed":  parTime,
		"threads":  res.Threads,
		"chunks":   res.Chunks,
		"strategy": cfg.Strategy,
	}).Debug("parallel multiply done")

	if cfg.Verify {
		if !seqC.Equal(parC) {
			return Result{}, ErrMismatch
		}
		res.Verified = true
	}

	res.Metrics, err = metrics.Compute(metrics.Sample{
		SequentialTime: seqTime,
		ParallelTime:   parTime,
		Threads:        res.Threads,
		Tasks:          cfg.Tasks(),
	})
	if err != nil {
		return Result{}, err
	}

	if cfg.PrintMatrices {
		res.A, res.B, res.Product = a, b, parC
	}
	return res, nil
}
