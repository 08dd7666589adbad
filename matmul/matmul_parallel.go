// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ajroetker/matbench/matrix"
	"github.com/ajroetker/matbench/workerpool"
)

// RowsPerStrip is the default strip height for StrategyStrips.
// Small enough to balance load across workers, large enough that one atomic
// grab amortizes over many inner products.
const RowsPerStrip = 16

// Strategy selects how the output row range is handed to the pool.
// Every strategy produces disjoint contiguous row ranges; they differ only in
// range size and in whether ranges are assigned up front or pulled.
type Strategy int

const (
	// StrategyStatic splits [0, M) into one contiguous block per worker.
	StrategyStatic Strategy = iota

	// StrategyStrips cuts [0, M) into fixed-height strips that workers pull
	// with atomic work stealing.
	StrategyStrips

	// StrategyRows hands out one row per atomic grab.
	StrategyRows
)

// String returns the flag spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyStatic:
		return "static"
	case StrategyStrips:
		return "strips"
	case StrategyRows:
		return "rows"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses the output of Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static", "":
		return StrategyStatic, nil
	case "strips":
		return StrategyStrips, nil
	case "rows":
		return StrategyRows, nil
	}
	return 0, fmt.Errorf("matmul: unknown strategy %q (want static, strips or rows)", s)
}

// Option configures a Multiplier.
type Option func(*Multiplier)

// WithStrategy selects the partitioning strategy. Default StrategyStatic.
func WithStrategy(s Strategy) Option {
	return func(m *Multiplier) { m.strategy = s }
}

// WithStripRows sets the strip height used by StrategyStrips.
// Values <= 0 select RowsPerStrip.
func WithStripRows(rows int) Option {
	return func(m *Multiplier) {
		if rows <= 0 {
			rows = RowsPerStrip
		}
		m.stripRows = rows
	}
}

// WithTransposedB makes workers multiply against a transposed copy of B, so
// the inner product walks both operands contiguously. The copy is built on
// the pool as part of the asynchronous work; B itself is never written.
func WithTransposedB(enabled bool) Option {
	return func(m *Multiplier) { m.transposeB = enabled }
}

// Multiplier computes matrix products on a worker pool. It holds no per-call
// state and may be shared by concurrent Multiply calls.
type Multiplier struct {
	pool       *workerpool.Pool
	strategy   Strategy
	stripRows  int
	transposeB bool
}

// NewMultiplier returns a Multiplier that runs on pool. The pool size is
// chosen by whoever created the pool, not by the Multiplier.
func NewMultiplier(pool *workerpool.Pool, opts ...Option) *Multiplier {
	m := &Multiplier{pool: pool, strategy: StrategyStatic, stripRows: RowsPerStrip}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Threads returns the number of pool workers, or 0 without a pool.
func (m *Multiplier) Threads() int {
	if m == nil || m.pool == nil {
		return 0
	}
	return m.pool.NumWorkers()
}

// Strategy returns the configured strategy.
func (m *Multiplier) Strategy() Strategy { return m.strategy }

// Plan returns the row ranges a product with rows output rows is split into.
// For StrategyStatic it matches what ParallelFor hands out on an open pool.
func (m *Multiplier) Plan(rows int) []RowRange {
	switch m.strategy {
	case StrategyStrips:
		return Strips(rows, m.stripRows)
	case StrategyRows:
		return Strips(rows, 1)
	default:
		return Partition(rows, m.Threads())
	}
}

// Multiply starts C = A * B on the pool and returns immediately.
//
//   - A is M x N (row-major)
//   - B is N x K (row-major)
//   - C is M x K (row-major), newly allocated
//
// Operand validation and the allocation of C happen before Multiply returns;
// a failure there is returned directly and no work is scheduled. Everything
// else, including a worker panic, is reported by Future.Get.
//
// A and B must not be modified until the Future resolves. Closing the pool
// before then is safe: ranges not yet handed out run on the goroutine that
// drives the Future.
func Multiply[T matrix.Integers](mul *Multiplier, a, b *matrix.Dense[T]) (*Future[T], error) {
	if mul == nil || mul.pool == nil {
		return nil, ErrNilPool
	}
	m, n, k, err := checkOperands(a, b)
	if err != nil {
		return nil, err
	}
	c, err := matrix.New[T](m, k)
	if err != nil {
		return nil, err
	}

	f := newFuture(c)
	f.g.Go(func() error {
		defer close(f.done)
		return multiplyOnPool(mul, a.Data(), b.Data(), c.Data(), m, n, k, &f.tasks)
	})
	return f, nil
}

// multiplyOnPool runs the row ranges of C = A * B on the pool and returns
// once all of them have completed.
func multiplyOnPool[T matrix.Integers](mul *Multiplier, a, b, c []T, m, n, k int, tasks *atomic.Int64) error {
	pool := mul.pool

	kernel := mulRows[T]
	if mul.transposeB && m > 0 && k > 0 {
		bt := make([]T, k*n)
		err := pool.ParallelFor(k, func(start, end int) {
			transposeRows(b, n, k, bt, start, end)
		})
		if err != nil {
			return err
		}
		b = bt
		kernel = mulRowsTransposed[T]
	}

	run := func(r RowRange) {
		tasks.Add(1)
		kernel(a, b, c, n, k, r.Start, r.End)
	}

	switch mul.strategy {
	case StrategyStrips:
		return pool.ParallelForAtomicBatched(m, mul.stripRows, func(start, end int) {
			run(RowRange{Start: start, End: end})
		})
	case StrategyRows:
		return pool.ParallelForAtomic(m, func(i int) {
			run(RowRange{Start: i, End: i + 1})
		})
	default:
		return pool.ParallelFor(m, func(start, end int) {
			run(RowRange{Start: start, End: end})
		})
	}
}
