// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeedupOfEqualTimesIsOne(t *testing.T) {
	for _, v := range []float64{1e-9, 0.001, 0.5, 1, 3.7, 12345.678} {
		s, err := Speedup(v, v)
		require.NoError(t, err)
		assert.Equal(t, 1.0, s, "t=%g", v)
	}
}

func TestSpeedup(t *testing.T) {
	s, err := Speedup(8, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, s)

	s, err = Speedup(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.25, s, "a slower parallel run has speedup < 1")
}

func TestSpeedupZeroParallelTime(t *testing.T) {
	_, err := Speedup(1, 0)
	assert.ErrorIs(t, err, ErrUndefined)

	_, err = Speedup(0, 1)
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestSpeedupInvalid(t *testing.T) {
	for _, tc := range [][2]float64{{-1, 1}, {1, -1}, {math.NaN(), 1}, {1, math.Inf(1)}} {
		_, err := Speedup(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidInput, "%v", tc)
	}
}

func TestEfficiency(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 64} {
		e, err := Efficiency(1.0, n)
		require.NoError(t, err)
		assert.Equal(t, 1.0/float64(n), e, "n=%d", n)
	}

	e, err := Efficiency(6, 8)
	require.NoError(t, err)
	assert.Equal(t, 0.75, e)
}

func TestEfficiencyRejectsZeroThreads(t *testing.T) {
	_, err := Efficiency(2, 0)
	assert.ErrorIs(t, err, ErrZeroThreads)

	_, err = Efficiency(2, -3)
	assert.ErrorIs(t, err, ErrZeroThreads)

	_, err = Efficiency(math.Inf(1), 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestThroughput(t *testing.T) {
	tp, err := Throughput(1000, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, tp)
}

func TestThroughputZeroTasksIsUndefined(t *testing.T) {
	tp, err := Throughput(0, 1.5)
	assert.ErrorIs(t, err, ErrUndefined)
	assert.Zero(t, tp)

	_, err = Throughput(10, 0)
	assert.ErrorIs(t, err, ErrUndefined)

	_, err = Throughput(-1, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLatencyPerTask(t *testing.T) {
	l, err := LatencyPerTask(2000)
	require.NoError(t, err)
	assert.Equal(t, 0.0005, l)

	_, err = LatencyPerTask(0)
	assert.ErrorIs(t, err, ErrUndefined)

	_, err = LatencyPerTask(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOverhead(t *testing.T) {
	// Ideal 4-thread run of an 8s job would take 2s; it took 3s.
	o, err := Overhead(8, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, o)

	// Measured speedup explains the parallel time completely.
	s, _ := Speedup(8, 3)
	o, err = Overhead(8, 3, s)
	require.NoError(t, err)
	assert.InDelta(t, 0, o, 1e-15)

	// Superlinear runs have negative overhead.
	o, err = Overhead(8, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, -1.0, o)

	_, err = Overhead(8, 3, 0)
	assert.ErrorIs(t, err, ErrUndefined)
	_, err = Overhead(-8, 3, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOverheadIsReproducible(t *testing.T) {
	a, _ := Overhead(0.123456789, 0.0456, 3)
	b, _ := Overhead(0.123456789, 0.0456, 3)
	assert.Equal(t, math.Float64bits(a), math.Float64bits(b))
}

func TestCompute(t *testing.T) {
	r, err := Compute(Sample{
		SequentialTime: 800 * time.Millisecond,
		ParallelTime:   200 * time.Millisecond,
		Threads:        8,
		Tasks:          1000,
	})
	require.NoError(t, err)

	assert.InDelta(t, 4.0, r.Speedup, 1e-12)
	assert.InDelta(t, 0.5, r.Efficiency, 1e-12)
	assert.InDelta(t, 5000.0, r.Throughput, 1e-9)
	assert.InDelta(t, 0.0002, r.LatencyPerTask, 1e-15)
	assert.InDelta(t, 0.1, r.Overhead, 1e-12)
	assert.Equal(t, 8, r.Threads)
}

func TestComputeGuards(t *testing.T) {
	_, err := Compute(Sample{SequentialTime: time.Second, ParallelTime: 0, Threads: 2, Tasks: 4})
	assert.ErrorIs(t, err, ErrUndefined)

	_, err = Compute(Sample{SequentialTime: time.Second, ParallelTime: time.Second, Threads: 0, Tasks: 4})
	assert.ErrorIs(t, err, ErrZeroThreads)

	_, err = Compute(Sample{SequentialTime: time.Second, ParallelTime: time.Second, Threads: 2, Tasks: 0})
	assert.ErrorIs(t, err, ErrUndefined)
	assert.Contains(t, err.Error(), "throughput")
}
