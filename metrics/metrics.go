// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package metrics turns benchmark timings into parallel-performance figures:
// speedup, efficiency, throughput, latency per task and overhead.
//
// Every function is pure: the result depends only on the arguments, so the
// same inputs always reproduce the same float64 bit pattern. Inputs that
// would divide by zero return ErrUndefined instead of Inf or NaN.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrUndefined is returned when a metric would divide by zero, e.g. a
	// parallel time that rounded down to zero or a run that completed no tasks.
	ErrUndefined = errors.New("metrics: undefined metric")

	// ErrZeroThreads is returned by Efficiency for a thread count below one.
	ErrZeroThreads = errors.New("metrics: thread count must be at least 1")

	// ErrInvalidInput is returned for negative, NaN or infinite inputs.
	ErrInvalidInput = errors.New("metrics: invalid input")
)

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// checkTime accepts finite positive durations in seconds.
func checkTime(name string, v float64) error {
	switch {
	case !finite(v) || v < 0:
		return fmt.Errorf("%s=%g: %w", name, v, ErrInvalidInput)
	case v == 0:
		return fmt.Errorf("%s=0: %w", name, ErrUndefined)
	}
	return nil
}

// Speedup returns seq / par. Both times are in seconds and must be > 0.
func Speedup(seq, par float64) (float64, error) {
	if err := checkTime("sequential time", seq); err != nil {
		return 0, fmt.Errorf("speedup: %w", err)
	}
	if err := checkTime("parallel time", par); err != nil {
		return 0, fmt.Errorf("speedup: %w", err)
	}
	return seq / par, nil
}

// Efficiency returns speedup / threads. Ideal linear scaling gives 1.0.
func Efficiency(speedup float64, threads int) (float64, error) {
	if threads < 1 {
		return 0, fmt.Errorf("efficiency: threads=%d: %w", threads, ErrZeroThreads)
	}
	if !finite(speedup) || speedup < 0 {
		return 0, fmt.Errorf("efficiency: speedup=%g: %w", speedup, ErrInvalidInput)
	}
	return speedup / float64(threads), nil
}

// Throughput returns tasks completed per second.
func Throughput(tasks int, seconds float64) (float64, error) {
	if tasks < 0 {
		return 0, fmt.Errorf("throughput: tasks=%d: %w", tasks, ErrInvalidInput)
	}
	if tasks == 0 {
		return 0, fmt.Errorf("throughput: no tasks completed: %w", ErrUndefined)
	}
	if err := checkTime("time", seconds); err != nil {
		return 0, fmt.Errorf("throughput: %w", err)
	}
	return float64(tasks) / seconds, nil
}

// LatencyPerTask returns 1 / throughput, the average seconds per task.
func LatencyPerTask(throughput float64) (float64, error) {
	if !finite(throughput) || throughput < 0 {
		return 0, fmt.Errorf("latency: throughput=%g: %w", throughput, ErrInvalidInput)
	}
	if throughput == 0 {
		return 0, fmt.Errorf("latency: zero throughput: %w", ErrUndefined)
	}
	return 1 / throughput, nil
}

// Overhead returns par - seq/speedup: the seconds the parallel run spent
// beyond what a run scaling by exactly speedup would have taken.
// Passing the thread count as speedup measures the distance from ideal
// linear scaling; passing the measured speedup yields zero.
func Overhead(seq, par, speedup float64) (float64, error) {
	if !finite(seq) || seq < 0 || !finite(par) || par < 0 {
		return 0, fmt.Errorf("overhead: seq=%g par=%g: %w", seq, par, ErrInvalidInput)
	}
	if !finite(speedup) || speedup < 0 {
		return 0, fmt.Errorf("overhead: speedup=%g: %w", speedup, ErrInvalidInput)
	}
	if speedup == 0 {
		return 0, fmt.Errorf("overhead: zero speedup: %w", ErrUndefined)
	}
	return par - seq/speedup, nil
}

// Sample is one benchmark measurement.
type Sample struct {
	SequentialTime time.Duration
	ParallelTime   time.Duration
	Threads        int // workers in the pool that ran the parallel product
	Tasks          int // units of work completed by the parallel run
}

// Report holds every metric derived from a Sample.
type Report struct {
	Sample

	Speedup        float64
	Efficiency     float64
	Throughput     float64 // tasks per second
	LatencyPerTask float64 // seconds
	Overhead       float64 // seconds beyond ideal linear scaling
}

// Compute derives every metric of s in dependency order, failing on the
// first one that is undefined.
func Compute(s Sample) (Report, error) {
	seq := s.SequentialTime.Seconds()
	par := s.ParallelTime.Seconds()

	r := Report{Sample: s}
	var err error
	if r.Speedup, err = Speedup(seq, par); err != nil {
		return Report{}, err
	}
	if r.Efficiency, err = Efficiency(r.Speedup, s.Threads); err != nil {
		return Report{}, err
	}
	if r.Throughput, err = Throughput(s.Tasks, par); err != nil {
		return Report{}, err
	}
	if r.LatencyPerTask, err = LatencyPerTask(r.Throughput); err != nil {
		return Report{}, err
	}
	if r.Overhead, err = Overhead(seq, par, float64(s.Threads)); err != nil {
		return Report{}, err
	}
	return r, nil
}
