// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// fork-join computation. A Pool is created once and reused across many
// operations, so a benchmark measures the work and not goroutine spawning.
//
// Every ParallelFor* call is a fork-join: it hands out disjoint index ranges,
// then blocks on a barrier until all of them have run. A panic inside a
// range is recovered by the worker that ran it and returned from the call as
// a *PanicError; the pool stays usable.
//
// Close may race with calls in flight: a call that has started handing out
// ranges finishes on the workers, and one that starts after Close runs its
// loop on the calling goroutine.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ParallelFor(m, func(start, end int) {
//	    processRows(start, end)
//	})
package workerpool

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// EnvWorkers names the environment variable consulted by callers that let
// the environment pick the pool size.
const EnvWorkers = "MATBENCH_WORKERS"

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem

	// mu is held for reading while a call sends to workC and for writing
	// by Close, so workC is never closed under a sender.
	mu     sync.RWMutex
	closed bool
}

// workItem represents one range handed to a worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
	fault   *faultSlot
}

// PanicError carries a panic recovered from a worker, with the stack of the
// goroutine that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workerpool: worker panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// faultSlot keeps the first panic of one fork-join call.
type faultSlot struct {
	once sync.Once
	err  *PanicError
}

func (f *faultSlot) record(v any) {
	f.once.Do(func() {
		f.err = &PanicError{Value: v, Stack: debug.Stack()}
	})
}

// result must only be read after the barrier.
func (f *faultSlot) result() error {
	if f.err == nil {
		return nil
	}
	return f.err
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		run(item)
	}
}

func run(item workItem) {
	defer item.barrier.Done()
	defer func() {
		if r := recover(); r != nil {
			item.fault.record(r)
		}
	}()
	item.fn()
}

// inline runs fn on the calling goroutine with the same panic capture the
// workers apply.
func inline(fn func()) error {
	var wg sync.WaitGroup
	var fault faultSlot
	wg.Add(1)
	run(workItem{fn: fn, barrier: &wg, fault: &fault})
	return fault.result()
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.workC)
}

// acquire read-locks the pool for sending and reports whether it is open.
// On true the caller must call p.mu.RUnlock once its sends are done.
func (p *Pool) acquire() bool {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return false
	}
	return true
}

// ParallelFor executes fn over [0, n) using the worker pool.
// The range is split into at most NumWorkers contiguous chunks of equal size
// (the last may be shorter); each chunk runs exactly once.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || !p.acquire() {
		// Fallback to sequential for one worker or a closed pool
		return inline(func() { fn(0, n) })
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	var fault faultSlot
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
			fault:   &fault,
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	return fault.result()
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This provides better load balancing when work per item varies.
// Blocks until all work completes.
//
// fn receives the index to process.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) error {
	if n <= 0 {
		return nil
	}

	sequential := func() {
		for i := range n {
			fn(i)
		}
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || !p.acquire() {
		return inline(sequential)
	}

	var nextIdx atomic.Int64
	var wg sync.WaitGroup
	var fault faultSlot
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					idx := int(nextIdx.Add(1)) - 1
					if idx >= n {
						return
					}
					fn(idx)
				}
			},
			barrier: &wg,
			fault:   &fault,
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	return fault.result()
}

// ParallelForAtomicBatched executes fn for batches of indices using atomic
// work stealing. Combines the load balancing of atomic distribution with
// reduced atomic operation overhead by processing multiple items per grab.
//
// fn receives (start, end) indices where work should process [start, end).
// batchSize controls how many items are grabbed per atomic operation.
// Unlike ParallelFor, fn is called once per batch even on the fallback path,
// so the number of calls does not depend on the pool state.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	sequential := func() {
		for start := 0; start < n; start += batchSize {
			fn(start, min(start+batchSize, n))
		}
	}
	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 || !p.acquire() {
		return inline(sequential)
	}

	var nextBatch atomic.Int64
	var wg sync.WaitGroup
	var fault faultSlot
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					batch := int(nextBatch.Add(1)) - 1
					start := batch * batchSize
					if start >= n {
						return
					}
					end := min(start+batchSize, n)
					fn(start, end)
				}
			},
			barrier: &wg,
			fault:   &fault,
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	return fault.result()
}
