// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/matbench/matrix"
)

// Future is the pending result of Multiply. It resolves once every row range
// of the product has been written. There is no cancellation: a submitted
// multiplication always runs to completion.
type Future[T matrix.Integers] struct {
	g     errgroup.Group
	done  chan struct{}
	tasks atomic.Int64

	once sync.Once
	c    *matrix.Dense[T]
	err  error
}

func newFuture[T matrix.Integers](c *matrix.Dense[T]) *Future[T] {
	return &Future[T]{c: c, done: make(chan struct{})}
}

// Get blocks until the product is complete and returns it. It may be called
// any number of times, from any goroutine, and always returns the same values.
// On error the partially written product is discarded.
func (f *Future[T]) Get() (*matrix.Dense[T], error) {
	f.once.Do(func() {
		f.err = f.g.Wait()
		if f.err != nil {
			f.c = nil
		}
	})
	return f.c, f.err
}

// Done returns a channel that is closed when the product is complete, for
// callers that want to poll instead of blocking in Get.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Tasks returns how many row ranges have been computed so far. After Get
// returns it is the total number of ranges the product was split into.
func (f *Future[T]) Tasks() int {
	return int(f.tasks.Load())
}
