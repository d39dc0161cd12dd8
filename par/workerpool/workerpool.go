// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// step-synchronous parallel computation. A Pool is created once and reused
// across many steps, so the per-step cost is a channel send per worker
// rather than goroutine spawning.
//
// Every dispatch method blocks until all of its work has completed. That
// return-is-the-barrier property is what the tree algorithms in this module
// rely on: level d+1 of a reduction or scan reads values written at level d,
// so no worker may run ahead of the join.
//
// Usage:
//
//	pool := workerpool.New(4)
//	defer pool.Close()
//
//	for stride := 1; stride < n; stride *= 2 {
//	    pool.ParallelForStride(n, 2*stride, func(i int) {
//	        combine(buf, i, stride)
//	    })
//	    // all writes of this level are visible here
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused for every dispatch until Close is called.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a single parallel step.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with the given number of workers, spawned immediately.
// numWorkers <= 0 means GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Work already dispatched completes; calling
// Close more than once is safe. Dispatch methods on a closed pool degrade
// to sequential execution instead of panicking.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor runs fn over [0, n) split into contiguous per-worker ranges
// and returns once every range has been processed. fn receives the
// half-open range [start, end) it owns.
//
// Correctness of concurrent execution is the caller's contract: within one
// call, the index sets read and written by different ranges must be
// disjoint.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := range workers {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}

	wg.Wait()
}

// ParallelForStride runs fn once for each index in {0, stride, 2*stride, ...}
// below n and returns after the last call completes. This is the dispatch
// shape of one tree level, where only every stride-th position is touched;
// the strided index set is divided into contiguous runs so each worker owns
// a disjoint region of the buffer.
//
// stride < 1 is treated as 1, which makes the call an index-wise ParallelFor.
func (p *Pool) ParallelForStride(n, stride int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if stride < 1 {
		stride = 1
	}

	// Number of strided indices below n.
	count := (n + stride - 1) / stride

	workers := min(p.numWorkers, count)
	if workers == 1 || p.closed.Load() {
		for i := 0; i < n; i += stride {
			fn(i)
		}
		return
	}

	chunk := (count + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := range workers {
		first := w * chunk
		last := min(first+chunk, count)
		if first >= count {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				for k := first; k < last; k++ {
					fn(k * stride)
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
