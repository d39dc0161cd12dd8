// Copyright 2025 go-parscan Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reduce implements parallel maximum reductions over integer slices.
//
// Two decompositions are provided. TreeMax folds pairs along a binary tree
// laid out in a flat working buffer, one synchronization step per doubling of
// the stride. SectionedMax statically partitions the input, reduces each
// partition with a worker-private accumulator, and folds the per-partition
// maxima sequentially; it has one barrier total and no shared mutable state
// during the parallel phase.
//
// All variants leave the caller's slice untouched and are validated against
// par.MaxSeq.
package reduce

import (
	"slices"

	"github.com/ajroetker/go-parscan/par"
	"github.com/ajroetker/go-parscan/par/workerpool"
)

// TreeMax computes the maximum of arr by in-place binary-tree reduction over
// a working copy. At each step, positions that are multiples of twice the
// current stride absorb their partner at distance stride:
//
//	buf[i] = max(buf[i], buf[i+stride])
//
// Updates within one step touch disjoint index pairs, and the step's barrier
// completes before the stride doubles. After ceil(log2(n)) steps the maximum
// has bubbled to buf[0].
//
// An empty arr returns par.ErrEmptyInput.
func TreeMax[T par.Element](pool *workerpool.Pool, arr []T) (T, error) {
	n := len(arr)
	if n == 0 {
		var zero T
		return zero, par.ErrEmptyInput
	}

	buf := slices.Clone(arr)

	for stride := 1; stride < n; stride *= 2 {
		s := stride
		pool.ParallelForStride(n, 2*stride, func(i int) {
			if i+s < n {
				buf[i] = max(buf[i], buf[i+s])
			}
		})
	}

	return buf[0], nil
}

// SectionedMax computes the maximum of arr by splitting it into workerCount
// contiguous sections. Each section is reduced independently into its own
// slot of the partials slice, so the parallel phase is race-free by
// construction rather than by locking; the per-section maxima are then
// folded sequentially after the join.
//
// Sections can be empty when workerCount exceeds len(arr); an empty section
// contributes the identity element for max (the domain minimum) and can
// never win the fold.
//
// An empty arr returns par.ErrEmptyInput.
func SectionedMax[T par.Element](pool *workerpool.Pool, arr []T, workerCount int) (T, error) {
	n := len(arr)
	if n == 0 {
		var zero T
		return zero, par.ErrEmptyInput
	}

	plan := par.Partition(n, workerCount)
	partials := make([]T, len(plan))

	pool.ParallelFor(len(plan), func(start, end int) {
		for k := start; k < end; k++ {
			local := par.MinValue[T]()
			for _, v := range arr[plan[k].Start:plan[k].End] {
				local = max(local, v)
			}
			partials[k] = local
		}
	})

	best := par.MinValue[T]()
	for _, p := range partials {
		best = max(best, p)
	}
	return best, nil
}

// TreeMaxTrace is TreeMax with step observation: after each step's barrier,
// trace receives the step index and a private copy of the working buffer.
// It also returns the number of synchronization steps performed, which
// equals par.Levels(len(arr)).
//
// A nil trace disables observation without changing the computation.
func TreeMaxTrace[T par.Element](pool *workerpool.Pool, arr []T, trace par.TraceFunc[T]) (T, int, error) {
	n := len(arr)
	if n == 0 {
		var zero T
		return zero, 0, par.ErrEmptyInput
	}

	buf := slices.Clone(arr)
	step := 0

	for stride := 1; stride < n; stride *= 2 {
		s := stride
		pool.ParallelForStride(n, 2*stride, func(i int) {
			if i+s < n {
				buf[i] = max(buf[i], buf[i+s])
			}
		})
		if trace != nil {
			trace(step, slices.Clone(buf))
		}
		step++
	}

	return buf[0], step, nil
}
