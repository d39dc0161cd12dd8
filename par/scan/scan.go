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

// Package scan implements parallel inclusive prefix sums over integer slices.
//
// Blelloch is the work-efficient two-phase tree scan: an upsweep builds
// partial sums along a binary tree in a power-of-two padded buffer, the root
// is reset to the additive identity, and a downsweep propagates the partial
// sums back down, yielding the exclusive scan in place; adding the input
// back converts it to inclusive. 2*ceil(log2(n)) synchronization steps.
//
// Blocked is the three-phase divide-and-conquer scan: independent local
// scans per partition, a short sequential scan of the partition totals, and
// a broadcast add of each partition's offset. Two barriers.
//
// Both return a freshly allocated result and leave the input untouched;
// both agree with par.PrefixSumSeq for every input, including lengths that
// are not powers of two.
//
// Example:
//
//	pool := workerpool.New(4)
//	defer pool.Close()
//	out := scan.Blelloch(pool, []int{3, 7, 2, 9, 4, 1, 8, 5})
//	// out = [3, 10, 12, 21, 25, 26, 34, 39]
package scan

import (
	"slices"

	"github.com/ajroetker/go-parscan/par"
	"github.com/ajroetker/go-parscan/par/workerpool"
)

// Blelloch computes the inclusive prefix sum of arr using the two-phase
// upsweep/downsweep tree scan. Valid for any length; an empty arr yields an
// empty result.
func Blelloch[T par.Element](pool *workerpool.Pool, arr []T) []T {
	return blelloch(pool, arr, nil)
}

// BlellochTrace is Blelloch with step observation: trace receives a private
// copy of the padded working buffer after each upsweep step, after the root
// reset, and after each downsweep step — 2*par.Levels(n)+1 calls for a
// non-empty input. Step indices are sequential across the whole run.
func BlellochTrace[T par.Element](pool *workerpool.Pool, arr []T, trace par.TraceFunc[T]) []T {
	return blelloch(pool, arr, trace)
}

func blelloch[T par.Element](pool *workerpool.Pool, arr []T, trace par.TraceFunc[T]) []T {
	n := len(arr)
	out := make([]T, n)
	if n == 0 {
		return out
	}

	// Pad the working buffer to the next power of two with the additive
	// identity. The zeros are what make the tree arithmetic below exact for
	// lengths that are not powers of two.
	levels := par.Levels(n)
	m := 1 << levels
	buf := make([]T, m)
	copy(buf, arr)

	step := 0
	emit := func() {
		if trace != nil {
			trace(step, slices.Clone(buf))
		}
		step++
	}

	// Upsweep: each step folds the left child of every stride-wide subtree
	// into its right edge. After the last step buf[m-1] holds the total sum.
	for d := range levels {
		stride := 1 << (d + 1)
		offset := 1<<d - 1
		pool.ParallelForStride(m, stride, func(i int) {
			buf[i+stride-1] += buf[i+offset]
		})
		emit()
	}

	// Root reset turns the reduce tree into an exclusive-scan tree.
	buf[m-1] = 0
	emit()

	// Downsweep, in reverse level order: swap-then-accumulate pushes each
	// node's exclusive prefix to its left child and the combined sum to its
	// right edge.
	for d := levels - 1; d >= 0; d-- {
		stride := 1 << (d + 1)
		offset := 1<<d - 1
		pool.ParallelForStride(m, stride, func(i int) {
			t := buf[i+offset]
			buf[i+offset] = buf[i+stride-1]
			buf[i+stride-1] += t
		})
		emit()
	}

	// buf now holds the exclusive scan; adding the input back gives the
	// inclusive scan over the original (unpadded) indices.
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = buf[i] + arr[i]
		}
	})

	return out
}

// Blocked computes the inclusive prefix sum of arr by partitioning it into
// workerCount contiguous blocks. Phase 1 scans each block locally and
// records its total; phase 2 sequentially turns the totals into exclusive
// block offsets; phase 3 adds each block's offset to everything the block
// wrote. The pool's join after phases 1 and 3 provides the two required
// barriers.
func Blocked[T par.Element](pool *workerpool.Pool, arr []T, workerCount int) []T {
	n := len(arr)
	out := make([]T, n)
	if n == 0 {
		return out
	}

	plan := par.Partition(n, workerCount)
	totals := make([]T, len(plan))

	pool.ParallelFor(len(plan), func(start, end int) {
		for k := start; k < end; k++ {
			var run T
			for i := plan[k].Start; i < plan[k].End; i++ {
				run += arr[i]
				out[i] = run
			}
			// run stays zero for an empty block, the additive identity.
			totals[k] = run
		}
	})

	offsets := make([]T, len(plan))
	var run T
	for k, t := range totals {
		offsets[k] = run
		run += t
	}

	pool.ParallelFor(len(plan), func(start, end int) {
		for k := start; k < end; k++ {
			off := offsets[k]
			for i := plan[k].Start; i < plan[k].End; i++ {
				out[i] += off
			}
		}
	})

	return out
}

// Total returns the final cumulative value of an inclusive scan result, or
// zero for an empty result.
func Total[T par.Element](scanned []T) T {
	if len(scanned) == 0 {
		var zero T
		return zero
	}
	return scanned[len(scanned)-1]
}
