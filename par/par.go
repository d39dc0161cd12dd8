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

// Package par holds the shared vocabulary of the parallel primitives in this
// module: the element constraint, partition plans, tree-level arithmetic,
// sequential baselines, and the trace hook used by the step-synchronous
// algorithms.
//
// The parallel implementations live in the subpackages reduce and scan; both
// are validated against the baselines here (see package verify). All of them
// follow the same execution model: a fixed worker pool runs the independent
// iterations of one step, a full barrier ends the step, and only then does
// the next step begin.
package par

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Element is the constraint satisfied by slice element types accepted by
// every algorithm in this module: fixed-width signed integers.
type Element interface {
	constraints.Signed
}

// TraceFunc observes the working buffer of a step-synchronous algorithm.
// It is invoked once per synchronization step, after that step's barrier,
// with the step index and a private copy of the buffer. A nil TraceFunc
// disables tracing.
type TraceFunc[T Element] func(step int, buf []T)

// MinValue returns the smallest value representable by T, the identity
// element for max over the domain of T.
func MinValue[T Element]() T {
	var v T
	bits := unsafe.Sizeof(v) * 8
	return T(-1) << (bits - 1)
}

// Levels returns ceil(log2(n)): the number of synchronization steps a tree
// reduction over n elements performs, and the padded tree height used by the
// two-phase scan. Levels is 0 for n <= 1.
func Levels(n int) int {
	l := 0
	for 1<<l < n {
		l++
	}
	return l
}

// MaxSeq is the sequential baseline for the maximum reduction.
// It returns ErrEmptyInput when arr is empty; max has no identity element
// exposed to callers, only internally (see MinValue).
func MaxSeq[T Element](arr []T) (T, error) {
	if len(arr) == 0 {
		var zero T
		return zero, ErrEmptyInput
	}
	m := arr[0]
	for _, v := range arr[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// PrefixSumSeq is the sequential baseline for the inclusive prefix sum:
// out[i] = arr[0] + arr[1] + ... + arr[i]. The input is not modified.
// An empty input yields an empty (non-nil) result.
func PrefixSumSeq[T Element](arr []T) []T {
	out := make([]T, len(arr))
	var run T
	for i, v := range arr {
		run += v
		out[i] = run
	}
	return out
}
