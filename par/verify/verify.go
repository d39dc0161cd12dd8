// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

// Package verify cross-checks algorithm results against a baseline. A
// mismatch is reported as data (first differing index plus both values)
// rather than printed, so callers decide how to surface disagreement.
package verify

import (
	"fmt"

	"github.com/ajroetker/go-parscan/par"
)

// Result describes the outcome of a comparison. When OK is false and Index
// is non-negative, a and b differ first at Index with values A and B.
// Index is -1 when the inputs had different lengths (no index to report)
// and for scalar comparisons.
type Result[T par.Element] struct {
	OK    bool
	Index int
	A, B  T
}

// String renders the result for a run summary.
func (r Result[T]) String() string {
	if r.OK {
		return "match"
	}
	if r.Index < 0 {
		if r.A == r.B {
			// Only Compare with unequal lengths produces a failed result
			// carrying equal values.
			return "mismatch: lengths differ"
		}
		return fmt.Sprintf("mismatch: %v != %v", r.A, r.B)
	}
	return fmt.Sprintf("mismatch at index %d: %v != %v", r.Index, r.A, r.B)
}

// Compare checks a and b element-wise. Unequal lengths fail immediately
// with Index -1; otherwise the first differing index and both values are
// reported.
func Compare[T par.Element](a, b []T) Result[T] {
	if len(a) != len(b) {
		return Result[T]{Index: -1}
	}
	for i := range a {
		if a[i] != b[i] {
			return Result[T]{Index: i, A: a[i], B: b[i]}
		}
	}
	return Result[T]{OK: true, Index: -1}
}

// CompareScalar checks two scalar results, used by the maximum reductions.
func CompareScalar[T par.Element](a, b T) Result[T] {
	if a != b {
		return Result[T]{Index: -1, A: a, B: b}
	}
	return Result[T]{OK: true, Index: -1}
}
