// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

package par

// Range is a half-open index interval [Start, End) assigned to one worker.
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits [0, n) into exactly `workers` contiguous, non-overlapping,
// order-preserving ranges of ceiling size ceil(n/workers). The last ranges may
// be shorter, or empty when workers > n; the ranges always cover [0, n)
// exactly once. workers < 1 is treated as 1.
func Partition(n, workers int) []Range {
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	plan := make([]Range, workers)
	for i := range plan {
		start := min(i*chunk, n)
		plan[i] = Range{Start: start, End: min(start+chunk, n)}
	}
	return plan
}
