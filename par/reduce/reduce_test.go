// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

package reduce

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/ajroetker/go-parscan/par"
	"github.com/ajroetker/go-parscan/par/workerpool"
)

func testPool(t *testing.T) *workerpool.Pool {
	t.Helper()
	pool := workerpool.New(4)
	t.Cleanup(pool.Close)
	return pool
}

func TestTreeMax(t *testing.T) {
	pool := testPool(t)

	tests := []struct {
		name string
		arr  []int
		want int
	}{
		{"single", []int{42}, 42},
		{"two", []int{1, 9}, 9},
		{"power of two", []int{3, 7, 2, 9, 4, 1, 8, 5}, 9},
		{"odd length", []int{5, 1, 4}, 5},
		{"max at end", []int{1, 2, 3, 4, 5, 6, 7}, 7},
		{"all equal", []int{6, 6, 6, 6}, 6},
		{"negative", []int{-5, -2, -8, -1}, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TreeMax(pool, tc.arr)
			if err != nil {
				t.Fatalf("TreeMax(%v) error: %v", tc.arr, err)
			}
			if got != tc.want {
				t.Errorf("TreeMax(%v) = %d, want %d", tc.arr, got, tc.want)
			}
		})
	}
}

func TestTreeMaxEmpty(t *testing.T) {
	pool := testPool(t)

	if _, err := TreeMax(pool, []int{}); !errors.Is(err, par.ErrEmptyInput) {
		t.Errorf("TreeMax(empty) error = %v, want ErrEmptyInput", err)
	}
}

func TestTreeMaxDoesNotMutateInput(t *testing.T) {
	pool := testPool(t)

	arr := []int{3, 7, 2, 9}
	orig := slices.Clone(arr)
	if _, err := TreeMax(pool, arr); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(arr, orig) {
		t.Errorf("input mutated: %v, want %v", arr, orig)
	}
}

func TestSectionedMax(t *testing.T) {
	pool := testPool(t)

	arr := []int{3, 7, 2, 9, 4, 1, 8, 5}
	for workers := 1; workers <= 12; workers++ {
		got, err := SectionedMax(pool, arr, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if got != 9 {
			t.Errorf("SectionedMax(%v, %d) = %d, want 9", arr, workers, got)
		}
	}
}

func TestSectionedMaxEmpty(t *testing.T) {
	pool := testPool(t)

	if _, err := SectionedMax(pool, []int{}, 4); !errors.Is(err, par.ErrEmptyInput) {
		t.Errorf("SectionedMax(empty) error = %v, want ErrEmptyInput", err)
	}
}

func TestSectionedMaxMoreWorkersThanElements(t *testing.T) {
	pool := testPool(t)

	// Empty sections contribute the identity and must not affect the fold.
	got, err := SectionedMax(pool, []int{5, 1, 4}, 16)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("SectionedMax([5 1 4], 16) = %d, want 5", got)
	}
}

func TestSectionedMaxDomainMinimum(t *testing.T) {
	pool := testPool(t)

	// Elements equal to the identity element are still handled correctly.
	got, err := SectionedMax(pool, []int{math.MinInt, math.MinInt, -3}, 8)
	if err != nil {
		t.Fatal(err)
	}
	if got != -3 {
		t.Errorf("got %d, want -3", got)
	}

	got, err = SectionedMax(pool, []int{math.MinInt}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got != math.MinInt {
		t.Errorf("got %d, want MinInt", got)
	}
}

func TestTreeMaxTrace(t *testing.T) {
	pool := testPool(t)

	var steps []int
	var snapshots [][]int
	got, levels, err := TreeMaxTrace(pool, []int{3, 7, 2, 9, 4, 1, 8, 5}, func(step int, buf []int) {
		steps = append(steps, step)
		snapshots = append(snapshots, buf)
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != 9 {
		t.Errorf("max = %d, want 9", got)
	}
	if levels != 3 {
		t.Errorf("levels = %d, want 3", levels)
	}
	if len(steps) != 3 {
		t.Fatalf("trace called %d times, want 3", len(steps))
	}
	for i, s := range steps {
		if s != i {
			t.Errorf("steps[%d] = %d, want %d", i, s, i)
		}
	}

	// stride 1: each even index absorbs its right neighbor
	if want := []int{7, 7, 9, 9, 4, 1, 8, 5}; !slices.Equal(snapshots[0], want) {
		t.Errorf("after step 0: %v, want %v", snapshots[0], want)
	}
	// stride 2: indices 0 and 4 absorb their partners at distance 2
	if want := []int{9, 7, 9, 9, 8, 1, 8, 5}; !slices.Equal(snapshots[1], want) {
		t.Errorf("after step 1: %v, want %v", snapshots[1], want)
	}
	// stride 4: maximum at the root
	if snapshots[2][0] != 9 {
		t.Errorf("after step 2: buf[0] = %d, want 9", snapshots[2][0])
	}
}

func TestTreeMaxTraceLevelCount(t *testing.T) {
	pool := testPool(t)

	for _, n := range []int{1, 2, 3, 4, 5, 8, 9, 16, 100} {
		arr := make([]int, n)
		for i := range arr {
			arr[i] = i
		}

		calls := 0
		_, levels, err := TreeMaxTrace(pool, arr, func(int, []int) { calls++ })
		if err != nil {
			t.Fatal(err)
		}
		if want := par.Levels(n); levels != want {
			t.Errorf("n=%d: levels = %d, want %d", n, levels, want)
		}
		if calls != levels {
			t.Errorf("n=%d: trace called %d times, want %d", n, calls, levels)
		}
	}
}

func TestTreeMaxTraceNilFunc(t *testing.T) {
	pool := testPool(t)

	got, _, err := TreeMaxTrace(pool, []int{5, 1, 4}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestMethodsAgreeOnRandomInputs(t *testing.T) {
	pool := testPool(t)

	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{1, 2, 3, 7, 8, 15, 64, 100, 1000, 4096} {
		arr := make([]int, n)
		for i := range arr {
			arr[i] = rng.IntN(2001) - 1000
		}

		want, err := par.MaxSeq(arr)
		if err != nil {
			t.Fatal(err)
		}

		if got, _ := TreeMax(pool, arr); got != want {
			t.Errorf("n=%d: TreeMax = %d, want %d", n, got, want)
		}
		if got, _, _ := TreeMaxTrace(pool, arr, nil); got != want {
			t.Errorf("n=%d: TreeMaxTrace = %d, want %d", n, got, want)
		}
		for workers := 1; workers <= 8; workers++ {
			if got, _ := SectionedMax(pool, arr, workers); got != want {
				t.Errorf("n=%d workers=%d: SectionedMax = %d, want %d", n, workers, got, want)
			}
		}
	}
}

func BenchmarkTreeMax(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	arr := make([]int, 1<<16)
	rng := rand.New(rand.NewPCG(3, 4))
	for i := range arr {
		arr[i] = rng.IntN(1000)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = TreeMax(pool, arr)
	}
}

func BenchmarkSectionedMax(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	arr := make([]int, 1<<16)
	rng := rand.New(rand.NewPCG(3, 4))
	for i := range arr {
		arr[i] = rng.IntN(1000)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = SectionedMax(pool, arr, pool.NumWorkers())
	}
}
