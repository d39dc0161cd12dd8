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

// Command parscan runs every parallel reduction and scan in this module over
// one randomly generated integer array and cross-checks the results against
// the sequential baselines.
//
// Usage:
//
//	parscan [-workers n]
//
// The array size is read interactively from stdin; a non-positive or
// malformed size terminates with a non-zero exit status. Per-step buffer
// traces are printed for small arrays.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ajroetker/go-parscan/par"
	"github.com/ajroetker/go-parscan/par/cpuinfo"
	"github.com/ajroetker/go-parscan/par/reduce"
	"github.com/ajroetker/go-parscan/par/scan"
	"github.com/ajroetker/go-parscan/par/verify"
	"github.com/ajroetker/go-parscan/par/workerpool"
)

var workers = flag.Int("workers", 4, "number of parallel workers")

const (
	// previewLen caps how many elements of large arrays are printed.
	previewLen = 20

	// traceLimit is the largest array size for which per-step buffer
	// traces are narrated.
	traceLimit = 16

	// valueBound is the exclusive upper bound for generated elements.
	valueBound = 1000
)

func main() {
	flag.Parse()

	fmt.Println("==================================================")
	fmt.Println("    parscan: parallel maximum and prefix sum")
	fmt.Println("==================================================")
	fmt.Println(cpuinfo.Summary())
	fmt.Println()

	n, err := promptSize(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parscan: %v\n", err)
		os.Exit(1)
	}

	arr := randomArray(n)
	fmt.Printf("\nInput array A (%d elements): %s\n", n, preview(arr))
	fmt.Printf("Workers: %d\n\n", *workers)

	pool := workerpool.New(*workers)
	defer pool.Close()

	okMax := runMaxMethods(pool, arr)
	okScan := runScanMethods(pool, arr)

	fmt.Println("==================================================")
	fmt.Println("VERIFICATION")
	fmt.Println("==================================================")
	status := "PASSED"
	if !okMax || !okScan {
		status = "FAILED"
	}
	fmt.Printf("Status: %s\n", status)
}

// promptSize asks for one positive integer array size on r.
func promptSize(r io.Reader, w io.Writer) (int, error) {
	fmt.Fprint(w, "Array size: ")

	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return 0, fmt.Errorf("%w: no input", par.ErrInvalidSize)
	}
	line := strings.TrimSpace(sc.Text())

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", par.ErrInvalidSize, line)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", par.ErrInvalidSize, n)
	}
	return n, nil
}

func randomArray(n int) []int {
	arr := make([]int, n)
	for i := range arr {
		arr[i] = rand.IntN(valueBound)
	}
	return arr
}

// runMaxMethods times every maximum reduction and compares each against the
// sequential baseline. Returns whether all methods agreed.
func runMaxMethods(pool *workerpool.Pool, arr []int) bool {
	fmt.Println("--- Maximum reduction ---")

	start := time.Now()
	want, err := par.MaxSeq(arr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parscan: %v\n", err)
		os.Exit(1)
	}
	report("sequential", want, time.Since(start), verify.Result[int]{OK: true, Index: -1})

	ok := true

	start = time.Now()
	got, _ := reduce.TreeMax(pool, arr)
	r := verify.CompareScalar(got, want)
	ok = ok && r.OK
	report("tree reduction", got, time.Since(start), r)

	start = time.Now()
	got, _ = reduce.SectionedMax(pool, arr, pool.NumWorkers())
	r = verify.CompareScalar(got, want)
	ok = ok && r.OK
	report("sectioned reduction", got, time.Since(start), r)

	start = time.Now()
	got, steps, _ := reduce.TreeMaxTrace(pool, arr, traceFunc(len(arr)))
	elapsed := time.Since(start)
	fmt.Printf("synchronization steps: %d\n", steps)
	r = verify.CompareScalar(got, want)
	ok = ok && r.OK
	report("traced tree reduction", got, elapsed, r)

	fmt.Println()
	return ok
}

// runScanMethods times every inclusive scan and compares each against the
// sequential baseline. Returns whether all methods agreed.
func runScanMethods(pool *workerpool.Pool, arr []int) bool {
	fmt.Println("--- Inclusive prefix sum ---")

	start := time.Now()
	want := par.PrefixSumSeq(arr)
	reportScan("sequential", want, time.Since(start), verify.Result[int]{OK: true, Index: -1})

	ok := true

	start = time.Now()
	got := scan.BlellochTrace(pool, arr, traceFunc(len(arr)))
	r := verify.Compare(got, want)
	ok = ok && r.OK
	reportScan("Blelloch scan", got, time.Since(start), r)

	start = time.Now()
	got = scan.Blocked(pool, arr, pool.NumWorkers())
	r = verify.Compare(got, want)
	ok = ok && r.OK
	reportScan("blocked scan", got, time.Since(start), r)

	fmt.Println()
	return ok
}

// traceFunc returns a step narrator for small arrays and nil otherwise, so
// large runs skip the copy per step entirely.
func traceFunc(n int) par.TraceFunc[int] {
	if n > traceLimit {
		return nil
	}
	return func(step int, buf []int) {
		fmt.Printf("  step %d: %v\n", step, buf[:min(len(buf), traceLimit)])
	}
}

func report(name string, got int, elapsed time.Duration, r verify.Result[int]) {
	fmt.Printf("%-22s max = %d  (%v)  [%s]\n", name+":", got, elapsed, r)
}

func reportScan(name string, got []int, elapsed time.Duration, r verify.Result[int]) {
	fmt.Printf("%-22s P = %s  total = %d  (%v)  [%s]\n",
		name+":", preview(got), scan.Total(got), elapsed, r)
}

// preview renders an array in full when small, otherwise its first
// previewLen elements with an ellipsis.
func preview(arr []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range arr[:min(len(arr), previewLen)] {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	if len(arr) > previewLen {
		b.WriteString(", ...")
	}
	b.WriteByte(']')
	return b.String()
}
