// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

// Package cpuinfo reports a one-line summary of the hardware the harness
// runs on: logical CPU count and the vector instruction set detected via
// golang.org/x/sys/cpu. Informational only; scheduling decisions are made
// by the worker pool, not here.
package cpuinfo

import (
	"fmt"
	"runtime"
)

// Summary returns a human-readable description of the execution hardware,
// e.g. "8 logical CPUs, avx2".
func Summary() string {
	return fmt.Sprintf("%d logical CPUs, %s", runtime.GOMAXPROCS(0), featureName())
}
