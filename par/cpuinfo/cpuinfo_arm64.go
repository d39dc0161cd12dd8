// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package cpuinfo

import "golang.org/x/sys/cpu"

func featureName() string {
	// ASIMD (NEON) is part of the ARMv8-A base architecture; the check is
	// kept for consistency with the cpu package.
	if cpu.ARM64.HasASIMD {
		return "neon"
	}
	return "scalar"
}
