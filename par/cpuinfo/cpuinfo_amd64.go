// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64

package cpuinfo

import "golang.org/x/sys/cpu"

func featureName() string {
	switch {
	case cpu.X86.HasAVX512:
		return "avx512"
	case cpu.X86.HasAVX2:
		return "avx2"
	case cpu.X86.HasSSE2:
		return "sse2"
	default:
		return "scalar"
	}
}
