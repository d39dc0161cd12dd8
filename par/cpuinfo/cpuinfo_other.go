// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package cpuinfo

func featureName() string {
	return "portable"
}
