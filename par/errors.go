// Copyright 2025 The go-parscan Authors. SPDX-License-Identifier: Apache-2.0

package par

import "errors"

var (
	// ErrEmptyInput is returned when a maximum is requested over an empty
	// array. The reduction exposes no identity element, so this is an error
	// rather than a silent default.
	ErrEmptyInput = errors.New("parscan: empty input")

	// ErrInvalidSize is reported at the boundary when a requested array size
	// is not positive.
	ErrInvalidSize = errors.New("parscan: array size must be positive")
)
