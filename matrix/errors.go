// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "matrix: ". Methods wrap these sentinels
// with their name and coordinates, so callers match with errors.Is.
var (
	// ErrBadShape is returned for negative dimensions or ragged literal rows.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrTooLarge is returned when rows*cols overflows int or exceeds MaxElements.
	ErrTooLarge = errors.New("matrix: too many elements")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrBadRange is returned by NewUniform when lo > hi or a bound does not
	// fit the element type.
	ErrBadRange = errors.New("matrix: invalid value range")
)

// denseErrorf attaches the method name and coordinates to a sentinel.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}
