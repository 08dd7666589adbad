// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "errors"

var (
	// ErrDimensionMismatch is returned when A.Cols() != B.Rows().
	ErrDimensionMismatch = errors.New("matmul: dimension mismatch")

	// ErrNilMatrix is returned when an operand is nil.
	ErrNilMatrix = errors.New("matmul: nil matrix")

	// ErrNilPool is returned by Multiply when the Multiplier has no pool.
	ErrNilPool = errors.New("matmul: nil worker pool")
)
