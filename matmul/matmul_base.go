// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"

	"github.com/ajroetker/matbench/matrix"
)

// checkOperands validates A (m×n) and B (n×k) and returns m, n, k.
func checkOperands[T matrix.Integers](a, b *matrix.Dense[T]) (m, n, k int, err error) {
	if a == nil || b == nil {
		return 0, 0, 0, ErrNilMatrix
	}
	if a.Cols() != b.Rows() {
		return 0, 0, 0, fmt.Errorf("%dx%d * %dx%d: %w", a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}
	return a.Rows(), a.Cols(), b.Cols(), nil
}

// Sequential computes C = A * B on the calling goroutine.
//
//   - A is M x N (row-major)
//   - B is N x K (row-major)
//   - C is M x K (row-major), newly allocated
//
// C[i,j] = sum(A[i,t] * B[t,j]) for t in 0..N-1, accumulated once per cell.
func Sequential[T matrix.Integers](a, b *matrix.Dense[T]) (*matrix.Dense[T], error) {
	m, n, k, err := checkOperands(a, b)
	if err != nil {
		return nil, err
	}
	c, err := matrix.New[T](m, k)
	if err != nil {
		return nil, err
	}

	mulRows(a.Data(), b.Data(), c.Data(), n, k, 0, m)
	return c, nil
}

// mulRows writes rows [rowStart, rowEnd) of C = A * B.
// It reads a and b and writes only c[rowStart*k : rowEnd*k].
func mulRows[T matrix.Integers](a, b, c []T, n, k, rowStart, rowEnd int) {
	for i := rowStart; i < rowEnd; i++ {
		aRow := a[i*n : (i+1)*n]
		cRow := c[i*k : (i+1)*k]
		for j := range cRow {
			var sum T
			for t, av := range aRow {
				sum += av * b[t*k+j]
			}
			cRow[j] = sum
		}
	}
}

// mulRowsTransposed is mulRows against bt = B^T (K x N, row-major), so both
// operands of the inner product are walked contiguously.
func mulRowsTransposed[T matrix.Integers](a, bt, c []T, n, k, rowStart, rowEnd int) {
	for i := rowStart; i < rowEnd; i++ {
		aRow := a[i*n : (i+1)*n]
		cRow := c[i*k : (i+1)*k]
		for j := range cRow {
			bRow := bt[j*n : (j+1)*n]
			var sum T
			for t, av := range aRow {
				sum += av * bRow[t]
			}
			cRow[j] = sum
		}
	}
}

// transposeRows fills rows [jStart, jEnd) of dst = src^T, where src is
// rows×cols and dst is cols×rows. Each call writes only its own dst rows, so
// disjoint [jStart, jEnd) ranges can run concurrently.
func transposeRows[T matrix.Integers](src []T, rows, cols int, dst []T, jStart, jEnd int) {
	for j := jStart; j < jEnd; j++ {
		dRow := dst[j*rows : (j+1)*rows]
		for t := range dRow {
			dRow[t] = src[t*cols+j]
		}
	}
}
