// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "fmt"

// RowRange is the half-open range [Start, End) of output rows owned by one
// worker invocation.
type RowRange struct {
	Start, End int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int { return r.End - r.Start }

func (r RowRange) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Partition splits [0, m) into at most parts contiguous ranges of equal
// height (the last may be shorter). It matches the chunking of
// workerpool.Pool.ParallelFor.
func Partition(m, parts int) []RowRange {
	if m <= 0 {
		return nil
	}
	parts = max(1, min(parts, m))
	chunk := (m + parts - 1) / parts
	return Strips(m, chunk)
}

// Strips splits [0, m) into consecutive ranges of height rows (the last may
// be shorter).
func Strips(m, rows int) []RowRange {
	if m <= 0 {
		return nil
	}
	rows = max(rows, 1)
	out := make([]RowRange, 0, (m+rows-1)/rows)
	for start := 0; start < m; start += rows {
		out = append(out, RowRange{Start: start, End: min(start+rows, m)})
	}
	return out
}
