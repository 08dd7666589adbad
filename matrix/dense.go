// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxElements caps the number of elements a single matrix may hold.
// New refuses larger requests with ErrTooLarge instead of letting the
// allocation abort the process.
var MaxElements = 1 << 30

// Dense is a row-major matrix of integers.
// data holds rows*cols elements; element (i, j) is data[i*cols+j].
type Dense[T Integers] struct {
	rows, cols int
	data       []T
}

var _ fmt.Stringer = (*Dense[int32])(nil)

// New creates a rows×cols matrix initialized to zeros.
// Zero-sized dimensions are allowed and produce an empty matrix.
func New[T Integers](rows, cols int) (*Dense[T], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrBadShape)
	}
	if rows != 0 && cols > math.MaxInt/rows {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrTooLarge)
	}
	if rows*cols > MaxElements {
		return nil, fmt.Errorf("New(%d,%d): %d elements exceeds limit %d: %w",
			rows, cols, rows*cols, MaxElements, ErrTooLarge)
	}

	return &Dense[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}, nil
}

// FromRows builds a matrix from literal rows, which must all have the same length.
func FromRows[T Integers](rows [][]T) (*Dense[T], error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := New[T](len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(r), cols, ErrBadShape)
		}
		copy(m.data[i*cols:(i+1)*cols], r)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense[T]) Cols() int { return m.cols }

// Shape returns rows and columns in one call.
func (m *Dense[T]) Shape() (rows, cols int) { return m.rows, m.cols }

// Len returns rows*cols.
func (m *Dense[T]) Len() int { return len(m.data) }

// Data returns the row-major backing slice. It is not a copy: writes through
// it are visible in the matrix. Multiplication kernels use it to avoid
// per-element bounds checks.
func (m *Dense[T]) Data() []T { return m.data }

// indexOf validates (row, col) and returns the flat offset.
func (m *Dense[T]) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}
	return row*m.cols + col, nil
}

// At returns the element at (row, col).
func (m *Dense[T]) At(row, col int) (T, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set stores v at (row, col).
func (m *Dense[T]) Set(row, col int, v T) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Row returns a view of row i (not a copy).
func (m *Dense[T]) Row(i int) ([]T, error) {
	if i < 0 || i >= m.rows {
		return nil, denseErrorf("Row", i, 0, ErrOutOfRange)
	}
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols], nil
}

// Fill assigns every element from gen in row-major order on the calling
// goroutine. The order is fixed so that a seeded generator reproduces the
// same matrix.
func (m *Dense[T]) Fill(gen Generator[T]) {
	for i := range m.data {
		m.data[i] = gen.Next()
	}
}

// Equal reports whether m and other have the same shape and elements.
func (m *Dense[T]) Equal(other *Dense[T]) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.rows == other.rows && m.cols == other.cols && slices.Equal(m.data, other.data)
}

// Clone returns a deep copy.
func (m *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{rows: m.rows, cols: m.cols, data: slices.Clone(m.data)}
}

// WriteTo writes the matrix row by row: values separated by a single space,
// each row terminated by a newline.
func (m *Dense[T]) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	var buf []byte
	for i := range m.rows {
		buf = buf[:0]
		for j, v := range m.data[i*m.cols : (i+1)*m.cols] {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = appendInt(buf, v)
		}
		buf = append(buf, '\n')
		written, err := bw.Write(buf)
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// String implements fmt.Stringer using the WriteTo layout.
func (m *Dense[T]) String() string {
	var sb strings.Builder
	_, _ = m.WriteTo(&sb)
	return sb.String()
}

func appendInt[T Integers](buf []byte, v T) []byte {
	if v < 0 {
		return strconv.AppendInt(buf, int64(v), 10)
	}
	return strconv.AppendUint(buf, uint64(v), 10)
}
