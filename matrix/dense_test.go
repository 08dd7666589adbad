// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZeroFilled(t *testing.T) {
	m, err := New[int32](2, 3)
	require.NoError(t, err)

	rows, cols := m.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 6, m.Len())
	for _, v := range m.Data() {
		assert.Zero(t, v)
	}
}

func TestNewEmpty(t *testing.T) {
	m, err := New[int64](0, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "", m.String())
}

func TestNewRejectsBadShape(t *testing.T) {
	_, err := New[int32](-1, 3)
	require.ErrorIs(t, err, ErrBadShape)

	_, err = New[int32](3, -1)
	require.ErrorIs(t, err, ErrBadShape)
}

func TestNewRejectsOverflow(t *testing.T) {
	_, err := New[int8](math.MaxInt/2, 3)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestNewRespectsMaxElements(t *testing.T) {
	saved := MaxElements
	MaxElements = 10
	defer func() { MaxElements = saved }()

	_, err := New[int32](4, 3)
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = New[int32](2, 5)
	require.NoError(t, err)
}

func TestAtSetRowMajor(t *testing.T) {
	m, err := New[int32](2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7))
	require.NoError(t, m.Set(0, 1, -4))

	assert.Equal(t, []int32{0, -4, 0, 0, 0, 7}, m.Data())

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

func TestAccessOutOfRange(t *testing.T) {
	m, err := New[int32](2, 3)
	require.NoError(t, err)

	cases := []struct{ row, col int }{
		{2, 0}, {0, 3}, {-1, 0}, {0, -1}, {1, 3},
	}
	for _, tc := range cases {
		_, err := m.At(tc.row, tc.col)
		assert.ErrorIs(t, err, ErrOutOfRange, "At(%d,%d)", tc.row, tc.col)
		assert.ErrorIs(t, m.Set(tc.row, tc.col, 1), ErrOutOfRange, "Set(%d,%d)", tc.row, tc.col)
	}

	// (0,3) must not alias (1,0).
	require.Error(t, m.Set(0, 3, 9))
	v, _ := m.At(1, 0)
	assert.Zero(t, v)

	_, err = m.Row(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestOutOfRangeMessage(t *testing.T) {
	m, _ := New[int32](1, 1)
	_, err := m.At(3, 4)
	assert.EqualError(t, err, "Dense.At(3,4): matrix: index out of range")
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]int32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 5, 6}, row)

	_, err = FromRows([][]int32{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ErrBadShape))
}

func TestEqualAndClone(t *testing.T) {
	a, _ := FromRows([][]int16{{1, 2}, {3, 4}})
	b := a.Clone()
	assert.True(t, a.Equal(b))

	require.NoError(t, b.Set(0, 0, 9))
	assert.False(t, a.Equal(b))

	c, _ := FromRows([][]int16{{1, 2, 3, 4}})
	assert.False(t, a.Equal(c), "same data, different shape")

	var nilM *Dense[int16]
	assert.False(t, a.Equal(nilM))
	assert.True(t, nilM.Equal(nil))
}

func TestWriteTo(t *testing.T) {
	m, _ := FromRows([][]int32{{1, -2, 3}, {40, 5, 6}})

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "1 -2 3\n40 5 6\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, buf.String(), m.String())
}

func TestWriteToUnsigned(t *testing.T) {
	m, _ := FromRows([][]uint64{{math.MaxUint64, 0}})
	assert.Equal(t, "18446744073709551615 0\n", m.String())
}
