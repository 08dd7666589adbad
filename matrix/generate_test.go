// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformReproducible(t *testing.T) {
	fill := func() (*Dense[int32], *Dense[int32]) {
		gen, err := NewUniform[int32](1234, 0, 10)
		require.NoError(t, err)
		a, _ := New[int32](2, 3)
		b, _ := New[int32](3, 2)
		a.Fill(gen)
		b.Fill(gen)
		return a, b
	}

	a1, b1 := fill()
	a2, b2 := fill()
	assert.Equal(t, a1.String(), a2.String())
	assert.Equal(t, b1.String(), b2.String())
	assert.True(t, a1.Equal(a2))
	assert.True(t, b1.Equal(b2))
}

func TestUniformDifferentSeeds(t *testing.T) {
	g1, _ := NewUniform[int64](1, math.MinInt32, math.MaxInt32)
	g2, _ := NewUniform[int64](2, math.MinInt32, math.MaxInt32)

	same := true
	for range 16 {
		if g1.Next() != g2.Next() {
			same = false
		}
	}
	assert.False(t, same, "different seeds produced identical sequences")
}

func TestUniformStaysInRange(t *testing.T) {
	gen, err := NewUniform[int16](7, -3, 4)
	require.NoError(t, err)

	seen := map[int16]bool{}
	for range 2000 {
		v := gen.Next()
		require.GreaterOrEqual(t, v, int16(-3))
		require.LessOrEqual(t, v, int16(4))
		seen[v] = true
	}
	assert.Len(t, seen, 8, "every value of the inclusive range should appear")
}

func TestUniformSingleValue(t *testing.T) {
	gen, err := NewUniform[uint8](0, 5, 5)
	require.NoError(t, err)
	for range 10 {
		assert.Equal(t, uint8(5), gen.Next())
	}
}

func TestUniformFullRange(t *testing.T) {
	gen, err := NewUniform[int64](3, math.MinInt64, math.MaxInt64)
	require.NoError(t, err)
	_ = gen.Next()
}

func TestUniformRejectsBadRange(t *testing.T) {
	_, err := NewUniform[int32](0, 10, 0)
	assert.ErrorIs(t, err, ErrBadRange)

	_, err = NewUniform[uint8](0, -1, 3)
	assert.ErrorIs(t, err, ErrBadRange)

	_, err = NewUniform[int8](0, 0, 128)
	assert.ErrorIs(t, err, ErrBadRange)

	_, err = NewUniform[uint64](0, -5, 5)
	assert.ErrorIs(t, err, ErrBadRange)
}

func TestFillRowMajorOrder(t *testing.T) {
	next := int32(0)
	gen := GeneratorFunc[int32](func() int32 {
		next++
		return next
	})

	m, _ := New[int32](2, 3)
	m.Fill(gen)
	assert.Equal(t, "1 2 3\n4 5 6\n", m.String())
}
