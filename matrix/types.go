// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matrix

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Integers is a constraint for all fixed-width integer element types.
type Integers interface {
	SignedInts | UnsignedInts
}
