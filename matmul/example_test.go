// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package matmul_test

import (
	"fmt"

	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
	"github.com/ajroetker/matbench/workerpool"
)

func ExampleMultiply() {
	a, _ := matrix.FromRows([][]int32{{1, 2, 3}, {4, 5, 6}})
	b, _ := matrix.FromRows([][]int32{{1, 0}, {0, 1}, {0, 0}})

	pool := workerpool.New(4)
	defer pool.Close()

	fut, err := matmul.Multiply(matmul.NewMultiplier(pool), a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	c, err := fut.Get()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(c)
	// Output:
	// 1 2
	// 4 5
}

func ExampleSequential() {
	a, _ := matrix.FromRows([][]int32{{1, 2}, {3, 4}})
	b, _ := matrix.FromRows([][]int32{{5}, {6}, {7}})

	_, err := matmul.Sequential(a, b)
	fmt.Println(err)
	// Output:
	// 2x2 * 3x1: matmul: dimension mismatch
}
