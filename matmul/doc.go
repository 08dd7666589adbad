// Copyright 2025 matbench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package matmul multiplies dense integer matrices, either on the calling
// goroutine (Sequential) or across a persistent worker pool (Multiply).
//
// Example usage:
//
//	// C = A * B where A is MxN, B is NxK, C is MxK
//	pool := workerpool.New(0)
//	defer pool.Close()
//
//	mul := matmul.NewMultiplier(pool, matmul.WithStrategy(matmul.StrategyStrips))
//	fut, err := matmul.Multiply(mul, a, b) // returns immediately
//	...
//	c, err := fut.Get() // blocks until every row range has been written
//
// The parallel path splits the output row range [0, M) into disjoint
// contiguous RowRanges. Each range is computed by exactly one worker, which
// reads A and B and writes only its own rows of C. No lock guards C: the
// ranges never overlap, so no two workers ever write the same element.
//
// Both paths use the element type's native arithmetic. Integer overflow
// wraps; it is neither detected nor saturated.
package matmul
