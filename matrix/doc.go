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

// Package matrix provides a dense, row-major integer matrix with
// bounds-checked accessors and seeded, reproducible filling.
//
// Element (i, j) lives at Data()[i*Cols()+j]. Accessors never wrap around:
// an index outside the matrix returns ErrOutOfRange.
//
// Example usage:
//
//	gen, _ := matrix.NewUniform[int32](42, 0, 10)
//	a, _ := matrix.New[int32](3, 2)
//	a.Fill(gen)
//	fmt.Print(a)
//
// The same seed always produces the same matrix, as long as the generator
// is driven from a single goroutine in row-major order, which Fill does.
package matrix
