// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense n-dimensional arrays consumed and produced
// by the einsum evaluator.
//
// # Overview
//
// An array is a flat row-major buffer plus a shape. This package provides:
//   - Generic type-safe arrays (Dense[T]) over float32, float64, int32, int64 and uint8
//   - Bounds-checked element access through a single offset computation
//   - Rank-0 scalars (empty shape, one element)
//
// # Basic Usage
//
//	import "github.com/born-ml/einsum/tensor"
//
//	func main() {
//	    a, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    v, _ := a.At(1, 2)   // 6
//	    _ = a.Set(10, 0, 0)  // a[0,0] = 10
//	    fmt.Println(a.Shape(), v)
//	}
//
// # Data Types
//
// Supported element types:
//   - float32, float64: floating point
//   - int32, int64: signed integers
//   - uint8: bytes
//
// # Memory Layout
//
// Arrays use row-major (C-order) layout: the last axis varies fastest.
// FromSlice copies its input, so callers may reuse their slices.
package tensor
