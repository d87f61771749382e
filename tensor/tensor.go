// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/einsum/internal/tensor"

// Numeric is the constraint satisfied by supported element types.
type Numeric = tensor.Numeric

// DataType represents the underlying element type of an array.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
// The empty shape is a rank-0 scalar.
type Shape = tensor.Shape

// Dense is a row-major n-dimensional array.
//
// Example:
//
//	a, _ := tensor.New[float32](tensor.Shape{2, 3})
//	_ = a.Set(1.5, 0, 2)
//	v, _ := a.At(0, 2)  // 1.5
type Dense[T Numeric] = tensor.Dense[T]

// IndexError reports an invalid index tuple passed to At, Set or Add.
type IndexError = tensor.IndexError

// Errors returned by array construction and access.
var (
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrRankMismatch  = tensor.ErrRankMismatch
	ErrOutOfRange    = tensor.ErrOutOfRange
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrDataLength    = tensor.ErrDataLength
)

// New creates a zero-filled array.
//
// Example:
//
//	x, err := tensor.New[float64](tensor.Shape{2, 3})
func New[T Numeric](shape Shape) (*Dense[T], error) {
	return tensor.New[T](shape)
}

// FromSlice creates an array holding a copy of data.
// len(data) must equal shape.NumElements().
//
// Example:
//
//	x, err := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T Numeric](data []T, shape Shape) (*Dense[T], error) {
	return tensor.FromSlice(data, shape)
}

// Scalar creates a rank-0 array holding v.
func Scalar[T Numeric](v T) *Dense[T] {
	return tensor.Scalar(v)
}

// ParseDataType maps a name such as "float32" to its DataType.
func ParseDataType(name string) (DataType, bool) {
	return tensor.ParseDataType(name)
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Numeric]() DataType {
	return tensor.DataTypeOf[T]()
}
