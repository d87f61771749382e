package tensor

import (
	"fmt"
	"slices"
)

// Dense is a fixed-shape, row-major, contiguous N-dimensional array.
//
// The zero value is not usable; create arrays with New, FromSlice or Scalar.
// Elements are only reachable through the bounds-checked accessors, which all
// share one offset computation (Offset).
type Dense[T Numeric] struct {
	shape  Shape
	stride []int
	data   []T
	dtype  DataType
}

// New creates a zero-filled array with the given shape.
// An empty shape yields a rank-0 array holding a single element.
func New[T Numeric](shape Shape) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	return &Dense[T]{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   make([]T, shape.NumElements()),
		dtype:  DataTypeOf[T](),
	}, nil
}

// FromSlice creates an array from a row-major Go slice.
// The slice is copied into the array's storage.
//
// Example:
//
//	a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	v, _ := a.At(1, 0) // 3
func FromSlice[T Numeric](data []T, shape Shape) (*Dense[T], error) {
	d, err := New[T](shape)
	if err != nil {
		return nil, err
	}
	if len(data) != len(d.data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrDataLength, shape, len(d.data), len(data))
	}
	copy(d.data, data)
	return d, nil
}

// Scalar creates a rank-0 array holding v.
func Scalar[T Numeric](v T) *Dense[T] {
	return &Dense[T]{
		shape:  Shape{},
		stride: []int{},
		data:   []T{v},
		dtype:  DataTypeOf[T](),
	}
}

// Shape returns a copy of the array's shape.
func (d *Dense[T]) Shape() Shape {
	return d.shape.Clone()
}

// Strides returns a copy of the array's row-major strides.
func (d *Dense[T]) Strides() []int {
	return slices.Clone(d.stride)
}

// Rank returns the number of axes.
func (d *Dense[T]) Rank() int {
	return len(d.shape)
}

// NumElements returns the total number of elements.
func (d *Dense[T]) NumElements() int {
	return len(d.data)
}

// DType returns the runtime data type.
func (d *Dense[T]) DType() DataType {
	return d.dtype
}

// Offset maps a multi-index to its position in the flat storage.
//
// It fails with ErrRankMismatch if len(indices) != Rank() and with
// ErrOutOfRange if any index is negative or not smaller than its axis size.
func (d *Dense[T]) Offset(indices ...int) (int, error) {
	if len(indices) != len(d.shape) {
		return 0, &IndexError{Err: ErrRankMismatch, Indices: slices.Clone(indices), Shape: d.shape.Clone(), Axis: -1}
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= d.shape[i] {
			return 0, &IndexError{Err: ErrOutOfRange, Indices: slices.Clone(indices), Shape: d.shape.Clone(), Axis: i}
		}
		offset += idx * d.stride[i]
	}
	return offset, nil
}

// At returns the element at the given indices.
func (d *Dense[T]) At(indices ...int) (T, error) {
	offset, err := d.Offset(indices...)
	if err != nil {
		var zero T
		return zero, err
	}
	return d.data[offset], nil
}

// Set stores value at the given indices.
func (d *Dense[T]) Set(value T, indices ...int) error {
	offset, err := d.Offset(indices...)
	if err != nil {
		return err
	}
	d.data[offset] = value
	return nil
}

// Add accumulates value into the element at the given indices.
func (d *Dense[T]) Add(value T, indices ...int) error {
	offset, err := d.Offset(indices...)
	if err != nil {
		return err
	}
	d.data[offset] += value
	return nil
}

// Accumulate adds other into d element-wise. Both arrays must have the same shape.
func (d *Dense[T]) Accumulate(other *Dense[T]) error {
	if !d.shape.Equal(other.shape) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, d.shape, other.shape)
	}
	for i, v := range other.data {
		d.data[i] += v
	}
	return nil
}

// Values returns a copy of the elements in row-major order.
func (d *Dense[T]) Values() []T {
	return slices.Clone(d.data)
}

// Clone creates a deep copy of the array.
func (d *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{
		shape:  d.shape.Clone(),
		stride: slices.Clone(d.stride),
		data:   slices.Clone(d.data),
		dtype:  d.dtype,
	}
}

// Equal reports whether both arrays have the same shape and identical elements.
func (d *Dense[T]) Equal(other *Dense[T]) bool {
	return d.shape.Equal(other.shape) && slices.Equal(d.data, other.data)
}

// String returns a short description of the array. Contents are not printed.
func (d *Dense[T]) String() string {
	return fmt.Sprintf("Dense[%s]%v", d.dtype, []int(d.shape))
}
