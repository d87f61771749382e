// Package interop converts between einsum arrays and gonum matrices.
package interop

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/einsum/internal/tensor"
)

// FromMatrix copies a gonum matrix into a rank-2 float64 array.
func FromMatrix(m mat.Matrix) (*tensor.Dense[float64], error) {
	r, c := m.Dims()
	d, err := tensor.New[float64](tensor.Shape{r, c})
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err := d.Set(m.At(i, j), i, j); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// FromVector copies a gonum vector into a rank-1 float64 array.
func FromVector(v mat.Vector) (*tensor.Dense[float64], error) {
	n := v.Len()
	d, err := tensor.New[float64](tensor.Shape{n})
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := d.Set(v.AtVec(i), i); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ToMatrix copies a rank-2 array into a new *mat.Dense, converting elements to float64.
func ToMatrix[T tensor.Numeric](d *tensor.Dense[T]) (*mat.Dense, error) {
	if d.Rank() != 2 {
		return nil, fmt.Errorf("%w: need rank 2, have shape %v", tensor.ErrRankMismatch, d.Shape())
	}
	shape := d.Shape()
	out := mat.NewDense(shape[0], shape[1], nil)
	for i := 0; i < shape[0]; i++ {
		for j := 0; j < shape[1]; j++ {
			v, err := d.At(i, j)
			if err != nil {
				return nil, err
			}
			out.Set(i, j, float64(v))
		}
	}
	return out, nil
}

// ToVector copies a rank-1 array into a new *mat.VecDense.
func ToVector[T tensor.Numeric](d *tensor.Dense[T]) (*mat.VecDense, error) {
	if d.Rank() != 1 {
		return nil, fmt.Errorf("%w: need rank 1, have shape %v", tensor.ErrRankMismatch, d.Shape())
	}
	n := d.Shape()[0]
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v, err := d.At(i)
		if err != nil {
			return nil, err
		}
		out.SetVec(i, float64(v))
	}
	return out, nil
}
