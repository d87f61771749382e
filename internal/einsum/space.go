package einsum

import (
	"iter"
	"math"
)

// jointSpace is the Cartesian product of the extents of every distinct label.
// A point is a coordinate vector with one entry per label; the last label
// varies fastest when points are enumerated by their flat index.
type jointSpace struct {
	extents []int
	size    int
}

// newJointSpace builds the space for the given extents.
// It fails with ErrJointSpaceTooLarge if the number of points overflows int.
func newJointSpace(extents []int) (jointSpace, error) {
	size := 1
	for _, e := range extents {
		if size > math.MaxInt/e {
			return jointSpace{}, newError(ErrJointSpaceTooLarge, noOperand, 0,
				"extents %v exceed %d points", extents, math.MaxInt)
		}
		size *= e
	}
	return jointSpace{extents: extents, size: size}, nil
}

// Size returns the number of points. A space with no labels has one point.
func (js jointSpace) Size() int {
	return js.size
}

// decode writes the coordinates of the point with flat index linear into coords.
func (js jointSpace) decode(linear int, coords []int) {
	for axis := len(js.extents) - 1; axis >= 0; axis-- {
		coords[axis] = linear % js.extents[axis]
		linear /= js.extents[axis]
	}
}

// points iterates over the points with flat index in [start, end).
//
// It yields the flat index and the coordinate vector. The vector is reused
// between iterations: don't retain or modify it inside the loop.
func (js jointSpace) points(start, end int) iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		if start >= end {
			return
		}
		coords := make([]int, len(js.extents))
		js.decode(start, coords)

		for linear := start; ; {
			if !yield(linear, coords) {
				return
			}
			linear++
			if linear >= end {
				return
			}
			// Increment with carry, last axis fastest.
			for axis := len(coords) - 1; axis >= 0; axis-- {
				coords[axis]++
				if coords[axis] < js.extents[axis] {
					break
				}
				coords[axis] = 0
			}
		}
	}
}
