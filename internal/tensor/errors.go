package tensor

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is.
var (
	ErrInvalidShape  = errors.New("tensor: invalid shape")
	ErrRankMismatch  = errors.New("tensor: rank mismatch")
	ErrOutOfRange    = errors.New("tensor: index out of range")
	ErrShapeMismatch = errors.New("tensor: shape mismatch")
	ErrDataLength    = errors.New("tensor: data length does not match shape")
)

// IndexError describes a rejected multi-index.
type IndexError struct {
	Err     error // ErrRankMismatch or ErrOutOfRange
	Indices []int // Index vector as passed by the caller
	Shape   Shape // Shape of the indexed array
	Axis    int   // Offending axis, -1 for a rank mismatch
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Axis < 0 {
		return fmt.Sprintf("%v: got %d indices for shape %v", e.Err, len(e.Indices), e.Shape)
	}
	return fmt.Sprintf("%v: index %d on axis %d (size %d), indices %v",
		e.Err, e.Indices[e.Axis], e.Axis, e.Shape[e.Axis], e.Indices)
}

// Unwrap returns the sentinel.
func (e *IndexError) Unwrap() error {
	return e.Err
}
