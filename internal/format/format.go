// Package format renders arrays for humans. The einsum core never prints;
// callers that want to show a result go through this package.
package format

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/einsum/internal/interop"
	"github.com/born-ml/einsum/internal/tensor"
)

// Sprint renders d. Rank-2 arrays are drawn as a matrix using gonum's
// formatter; other ranks use nested brackets, outermost axis first.
func Sprint[T tensor.Numeric](d *tensor.Dense[T]) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write renders d to w, followed by a newline.
func Write[T tensor.Numeric](w io.Writer, d *tensor.Dense[T]) error {
	if d.Rank() == 2 {
		m, err := interop.ToMatrix(d)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%v\n", mat.Formatted(m, mat.Squeeze()))
		return err
	}

	var sb strings.Builder
	idx := make([]int, d.Rank())
	if err := nested(&sb, d, idx, 0); err != nil {
		return err
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func nested[T tensor.Numeric](sb *strings.Builder, d *tensor.Dense[T], idx []int, axis int) error {
	if axis == len(idx) {
		v, err := d.At(idx...)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%v", v)
		return nil
	}

	shape := d.Shape()
	sb.WriteByte('[')
	for i := 0; i < shape[axis]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		idx[axis] = i
		if err := nested(sb, d, idx, axis+1); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}

// Summary returns a one-line description: data type, shape and element count.
func Summary[T tensor.Numeric](d *tensor.Dense[T]) string {
	return fmt.Sprintf("%s shape=%v elements=%d", d.DType(), []int(d.Shape()), d.NumElements())
}
