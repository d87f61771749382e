package einsum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/einsum/internal/tensor"
)

// Resolve binds every operand label to the size of the axis it names.
//
// It fails with ErrOperandCountMismatch if the number of groups differs from
// the number of operands, with ErrRankMismatch if a group's length differs
// from its operand's rank, and with ErrIncompatibleAxisSize if a label is
// bound to two different sizes, within one operand or across operands.
func Resolve[T tensor.Numeric](groups []string, operands []*tensor.Dense[T]) (*LabelSizes, error) {
	if len(groups) != len(operands) {
		return nil, newError(ErrOperandCountMismatch, noOperand, 0,
			"%d label groups for %d operands", len(groups), len(operands))
	}

	sizes := NewLabelSizes()
	for i, group := range groups {
		if operands[i] == nil {
			return nil, errNilOperand(i)
		}
		shape := operands[i].Shape()
		if len(group) != len(shape) {
			return nil, newError(ErrRankMismatch, i, 0,
				"labels %q name %d axes, operand has rank %d", group, len(group), len(shape))
		}
		for axis := 0; axis < len(group); axis++ {
			if err := sizes.Bind(group[axis], shape[axis]); err != nil {
				return nil, atOperand(err, i, axis)
			}
		}
	}
	return sizes, nil
}

// OutputShape looks up the size of each output label, preserving output order.
//
// It fails with ErrUnknownOutputLabel if a label is not bound in sizes and with
// ErrMalformedExpression if a label is repeated.
func OutputShape(output string, sizes *LabelSizes) (tensor.Shape, error) {
	shape := make(tensor.Shape, 0, len(output))
	for i := 0; i < len(output); i++ {
		label := output[i]
		if strings.IndexByte(output[:i], label) >= 0 {
			return nil, newError(ErrMalformedExpression, noOperand, label, "repeated in output %q", output)
		}
		size, ok := sizes.Lookup(label)
		if !ok {
			return nil, newError(ErrUnknownOutputLabel, noOperand, label, "not present in any operand")
		}
		shape = append(shape, size)
	}
	return shape, nil
}

func errNilOperand(operand int) error {
	return newError(ErrRankMismatch, operand, 0, "operand is nil")
}

// atOperand attaches operand context to an error raised by LabelSizes.Bind.
func atOperand(err error, operand, axis int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	e.Operand = operand
	e.Detail = fmt.Sprintf("axis %d: %s", axis, e.Detail)
	return e
}
