package einsum

import (
	"errors"
	"fmt"

	"github.com/born-ml/einsum/internal/tensor"
)

// Error kinds. Every error returned by this package matches exactly one of
// them via errors.Is.
var (
	ErrMalformedExpression  = errors.New("einsum: malformed expression")
	ErrOperandCountMismatch = errors.New("einsum: operand count mismatch")
	ErrIncompatibleAxisSize = errors.New("einsum: incompatible axis size")
	ErrUnknownOutputLabel   = errors.New("einsum: unknown output label")
	ErrJointSpaceTooLarge   = errors.New("einsum: joint index space too large")

	// ErrRankMismatch and ErrOutOfRange are shared with the tensor package so
	// that accessor failures and resolver failures match the same sentinel.
	ErrRankMismatch = tensor.ErrRankMismatch
	ErrOutOfRange   = tensor.ErrOutOfRange
)

// noOperand marks an Error that is not tied to a specific operand.
const noOperand = -1

// Error carries the context of a failed evaluation.
type Error struct {
	Kind    error  // One of the Err* sentinels
	Operand int    // Operand position, -1 if not applicable
	Label   byte   // Offending label, 0 if not applicable
	Detail  string // Human-readable details
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Operand >= 0 && e.Label != 0:
		return fmt.Sprintf("%v: operand %d, label %q: %s", e.Kind, e.Operand, e.Label, e.Detail)
	case e.Operand >= 0:
		return fmt.Sprintf("%v: operand %d: %s", e.Kind, e.Operand, e.Detail)
	case e.Label != 0:
		return fmt.Sprintf("%v: label %q: %s", e.Kind, e.Label, e.Detail)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, operand int, label byte, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Operand: operand,
		Label:   label,
		Detail:  fmt.Sprintf(format, args...),
	}
}

// Kind returns the sentinel matched by err, or nil if err did not come from
// this package. It is used to label metrics and log lines.
func Kind(err error) error {
	for _, kind := range []error{
		ErrMalformedExpression,
		ErrOperandCountMismatch,
		ErrRankMismatch,
		ErrIncompatibleAxisSize,
		ErrUnknownOutputLabel,
		ErrJointSpaceTooLarge,
		ErrOutOfRange,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindName returns a short stable name for the error kind of err.
func KindName(err error) string {
	switch Kind(err) {
	case ErrMalformedExpression:
		return "malformed_expression"
	case ErrOperandCountMismatch:
		return "operand_count_mismatch"
	case ErrRankMismatch:
		return "rank_mismatch"
	case ErrIncompatibleAxisSize:
		return "incompatible_axis_size"
	case ErrUnknownOutputLabel:
		return "unknown_output_label"
	case ErrJointSpaceTooLarge:
		return "joint_space_too_large"
	case ErrOutOfRange:
		return "out_of_range"
	default:
		return "other"
	}
}
