// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package einsum

import "github.com/born-ml/einsum/internal/einsum"

// Error kinds.
var (
	ErrMalformedExpression  = einsum.ErrMalformedExpression
	ErrOperandCountMismatch = einsum.ErrOperandCountMismatch
	ErrRankMismatch         = einsum.ErrRankMismatch
	ErrIncompatibleAxisSize = einsum.ErrIncompatibleAxisSize
	ErrUnknownOutputLabel   = einsum.ErrUnknownOutputLabel
	ErrJointSpaceTooLarge   = einsum.ErrJointSpaceTooLarge
	ErrOutOfRange           = einsum.ErrOutOfRange
)

// Error carries the kind of a failure plus the operand and label involved.
type Error = einsum.Error

// Kind returns the sentinel err matches, or nil.
func Kind(err error) error {
	return einsum.Kind(err)
}

// KindName returns a stable snake_case name for err's kind.
func KindName(err error) string {
	return einsum.KindName(err)
}
