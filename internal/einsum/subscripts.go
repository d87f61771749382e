package einsum

import "strings"

// arrow separates operand label groups from the output labels.
const arrow = "->"

// Subscripts is a parsed subscript expression such as "ij,jk->ik".
type Subscripts struct {
	Operands []string // One label group per operand, in order. A group may be empty (rank 0).
	Output   string   // Output labels in output axis order. Empty for a scalar result.
}

// ParseSubscripts splits an expression of the form "<in1>,<in2>,...-><out>".
//
// It fails with ErrMalformedExpression if the separator is missing or repeated,
// or if any label is not an ASCII letter. It does not check labels against
// operand ranks; see Resolve.
//
// Example:
//
//	s, _ := ParseSubscripts("ij,jk->ik")
//	// s.Operands == []string{"ij", "jk"}, s.Output == "ik"
func ParseSubscripts(expr string) (Subscripts, error) {
	switch n := strings.Count(expr, arrow); n {
	case 1:
	case 0:
		return Subscripts{}, newError(ErrMalformedExpression, noOperand, 0, "missing %q in %q", arrow, expr)
	default:
		return Subscripts{}, newError(ErrMalformedExpression, noOperand, 0, "%q appears %d times in %q", arrow, n, expr)
	}

	lhs, output, _ := strings.Cut(expr, arrow)
	operands := strings.Split(lhs, ",")

	for i, group := range operands {
		if c, ok := firstInvalidLabel(group); !ok {
			return Subscripts{}, newError(ErrMalformedExpression, i, c, "not a label in group %q", group)
		}
	}
	if c, ok := firstInvalidLabel(output); !ok {
		return Subscripts{}, newError(ErrMalformedExpression, noOperand, c, "not a label in output %q", output)
	}

	return Subscripts{Operands: operands, Output: output}, nil
}

// String renders the expression back to its textual form.
func (s Subscripts) String() string {
	return strings.Join(s.Operands, ",") + arrow + s.Output
}

// firstInvalidLabel returns the first byte of group that is not a label.
func firstInvalidLabel(group string) (byte, bool) {
	for i := 0; i < len(group); i++ {
		if _, ok := labelSlot(group[i]); !ok {
			return group[i], false
		}
	}
	return 0, true
}
