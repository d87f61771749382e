package einsum

// maxLabels is the size of the label alphabet: a-z followed by A-Z.
const maxLabels = 52

// labelSlot maps a label to its table slot.
func labelSlot(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return 26 + int(c-'A'), true
	default:
		return 0, false
	}
}

// LabelSizes maps axis labels to axis sizes.
//
// It is a fixed-capacity table indexed by label value. Labels are iterated in
// the order they were first bound, independent of their alphabetical order.
type LabelSizes struct {
	size  [maxLabels]int // 0 means unbound
	order []byte
}

// NewLabelSizes returns an empty table.
func NewLabelSizes() *LabelSizes {
	return &LabelSizes{order: make([]byte, 0, maxLabels)}
}

// Bind associates label with size.
// Binding a label again with a different size fails with ErrIncompatibleAxisSize.
func (ls *LabelSizes) Bind(label byte, size int) error {
	slot, ok := labelSlot(label)
	if !ok {
		return newError(ErrMalformedExpression, noOperand, label, "not a label")
	}
	if size <= 0 {
		return newError(ErrIncompatibleAxisSize, noOperand, label, "size %d is not positive", size)
	}

	switch bound := ls.size[slot]; bound {
	case 0:
		ls.size[slot] = size
		ls.order = append(ls.order, label)
	case size:
	default:
		return newError(ErrIncompatibleAxisSize, noOperand, label, "bound to %d, got %d", bound, size)
	}
	return nil
}

// Lookup returns the size bound to label.
func (ls *LabelSizes) Lookup(label byte) (int, bool) {
	slot, ok := labelSlot(label)
	if !ok || ls.size[slot] == 0 {
		return 0, false
	}
	return ls.size[slot], true
}

// Labels returns the bound labels in first-binding order.
func (ls *LabelSizes) Labels() []byte {
	out := make([]byte, len(ls.order))
	copy(out, ls.order)
	return out
}

// Len returns the number of bound labels.
func (ls *LabelSizes) Len() int {
	return len(ls.order)
}
