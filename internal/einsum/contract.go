package einsum

import (
	"slices"

	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/tensor"
)

// Plan is a compiled contraction.
//
// Every distinct label becomes one dimension of the joint index space, and
// every operand and output position is mapped to the joint dimension of its
// label. A label repeated inside one operand maps all its positions to the
// same dimension, which is what makes "ii->" a trace.
type Plan struct {
	labels   []byte
	space    jointSpace
	shapes   []tensor.Shape // operand shapes the plan was compiled for
	operands [][]int        // operand -> position -> joint dimension
	output   []int          // output position -> joint dimension
	outShape tensor.Shape
}

// Compile builds a plan for operands of the given shapes.
//
// The joint index space has one dimension per distinct label, in order of
// first appearance across groups. sizes must bind every label; Resolve
// produces a suitable table. Compile re-checks the operand count, ranks and
// axis sizes against sizes, so a table that was not resolved from these
// shapes is rejected rather than producing out-of-range reads. Entries of
// sizes that no group uses are ignored.
func Compile(groups []string, output string, shapes []tensor.Shape, sizes *LabelSizes) (*Plan, error) {
	if len(groups) != len(shapes) {
		return nil, newError(ErrOperandCountMismatch, noOperand, 0,
			"%d label groups for %d operands", len(groups), len(shapes))
	}
	outShape, err := OutputShape(output, sizes)
	if err != nil {
		return nil, err
	}

	var (
		dim     [maxLabels]int // label slot -> joint dimension
		used    [maxLabels]bool
		labels  []byte
		extents []int
	)
	operands := make([][]int, len(groups))
	for i, group := range groups {
		if len(group) != len(shapes[i]) {
			return nil, newError(ErrRankMismatch, i, 0,
				"labels %q name %d axes, operand has rank %d", group, len(group), len(shapes[i]))
		}
		operands[i] = make([]int, len(group))
		for pos := 0; pos < len(group); pos++ {
			label := group[pos]
			slot, ok := labelSlot(label)
			if !ok {
				return nil, newError(ErrMalformedExpression, i, label, "not a letter")
			}
			size, ok := sizes.Lookup(label)
			if !ok || size != shapes[i][pos] {
				return nil, newError(ErrIncompatibleAxisSize, i, label,
					"axis %d has size %d, label table has %d", pos, shapes[i][pos], size)
			}
			if !used[slot] {
				used[slot] = true
				dim[slot] = len(labels)
				labels = append(labels, label)
				extents = append(extents, size)
			}
			operands[i][pos] = dim[slot]
		}
	}

	out := make([]int, len(output))
	for pos := 0; pos < len(output); pos++ {
		slot, _ := labelSlot(output[pos])
		if !used[slot] {
			return nil, newError(ErrUnknownOutputLabel, noOperand, output[pos], "no operand carries it")
		}
		out[pos] = dim[slot]
	}

	space, err := newJointSpace(extents)
	if err != nil {
		return nil, err
	}

	p := &Plan{
		labels:   labels,
		space:    space,
		shapes:   make([]tensor.Shape, len(shapes)),
		operands: operands,
		output:   out,
		outShape: outShape,
	}
	for i, s := range shapes {
		p.shapes[i] = s.Clone()
	}
	return p, nil
}

// JointPoints returns the number of points in the joint index space.
func (p *Plan) JointPoints() int {
	return p.space.Size()
}

// Labels returns the joint dimensions' labels in iteration order.
func (p *Plan) Labels() []byte {
	return slices.Clone(p.labels)
}

// OutputShape returns the shape of the result.
func (p *Plan) OutputShape() tensor.Shape {
	return p.outShape.Clone()
}

// check verifies that operands match the shapes the plan was compiled for.
func (p *Plan) check(shapes []tensor.Shape) error {
	if len(shapes) != len(p.shapes) {
		return newError(ErrOperandCountMismatch, noOperand, 0,
			"plan compiled for %d operands, got %d", len(p.shapes), len(shapes))
	}
	for i, s := range shapes {
		if len(s) != len(p.shapes[i]) {
			return newError(ErrRankMismatch, i, 0, "plan compiled for rank %d, got %d", len(p.shapes[i]), len(s))
		}
		if !s.Equal(p.shapes[i]) {
			return newError(ErrIncompatibleAxisSize, i, 0, "plan compiled for shape %v, got %v", p.shapes[i], s)
		}
	}
	return nil
}

// Contract evaluates the contraction sequentially.
//
// For every point of the joint index space it multiplies the operand elements
// selected by the point and adds the product into the output element selected
// by the output labels. Labels missing from the output are thereby summed.
// Operands are only read; the result is a newly allocated array.
func Contract[T tensor.Numeric](groups []string, output string, operands []*tensor.Dense[T], sizes *LabelSizes) (*tensor.Dense[T], error) {
	shapes, err := shapesOf(operands)
	if err != nil {
		return nil, err
	}
	p, err := Compile(groups, output, shapes, sizes)
	if err != nil {
		return nil, err
	}
	return Execute(p, operands, parallel.Config{})
}

// Execute runs a compiled plan. With a parallel config that splits the joint
// space into more than one range it accumulates per-worker buffers; otherwise
// it runs on the calling goroutine.
func Execute[T tensor.Numeric](p *Plan, operands []*tensor.Dense[T], cfg parallel.Config) (*tensor.Dense[T], error) {
	shapes, err := shapesOf(operands)
	if err != nil {
		return nil, err
	}
	if err := p.check(shapes); err != nil {
		return nil, err
	}

	ranges := parallel.Split(p.space.Size(), cfg)
	if len(ranges) > 1 {
		return executeParallel(p, operands, ranges)
	}

	out, err := tensor.New[T](p.outShape)
	if err != nil {
		return nil, err
	}
	if err := accumulate(p, operands, out, 0, p.space.Size()); err != nil {
		return nil, err
	}
	return out, nil
}

// accumulate adds the contributions of the joint points [start, end) into out.
func accumulate[T tensor.Numeric](p *Plan, operands []*tensor.Dense[T], out *tensor.Dense[T], start, end int) error {
	local := make([][]int, len(operands))
	for i := range operands {
		local[i] = make([]int, len(p.operands[i]))
	}
	outIdx := make([]int, len(p.output))

	for _, coords := range p.space.points(start, end) {
		product := T(1)
		for i, op := range operands {
			idx := local[i]
			for pos, d := range p.operands[i] {
				idx[pos] = coords[d]
			}
			v, err := op.At(idx...)
			if err != nil {
				return err
			}
			product *= v
		}

		for pos, d := range p.output {
			outIdx[pos] = coords[d]
		}
		if err := out.Add(product, outIdx...); err != nil {
			return err
		}
	}
	return nil
}

// shapesOf collects operand shapes, rejecting nil operands.
func shapesOf[T tensor.Numeric](operands []*tensor.Dense[T]) ([]tensor.Shape, error) {
	shapes := make([]tensor.Shape, len(operands))
	for i, op := range operands {
		if op == nil {
			return nil, errNilOperand(i)
		}
		shapes[i] = op.Shape()
	}
	return shapes, nil
}
