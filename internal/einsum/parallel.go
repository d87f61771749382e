package einsum

import (
	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/tensor"
)

// ContractParallel evaluates the contraction on a pool of workers.
//
// The joint index space is split into contiguous ranges. Each worker
// accumulates its range into a private output buffer; after all workers have
// finished, the buffers are summed into the result in range order. Workers
// never share mutable state, and for a fixed config the summation order,
// and therefore floating-point rounding, is the same on every run.
func ContractParallel[T tensor.Numeric](groups []string, output string, operands []*tensor.Dense[T], sizes *LabelSizes, cfg parallel.Config) (*tensor.Dense[T], error) {
	shapes, err := shapesOf(operands)
	if err != nil {
		return nil, err
	}
	p, err := Compile(groups, output, shapes, sizes)
	if err != nil {
		return nil, err
	}
	return Execute(p, operands, cfg)
}

func executeParallel[T tensor.Numeric](p *Plan, operands []*tensor.Dense[T], ranges []parallel.Range) (*tensor.Dense[T], error) {
	partials := make([]*tensor.Dense[T], len(ranges))

	err := parallel.Run(ranges, func(i int, r parallel.Range) error {
		buf, err := tensor.New[T](p.outShape)
		if err != nil {
			return err
		}
		if err := accumulate(p, operands, buf, r.Start, r.End); err != nil {
			return err
		}
		partials[i] = buf
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := partials[0]
	for _, part := range partials[1:] {
		if err := out.Accumulate(part); err != nil {
			return nil, err
		}
	}
	return out, nil
}
