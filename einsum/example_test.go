// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package einsum_test

import (
	"fmt"

	"github.com/born-ml/einsum/einsum"
	"github.com/born-ml/einsum/tensor"
)

func ExampleEvaluate() {
	a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b, _ := tensor.FromSlice([]float64{5, 6, 7, 8}, tensor.Shape{2, 2})

	c, err := einsum.Evaluate("ij,jk->ik", a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c.Shape(), c.Values())
	// Output: [2 2] [19 22 43 50]
}

func ExampleEvaluate_trace() {
	m, _ := tensor.FromSlice([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{3, 3})

	tr, _ := einsum.Evaluate("ii->", m)
	v, _ := tr.At()
	fmt.Println(v)
	// Output: 15
}

func ExampleEvaluate_doubleContraction() {
	in := make([]int64, 16)
	for i := range in {
		in[i] = int64(i + 1)
	}
	x, _ := tensor.FromSlice(in, tensor.Shape{2, 2, 2, 2})
	d, _ := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2})

	j, _ := einsum.Evaluate("pqrs,rs->pq", x, d)
	fmt.Println(j.Values())
	// Output: [30 70 110 150]
}
