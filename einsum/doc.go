// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package einsum evaluates Einstein summation expressions over dense arrays.
//
// An expression such as "ij,jk->ik" names every axis of every operand with a
// single letter. Labels shared between operands are multiplied together and
// labels missing from the output are summed over.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/einsum/einsum"
//	    "github.com/born-ml/einsum/tensor"
//	)
//
//	func main() {
//	    a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    b, _ := tensor.FromSlice([]float64{5, 6, 7, 8}, tensor.Shape{2, 2})
//
//	    c, err := einsum.Evaluate("ij,jk->ik", a, b)  // matrix product
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(c.Values())  // [19 22 43 50]
//	}
//
// # Common Expressions
//
//	"ij,jk->ik"    matrix product
//	"ii->"         trace
//	"ii->i"        diagonal
//	"ij->ji"       transpose
//	"i,j->ij"      outer product
//	"pqrs,rs->pq"  double contraction
//
// # Parallel Evaluation
//
// EvaluateParallel splits the joint index space into contiguous ranges, one
// per worker. Each worker accumulates into a private output that is merged in
// range order, so results are reproducible for a fixed configuration.
//
// # Observability
//
// An Evaluator created with NewEvaluator carries a logger, Prometheus metrics
// and an OpenTelemetry tracer. Run evaluates through it.
//
// # Errors
//
// Every failure matches one of the Err* sentinels via errors.Is. Kind returns
// that sentinel and KindName a stable label suitable for metrics.
package einsum
