// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package einsum

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/born-ml/einsum/internal/einsum"
	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/telemetry"
	"github.com/born-ml/einsum/tensor"
)

// Config controls parallel evaluation.
type Config = parallel.Config

// DefaultConfig returns a configuration using all CPUs.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// Subscripts is a parsed expression.
type Subscripts = einsum.Subscripts

// ParseSubscripts splits an expression into operand groups and the output group.
func ParseSubscripts(expr string) (Subscripts, error) {
	return einsum.ParseSubscripts(expr)
}

// LabelSizes maps each label to its extent.
type LabelSizes = einsum.LabelSizes

// Resolve binds every label to the extent of the axes it names.
func Resolve[T tensor.Numeric](groups []string, operands []*tensor.Dense[T]) (*LabelSizes, error) {
	return einsum.Resolve(groups, operands)
}

// Contract evaluates parsed groups against operands using a resolved label table.
func Contract[T tensor.Numeric](groups []string, output string, operands []*tensor.Dense[T], sizes *LabelSizes) (*tensor.Dense[T], error) {
	return einsum.Contract(groups, output, operands, sizes)
}

// ContractParallel is Contract with the joint index space split across workers.
func ContractParallel[T tensor.Numeric](groups []string, output string, operands []*tensor.Dense[T], sizes *LabelSizes, cfg Config) (*tensor.Dense[T], error) {
	return einsum.ContractParallel(groups, output, operands, sizes, cfg)
}

// Plan is a validated evaluation that can be executed repeatedly against
// operands of the same shapes.
type Plan = einsum.Plan

// Prepare validates subscripts against operands and returns a plan.
func Prepare[T tensor.Numeric](subscripts string, operands []*tensor.Dense[T]) (*Plan, error) {
	return einsum.Prepare(subscripts, operands)
}

// Execute runs a plan.
func Execute[T tensor.Numeric](p *Plan, operands []*tensor.Dense[T], cfg Config) (*tensor.Dense[T], error) {
	return einsum.Execute(p, operands, cfg)
}

// Evaluate computes an Einstein summation on the calling goroutine.
//
// Example:
//
//	c, err := einsum.Evaluate("ij,jk->ik", a, b)
func Evaluate[T tensor.Numeric](subscripts string, operands ...*tensor.Dense[T]) (*tensor.Dense[T], error) {
	return einsum.Evaluate(subscripts, operands...)
}

// EvaluateParallel computes an Einstein summation using cfg's workers.
//
// Example:
//
//	c, err := einsum.EvaluateParallel("ij,jk->ik", einsum.DefaultConfig(), a, b)
func EvaluateParallel[T tensor.Numeric](subscripts string, cfg Config, operands ...*tensor.Dense[T]) (*tensor.Dense[T], error) {
	return einsum.EvaluateParallel(subscripts, cfg, operands...)
}

// Evaluator evaluates expressions with logging, metrics and tracing.
// It is safe for concurrent use.
type Evaluator = einsum.Evaluator

// Option configures an Evaluator.
type Option = einsum.Option

// NewEvaluator creates an Evaluator. Without options it evaluates
// sequentially and discards logs.
func NewEvaluator(opts ...Option) *Evaluator {
	return einsum.NewEvaluator(opts...)
}

// WithParallel sets the worker configuration.
func WithParallel(cfg Config) Option {
	return einsum.WithParallel(cfg)
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return einsum.WithLogger(logger)
}

// WithMetrics registers evaluation metrics with reg. The collectors can be
// registered once per registerer; a second Evaluator needs its own registry.
func WithMetrics(reg prometheus.Registerer) Option {
	return einsum.WithMetrics(telemetry.NewMetrics(reg))
}

// WithTracer sets the OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) Option {
	return einsum.WithTracer(tracer)
}

// Run evaluates subscripts through e.
func Run[T tensor.Numeric](ctx context.Context, e *Evaluator, subscripts string, operands ...*tensor.Dense[T]) (*tensor.Dense[T], error) {
	return einsum.Run(ctx, e, subscripts, operands...)
}
