package einsum

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/telemetry"
	"github.com/born-ml/einsum/internal/tensor"
)

// Evaluate computes an Einstein summation on the calling goroutine.
//
// Example:
//
//	a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	b, _ := tensor.FromSlice([]float64{5, 6, 7, 8}, tensor.Shape{2, 2})
//	c, _ := Evaluate("ij,jk->ik", a, b) // [[19 22] [43 50]]
func Evaluate[T tensor.Numeric](subscripts string, operands ...*tensor.Dense[T]) (*tensor.Dense[T], error) {
	p, err := Prepare(subscripts, operands)
	if err != nil {
		return nil, err
	}
	return Execute(p, operands, parallel.Config{})
}

// EvaluateParallel computes an Einstein summation with the joint index space
// split across workers according to cfg.
func EvaluateParallel[T tensor.Numeric](subscripts string, cfg parallel.Config, operands ...*tensor.Dense[T]) (*tensor.Dense[T], error) {
	p, err := Prepare(subscripts, operands)
	if err != nil {
		return nil, err
	}
	return Execute(p, operands, cfg)
}

// Prepare parses subscripts, resolves label sizes against operands and
// compiles the plan. All validation happens here, before any output exists.
func Prepare[T tensor.Numeric](subscripts string, operands []*tensor.Dense[T]) (*Plan, error) {
	s, err := ParseSubscripts(subscripts)
	if err != nil {
		return nil, err
	}
	sizes, err := Resolve(s.Operands, operands)
	if err != nil {
		return nil, err
	}
	shapes, err := shapesOf(operands)
	if err != nil {
		return nil, err
	}
	return Compile(s.Operands, s.Output, shapes, sizes)
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithParallel sets the worker configuration.
func WithParallel(cfg parallel.Config) Option {
	return func(e *Evaluator) {
		e.parallel = cfg
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// WithTracer sets the OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Evaluator) {
		e.tracer = tracer
	}
}

// Evaluator evaluates expressions with shared configuration and instrumentation.
// It holds no per-call state and is safe for concurrent use.
type Evaluator struct {
	parallel parallel.Config
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
}

// NewEvaluator creates an Evaluator. Without options it evaluates
// sequentially, discards logs, records no metrics and uses the global tracer.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		logger: telemetry.DiscardLogger(),
		tracer: telemetry.Tracer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the evaluator's parallel configuration.
func (e *Evaluator) Config() parallel.Config {
	return e.parallel
}

// Run evaluates subscripts over operands with e's configuration.
//
// ctx carries the trace context only; evaluation is not cancellable.
func Run[T tensor.Numeric](ctx context.Context, e *Evaluator, subscripts string, operands ...*tensor.Dense[T]) (result *tensor.Dense[T], err error) {
	start := time.Now()
	mode := telemetry.ModeSequential

	_, span := e.tracer.Start(ctx, "einsum.Evaluate",
		trace.WithAttributes(
			attribute.String("einsum.subscripts", subscripts),
			attribute.Int("einsum.operands", len(operands)),
			attribute.String("einsum.dtype", tensor.DataTypeOf[T]().String()),
		),
	)
	defer func() {
		span.SetAttributes(attribute.String("einsum.mode", mode))
		telemetry.EndSpan(span, err)
	}()

	p, err := Prepare(subscripts, operands)
	if err != nil {
		e.fail(mode, subscripts, err)
		return nil, err
	}

	workers := len(parallel.Split(p.JointPoints(), e.parallel))
	if workers > 1 {
		mode = telemetry.ModeParallel
	}
	span.SetAttributes(
		attribute.Int("einsum.joint_points", p.JointPoints()),
		attribute.Int("einsum.workers", workers),
	)

	result, err = Execute(p, operands, e.parallel)
	if err != nil {
		e.fail(mode, subscripts, err)
		return nil, err
	}

	duration := time.Since(start)
	e.metrics.ObserveSuccess(mode, duration, p.JointPoints(), workers)
	e.logger.Debug("einsum_evaluated",
		slog.String("subscripts", subscripts),
		slog.String("mode", mode),
		slog.Int("joint_points", p.JointPoints()),
		slog.Int("workers", workers),
		slog.Any("output_shape", []int(p.OutputShape())),
		slog.Duration("duration", duration),
	)
	return result, nil
}

func (e *Evaluator) fail(mode, subscripts string, err error) {
	kind := KindName(err)
	e.metrics.ObserveFailure(mode, kind)
	e.logger.Warn("einsum_failed",
		slog.String("subscripts", subscripts),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}
