package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/born-ml/einsum/internal/einsum"
	"github.com/born-ml/einsum/internal/format"
	"github.com/born-ml/einsum/internal/serialization"
	"github.com/born-ml/einsum/internal/telemetry"
	"github.com/born-ml/einsum/internal/tensor"
)

type runOptions struct {
	jobPath  string
	parallel bool
	workers  int
	out      string
	verbose  bool
	metrics  bool
}

func newRunCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a job file",
		Example: `  einsum run --job matmul.yaml
  einsum run --job contraction.yaml --parallel --workers 8 --out result.safetensors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := LoadJob(opts.jobPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("parallel") {
				job.Parallel.Enabled = opts.parallel
			}
			if opts.workers > 0 {
				job.Parallel.NumWorkers = opts.workers
			}
			if job.Parallel.Enabled {
				job.Parallel = job.Parallel.WithDefaults()
			}
			if opts.out != "" {
				// Flag paths are relative to the working directory, not the job file.
				if job.Output, err = filepath.Abs(opts.out); err != nil {
					return err
				}
			}
			return runJob(cmd.Context(), job, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.jobPath, "job", "j", "", "YAML job file")
	flags.BoolVar(&opts.parallel, "parallel", false, "split evaluation across workers")
	flags.IntVar(&opts.workers, "workers", 0, "number of workers (default: CPU count)")
	flags.StringVarP(&opts.out, "out", "o", "", "write the result to a SafeTensors file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics to stderr after the run")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

// runJob evaluates job, prints the result to stdout and logs to stderr.
func runJob(ctx context.Context, job *Job, opts runOptions, stdout, stderr io.Writer) error {
	registry := prometheus.NewRegistry()
	e := einsum.NewEvaluator(
		einsum.WithParallel(job.Parallel),
		einsum.WithLogger(telemetry.NewLogger(stderr, opts.verbose)),
		einsum.WithMetrics(telemetry.NewMetrics(registry)),
	)

	var err error
	switch job.dtype {
	case tensor.Float32:
		err = evaluateJob[float32](ctx, e, job, stdout)
	case tensor.Float64:
		err = evaluateJob[float64](ctx, e, job, stdout)
	case tensor.Int32:
		err = evaluateJob[int32](ctx, e, job, stdout)
	case tensor.Int64:
		err = evaluateJob[int64](ctx, e, job, stdout)
	case tensor.Uint8:
		err = evaluateJob[uint8](ctx, e, job, stdout)
	default:
		err = fmt.Errorf("%w: unsupported dtype %s", errInvalidJob, job.dtype)
	}

	if opts.metrics {
		if merr := writeMetrics(stderr, registry); merr != nil && err == nil {
			err = merr
		}
	}
	return err
}

func evaluateJob[T tensor.Numeric](ctx context.Context, e *einsum.Evaluator, job *Job, stdout io.Writer) error {
	operands, err := loadOperands[T](job)
	if err != nil {
		return err
	}

	result, err := einsum.Run(ctx, e, job.Subscripts, operands...)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(stdout, "%s = %s\n", job.Subscripts, format.Summary(result)); err != nil {
		return err
	}
	if err := format.Write(stdout, result); err != nil {
		return err
	}

	if job.Output == "" {
		return nil
	}
	return serialization.SaveSafeTensors(job.path(job.Output),
		map[string]*tensor.Dense[T]{"result": result},
		map[string]string{"subscripts": job.Subscripts})
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
