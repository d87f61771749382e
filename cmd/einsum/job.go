package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/serialization"
	"github.com/born-ml/einsum/internal/tensor"
)

var errInvalidJob = errors.New("invalid job")

// Job is an evaluation described in YAML.
//
//	subscripts: "ij,jk->ik"
//	dtype: float64
//	parallel: {enabled: true, workers: 4}
//	operands:
//	  - {shape: [2, 2], data: [1, 2, 3, 4]}
//	  - {file: weights.safetensors, name: B}
//	output: result.safetensors
type Job struct {
	Subscripts string          `yaml:"subscripts"`
	DType      string          `yaml:"dtype"`
	Parallel   parallel.Config `yaml:"parallel"`
	Operands   []OperandSpec   `yaml:"operands"`
	Output     string          `yaml:"output"`

	dtype tensor.DataType
	dir   string // base for relative file paths
}

// OperandSpec is either inline (Shape and Data) or a named array in a
// SafeTensors file (File and Name).
type OperandSpec struct {
	Shape []int     `yaml:"shape"`
	Data  []float64 `yaml:"data"`
	File  string    `yaml:"file"`
	Name  string    `yaml:"name"`
}

// LoadJob reads and validates a job file.
func LoadJob(path string) (*Job, error) {
	//nolint:gosec // G304: job path is supplied by the user
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job: %w", err)
	}
	job, err := ParseJob(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	job.dir = filepath.Dir(path)
	return job, nil
}

// ParseJob decodes and validates a YAML job.
func ParseJob(raw []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidJob, err)
	}
	if err := job.validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

func (j *Job) validate() error {
	if j.Subscripts == "" {
		return fmt.Errorf("%w: subscripts is required", errInvalidJob)
	}

	if j.DType == "" {
		j.DType = tensor.Float64.String()
	}
	dt, ok := tensor.ParseDataType(j.DType)
	if !ok {
		return fmt.Errorf("%w: unsupported dtype %q", errInvalidJob, j.DType)
	}
	j.dtype = dt

	for i, op := range j.Operands {
		inline := op.Shape != nil || op.Data != nil
		stored := op.File != "" || op.Name != ""
		switch {
		case inline && stored:
			return fmt.Errorf("%w: operand %d mixes inline data with a file reference", errInvalidJob, i)
		case stored && (op.File == "" || op.Name == ""):
			return fmt.Errorf("%w: operand %d needs both file and name", errInvalidJob, i)
		}
	}

	if j.Parallel.Enabled {
		j.Parallel = j.Parallel.WithDefaults()
	}
	return nil
}

func (j *Job) path(p string) string {
	if filepath.IsAbs(p) || j.dir == "" {
		return p
	}
	return filepath.Join(j.dir, p)
}

// loadOperands materializes every operand as an array of T.
// SafeTensors files are mapped once even when referenced repeatedly.
func loadOperands[T tensor.Numeric](j *Job) (_ []*tensor.Dense[T], err error) {
	files := make(map[string]*serialization.File)
	defer func() {
		for _, f := range files {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = cerr
			}
		}
	}()

	operands := make([]*tensor.Dense[T], len(j.Operands))

	for i, op := range j.Operands {
		if op.File == "" {
			values := make([]T, len(op.Data))
			for k, v := range op.Data {
				values[k] = T(v)
			}
			d, err := tensor.FromSlice(values, tensor.Shape(op.Shape))
			if err != nil {
				return nil, fmt.Errorf("operand %d: %w", i, err)
			}
			operands[i] = d
			continue
		}

		path := j.path(op.File)
		f, ok := files[path]
		if !ok {
			var err error
			if f, err = serialization.OpenSafeTensors(path); err != nil {
				return nil, fmt.Errorf("operand %d: %w", i, err)
			}
			files[path] = f
		}
		d, err := serialization.Load[T](f, op.Name)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i, err)
		}
		operands[i] = d
	}
	return operands, nil
}
