// Package parallel provides data-parallel execution helpers for the einsum engine.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool `yaml:"enabled"`   // Whether parallel execution is enabled.
	NumWorkers   int  `yaml:"workers"`   // Number of worker goroutines to use.
	MinChunkSize int  `yaml:"min_chunk"` // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// WithDefaults fills unset worker and chunk counts from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.NumWorkers <= 0 {
		c.NumWorkers = d.NumWorkers
	}
	if c.MinChunkSize <= 0 {
		c.MinChunkSize = d.MinChunkSize
	}
	return c
}

// Range is a half-open interval [Start, End) of a flattened iteration space.
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split partitions [0, n) into contiguous ranges, at most one per worker.
// No range is shorter than cfg.MinChunkSize except possibly the last one.
// A disabled config, or n below MinChunkSize, yields a single range.
func Split(n int, cfg Config) []Range {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		return []Range{{Start: 0, End: n}}
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	ranges := make([]Range, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		ranges = append(ranges, Range{Start: start, End: min(start+chunkSize, n)})
	}
	return ranges
}

// Run executes f once per range, each on its own goroutine, and waits for all of them.
// It returns the error of the lowest-numbered failing range.
func Run(ranges []Range, f func(i int, r Range) error) error {
	if len(ranges) == 1 {
		return f(0, ranges[0])
	}

	errs := make([]error, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r Range) {
			defer wg.Done()
			errs[i] = f(i, r)
		}(i, r)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
