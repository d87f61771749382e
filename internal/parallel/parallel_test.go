package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		n    int
		cfg  Config
		want []Range
	}{
		{
			name: "empty",
			n:    0,
			cfg:  Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1},
			want: nil,
		},
		{
			name: "disabled",
			n:    100,
			cfg:  Config{Enabled: false, NumWorkers: 4, MinChunkSize: 1},
			want: []Range{{0, 100}},
		},
		{
			name: "below min chunk",
			n:    10,
			cfg:  Config{Enabled: true, NumWorkers: 4, MinChunkSize: 64},
			want: []Range{{0, 10}},
		},
		{
			name: "even split",
			n:    100,
			cfg:  Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1},
			want: []Range{{0, 25}, {25, 50}, {50, 75}, {75, 100}},
		},
		{
			name: "uneven split",
			n:    10,
			cfg:  Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1},
			want: []Range{{0, 4}, {4, 8}, {8, 10}},
		},
		{
			name: "min chunk caps workers",
			n:    100,
			cfg:  Config{Enabled: true, NumWorkers: 8, MinChunkSize: 40},
			want: []Range{{0, 40}, {40, 80}, {80, 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.n, tt.cfg)
			assert.Equal(t, tt.want, got)

			covered := 0
			for _, r := range got {
				covered += r.Len()
			}
			assert.Equal(t, max(tt.n, 0), covered)
		})
	}
}

func TestRun_FirstErrorInRangeOrder(t *testing.T) {
	ranges := Split(100, Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	errLow := errors.New("low")
	errHigh := errors.New("high")

	err := Run(ranges, func(i int, _ Range) error {
		switch i {
		case 1:
			return errLow
		case 3:
			return errHigh
		}
		return nil
	})
	assert.ErrorIs(t, err, errLow)
}

func TestRun_VisitsEveryRange(t *testing.T) {
	ranges := Split(1000, Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1})
	seen := make([]int, 1000)

	err := Run(ranges, func(_ int, r Range) error {
		for i := r.Start; i < r.End; i++ {
			seen[i]++
		}
		return nil
	})
	require.NoError(t, err)
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func BenchmarkRun(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			_ = Run(Split(n, cfg), func(_ int, r Range) error {
				for j := r.Start; j < r.End; j++ {
					atomic.AddInt64(&sum, int64(j))
				}
				return nil
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			_ = Run(Split(n, cfgSeq), func(_ int, r Range) error {
				for j := r.Start; j < r.End; j++ {
					atomic.AddInt64(&sum, int64(j))
				}
				return nil
			})
		}
	})
}

func TestConfig_WithDefaults(t *testing.T) {
	def := DefaultConfig()

	got := Config{Enabled: true}.WithDefaults()
	assert.Equal(t, Config{Enabled: true, NumWorkers: def.NumWorkers, MinChunkSize: def.MinChunkSize}, got)

	set := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 5}
	assert.Equal(t, set, set.WithDefaults())
}
