package einsum

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/tensor"
)

// testConfig forces a split even for tiny joint spaces.
var testConfig = parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

func randomInts(rng *rand.Rand, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.Int63n(21) - 10
	}
	return out
}

func TestEvaluateParallel_MatchesSequentialIntegers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := mustFromSlice(t, randomInts(rng, 4*5*6), 4, 5, 6)
	b := mustFromSlice(t, randomInts(rng, 6*5*3), 6, 5, 3)
	m := mustFromSlice(t, randomInts(rng, 7*7), 7, 7)

	tests := []struct {
		expr     string
		operands []*tensor.Dense[int64]
	}{
		{"ijk,kjl->il", []*tensor.Dense[int64]{a, b}},
		{"ijk,kjl->li", []*tensor.Dense[int64]{a, b}},
		{"ijk,kjl->", []*tensor.Dense[int64]{a, b}},
		{"ijk,kjl->ijkl", []*tensor.Dense[int64]{a, b}},
		{"ii->", []*tensor.Dense[int64]{m}},
		{"ij->ji", []*tensor.Dense[int64]{m}},
	}

	configs := []parallel.Config{
		testConfig,
		{Enabled: true, NumWorkers: 3, MinChunkSize: 1},
		{Enabled: true, NumWorkers: 16, MinChunkSize: 7},
		{Enabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			want, err := Evaluate(tt.expr, tt.operands...)
			require.NoError(t, err)

			for _, cfg := range configs {
				got, err := EvaluateParallel(tt.expr, cfg, tt.operands...)
				require.NoError(t, err)
				assert.True(t, want.Equal(got), "config %+v", cfg)
			}
		})
	}
}

func TestEvaluateParallel_FloatWithinTolerance(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	data := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = rng.Float64()*2 - 1
		}
		return out
	}
	a := mustFromSlice(t, data(16*24), 16, 24)
	b := mustFromSlice(t, data(24*8), 24, 8)

	want, err := Evaluate("ij,jk->ik", a, b)
	require.NoError(t, err)
	got, err := EvaluateParallel("ij,jk->ik", testConfig, a, b)
	require.NoError(t, err)

	wv, gv := want.Values(), got.Values()
	require.Len(t, gv, len(wv))
	for i := range wv {
		assert.InDelta(t, wv[i], gv[i], 1e-9)
	}
}

func TestEvaluateParallel_Reproducible(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data := make([]float32, 9*10*11)
	for i := range data {
		data[i] = float32(rng.NormFloat64())
	}
	x := mustFromSlice(t, data, 9, 10, 11)

	first, err := EvaluateParallel("ijk->k", testConfig, x)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := EvaluateParallel("ijk->k", testConfig, x)
		require.NoError(t, err)
		for j, v := range first.Values() {
			assert.Equal(t, math.Float32bits(v), math.Float32bits(again.Values()[j]))
		}
	}
}

func TestEvaluateParallel_ValidationBeforeWork(t *testing.T) {
	a := mustFromSlice(t, sequence[float64](4), 2, 2)

	out, err := EvaluateParallel("ij,jk->ik", testConfig, a)
	assert.ErrorIs(t, err, ErrOperandCountMismatch)
	assert.Nil(t, out)

	out, err = EvaluateParallel("ij->k", testConfig, a)
	assert.ErrorIs(t, err, ErrUnknownOutputLabel)
	assert.Nil(t, out)
}

func TestContractParallel(t *testing.T) {
	a := mustFromSlice(t, []int32{1, 2, 3, 4}, 2, 2)
	b := mustFromSlice(t, []int32{5, 6, 7, 8}, 2, 2)
	operands := []*tensor.Dense[int32]{a, b}

	sizes, err := Resolve([]string{"ij", "jk"}, operands)
	require.NoError(t, err)

	c, err := ContractParallel([]string{"ij", "jk"}, "ik", operands, sizes, testConfig)
	require.NoError(t, err)
	assert.Equal(t, []int32{19, 22, 43, 50}, c.Values())
}

func BenchmarkEvaluate_Contraction(b *testing.B) {
	rng := rand.New(rand.NewSource(4))
	x := mustFromSlice(b, randomInts(rng, 16*16*16), 16, 16, 16)
	y := mustFromSlice(b, randomInts(rng, 16*16*16), 16, 16, 16)

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := Evaluate("ijk,jkl->il", x, y); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("parallel", func(b *testing.B) {
		cfg := parallel.DefaultConfig()
		for i := 0; i < b.N; i++ {
			if _, err := EvaluateParallel("ijk,jkl->il", cfg, x, y); err != nil {
				b.Fatal(err)
			}
		}
	})
}
