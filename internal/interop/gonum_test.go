package interop

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/einsum/internal/einsum"
	"github.com/born-ml/einsum/internal/tensor"
)

func randomMatrix(rng *rand.Rand, r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(r, c, data)
}

func TestMatrixRoundTrip(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	d, err := FromMatrix(m)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, d.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, d.Values())

	back, err := ToMatrix(d)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, back))
}

func TestFromMatrix_Transposed(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	d, err := FromMatrix(m.T())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, d.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, d.Values())
}

func TestVectorRoundTrip(t *testing.T) {
	v := mat.NewVecDense(3, []float64{1, -2, 3})

	d, err := FromVector(v)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2, 3}, d.Values())

	back, err := ToVector(d)
	require.NoError(t, err)
	assert.True(t, mat.Equal(v, back))
}

func TestToMatrix_RankMismatch(t *testing.T) {
	d, err := tensor.New[int32](tensor.Shape{2, 2, 2})
	require.NoError(t, err)

	_, err = ToMatrix(d)
	assert.ErrorIs(t, err, tensor.ErrRankMismatch)
	_, err = ToVector(d)
	assert.ErrorIs(t, err, tensor.ErrRankMismatch)
}

func TestEinsumMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomMatrix(rng, 5, 7)
	b := randomMatrix(rng, 7, 3)
	v := mat.NewVecDense(7, nil)
	for i := 0; i < 7; i++ {
		v.SetVec(i, rng.NormFloat64())
	}

	da, err := FromMatrix(a)
	require.NoError(t, err)
	db, err := FromMatrix(b)
	require.NoError(t, err)
	dv, err := FromVector(v)
	require.NoError(t, err)

	t.Run("matmul", func(t *testing.T) {
		var want mat.Dense
		want.Mul(a, b)

		got, err := einsum.Evaluate("ij,jk->ik", da, db)
		require.NoError(t, err)
		gm, err := ToMatrix(got)
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(&want, gm, 1e-12))
	})

	t.Run("transpose product", func(t *testing.T) {
		var want mat.Dense
		want.Mul(b.T(), a.T())

		got, err := einsum.Evaluate("ij,jk->ki", da, db)
		require.NoError(t, err)
		gm, err := ToMatrix(got)
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(&want, gm, 1e-12))
	})

	t.Run("matrix vector", func(t *testing.T) {
		var want mat.VecDense
		want.MulVec(a, v)

		got, err := einsum.Evaluate("ij,j->i", da, dv)
		require.NoError(t, err)
		gv, err := ToVector(got)
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(&want, gv, 1e-12))
	})

	t.Run("trace", func(t *testing.T) {
		sq := randomMatrix(rng, 6, 6)
		dsq, err := FromMatrix(sq)
		require.NoError(t, err)

		got, err := einsum.Evaluate("ii->", dsq)
		require.NoError(t, err)
		tr, err := got.At()
		require.NoError(t, err)
		assert.InDelta(t, mat.Trace(sq), tr, 1e-12)
	})
}
