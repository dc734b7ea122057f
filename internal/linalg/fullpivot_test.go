package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFullPivLUSolve(t *testing.T) {
	A := mat.NewDense(3, 3, []float64{
		2, 1, 0,
		1, 3, 1,
		0, 1, 4,
	})
	fact, err := NewFullPivLU(A)
	require.NoError(t, err)

	b := []float64{3, 5, 6}
	x, err := fact.Solve(b)
	require.NoError(t, err)

	var got mat.VecDense
	got.MulVec(A, mat.NewVecDense(3, x))
	for i := 0; i < 3; i++ {
		assert.InDelta(t, b[i], got.AtVec(i), 1e-9)
	}
}

func TestFullPivLUSingular(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{1, 2, 2, 4})
	_, err := NewFullPivLU(A)
	assert.Error(t, err)
}

func TestFullPivLUSolveMat(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{4, 1, 1, 3})
	fact, err := NewFullPivLU(A)
	require.NoError(t, err)

	B := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	X, err := fact.SolveMat(B)
	require.NoError(t, err)

	var prod mat.Dense
	prod.Mul(A, X)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, B.At(i, j), prod.At(i, j), 1e-9)
		}
	}
}

func TestAccumulateTraceBlockAndVec(t *testing.T) {
	nc := 2
	g := mat.NewDense(nc+1, nc+1, nil)
	block := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	AccumulateTraceBlock(g, nc, 0, 0, block)
	AccumulateTraceBlock(g, nc, 0, 1, block)
	// cell 1's contribution overlaps cell 0's at trace node 1.
	assert.Equal(t, 1.0, g.At(0, 0))
	assert.Equal(t, 4.0+1.0, g.At(1, 1))
	assert.Equal(t, 4.0, g.At(2, 2))

	vec := make([]float64, nc+1)
	AccumulateTraceVec(vec, nc, 0, 0, [2]float64{1, 2})
	AccumulateTraceVec(vec, nc, 0, 1, [2]float64{3, 4})
	assert.Equal(t, []float64{1, 2 + 3, 4}, vec)
}
