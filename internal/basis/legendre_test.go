package basis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegendreBasisOrthonormal(t *testing.T) {
	I := Interval{Xl: -1.5, Xu: 2.25}
	bas, err := NewLegendreBasis(3)
	require.NoError(t, err)
	M := bas.MassMatrix(I, nil)
	n, _ := M.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, M.At(i, j), 1e-9)
		}
	}
}

func TestLegendreBasisProjectExactForPolynomial(t *testing.T) {
	I := Interval{Xl: 0, Xu: 1}
	bas, err := NewLegendreBasis(2)
	require.NoError(t, err)
	// x^2 is degree 2: projection onto a degree-2 modal basis must
	// reconstruct it exactly at any point in I.
	g := func(x float64) float64 { return x * x }
	c := bas.Project(I, g)
	for _, x := range []float64{0, 0.3, 0.7, 1.0} {
		assert.InDelta(t, g(x), bas.Evaluate(I, c, x), 1e-9)
	}
}

func TestGaussLegendreIntegratesExactly(t *testing.T) {
	nodes, weights := GaussLegendre(2) // 3 nodes, exact through degree 5
	var sum float64
	for i, x := range nodes {
		sum += weights[i] * math.Pow(x, 4)
	}
	// integral_{-1}^{1} x^4 dx = 2/5
	assert.InDelta(t, 2.0/5.0, sum, 1e-9)
}

func TestGridLocate(t *testing.T) {
	g, err := NewUniformGrid(0, 1, 4)
	assert.NoError(t, err)
	assert.Equal(t, 0, g.Locate(0))
	assert.Equal(t, 0, g.Locate(0.1))
	assert.Equal(t, 3, g.Locate(1.0))
	assert.Equal(t, -1, g.Locate(-0.1))
	assert.Equal(t, -1, g.Locate(1.1))
}

func TestNewUniformGridRejectsBadBounds(t *testing.T) {
	_, err := NewUniformGrid(1, 0, 4)
	assert.Error(t, err)
	_, err = NewUniformGrid(0, 1, 0)
	assert.Error(t, err)
}

func TestNewLegendreBasisRejectsNegativeDegree(t *testing.T) {
	_, err := NewLegendreBasis(-1)
	assert.Error(t, err)
}
