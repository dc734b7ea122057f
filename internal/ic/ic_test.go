package ic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/field"
	"github.com/openhdg/hdg1d/internal/physics"
	_ "github.com/openhdg/hdg1d/internal/physics/diffusion"
)

func TestSineProfile(t *testing.T) {
	prof, err := New("sine", 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, prof.U0(0), 1e-12)
	assert.InDelta(t, math.Pi, prof.DU0(0), 1e-9)
}

func TestStepProfileCentersOnMidpoint(t *testing.T) {
	prof, err := New("step", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, prof.U0(0.5))
	assert.Equal(t, 1.0, prof.U0(1.5))
}

func TestUnknownProfile(t *testing.T) {
	_, err := New("nonexistent", 0, 1)
	assert.Error(t, err)
}

func TestApplySetsSigmaFromProjectedKappa(t *testing.T) {
	grid, err := basis.NewUniformGrid(0, 1, 4)
	require.NoError(t, err)
	bas, err := basis.NewLegendreBasis(2)
	require.NoError(t, err)
	L := field.Layout{N: 1, Nc: 4, K: 2}
	diff, err := physics.NewDiffusion("constant", 1, physics.Params{"kappa0": 0.5})
	require.NoError(t, err)
	prof, err := New("sine", 0, 1)
	require.NoError(t, err)

	Y := make([]float64, L.Len())
	Apply(L, grid, bas, diff, prof, Y)

	u := field.Bind(L, grid, bas, Y, field.U)
	sigma := field.Bind(L, grid, bas, Y, field.Sigma)
	for _, x := range []float64{0.1, 0.5, 0.9} {
		// u holds the cell-wise L2 projection of sin(pi x), not sin itself.
		I := grid.Cells[grid.Locate(x)]
		assert.InDelta(t, bas.Evaluate(I, bas.Project(I, prof.U0), x), u.Eval(x, 0), 1e-9)
		// kappa is constant 0.5, so sigma = -0.5 everywhere.
		assert.InDelta(t, -0.5, sigma.Eval(x, 0), 1e-9)
	}
}
