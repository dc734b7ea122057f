package diffusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhdg/hdg1d/internal/physics"
)

func TestMatrixDiffusionCouplesVariables(t *testing.T) {
	K := []interface{}{
		[]interface{}{1.0, 0.5},
		[]interface{}{0.0, 2.0},
	}
	d, err := physics.NewDiffusion("matrix", 2, physics.Params{"K": K})
	require.NoError(t, err)

	q := []float64{2, 3}
	u := []float64{0, 0}
	assert.InDelta(t, 1.0*2+0.5*3, d.Kappa(0, 0, q, u), 1e-12)
	assert.InDelta(t, 0.0*2+2.0*3, d.Kappa(1, 0, q, u), 1e-12)
	assert.Equal(t, 0.5, d.DKappaDq(0, 1, 0, q, u))
	assert.Equal(t, 0.0, d.DKappaDu(0, 1, 0, q, u))
}

func TestMatrixDiffusionRequiresK(t *testing.T) {
	_, err := physics.NewDiffusion("matrix", 2, physics.Params{})
	assert.Error(t, err)
}
