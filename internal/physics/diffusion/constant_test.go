package diffusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhdg/hdg1d/internal/physics"
)

func TestConstantDiffusionDefaultsToZero(t *testing.T) {
	d, err := physics.NewDiffusion("constant", 2, physics.Params{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Kappa(0, 0.5, []float64{1, 1}, []float64{1, 1}))
	assert.Equal(t, 0.0, d.DKappaDq(0, 0, 0.5, nil, nil))
	assert.Equal(t, 0.0, d.DKappaDu(0, 0, 0.5, nil, nil))
}

func TestConstantDiffusionUniformBroadcast(t *testing.T) {
	d, err := physics.NewDiffusion("constant", 3, physics.Params{"kappa0": 0.5})
	require.NoError(t, err)
	for v := 0; v < 3; v++ {
		assert.Equal(t, 0.5, d.Kappa(v, 0, nil, nil))
	}
}

func TestConstantDiffusionPerVariable(t *testing.T) {
	d, err := physics.NewDiffusion("constant", 2, physics.Params{"kappa0": []interface{}{1.0, 2.0}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.Kappa(0, 0, nil, nil))
	assert.Equal(t, 2.0, d.Kappa(1, 0, nil, nil))
}
