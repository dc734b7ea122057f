package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "case.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validConfig = `
[configuration]
Polynomial_degree = 2
Grid_size = 10
Number_of_channels = 1
Lower_boundary = 0.0
Upper_boundary = 1.0
LB_Type = "Dirichlet"
UB_Type = "Dirichlet"
LB_Value = 0.0
UB_Value = 1.0
Initial_condition = "sine"
Diffusion_case = "constant"
Reaction_case = "zero"
delta_t = 0.01
t_final = 1.0
`

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, validConfig)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.PolynomialDegree)
	assert.Equal(t, 10, cfg.GridSize)
	assert.Equal(t, 1, cfg.NumberOfChannels)
	assert.Equal(t, 0.0, cfg.LowerBoundary)
	assert.Equal(t, 1.0, cfg.UpperBoundary)
	assert.True(t, IsDirichlet(cfg.LBType))
	assert.Equal(t, 1.0, cfg.UBValue)
	// Defaulted keys the config supplements.
	assert.Equal(t, 1e-5, cfg.RelativeTolerance)
	assert.Equal(t, 1e-5, cfg.AbsoluteTolerance)
}

func TestLoadDefaultsBoundaryValuesToZero(t *testing.T) {
	body := `
[configuration]
Polynomial_degree = 1
Grid_size = 4
Number_of_channels = 1
Lower_boundary = 0.0
Upper_boundary = 1.0
LB_Type = "VonNeumann"
UB_Type = "VonNeumann"
Initial_condition = "sine"
Diffusion_case = "constant"
Reaction_case = "zero"
delta_t = 0.01
t_final = 1.0
`
	path := writeConfig(t, body)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.LBValue)
	assert.Equal(t, 0.0, cfg.UBValue)
	assert.Equal(t, 0.0, cfg.ConvectionCoefficient)
}

func TestLoadParsesConvectionCoefficient(t *testing.T) {
	body := `
[configuration]
Polynomial_degree = 1
Grid_size = 4
Number_of_channels = 1
Lower_boundary = 0.0
Upper_boundary = 1.0
LB_Type = "Dirichlet"
UB_Type = "Dirichlet"
Convection_coefficient = 1.0
Initial_condition = "sine"
Diffusion_case = "constant"
Reaction_case = "zero"
delta_t = 0.01
t_final = 1.0
`
	path := writeConfig(t, body)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.ConvectionCoefficient)
}

func TestLoadRejectsMissingTable(t *testing.T) {
	path := writeConfig(t, "other_table = true\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadBoundaryKind(t *testing.T) {
	body := `
[configuration]
Polynomial_degree = 1
Grid_size = 4
Number_of_channels = 1
Lower_boundary = 0.0
Upper_boundary = 1.0
LB_Type = "Robin"
UB_Type = "Dirichlet"
Initial_condition = "sine"
Diffusion_case = "constant"
Reaction_case = "zero"
delta_t = 0.01
t_final = 1.0
`
	path := writeConfig(t, body)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvertedBounds(t *testing.T) {
	body := `
[configuration]
Polynomial_degree = 1
Grid_size = 4
Number_of_channels = 1
Lower_boundary = 1.0
Upper_boundary = 0.0
LB_Type = "Dirichlet"
UB_Type = "Dirichlet"
Initial_condition = "sine"
Diffusion_case = "constant"
Reaction_case = "zero"
delta_t = 0.01
t_final = 1.0
`
	path := writeConfig(t, body)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingRequiredKey(t *testing.T) {
	body := `
[configuration]
Polynomial_degree = 1
Number_of_channels = 1
Lower_boundary = 0.0
Upper_boundary = 1.0
LB_Type = "Dirichlet"
UB_Type = "Dirichlet"
Initial_condition = "sine"
Diffusion_case = "constant"
Reaction_case = "zero"
delta_t = 0.01
t_final = 1.0
`
	path := writeConfig(t, body)
	_, err := Load(path)
	assert.Error(t, err)
}
