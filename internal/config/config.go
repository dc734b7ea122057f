// Package config reads and validates the `configuration` table that
// drives a run: grid/basis sizing, boundary conditions, the selected
// diffusion/source/initial-condition providers and integrator
// tolerances. Parsing is done with viper (TOML), grounded on
// gocfd/InputParameters's pattern of a single tagged struct plus a
// `Parse` entrypoint that aborts the whole run on the first bad key —
// adapted here from a YAML/`ghodss-yaml` reader to viper/TOML per the
// richer config library the corpus also depends on.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/openhdg/hdg1d/internal/errs"
)

// Config is the parsed, validated `configuration` table.
type Config struct {
	PolynomialDegree      int
	GridSize              int
	NumberOfChannels      int
	LowerBoundary         float64
	UpperBoundary         float64
	LBType                string
	UBType                string
	LBValue               float64
	UBValue               float64
	ConvectionCoefficient float64
	InitialCondition      string
	DiffusionCase         string
	ReactionCase          string
	DeltaT                float64
	TFinal                float64
	RelativeTolerance     float64
	AbsoluteTolerance     float64
	DiffusionParams       map[string]interface{}
	ReactionParams        map[string]interface{}
}

// Load reads and validates the `configuration` table out of path,
// format inferred from its extension (TOML expected).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: config: %v", errs.ErrConfiguration, err)
	}
	sub := v.Sub("configuration")
	if sub == nil {
		return nil, fmt.Errorf("%w: config: missing [configuration] table", errs.ErrConfiguration)
	}
	sub.SetDefault("lb_value", 0.0)
	sub.SetDefault("ub_value", 0.0)
	sub.SetDefault("convection_coefficient", 0.0)
	sub.SetDefault("relative_tolerance", 1e-5)
	sub.SetDefault("absolute_tolerance", 1e-5)

	cfg := &Config{
		PolynomialDegree:      sub.GetInt("polynomial_degree"),
		GridSize:              sub.GetInt("grid_size"),
		NumberOfChannels:      sub.GetInt("number_of_channels"),
		LowerBoundary:         sub.GetFloat64("lower_boundary"),
		UpperBoundary:         sub.GetFloat64("upper_boundary"),
		LBType:                sub.GetString("lb_type"),
		UBType:                sub.GetString("ub_type"),
		LBValue:               sub.GetFloat64("lb_value"),
		UBValue:               sub.GetFloat64("ub_value"),
		ConvectionCoefficient: sub.GetFloat64("convection_coefficient"),
		InitialCondition:      sub.GetString("initial_condition"),
		DiffusionCase:         sub.GetString("diffusion_case"),
		ReactionCase:          sub.GetString("reaction_case"),
		DeltaT:                sub.GetFloat64("delta_t"),
		TFinal:                sub.GetFloat64("t_final"),
		RelativeTolerance:     sub.GetFloat64("relative_tolerance"),
		AbsoluteTolerance:     sub.GetFloat64("absolute_tolerance"),
		DiffusionParams:       sub.GetStringMap("diffusion_params"),
		ReactionParams:        sub.GetStringMap("reaction_params"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.PolynomialDegree < 0 {
		missing = append(missing, "Polynomial_degree")
	}
	if c.GridSize < 1 {
		missing = append(missing, "Grid_size")
	}
	if c.NumberOfChannels < 1 {
		missing = append(missing, "Number_of_channels")
	}
	if !(c.LowerBoundary < c.UpperBoundary) {
		return fmt.Errorf("%w: config: Lower_boundary (%v) must be < Upper_boundary (%v)", errs.ErrConfiguration, c.LowerBoundary, c.UpperBoundary)
	}
	if !isBCKind(c.LBType) {
		return fmt.Errorf("%w: config: LB_Type %q must be Dirichlet or VonNeumann", errs.ErrConfiguration, c.LBType)
	}
	if !isBCKind(c.UBType) {
		return fmt.Errorf("%w: config: UB_Type %q must be Dirichlet or VonNeumann", errs.ErrConfiguration, c.UBType)
	}
	if c.InitialCondition == "" {
		missing = append(missing, "Initial_condition")
	}
	if c.DiffusionCase == "" {
		missing = append(missing, "Diffusion_case")
	}
	if c.ReactionCase == "" {
		missing = append(missing, "Reaction_case")
	}
	if c.DeltaT <= 0 {
		missing = append(missing, "delta_t")
	}
	if c.TFinal <= 0 {
		missing = append(missing, "t_final")
	}
	if c.RelativeTolerance <= 0 || c.AbsoluteTolerance <= 0 {
		return fmt.Errorf("%w: config: Relative_tolerance and Absolute_tolerance must be > 0", errs.ErrConfiguration)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: config: missing or invalid key(s): %s", errs.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

func isBCKind(s string) bool {
	return strings.EqualFold(s, "Dirichlet") || strings.EqualFold(s, "VonNeumann")
}

// IsDirichlet reports whether s (an LB_Type/UB_Type value) selects a
// Dirichlet boundary.
func IsDirichlet(s string) bool {
	return strings.EqualFold(s, "Dirichlet")
}
