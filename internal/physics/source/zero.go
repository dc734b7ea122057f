// Package source supplies the concrete Source providers registered
// under the Reaction_case config key.
package source

import "github.com/openhdg/hdg1d/internal/physics"

func init() {
	physics.RegisterSource("zero", newZero)
}

// Zero is f_v == 0, for pure diffusion or convection-diffusion runs with
// no reaction term.
type Zero struct{}

func newZero(N int, p physics.Params) (physics.Source, error) {
	return Zero{}, nil
}

func (Zero) F(v int, x float64, q, u []float64) float64           { return 0 }
func (Zero) DFDq(v, j int, x float64, q, u []float64) float64     { return 0 }
func (Zero) DFDu(v, j int, x float64, q, u []float64) float64     { return 0 }
func (Zero) DFDsigma(v, j int, x float64, q, u []float64) float64 { return 0 }
