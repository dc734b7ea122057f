// Package diffusion supplies the concrete Diffusion providers
// registered under the Diffusion_case config key, grounded on
// original_source/PhysicsCases/MatrixDiffusion.hpp's pattern of a small
// per-case struct implementing the shared TransportSystem capability.
package diffusion

import (
	"fmt"

	"github.com/openhdg/hdg1d/internal/physics"
)

func init() {
	physics.RegisterDiffusion("constant", newConstant)
}

// Constant is kappa_v(x,q,u) = kappa0[v], the simplest case: constant
// diffusivity per variable ("kappa=1" / "kappa=0.01").
type Constant struct {
	kappa0 []float64
}

func newConstant(N int, p physics.Params) (physics.Diffusion, error) {
	k0, err := physics.FloatsOrUniform(p, "kappa0", N)
	if err != nil {
		return nil, fmt.Errorf("diffusion.constant: %w", err)
	}
	return &Constant{kappa0: k0}, nil
}

func (c *Constant) Kappa(v int, x float64, q, u []float64) float64 {
	return c.kappa0[v]
}

func (c *Constant) DKappaDq(v, j int, x float64, q, u []float64) float64 {
	return 0
}

func (c *Constant) DKappaDu(v, j int, x float64, q, u []float64) float64 {
	return 0
}
