package diffusion

import (
	"fmt"

	"github.com/openhdg/hdg1d/internal/physics"
)

func init() {
	physics.RegisterDiffusion("linear", newLinear)
}

// Linear is kappa_v(x,q,u) = kappa0[v] + kappa1[v]*q_v, a mildly
// nonlinear diffusivity (exercises NLq != 0, distinguishing it from
// Constant; covers convection-diffusion-style cases when paired with a
// nonzero convection coefficient in the assembler).
type Linear struct {
	kappa0, kappa1 []float64
}

func newLinear(N int, p physics.Params) (physics.Diffusion, error) {
	k0, err := physics.FloatsOrUniform(p, "kappa0", N)
	if err != nil {
		return nil, fmt.Errorf("diffusion.linear: %w", err)
	}
	k1, err := physics.FloatsOrUniform(p, "kappa1", N)
	if err != nil {
		return nil, fmt.Errorf("diffusion.linear: %w", err)
	}
	return &Linear{kappa0: k0, kappa1: k1}, nil
}

func (l *Linear) Kappa(v int, x float64, q, u []float64) float64 {
	return l.kappa0[v] + l.kappa1[v]*q[v]
}

func (l *Linear) DKappaDq(v, j int, x float64, q, u []float64) float64 {
	if j != v {
		return 0
	}
	return l.kappa1[v]
}

func (l *Linear) DKappaDu(v, j int, x float64, q, u []float64) float64 {
	return 0
}
