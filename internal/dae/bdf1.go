package dae

import (
	"fmt"
	"math"

	"github.com/openhdg/hdg1d/internal/errs"
	"github.com/openhdg/hdg1d/internal/field"
)

// BDF1Stepper advances the state one fixed step with backward Euler:
// only the u-block carries a time derivative (per Harness.IDMask), so
// u-dot at the trial state is just (u_new-u_old)/dt; every other slot's
// time derivative never appears in the residual and is left at zero.
// Each step runs a plain Newton iteration against Harness.Solve with
// shift alpha=1/dt, in the style of a minimal fixed-step nonlinear
// solver loop (cf. PaddySchmidt-gofem/msolid's Newton correction inside
// princstrainsup.go, adapted here to the DAE residual/linear-solve
// pair instead of a stress-update residual).
type BDF1Stepper struct {
	H             *Harness
	RelTol        float64
	AbsTol        float64
	MaxNewtonIter int
}

// NewBDF1Stepper applies the defaults from spec.md's configuration
// table (1e-5) when relTol/absTol are non-positive.
func NewBDF1Stepper(h *Harness, relTol, absTol float64) *BDF1Stepper {
	if relTol <= 0 {
		relTol = 1e-5
	}
	if absTol <= 0 {
		absTol = 1e-5
	}
	return &BDF1Stepper{H: h, RelTol: relTol, AbsTol: absTol, MaxNewtonIter: 20}
}

// Step advances Y in place from t to t+dt. Y must hold a consistent
// state on entry (e.g. from Harness.ConsistentIC on the first call, or
// the output of a prior Step).
func (s *BDF1Stepper) Step(t, dt float64, Y []float64) error {
	L := s.H.Layout
	np := L.Np()
	alpha := 1 / dt
	tNew := t + dt

	Yold := make([]float64, L.Len())
	copy(Yold, Y)
	Ydot := make([]float64, L.Len())
	res := make([]float64, L.Len())
	rhs := make([]float64, L.Len())
	delta := make([]float64, L.Len())

	updateYdot := func() {
		for i := 0; i < L.Nc; i++ {
			off := L.Offset(field.U, 0, i)
			for j := 0; j < L.N*np; j++ {
				Ydot[off+j] = (Y[off+j] - Yold[off+j]) * alpha
			}
		}
	}

	for iter := 0; iter < s.MaxNewtonIter; iter++ {
		updateYdot()
		if err := s.H.Eval(tNew, Y, Ydot, res); err != nil {
			return fmt.Errorf("bdf1: step t=%g dt=%g iter %d: %w", t, dt, iter, err)
		}
		if s.converged(res, Y) {
			return nil
		}
		for i := range rhs {
			rhs[i] = -res[i]
		}
		if err := s.H.Solve(alpha, Y, rhs, delta); err != nil {
			return fmt.Errorf("bdf1: step t=%g dt=%g iter %d: %w", t, dt, iter, err)
		}
		for i := range Y {
			Y[i] += delta[i]
		}
	}
	return fmt.Errorf("%w: bdf1: Newton did not converge in %d iterations at t=%g", errs.ErrResidual, s.MaxNewtonIter, tNew)
}

// converged applies a weighted-RMS test: ||res_i / (AbsTol +
// RelTol*|Y_i|)|| <= 1.
func (s *BDF1Stepper) converged(res, Y []float64) bool {
	var sumSq float64
	n := len(res)
	for i := 0; i < n; i++ {
		w := s.AbsTol + s.RelTol*math.Abs(Y[i])
		r := res[i] / w
		sumSq += r * r
	}
	return math.Sqrt(sumSq/float64(n)) <= 1
}
