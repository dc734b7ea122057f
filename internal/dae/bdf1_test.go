package dae

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhdg/hdg1d/internal/field"
)

// A single-cell, single-variable, degree-0 harness whose only equation
// is the scalar decay du/dt = -u (R2 = udot + u), with sigma/q/lambda
// algebraically pinned to zero so the Newton solve only ever has one
// true degree of freedom. LinearSolve inverts the 1x1 system exactly:
// (alpha + 1)*delta_u = -res_u.
func scalarDecayHarness(L field.Layout) *Harness {
	uOff := L.Offset(field.U, 0, 0)
	sigOff := L.Offset(field.Sigma, 0, 0)
	qOff := L.Offset(field.Q, 0, 0)
	base := L.LambdaBase()

	return &Harness{
		Layout: L,
		Eval: func(t float64, Y, Ydot, res []float64) error {
			res[sigOff] = Y[sigOff]
			res[qOff] = Y[qOff]
			res[uOff] = Ydot[uOff] + Y[uOff]
			for j := base; j < L.Len(); j++ {
				res[j] = Y[j]
			}
			return nil
		},
		Solve: func(alpha float64, Y, g, delta []float64) error {
			delta[sigOff] = g[sigOff]
			delta[qOff] = g[qOff]
			delta[uOff] = g[uOff] / (alpha + 1)
			for j := base; j < L.Len(); j++ {
				delta[j] = g[j]
			}
			return nil
		},
	}
}

func TestBDF1StepperMatchesExponentialDecay(t *testing.T) {
	L := field.Layout{N: 1, Nc: 1, K: 0}
	h := scalarDecayHarness(L)
	stepper := NewBDF1Stepper(h, 1e-8, 1e-10)

	uOff := L.Offset(field.U, 0, 0)
	Y := make([]float64, L.Len())
	Y[uOff] = 1.0

	dt := 1e-3
	steps := 500
	tt := 0.0
	for i := 0; i < steps; i++ {
		require.NoError(t, stepper.Step(tt, dt, Y))
		tt += dt
	}
	assert.InDelta(t, math.Exp(-tt), Y[uOff], 1e-3)
}

func TestNewBDF1StepperDefaultsTolerances(t *testing.T) {
	h := &Harness{}
	s := NewBDF1Stepper(h, 0, -1)
	assert.Equal(t, 1e-5, s.RelTol)
	assert.Equal(t, 1e-5, s.AbsTol)
}
