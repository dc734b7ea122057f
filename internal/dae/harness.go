// Package dae adapts the HDG core (assembler, residual, jacobian) to
// the thin integrator contract the core hands off to: a residual
// evaluator, a shift-parameterized linear solve, an id-mask
// distinguishing differential from algebraic state slots, and a
// consistent-initial-condition correction, grounded on
// original_source/SystemSolver.hpp's declared (but, in the retrieved
// sources, unimplemented) solveNonIDA entrypoint and on the general
// shape of an explicit/implicit ODE driver's callback interface as
// cpmech/gosl/ode.Solver exposes it in
// BookmarkSciencePrrojects-gofem/mdl/retention/model.go (fcn/jac
// callbacks plus an explicit tolerance-driven Solve call). That
// external integrator is not wired in directly: spec.md scopes the DAE
// time integrator itself as an external collaborator, and the pack
// does not carry gosl/ode's source to ground its exact mass-matrix
// DAE API with confidence — so the core stays integrator-agnostic
// behind this package's Harness, and bdf1.go supplies one concrete,
// minimal driver satisfying the same contract so the command-line tool
// has something to call.
package dae

import (
	"github.com/openhdg/hdg1d/internal/field"
)

// ResidualFunc evaluates F(t,Y,Y') into res.
type ResidualFunc func(t float64, Y, Ydot, res []float64) error

// LinearSolveFunc returns deltaY solving (dF/dY + alpha*dF/dY')*deltaY = g.
type LinearSolveFunc func(alpha float64, Y, g, delta []float64) error

// Harness bundles the core's two entrypoints behind the integrator
// contract's shape: callers never see internal/assembler,
// internal/residual or internal/jacobian directly.
type Harness struct {
	Layout field.Layout
	Eval   ResidualFunc
	Solve  LinearSolveFunc
}

// IDMask returns a length-Len() vector: 1 at every u-coefficient slot
// (differential), 0 everywhere else (sigma, q and the trace lambda are
// algebraic).
func (h *Harness) IDMask() []float64 {
	L := h.Layout
	mask := make([]float64, L.Len())
	np := L.Np()
	for i := 0; i < L.Nc; i++ {
		off := L.Offset(field.U, 0, i)
		for j := 0; j < L.N*np; j++ {
			mask[off+j] = 1
		}
	}
	return mask
}

// ConsistentIC corrects Y/Ydot at t0 into a state satisfying every
// algebraic equation exactly: lambda from R4=0 given the projected
// sigma/u, then u-dot from R2 treated as an explicit expression for it,
// with sigma-dot, q-dot and lambda-dot left at zero. Y's sigma, q and u
// blocks must already hold the projected initial condition; Ydot is
// overwritten in full.
func (h *Harness) ConsistentIC(t0 float64, Y, Ydot []float64) error {
	L := h.Layout
	for i := range Ydot {
		Ydot[i] = 0
	}
	res := make([]float64, L.Len())
	if err := h.Eval(t0, Y, Ydot, res); err != nil {
		return err
	}

	// R4 = -lambda + lambda_solved, so lambda_solved = lambda + R4.
	base := L.LambdaBase()
	ntrace := L.N * (L.Nc + 1)
	for j := 0; j < ntrace; j++ {
		Y[base+j] += res[base+j]
	}

	// Re-evaluate with the corrected lambda and Ydot still zero: R2's q
	// block now holds B*sigma + D*u + E*lambda + F - RF_u, the
	// negative of the u-dot that makes R2 vanish.
	if err := h.Eval(t0, Y, Ydot, res); err != nil {
		return err
	}
	np := L.Np()
	for i := 0; i < L.Nc; i++ {
		qOff := L.Offset(field.Q, 0, i)
		uOff := L.Offset(field.U, 0, i)
		for j := 0; j < L.N*np; j++ {
			Ydot[uOff+j] = -res[qOff+j]
		}
	}
	return nil
}
