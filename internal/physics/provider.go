// Package physics defines the pluggable diffusion/source provider
// capability, grounded on original_source/PhysicsCases's
// TransportSystem interface (SigmaFn/Sources plus their d*_du/dq
// partials): a provider supplies pointwise evaluation and partials only
// — projecting those onto the cell basis and assembling the full
// N(k+1)xN(k+1) Jacobian blocks is shared, provider-independent
// quadrature logic (jacobian_block.go), matching how the original
// separates per-variable pointwise physics from the matrix assembly
// that happens in SystemSolver::updateMForJacSolve.
package physics

// Diffusion evaluates kappa_v(x,q,u) and its partials w.r.t. every
// q_j, u_j. q and u are the N field values at x (all variables),
// not just variable v — this is what lets a provider like Matrix
// diffusion couple variables.
type Diffusion interface {
	Kappa(v int, x float64, q, u []float64) float64
	DKappaDq(v, j int, x float64, q, u []float64) float64
	DKappaDu(v, j int, x float64, q, u []float64) float64
}

// Source evaluates f_v(x,q,u) and its partials w.r.t. q_j, u_j, sigma_j.
type Source interface {
	F(v int, x float64, q, u []float64) float64
	DFDq(v, j int, x float64, q, u []float64) float64
	DFDu(v, j int, x float64, q, u []float64) float64
	DFDsigma(v, j int, x float64, q, u []float64) float64
}
