// Package field implements the DGField storage model and the
// StateVector layout: per-cell, per-variable polynomial
// coefficients for sigma, q, u, plus the variable-major trace vector
// lambda, all aliasing a single externally-owned buffer so DAE
// integrator state updates are zero-copy.
package field

// Block identifies which of the three per-cell coefficient blocks a
// DGField is bound to.
type Block int

const (
	Sigma Block = iota
	Q
	U
)

// Layout captures the fixed sizes (N, Nc, K) that every offset into the
// state vector derives from. N, k, Nc are fixed over a run.
type Layout struct {
	N, Nc, K int
}

// Np is the number of coefficients per variable per cell: k+1.
func (L Layout) Np() int {
	return L.K + 1
}

// CellStride is the length of one cell's (sigma,q,u) block across all
// variables: 3*N*(k+1).
func (L Layout) CellStride() int {
	return 3 * L.N * L.Np()
}

// LambdaBase is the offset in Y where the trace block begins, i.e. the
// length of the cell-interior portion of Y.
func (L Layout) LambdaBase() int {
	return L.Nc * L.CellStride()
}

// Len is the total length of the state vector Y.
func (L Layout) Len() int {
	return L.LambdaBase() + L.N*(L.Nc+1)
}

// blockOffset returns the offset within a cell's stride for the given
// block ordering: sigma, then q, then u.
func blockOffset(b Block, N, np int) int {
	switch b {
	case Sigma:
		return 0
	case Q:
		return N * np
	case U:
		return 2 * N * np
	}
	panic("field: unknown block")
}

// Offset returns the index of coefficient 0 of (block, variable v, cell
// i) within Y: i*3N(k+1) + s*N(k+1) + v*(k+1), for block s.
func (L Layout) Offset(b Block, v, i int) int {
	np := L.Np()
	return i*L.CellStride() + blockOffset(b, L.N, np) + v*np
}

// LambdaOffset returns the index of lambda[v*(Nc+1)+j] within Y's trace
// block ("variable-major").
func (L Layout) LambdaOffset(v, j int) int {
	return L.LambdaBase() + v*(L.Nc+1) + j
}
