package field

import (
	"math"

	"github.com/openhdg/hdg1d/internal/basis"
)

// DGField binds a raw coefficient buffer and exposes, per (variable v,
// cell i), a coefficient view and a handful of pointwise operations.
// Fields used for Y/Y' never own memory (DGField.Bind); fields used for
// scratch own their backing buffer with scoped lifetime (NewScratch).
type DGField struct {
	layout Layout
	block  Block
	grid   basis.Grid
	bas    *basis.LegendreBasis
	buf    []float64 // non-owning view into Y, or an owned scratch buffer
}

// Bind returns a DGField that is a non-owning view of block within buf
// (typically Y or Y'). buf must be at least layout.Len() long.
func Bind(layout Layout, grid basis.Grid, bas *basis.LegendreBasis, buf []float64, block Block) DGField {
	return DGField{layout: layout, block: block, grid: grid, bas: bas, buf: buf}
}

// NewScratch allocates an owned, zeroed buffer sized for layout's cell
// blocks (not the trace block: scratch fields only ever hold
// sigma/q/u-shaped data).
func NewScratch(layout Layout, grid basis.Grid, bas *basis.LegendreBasis, block Block) DGField {
	buf := make([]float64, layout.Nc*layout.CellStride())
	return DGField{layout: layout, block: block, grid: grid, bas: bas, buf: buf}
}

// Coeffs returns the coefficient slice (length k+1) for (variable v,
// cell i). The slice aliases the field's backing buffer.
func (f DGField) Coeffs(v, i int) []float64 {
	off := f.layout.Offset(f.block, v, i)
	return f.buf[off : off+f.layout.Np()]
}

// CellBlock returns the full length-N*(k+1) slice for cell i, all
// variables concatenated in variable-major order (v*(k+1)+j) — the same
// contiguous span the assembler's block-diagonal-over-variables matrices
// (A,B,D,...) are sized for, so callers can multiply those matrices
// directly against this slice without per-variable loops.
func (f DGField) CellBlock(i int) []float64 {
	np := f.layout.Np()
	off := f.layout.Offset(f.block, 0, i)
	return f.buf[off : off+f.layout.N*np]
}

// Zero clears all coefficients of this field.
func (f DGField) Zero() {
	for i := 0; i < f.layout.Nc; i++ {
		for v := 0; v < f.layout.N; v++ {
			c := f.Coeffs(v, i)
			for j := range c {
				c[j] = 0
			}
		}
	}
}

// Assign projects g(x) onto the basis cell-wise for variable v: since
// the basis is orthonormal on each cell, the projection is read
// directly from quadrature (no mass-matrix solve needed).
func (f DGField) Assign(v int, g func(x float64) float64) {
	for i, I := range f.grid.Cells {
		c := f.Coeffs(v, i)
		proj := f.bas.Project(I, g)
		copy(c, proj)
	}
}

// Eval locates the containing cell and evaluates via the basis.
// Returns NaN if x is out of [a,b] (out-of-range evaluation is
// intentionally silent; callers detect it themselves).
func (f DGField) Eval(x float64, v int) float64 {
	i := f.grid.Locate(x)
	if i < 0 {
		return math.NaN()
	}
	return f.bas.Evaluate(f.grid.Cells[i], f.Coeffs(v, i), x)
}

// EvalInCell evaluates variable v's field value at x, given that x is
// already known to lie in cell i (avoids the Locate search that Eval
// performs; used by the residual/Jacobian quadrature loops which
// already iterate cell-by-cell).
func (f DGField) EvalInCell(i, v int, x float64) float64 {
	return f.bas.Evaluate(f.grid.Cells[i], f.Coeffs(v, i), x)
}

// AddInto computes dst := a + b component-wise,
// writing into dst's own buffer. a, b and dst must share layout/block
// shape (Nc, N, K) though they may be different Block kinds.
func AddInto(dst, a, b DGField) {
	for i := 0; i < dst.layout.Nc; i++ {
		for v := 0; v < dst.layout.N; v++ {
			d := dst.Coeffs(v, i)
			ca := a.Coeffs(v, i)
			cb := b.Coeffs(v, i)
			for j := range d {
				d[j] = ca[j] + cb[j]
			}
		}
	}
}

// Layout exposes the field's fixed sizing.
func (f DGField) Layout() Layout { return f.layout }

// Trace is a non-owning view of the lambda block of Y: N*(Nc+1) scalars,
// variable-major.
type Trace struct {
	layout Layout
	buf    []float64
}

// BindTrace returns a Trace view into buf's lambda segment.
func BindTrace(layout Layout, buf []float64) Trace {
	base := layout.LambdaBase()
	return Trace{layout: layout, buf: buf[base : base+layout.N*(layout.Nc+1)]}
}

func (t Trace) At(v, j int) float64 {
	return t.buf[v*(t.layout.Nc+1)+j]
}

func (t Trace) Set(v, j int, val float64) {
	t.buf[v*(t.layout.Nc+1)+j] = val
}

// Cell returns the two trace values (lower, upper) for variable v at
// cell i, i.e. lambda[v][i] and lambda[v][i+1] ( lambda_cell_v).
func (t Trace) Cell(v, i int) (lo, hi float64) {
	return t.At(v, i), t.At(v, i+1)
}

// CellVector gathers lambda_cell for every variable at cell i into a
// single length-2N vector, variable-major ([lo_0,hi_0,lo_1,hi_1,...]) to
// match the row order of the assembler's cell-level C/E/G/H matrices.
func (t Trace) CellVector(i int) []float64 {
	out := make([]float64, 2*t.layout.N)
	for v := 0; v < t.layout.N; v++ {
		lo, hi := t.Cell(v, i)
		out[2*v], out[2*v+1] = lo, hi
	}
	return out
}
