package physics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/openhdg/hdg1d/internal/basis"
)

// FieldAt evaluates every variable's field value at x within a known
// cell; qAt(j) and uAt(j) are the two such accessors a caller supplies
// (usually backed by field.DGField.EvalInCell) so this package need not
// depend on internal/field.
type FieldAt func(j int, x float64) float64

// ProjectKappa computes Pi_v(kappa_v(.,q,u)) over cell I: length k+1,
// entry i = <kappa_v(.,q,u), phi_i>_I, the CellProduct projection the
// u-block residual (R3) needs.
func ProjectKappa(d Diffusion, v int, N int, I basis.Interval, bas *basis.LegendreBasis, qAt, uAt FieldAt) []float64 {
	k1 := bas.K + 1
	out := make([]float64, k1)
	qv := make([]float64, N)
	uv := make([]float64, N)
	f := func(x float64) float64 {
		for j := 0; j < N; j++ {
			qv[j] = qAt(j, x)
			uv[j] = uAt(j, x)
		}
		return d.Kappa(v, x, qv, uv)
	}
	for i := 0; i < k1; i++ {
		out[i] = bas.CellProduct(I, f, i)
	}
	return out
}

// ProjectSource computes Pi_v(f_v(.,q,u)) over cell I, analogous to
// ProjectKappa, for the q-block residual's forcing term F_cellwise(v,i).
func ProjectSource(s Source, v int, N int, I basis.Interval, bas *basis.LegendreBasis, qAt, uAt FieldAt) []float64 {
	k1 := bas.K + 1
	out := make([]float64, k1)
	qv := make([]float64, N)
	uv := make([]float64, N)
	f := func(x float64) float64 {
		for j := 0; j < N; j++ {
			qv[j] = qAt(j, x)
			uv[j] = uAt(j, x)
		}
		return s.F(v, x, qv, uv)
	}
	for i := 0; i < k1; i++ {
		out[i] = bas.CellProduct(I, f, i)
	}
	return out
}

// jacBlock computes the N(k+1) x N(k+1) matrix whose (v,j) sub-block
// (each (k+1)x(k+1)) has entry (i,m) = <partial(v,j,x), phi_m*phi_i>_I,
// i.e. the chain-rule projection of d(Pi_v(g_v))_i / d(coeff_{j,m})
// given the pointwise partial dg_v/d(field_j) a provider supplies. This
// is the shared quadrature machinery behind NLq, NLu, dF/dq, dF/du and
// dF/dsigma.
func jacBlock(N int, I basis.Interval, bas *basis.LegendreBasis, partial func(v, j int, x float64) float64) *mat.Dense {
	k1 := bas.K + 1
	n := N * k1
	J := mat.NewDense(n, n, nil)
	xs, ws := bas.QuadPoints(I)
	for v := 0; v < N; v++ {
		for j := 0; j < N; j++ {
			for i := 0; i < k1; i++ {
				for m := 0; m < k1; m++ {
					var s float64
					for q, x := range xs {
						s += ws[q] * partial(v, j, x) * bas.PhiAt(I, m, x) * bas.PhiAt(I, i, x)
					}
					J.Set(v*k1+i, j*k1+m, s)
				}
			}
		}
	}
	return J
}

// DiffusionNLBlocks builds NLq and NLu, the Jacobian solver's M_cell row
// 3 blocks, given the current q,u field accessors.
func DiffusionNLBlocks(d Diffusion, N int, I basis.Interval, bas *basis.LegendreBasis, qAt, uAt FieldAt) (NLq, NLu *mat.Dense) {
	qv := make([]float64, N)
	uv := make([]float64, N)
	eval := func(x float64) {
		for j := 0; j < N; j++ {
			qv[j] = qAt(j, x)
			uv[j] = uAt(j, x)
		}
	}
	NLq = jacBlock(N, I, bas, func(v, j int, x float64) float64 {
		eval(x)
		return d.DKappaDq(v, j, x, qv, uv)
	})
	NLu = jacBlock(N, I, bas, func(v, j int, x float64) float64 {
		eval(x)
		return d.DKappaDu(v, j, x, qv, uv)
	})
	return NLq, NLu
}

// SourceJacBlocks builds dF/dq, dF/du, dF/dsigma, the Jacobian solver's
// M_cell row 2 blocks.
func SourceJacBlocks(s Source, N int, I basis.Interval, bas *basis.LegendreBasis, qAt, uAt FieldAt) (dFdq, dFdu, dFdsigma *mat.Dense) {
	qv := make([]float64, N)
	uv := make([]float64, N)
	eval := func(x float64) {
		for j := 0; j < N; j++ {
			qv[j] = qAt(j, x)
			uv[j] = uAt(j, x)
		}
	}
	dFdq = jacBlock(N, I, bas, func(v, j int, x float64) float64 {
		eval(x)
		return s.DFDq(v, j, x, qv, uv)
	})
	dFdu = jacBlock(N, I, bas, func(v, j int, x float64) float64 {
		eval(x)
		return s.DFDu(v, j, x, qv, uv)
	})
	dFdsigma = jacBlock(N, I, bas, func(v, j int, x float64) float64 {
		eval(x)
		return s.DFDsigma(v, j, x, qv, uv)
	})
	return dFdq, dFdu, dFdsigma
}
