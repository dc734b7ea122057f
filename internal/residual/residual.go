// Package residual implements the four-block HDG residual evaluator,
// grounded on original_source/SystemSolver.cpp::residual.
package residual

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/openhdg/hdg1d/internal/assembler"
	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/errs"
	"github.com/openhdg/hdg1d/internal/field"
	"github.com/openhdg/hdg1d/internal/linalg"
	"github.com/openhdg/hdg1d/internal/physics"
	"github.com/openhdg/hdg1d/utils"
)

// Config bundles everything the residual evaluator needs: the grid,
// basis, fixed assembler blocks, and the physics providers for the
// current run.
type Config struct {
	Layout    field.Layout
	Grid      basis.Grid
	Bas       *basis.LegendreBasis
	Asm       *assembler.Assembler
	Diffusion physics.Diffusion
	Source    physics.Source
}

// Evaluator computes F(t,Y,Y') = res in place
type Evaluator struct {
	cfg Config
}

func New(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate fills res with the residual at (t,Y,Ydot). res must be at
// least Layout.Len() long; every one of its first Layout.Len() entries
// is overwritten by this call, so callers may reuse a buffer across calls.
func (e *Evaluator) Evaluate(t float64, Y, Ydot, res []float64) error {
	L := e.cfg.Layout
	a := e.cfg.Asm
	a.UpdateBoundary(t)

	sigma := field.Bind(L, e.cfg.Grid, e.cfg.Bas, Y, field.Sigma)
	q := field.Bind(L, e.cfg.Grid, e.cfg.Bas, Y, field.Q)
	u := field.Bind(L, e.cfg.Grid, e.cfg.Bas, Y, field.U)
	uDot := field.Bind(L, e.cfg.Grid, e.cfg.Bas, Ydot, field.U)
	lambda := field.BindTrace(L, Y)

	resSigma := field.Bind(L, e.cfg.Grid, e.cfg.Bas, res, field.Sigma)
	resQ := field.Bind(L, e.cfg.Grid, e.cfg.Bas, res, field.Q)
	resU := field.Bind(L, e.cfg.Grid, e.cfg.Bas, res, field.U)
	resLambda := field.BindTrace(L, res)

	np := L.Np()
	n := L.N * np

	acc := make([]float64, L.N*(L.Nc+1))

	for i, I := range e.cfg.Grid.Cells {
		sigmaVec := mat.NewVecDense(n, sigma.CellBlock(i))
		qVec := mat.NewVecDense(n, q.CellBlock(i))
		uVec := mat.NewVecDense(n, u.CellBlock(i))
		lamVec := mat.NewVecDense(2*L.N, lambda.CellVector(i))

		// R1 = -A*q - B^T*u + C^T*lambda_cell - RF_sigma
		var aq, btu, ctl mat.VecDense
		aq.MulVec(a.A[i], qVec)
		btu.MulVec(a.B[i].T(), uVec)
		ctl.MulVec(a.C[i].T(), lamVec)
		r1 := resSigma.CellBlock(i)
		rfSigma := a.RF[i][:n]
		for j := 0; j < n; j++ {
			r1[j] = -aq.AtVec(j) - btu.AtVec(j) + ctl.AtVec(j) - rfSigma[j]
		}

		// R2 = B*sigma + D*u + E*lambda_cell + F_cellwise - RF_u + udot
		var bs, du, el mat.VecDense
		bs.MulVec(a.B[i], sigmaVec)
		du.MulVec(a.D[i], uVec)
		el.MulVec(a.E[i], lamVec)
		r2 := resQ.CellBlock(i)
		rfU := a.RF[i][n:]
		udotVec := uDot.CellBlock(i)
		qAt := func(j int, x float64) float64 { return q.EvalInCell(i, j, x) }
		uAt := func(j int, x float64) float64 { return u.EvalInCell(i, j, x) }
		for v := 0; v < L.N; v++ {
			fcw := physics.ProjectSource(e.cfg.Source, v, L.N, I, e.cfg.Bas, qAt, uAt)
			for m := 0; m < np; m++ {
				idx := v*np + m
				r2[idx] = bs.AtVec(idx) + du.AtVec(idx) + el.AtVec(idx) + fcw[m] - rfU[idx] + udotVec[idx]
			}
		}

		// R3 = sigma + Pi(kappa)
		r3 := resU.CellBlock(i)
		for v := 0; v < L.N; v++ {
			proj := physics.ProjectKappa(e.cfg.Diffusion, v, L.N, I, e.cfg.Bas, qAt, uAt)
			for m := 0; m < np; m++ {
				idx := v*np + m
				r3[idx] = sigmaVec.AtVec(idx) + proj[m]
			}
		}

		// Accumulate C*sigma + G*u for the trace block.
		var csig, gu mat.VecDense
		csig.MulVec(a.C[i], sigmaVec)
		gu.MulVec(a.G[i], uVec)
		for v := 0; v < L.N; v++ {
			linalg.AccumulateTraceVec(acc, L.Nc, v, i, [2]float64{
				csig.AtVec(2*v) + gu.AtVec(2*v),
				csig.AtVec(2*v+1) + gu.AtVec(2*v+1),
			})
		}
	}

	rhs := make([]float64, len(acc))
	for j := range rhs {
		rhs[j] = a.L[j] - acc[j]
	}
	lamSolved, err := a.HFact.Solve(rhs)
	if err != nil {
		return fmt.Errorf("%w: trace solve: %v", errs.ErrResidual, err)
	}
	for v := 0; v < L.N; v++ {
		for j := 0; j <= L.Nc; j++ {
			idx := v*(L.Nc+1) + j
			resLambda.Set(v, j, -lambda.At(v, j)+lamSolved[idx])
		}
	}

	if utils.IsNan(res) {
		return fmt.Errorf("%w: NaN or Inf in residual", errs.ErrResidual)
	}
	return nil
}
