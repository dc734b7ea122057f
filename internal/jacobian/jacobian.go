// Package jacobian implements the static-condensation linear solve that
// backs Newton's method: given alpha (the d/dt-term's implicit
// coefficient) and a right-hand side g shaped like the state vector, it
// returns deltaY solving the linearized system, grounded on
// original_source/SystemSolver.cpp's updateMForJacSolve/solveJacEq.
//
// The condensation mirrors the residual's structure: a per-cell
// sigma/q/u block is eliminated against a global trace system, except
// the per-cell matrix M_cell now carries the Jacobian of the physics
// providers and the implicit alpha*mass term, and the elimination
// produces two per-cell solves (particular and homogeneous-in-lambda)
// instead of residual's one.
package jacobian

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/openhdg/hdg1d/internal/assembler"
	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/errs"
	"github.com/openhdg/hdg1d/internal/field"
	"github.com/openhdg/hdg1d/internal/linalg"
	"github.com/openhdg/hdg1d/internal/physics"
)

type Config struct {
	Layout    field.Layout
	Grid      basis.Grid
	Bas       *basis.LegendreBasis
	Asm       *assembler.Assembler
	Diffusion physics.Diffusion
	Source    physics.Source
}

// Solver evaluates LinearSolve against the current iterate's field
// values, since the providers' partials are state-dependent.
type Solver struct {
	cfg Config
}

func New(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// cellSolve holds, for one cell, the outputs of the two M_cell solves:
// the particular solution against g_cell and the homogeneous solution
// against CE_cell (one column per trace unknown of the cell).
type cellSolve struct {
	sigma  *mat.VecDense // length 3n
	sigma0 *mat.Dense    // 3n x 2N
}

// LinearSolve solves the alpha-parameterized linearized system for
// deltaY given right-hand side g, both shaped like the state vector
// (field.Layout.Len() long). delta is overwritten in place.
func (s *Solver) LinearSolve(alpha float64, Y, g, delta []float64) error {
	L := s.cfg.Layout
	a := s.cfg.Asm
	N, np := L.N, L.Np()
	n := N * np

	q := field.Bind(L, s.cfg.Grid, s.cfg.Bas, Y, field.Q)
	u := field.Bind(L, s.cfg.Grid, s.cfg.Bas, Y, field.U)
	gSigma := field.Bind(L, s.cfg.Grid, s.cfg.Bas, g, field.Sigma)
	gQ := field.Bind(L, s.cfg.Grid, s.cfg.Bas, g, field.Q)
	gU := field.Bind(L, s.cfg.Grid, s.cfg.Bas, g, field.U)

	deltaSigma := field.Bind(L, s.cfg.Grid, s.cfg.Bas, delta, field.Sigma)
	deltaQ := field.Bind(L, s.cfg.Grid, s.cfg.Bas, delta, field.Q)
	deltaU := field.Bind(L, s.cfg.Grid, s.cfg.Bas, delta, field.U)
	deltaLambda := field.BindTrace(L, delta)

	ntrace := N * (L.Nc + 1)
	// R4 = -lambda + H_global^-1 (L - sum(C*sigma + G*u)); its
	// linearization times -H_global is [C, 0, G] on the cell unknowns
	// and H_global on lambda, so K_global starts from H_global and
	// F_global from -H_global*g_lambda.
	KGlobal := mat.DenseCopyOf(a.HGlobal)
	var hg mat.VecDense
	hg.MulVec(a.HGlobal, mat.NewVecDense(ntrace, g[L.LambdaBase():L.LambdaBase()+ntrace]))
	FGlobal := make([]float64, ntrace)
	for j := range FGlobal {
		FGlobal[j] = -hg.AtVec(j)
	}

	cells := make([]cellSolve, L.Nc)

	for i, I := range s.cfg.Grid.Cells {
		qAt := func(j int, x float64) float64 { return q.EvalInCell(i, j, x) }
		uAt := func(j int, x float64) float64 { return u.EvalInCell(i, j, x) }

		dFdq, dFdu, dFdsigma := physics.SourceJacBlocks(s.cfg.Source, N, I, s.cfg.Bas, qAt, uAt)
		NLq, NLu := physics.DiffusionNLBlocks(s.cfg.Diffusion, N, I, s.cfg.Bas, qAt, uAt)

		M := mat.NewDense(3*n, 3*n, nil)
		addBlock(M, n, 0, a.B[i], 1)
		addBlock(M, n, 0, dFdsigma, 1)
		addBlock(M, 0, n, a.A[i], -1)
		addBlockT(M, 0, 2*n, a.B[i], -1)
		addBlock(M, n, n, dFdq, 1)
		addBlock(M, n, 2*n, a.D[i], 1)
		addBlock(M, n, 2*n, dFdu, 1)
		addBlock(M, n, 2*n, a.A[i], alpha)
		addBlock(M, 2*n, 0, a.A[i], 1)
		addBlock(M, 2*n, n, NLq, 1)
		addBlock(M, 2*n, 2*n, NLu, 1)

		CE := mat.NewDense(3*n, 2*N, nil)
		addBlockT(CE, 0, 0, a.C[i], 1)
		addBlock(CE, n, 0, a.E[i], 1)

		CG := mat.NewDense(2*N, 3*n, nil)
		addBlock(CG, 0, 0, a.C[i], 1)
		addBlock(CG, 0, 2*n, a.G[i], 1)

		gCell := make([]float64, 3*n)
		copy(gCell[0:n], gSigma.CellBlock(i))
		copy(gCell[n:2*n], gQ.CellBlock(i))
		copy(gCell[2*n:3*n], gU.CellBlock(i))
		gVec := mat.NewVecDense(3*n, gCell)

		var sigma mat.VecDense
		if err := sigma.SolveVec(M, gVec); err != nil {
			return fmt.Errorf("%w: cell %d: M_cell solve: %v", errs.ErrLinearSolve, i, err)
		}
		var sigma0 mat.Dense
		if err := sigma0.Solve(M, CE); err != nil {
			return fmt.Errorf("%w: cell %d: M_cell solve (CE): %v", errs.ErrLinearSolve, i, err)
		}
		cells[i] = cellSolve{sigma: &sigma, sigma0: &sigma0}

		var cgSigma0 mat.Dense
		cgSigma0.Mul(CG, &sigma0)
		KCell := mat.NewDense(2*N, 2*N, nil)
		KCell.Scale(-1, &cgSigma0)
		for v := 0; v < N; v++ {
			block := KCell.Slice(2*v, 2*v+2, 2*v, 2*v+2)
			linalg.AccumulateTraceBlock(KGlobal, L.Nc, v, i, block)
		}

		var cgSigma mat.VecDense
		cgSigma.MulVec(CG, &sigma)
		for v := 0; v < N; v++ {
			linalg.AccumulateTraceVec(FGlobal, L.Nc, v, i, [2]float64{
				-cgSigma.AtVec(2 * v),
				-cgSigma.AtVec(2*v + 1),
			})
		}
	}

	KFact, err := linalg.NewFullPivLU(KGlobal)
	if err != nil {
		return fmt.Errorf("%w: K_global: %v", errs.ErrLinearSolve, err)
	}
	deltaLam, err := KFact.Solve(FGlobal)
	if err != nil {
		return fmt.Errorf("%w: K_global solve: %v", errs.ErrLinearSolve, err)
	}
	for v := 0; v < N; v++ {
		for j := 0; j <= L.Nc; j++ {
			deltaLambda.Set(v, j, deltaLam[v*(L.Nc+1)+j])
		}
	}

	for i := range s.cfg.Grid.Cells {
		lamCell := make([]float64, 2*N)
		for v := 0; v < N; v++ {
			lamCell[2*v] = deltaLambda.At(v, i)
			lamCell[2*v+1] = deltaLambda.At(v, i+1)
		}
		var corr mat.VecDense
		corr.MulVec(cells[i].sigma0, mat.NewVecDense(2*N, lamCell))

		dsig := deltaSigma.CellBlock(i)
		dq := deltaQ.CellBlock(i)
		du := deltaU.CellBlock(i)
		for j := 0; j < n; j++ {
			dsig[j] = cells[i].sigma.AtVec(j) - corr.AtVec(j)
			dq[j] = cells[i].sigma.AtVec(n+j) - corr.AtVec(n+j)
			du[j] = cells[i].sigma.AtVec(2*n+j) - corr.AtVec(2*n+j)
		}
	}
	return nil
}

// addBlock adds scale*src into M's (rowOff,colOff) block, in place.
func addBlock(M *mat.Dense, rowOff, colOff int, src mat.Matrix, scale float64) {
	r, c := src.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			M.Set(rowOff+i, colOff+j, M.At(rowOff+i, colOff+j)+scale*src.At(i, j))
		}
	}
}

// addBlockT adds scale*src^T into M's (rowOff,colOff) block, in place.
func addBlockT(M *mat.Dense, rowOff, colOff int, src mat.Matrix, scale float64) {
	r, c := src.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			M.Set(rowOff+j, colOff+i, M.At(rowOff+j, colOff+i)+scale*src.At(i, j))
		}
	}
}
