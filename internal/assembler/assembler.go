// Package assembler builds the per-cell local blocks (A,B,C,D,E,G,H) and
// the global trace matrix H_global, grounded on
// original_source/SystemSolver.cpp's initialiseMatrices. The local
// blocks and H_global depend only on the grid, basis, convection
// coefficient and stabilization parameter, so they are built once at
// construction and reused for the whole run; only the boundary-data
// dependent RF/L vectors are refreshed per call to UpdateBoundary, since
// g_D/g_N may depend on t.
package assembler

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/errs"
	"github.com/openhdg/hdg1d/internal/field"
	"github.com/openhdg/hdg1d/internal/linalg"
)

// Config collects everything the assembler needs to build the fixed
// blocks and the boundary-dependent vectors.
type Config struct {
	Layout  field.Layout
	Grid    basis.Grid
	Bas     *basis.LegendreBasis
	Lower   Boundary
	Upper   Boundary
	Tau     float64     // stabilization parameter, constant in x
	C       []float64   // convection coefficient per variable, constant in x
	Forcing func(v int, x, t float64) float64 // r(x,t); nil means zero forcing
}

// Assembler holds the per-cell blocks and the factored global trace
// matrix for a fixed grid/basis/physics-independent configuration.
type Assembler struct {
	cfg Config
	N   int
	Nc  int
	K   int

	A, B, D []*mat.Dense // per cell, N(k+1) square, block-diagonal over variables
	C       []*mat.Dense // per cell, 2N x N(k+1)
	E       []*mat.Dense // per cell, N(k+1) x 2N
	G       []*mat.Dense // per cell, 2N x N(k+1)
	H       []*mat.Dense // per cell, 2N x 2N, block-diagonal 2x2 per variable

	RF [][]float64 // per cell, length 2*N*(k+1): boundary/forcing rhs
	L  []float64   // length N*(Nc+1): Neumann trace rhs

	HGlobal *mat.Dense
	HFact   *linalg.FullPivLU
}

// New builds all fixed blocks and factors H_global. It does not populate
// RF/L for any particular t — callers must call UpdateBoundary before
// the first residual/Jacobian evaluation.
func New(cfg Config) (*Assembler, error) {
	L := cfg.Layout
	if len(cfg.C) != L.N {
		return nil, fmt.Errorf("%w: assembler: convection coefficient length %d != N=%d", errs.ErrConfiguration, len(cfg.C), L.N)
	}
	a := &Assembler{
		cfg: cfg,
		N:   L.N,
		Nc:  L.Nc,
		K:   L.K,
		A:   make([]*mat.Dense, L.Nc),
		B:   make([]*mat.Dense, L.Nc),
		D:   make([]*mat.Dense, L.Nc),
		C:   make([]*mat.Dense, L.Nc),
		E:   make([]*mat.Dense, L.Nc),
		G:   make([]*mat.Dense, L.Nc),
		H:   make([]*mat.Dense, L.Nc),
		RF:  make([][]float64, L.Nc),
	}
	for i := range a.RF {
		a.RF[i] = make([]float64, 2*L.N*L.Np())
	}
	a.L = make([]float64, L.N*(L.Nc+1))

	for i, I := range cfg.Grid.Cells {
		if err := a.buildCell(i, I); err != nil {
			return nil, fmt.Errorf("assembler: cell %d: %w", i, err)
		}
	}
	if err := a.buildHGlobal(); err != nil {
		return nil, err
	}
	return a, nil
}

// np is the per-variable coefficient count k+1.
func (a *Assembler) np() int { return a.K + 1 }

// tauEndpoints returns tau(xl), tau(xu); constant for the whole run.
func (a *Assembler) tauEndpoints() (tl, tu float64) {
	return a.cfg.Tau, a.cfg.Tau
}

// endpointCoefLower and endpointCoefUpper return the H_v/E_v endpoint
// scalar for variable v: -c(xl)-tau(xl) at the lower endpoint,
// +c(xu)-tau(xu) at the upper.
func (a *Assembler) endpointCoefLower(v int) float64 {
	tl, _ := a.tauEndpoints()
	return -a.cfg.C[v] - tl
}

func (a *Assembler) endpointCoefUpper(v int) float64 {
	_, tu := a.tauEndpoints()
	return a.cfg.C[v] - tu
}

// buildCell assembles A,B,D,C,E,G,H for one cell, block-diagonal over
// variables, following original_source/SystemSolver.cpp's
// initialiseMatrices loop body.
func (a *Assembler) buildCell(i int, I basis.Interval) error {
	N, np := a.N, a.np()
	n := N * np
	A := mat.NewDense(n, n, nil)
	B := mat.NewDense(n, n, nil)
	D := mat.NewDense(n, n, nil)
	Cm := mat.NewDense(2*N, n, nil)
	E := mat.NewDense(n, 2*N, nil)
	G := mat.NewDense(2*N, n, nil)
	H := mat.NewDense(2*N, 2*N, nil)

	tl, tu := a.tauEndpoints()
	lowerDirichlet := i == 0 && a.cfg.Lower.IsDirichlet()
	upperDirichlet := i == a.Nc-1 && a.cfg.Upper.IsDirichlet()

	massI := a.cfg.Bas.MassMatrix(I, nil)
	derivI := a.cfg.Bas.DerivativeMatrix(I, nil)

	for v := 0; v < N; v++ {
		off := v * np
		cv := a.cfg.C[v]
		convWeight := func(x float64) float64 { return cv }
		derivC := a.cfg.Bas.DerivativeMatrix(I, convWeight)

		for r := 0; r < np; r++ {
			for c := 0; c < np; c++ {
				A.Set(off+r, off+c, massI.At(r, c))
				B.Set(off+r, off+c, derivI.At(r, c))
				// D_v = -(D(I,c))^T plus boundary stabilization rank-1 terms
				D.Set(off+r, off+c, -derivC.At(c, r))
			}
		}
		for j := 0; j < np; j++ {
			phiL := a.cfg.Bas.PhiAt(I, j, I.Xl)
			phiU := a.cfg.Bas.PhiAt(I, j, I.Xu)
			D.Set(off+j, off+j, D.At(off+j, off+j)+tl*phiL*phiL+tu*phiU*phiU)
			for m := 0; m < np; m++ {
				phiLm := a.cfg.Bas.PhiAt(I, m, I.Xl)
				phiUm := a.cfg.Bas.PhiAt(I, m, I.Xu)
				if m != j {
					D.Set(off+j, off+m, D.At(off+j, off+m)+tl*phiL*phiLm+tu*phiU*phiUm)
				}
			}
		}

		for j := 0; j < np; j++ {
			phiL := a.cfg.Bas.PhiAt(I, j, I.Xl)
			phiU := a.cfg.Bas.PhiAt(I, j, I.Xu)
			cLow, cUp := -phiL, phiU
			if lowerDirichlet {
				cLow = 0
			}
			if upperDirichlet {
				cUp = 0
			}
			Cm.Set(2*v+0, off+j, cLow)
			Cm.Set(2*v+1, off+j, cUp)

			eLow := phiL * a.endpointCoefLower(v)
			eUp := phiU * a.endpointCoefUpper(v)
			if lowerDirichlet {
				eLow = 0
			}
			if upperDirichlet {
				eUp = 0
			}
			E.Set(off+j, 2*v+0, eLow)
			E.Set(off+j, 2*v+1, eUp)

			gLow := tl * phiL
			gUp := tu * phiU
			if lowerDirichlet {
				gLow = 0
			}
			if upperDirichlet {
				gUp = 0
			}
			G.Set(2*v+0, off+j, gLow)
			G.Set(2*v+1, off+j, gUp)
		}

		hLow := a.endpointCoefLower(v)
		hUp := a.endpointCoefUpper(v)
		if lowerDirichlet {
			hLow = 0
		}
		if upperDirichlet {
			hUp = 0
		}
		H.Set(2*v+0, 2*v+0, hLow)
		H.Set(2*v+1, 2*v+1, hUp)
	}

	a.A[i], a.B[i], a.D[i] = A, B, D
	a.C[i], a.E[i], a.G[i], a.H[i] = Cm, E, G, H
	return nil
}

// buildHGlobal assembles the block-tridiagonal global trace matrix by
// accumulating each cell's 2x2-per-variable H block at its trace
// location, then factors it once: H_global is assembled at setup and
// factored exactly once, then reused for every residual/Jacobian call.
func (a *Assembler) buildHGlobal() error {
	n := a.N * (a.Nc + 1)
	HG := mat.NewDense(n, n, nil)
	for i := 0; i < a.Nc; i++ {
		for v := 0; v < a.N; v++ {
			block := a.H[i].Slice(2*v, 2*v+2, 2*v, 2*v+2)
			linalg.AccumulateTraceBlock(HG, a.Nc, v, i, block)
		}
	}
	// A trace on a Dirichlet global boundary has zero C, E, G and H
	// entries in its cell, so its H_global row and column are empty; a
	// unit diagonal there keeps H_global invertible and pins that trace
	// value to its L entry, which UpdateBoundary leaves at zero.
	for v := 0; v < a.N; v++ {
		if a.cfg.Lower.IsDirichlet() {
			HG.Set(v*(a.Nc+1), v*(a.Nc+1), 1)
		}
		if a.cfg.Upper.IsDirichlet() {
			HG.Set(v*(a.Nc+1)+a.Nc, v*(a.Nc+1)+a.Nc, 1)
		}
	}
	fact, err := linalg.NewFullPivLU(HG)
	if err != nil {
		return fmt.Errorf("%w: H_global: %v", errs.ErrAssembly, err)
	}
	a.HGlobal = HG
	a.HFact = fact
	return nil
}

// UpdateBoundary recomputes the boundary/forcing dependent RF and L
// vectors for time t: RF and L are recomputed whenever the boundary data
// changes. Callers must invoke this before every
// residual/Jacobian evaluation at a new t, since g_D, g_N and the
// forcing r may all depend on t.
func (a *Assembler) UpdateBoundary(t float64) {
	N, np := a.N, a.np()
	for i, I := range a.cfg.Grid.Cells {
		rf := a.RF[i]
		for j := range rf {
			rf[j] = 0
		}
		lowerHere := i == 0
		upperHere := i == a.Nc-1

		for v := 0; v < N; v++ {
			sigOff := v * np
			uOff := N*np + v*np
			if a.cfg.Forcing != nil {
				for j := 0; j < np; j++ {
					rf[uOff+j] += a.cfg.Bas.CellProduct(I, func(x float64) float64 {
						return a.cfg.Forcing(v, x, t)
					}, j)
				}
			}
			if lowerHere && a.cfg.Lower.IsDirichlet() {
				gD := a.cfg.Lower.Value(v, t)
				nx := -1.0
				for j := 0; j < np; j++ {
					phiL := a.cfg.Bas.PhiAt(I, j, I.Xl)
					rf[sigOff+j] += -phiL * nx * gD
					rf[uOff+j] -= phiL * a.endpointCoefLower(v) * gD
				}
			}
			if upperHere && a.cfg.Upper.IsDirichlet() {
				gD := a.cfg.Upper.Value(v, t)
				nx := 1.0
				for j := 0; j < np; j++ {
					phiU := a.cfg.Bas.PhiAt(I, j, I.Xu)
					rf[sigOff+j] += -phiU * nx * gD
					rf[uOff+j] -= phiU * a.endpointCoefUpper(v) * gD
				}
			}
		}
	}

	for j := range a.L {
		a.L[j] = 0
	}
	if a.cfg.Lower.Kind == Neumann {
		for v := 0; v < N; v++ {
			a.L[v*(a.Nc+1)+0] += a.cfg.Lower.Value(v, t)
		}
	}
	if a.cfg.Upper.Kind == Neumann {
		for v := 0; v < N; v++ {
			a.L[v*(a.Nc+1)+a.Nc] += a.cfg.Upper.Value(v, t)
		}
	}
}
