// Package linalg provides the small dense linear-algebra primitives the
// HDG core needs beyond what gonum/mat exposes directly: a
// full-pivoting LU factorization (matching the original solver's use of
// Eigen::FullPivLU for H_global/K_global) and a thin block-tridiagonal
// accumulator for building those global matrices.
package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FullPivLU factors a square dense matrix using complete (row and
// column) pivoting, in the spirit of utils/blockMatrix.go's
// LUPDecompose/LUPSolve (there implemented generically over block
// matrix entries using mat.Det/.Inverse() per block). Here the entries
// are plain float64s, since H_global and K_global are flat dense
// scalar matrices, not matrices of matrices — so we specialize to a
// Doolittle elimination with full pivoting rather than reuse the block
// version.
type FullPivLU struct {
	lu     *mat.Dense // combined L (unit diagonal implied) and U, in place
	n      int
	rowPiv []int // rowPiv[i] = original row that ended up at position i
	colPiv []int // colPiv[i] = original column that ended up at position i
	tol    float64
}

// NewFullPivLU factors A in place (A is copied first; the caller's
// matrix is left untouched).
func NewFullPivLU(A mat.Matrix) (*FullPivLU, error) {
	n, nc := A.Dims()
	if n != nc {
		return nil, fmt.Errorf("linalg: FullPivLU requires a square matrix, got %dx%d", n, nc)
	}
	lu := mat.NewDense(n, n, nil)
	lu.CloneFrom(A)
	f := &FullPivLU{
		lu:     lu,
		n:      n,
		rowPiv: identityPerm(n),
		colPiv: identityPerm(n),
		tol:    1e-12,
	}
	if err := f.decompose(); err != nil {
		return nil, err
	}
	return f, nil
}

func identityPerm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func (f *FullPivLU) decompose() error {
	n := f.n
	a := f.lu
	for k := 0; k < n; k++ {
		// Find the largest-magnitude entry in the trailing (n-k)x(n-k)
		// submatrix — full pivoting, as opposed to partial pivoting's
		// column-only search.
		maxAbs := 0.0
		pr, pc := k, k
		for i := k; i < n; i++ {
			for j := k; j < n; j++ {
				v := math.Abs(a.At(i, j))
				if v > maxAbs {
					maxAbs = v
					pr, pc = i, j
				}
			}
		}
		if maxAbs < f.tol {
			return fmt.Errorf("linalg: matrix is singular to tolerance %g at step %d", f.tol, k)
		}
		if pr != k {
			swapRows(a, k, pr)
			f.rowPiv[k], f.rowPiv[pr] = f.rowPiv[pr], f.rowPiv[k]
		}
		if pc != k {
			swapCols(a, k, pc)
			f.colPiv[k], f.colPiv[pc] = f.colPiv[pc], f.colPiv[k]
		}
		pivot := a.At(k, k)
		for i := k + 1; i < n; i++ {
			factor := a.At(i, k) / pivot
			a.Set(i, k, factor)
			for j := k + 1; j < n; j++ {
				a.Set(i, j, a.At(i, j)-factor*a.At(k, j))
			}
		}
	}
	return nil
}

func swapRows(a *mat.Dense, i, j int) {
	if i == j {
		return
	}
	_, n := a.Dims()
	for c := 0; c < n; c++ {
		vi, vj := a.At(i, c), a.At(j, c)
		a.Set(i, c, vj)
		a.Set(j, c, vi)
	}
}

func swapCols(a *mat.Dense, i, j int) {
	if i == j {
		return
	}
	n, _ := a.Dims()
	for r := 0; r < n; r++ {
		vi, vj := a.At(r, i), a.At(r, j)
		a.Set(r, i, vj)
		a.Set(r, j, vi)
	}
}

// Solve returns x satisfying A*x = b, given the factorization of A.
func (f *FullPivLU) Solve(b []float64) ([]float64, error) {
	n := f.n
	if len(b) != n {
		return nil, fmt.Errorf("linalg: rhs length %d does not match matrix size %d", len(b), n)
	}
	// permute b by rowPiv
	pb := make([]float64, n)
	for i := 0; i < n; i++ {
		pb[i] = b[f.rowPiv[i]]
	}
	// forward substitution, unit-diagonal L
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		s := pb[i]
		for j := 0; j < i; j++ {
			s -= f.lu.At(i, j) * y[j]
		}
		y[i] = s
	}
	// back substitution, U
	z := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		s := y[i]
		for j := i + 1; j < n; j++ {
			s -= f.lu.At(i, j) * z[j]
		}
		z[i] = s / f.lu.At(i, i)
	}
	// undo column permutation: x[colPiv[i]] = z[i]
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[f.colPiv[i]] = z[i]
	}
	return x, nil
}

// SolveMat solves A*X = B for a matrix right-hand side, column by
// column.
func (f *FullPivLU) SolveMat(B mat.Matrix) (*mat.Dense, error) {
	nr, nc := B.Dims()
	if nr != f.n {
		return nil, fmt.Errorf("linalg: rhs has %d rows, matrix size is %d", nr, f.n)
	}
	X := mat.NewDense(nr, nc, nil)
	col := make([]float64, nr)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			col[i] = B.At(i, j)
		}
		x, err := f.Solve(col)
		if err != nil {
			return nil, err
		}
		X.SetCol(j, x)
	}
	return X, nil
}
