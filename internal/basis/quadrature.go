package basis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/openhdg/hdg1d/internal/errs"
)

// GaussLegendre returns the n+1 Gauss-Legendre quadrature nodes (on
// [-1,1]) and weights, computed via the Golub-Welsch method: the
// eigenvalues of the symmetric tridiagonal Jacobi matrix for the
// Legendre recurrence are the nodes, and the weights come from the
// squared first components of the normalized eigenvectors.
//
// This specializes the JacobiP/JacobiGQ construction in DG1D/elements.go
// to alpha=beta=0, used here strictly as an integration rule
// (CellProduct) rather than as interpolation nodes for a nodal basis.
func GaussLegendre(n int) (nodes, weights []float64) {
	if n == 0 {
		return []float64{0}, []float64{2}
	}
	d0 := make([]float64, n+1)
	d1 := make([]float64, n)
	for i := 1; i <= n; i++ {
		fi := float64(i)
		d1[i-1] = fi / math.Sqrt(4*fi*fi-1)
	}
	sym := symTriDiagonal(d0, d1)
	var eig mat.EigenSym
	ok := eig.Factorize(sym, true)
	if !ok {
		panic("gauss-legendre: eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	nodes = make([]float64, n+1)
	weights = make([]float64, n+1)
	copy(nodes, vals)
	for j := 0; j < n+1; j++ {
		v0 := vecs.At(0, j)
		weights[j] = 2 * v0 * v0
	}
	return nodes, weights
}

// symTriDiagonal builds a dense symmetric tridiagonal matrix from its
// main diagonal d0 (length m) and off-diagonal d1 (length m-1).
func symTriDiagonal(d0, d1 []float64) *mat.SymDense {
	m := len(d0)
	sym := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		sym.SetSym(i, i, d0[i])
	}
	for i := 0; i < len(d1); i++ {
		sym.SetSym(i, i+1, d1[i])
	}
	return sym
}

// quadratureOrder returns the GaussLegendre argument m such that the
// resulting rule has at least 2k+1 nodes, exact for any product of two
// degree-k polynomials. GaussLegendre(m) returns m+1 nodes, so m = 2k
// gives exactly 2k+1 nodes.
func quadratureOrder(k int) (m int) {
	m = 2 * k
	if m < 0 {
		m = 0
	}
	return m
}

func validateDegree(k int) error {
	if k < 0 {
		return fmt.Errorf("%w: Polynomial_degree must be >= 0, got %d", errs.ErrConfiguration, k)
	}
	return nil
}
