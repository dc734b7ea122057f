package basis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LegendreBasis is the shifted Legendre basis {phi_0..phi_k} on a single
// interval, orthonormal with respect to the L2 inner product on that
// interval.
type LegendreBasis struct {
	K     int
	nodes []float64 // cached Gauss-Legendre nodes on [-1,1] for the quadrature order this basis needs
	wts   []float64
}

func NewLegendreBasis(k int) (*LegendreBasis, error) {
	if err := validateDegree(k); err != nil {
		return nil, fmt.Errorf("basis: %w", err)
	}
	nodes, wts := GaussLegendre(quadratureOrder(k))
	return &LegendreBasis{K: k, nodes: nodes, wts: wts}, nil
}

// toRef maps x in I to the reference coordinate xi in [-1,1].
func toRef(I Interval, x float64) float64 {
	return 2*(x-I.Xl)/I.Length() - 1
}

// toPhys maps xi in [-1,1] to x in I.
func toPhys(I Interval, xi float64) float64 {
	return I.Xl + 0.5*(xi+1)*I.Length()
}

// legendreP evaluates the standard (un-normalized) Legendre polynomial
// P_j on xi in [-1,1] via the three-term recurrence.
func legendreP(j int, xi float64) float64 {
	if j == 0 {
		return 1
	}
	if j == 1 {
		return xi
	}
	pPrev, pCurr := 1.0, xi
	for n := 1; n < j; n++ {
		pNext := ((2*float64(n)+1)*xi*pCurr - float64(n)*pPrev) / (float64(n) + 1)
		pPrev, pCurr = pCurr, pNext
	}
	return pCurr
}

// legendreDP evaluates d/dxi P_j(xi).
func legendreDP(j int, xi float64) float64 {
	if j == 0 {
		return 0
	}
	// (1-xi^2) P_j' = j*(P_{j-1} - xi*P_j)
	denom := 1 - xi*xi
	if math.Abs(denom) < 1e-13 {
		// endpoints: P_j'(+-1) = (+-1)^(j+1) j(j+1)/2
		sign := 1.0
		if xi < 0 {
			if j%2 == 0 {
				sign = -1
			}
		}
		return sign * float64(j) * float64(j+1) / 2
	}
	return float64(j) * (legendreP(j-1, xi) - xi*legendreP(j, xi)) / denom
}

// normFactor is the L2([-1,1]) norm of P_j: sqrt(2/(2j+1)).
func normFactor(j int) float64 {
	return math.Sqrt(2 / (2*float64(j) + 1))
}

// phiRef evaluates the orthonormal-on-[-1,1] basis function j at xi.
func (b *LegendreBasis) phiRef(j int, xi float64) float64 {
	return legendreP(j, xi) / normFactor(j)
}

// dphiRef evaluates d(phiRef_j)/dxi at xi.
func (b *LegendreBasis) dphiRef(j int, xi float64) float64 {
	return legendreDP(j, xi) / normFactor(j)
}

// Evaluate computes sum_j coeffs[j]*phi_j(x) for x in I. Behavior for x
// outside I is undefined — callers must localize first.
func (b *LegendreBasis) Evaluate(I Interval, coeffs []float64, x float64) float64 {
	xi := toRef(I, x)
	jac := math.Sqrt(2 / I.Length()) // L2(I) orthonormal scale factor
	var v float64
	for j, c := range coeffs {
		v += c * b.phiRef(j, xi) * jac
	}
	return v
}

// phi returns phi_j(x) for x in I, scaled to be orthonormal on I (not
// just on the reference element): integral_I phi_i*phi_j dx = delta_ij.
func (b *LegendreBasis) phi(I Interval, j int, x float64) float64 {
	xi := toRef(I, x)
	return b.phiRef(j, xi) * math.Sqrt(2/I.Length())
}

// dphidx returns d(phi_j)/dx at x in I (physical derivative).
func (b *LegendreBasis) dphidx(I Interval, j int, x float64) float64 {
	xi := toRef(I, x)
	return b.dphiRef(j, xi) * math.Sqrt(2/I.Length()) * (2 / I.Length())
}

// QuadPoints returns the Gauss-Legendre nodes/weights mapped onto I,
// sufficient for degree <= 2k+1 integrands (quadratureOrder).
func (b *LegendreBasis) QuadPoints(I Interval) (x, w []float64) {
	return b.quadPoints(I)
}

// PhiAt evaluates phi_j(x) for x in I (exported wrapper over phi, used
// by the physics package's generic Jacobian-block quadrature).
func (b *LegendreBasis) PhiAt(I Interval, j int, x float64) float64 {
	return b.phi(I, j, x)
}

func (b *LegendreBasis) quadPoints(I Interval) (x, w []float64) {
	n := len(b.nodes)
	x = make([]float64, n)
	w = make([]float64, n)
	halfLen := I.Length() / 2
	for i, xi := range b.nodes {
		x[i] = toPhys(I, xi)
		w[i] = b.wts[i] * halfLen
	}
	return x, w
}

// MassMatrix computes M_ij = <phi_i, w*phi_j>_I. With w == nil the
// basis's own orthonormality makes this the identity (I, k+1); an
// explicit weight is evaluated and integrated by quadrature.
func (b *LegendreBasis) MassMatrix(I Interval, w func(x float64) float64) *mat.Dense {
	n := b.K + 1
	M := mat.NewDense(n, n, nil)
	if w == nil {
		for i := 0; i < n; i++ {
			M.Set(i, i, 1)
		}
		return M
	}
	xs, ws := b.quadPoints(I)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s float64
			for q, x := range xs {
				s += ws[q] * b.phi(I, i, x) * w(x) * b.phi(I, j, x)
			}
			M.Set(i, j, s)
		}
	}
	return M
}

// DerivativeMatrix computes D_ij = <phi_i, w*phi_j'>_I.
func (b *LegendreBasis) DerivativeMatrix(I Interval, w func(x float64) float64) *mat.Dense {
	n := b.K + 1
	D := mat.NewDense(n, n, nil)
	xs, ws := b.quadPoints(I)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s float64
			for q, x := range xs {
				wx := 1.0
				if w != nil {
					wx = w(x)
				}
				s += ws[q] * b.phi(I, i, x) * wx * b.dphidx(I, j, x)
			}
			D.Set(i, j, s)
		}
	}
	return D
}

// CellProduct computes <f, phi_j>_I via Gauss quadrature.
func (b *LegendreBasis) CellProduct(I Interval, f func(x float64) float64, j int) float64 {
	xs, ws := b.quadPoints(I)
	var s float64
	for q, x := range xs {
		s += ws[q] * f(x) * b.phi(I, j, x)
	}
	return s
}

// Project computes the L2 projection of g onto the basis on I. The
// basis is orthonormal on I (M == I), so the coefficients are read
// directly from quadrature, c_j = <g,phi_j>; no mass-matrix solve is
// performed.
func (b *LegendreBasis) Project(I Interval, g func(x float64) float64) []float64 {
	n := b.K + 1
	c := make([]float64, n)
	for j := 0; j < n; j++ {
		c[j] = b.CellProduct(I, g, j)
	}
	return c
}
