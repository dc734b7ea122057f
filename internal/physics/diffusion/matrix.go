package diffusion

import (
	"fmt"

	"github.com/openhdg/hdg1d/internal/physics"
)

func init() {
	physics.RegisterDiffusion("matrix", newMatrix)
}

// Matrix is kappa_v(x,q,u) = sum_j K[v][j]*q_j, the coupled-variable
// diffusivity used for multi-channel diffusion coupling (e.g. kappa =
// diag(1,0.5)*q for N=2), grounded on
// original_source/PhysicsCases/MatrixDiffusion.hpp's Kappa member
// matrix.
type Matrix struct {
	K [][]float64
}

func newMatrix(N int, p physics.Params) (physics.Diffusion, error) {
	K, err := physics.MatrixParam(p, "K", N)
	if err != nil {
		return nil, fmt.Errorf("diffusion.matrix: %w", err)
	}
	return &Matrix{K: K}, nil
}

func (m *Matrix) Kappa(v int, x float64, q, u []float64) float64 {
	var s float64
	for j, kvj := range m.K[v] {
		s += kvj * q[j]
	}
	return s
}

func (m *Matrix) DKappaDq(v, j int, x float64, q, u []float64) float64 {
	return m.K[v][j]
}

func (m *Matrix) DKappaDu(v, j int, x float64, q, u []float64) float64 {
	return 0
}
