package source

import (
	"fmt"

	"github.com/openhdg/hdg1d/internal/physics"
)

func init() {
	physics.RegisterSource("linear-decay", newLinearDecay)
}

// LinearDecay is f_v(u) = lambda[v]*u_v, a simple linear sink/source.
type LinearDecay struct {
	lambda []float64
}

func newLinearDecay(N int, p physics.Params) (physics.Source, error) {
	lambda, err := physics.FloatsOrUniform(p, "lambda", N)
	if err != nil {
		return nil, fmt.Errorf("source.linear-decay: %w", err)
	}
	return &LinearDecay{lambda: lambda}, nil
}

func (l *LinearDecay) F(v int, x float64, q, u []float64) float64 {
	return l.lambda[v] * u[v]
}

func (l *LinearDecay) DFDq(v, j int, x float64, q, u []float64) float64 {
	return 0
}

func (l *LinearDecay) DFDu(v, j int, x float64, q, u []float64) float64 {
	if j != v {
		return 0
	}
	return l.lambda[v]
}

func (l *LinearDecay) DFDsigma(v, j int, x float64, q, u []float64) float64 {
	return 0
}
