package source

import (
	"fmt"

	"github.com/openhdg/hdg1d/internal/physics"
)

func init() {
	physics.RegisterSource("logistic", newLogistic)
}

// Logistic is f_v(u) = rate[v]*u_v*(1 - u_v/capacity[v]), the nonlinear
// logistic reaction f(u) = u(1-u) when rate=capacity=1.
type Logistic struct {
	rate, capacity []float64
}

func newLogistic(N int, p physics.Params) (physics.Source, error) {
	var rate []float64
	var err error
	if _, ok := p["rate"]; ok {
		rate, err = physics.FloatsOrUniform(p, "rate", N)
		if err != nil {
			return nil, fmt.Errorf("source.logistic: %w", err)
		}
	} else {
		rate = make([]float64, N)
		for i := range rate {
			rate[i] = 1
		}
	}
	cap_, ok := p["capacity"]
	var capacity []float64
	if !ok {
		capacity = make([]float64, N)
		for i := range capacity {
			capacity[i] = 1
		}
	} else {
		capacity, err = physics.FloatsOrUniform(physics.Params{"capacity": cap_}, "capacity", N)
		if err != nil {
			return nil, fmt.Errorf("source.logistic: %w", err)
		}
	}
	return &Logistic{rate: rate, capacity: capacity}, nil
}

func (l *Logistic) F(v int, x float64, q, u []float64) float64 {
	return l.rate[v] * u[v] * (1 - u[v]/l.capacity[v])
}

func (l *Logistic) DFDq(v, j int, x float64, q, u []float64) float64 {
	return 0
}

func (l *Logistic) DFDu(v, j int, x float64, q, u []float64) float64 {
	if j != v {
		return 0
	}
	return l.rate[v] * (1 - 2*u[v]/l.capacity[v])
}

func (l *Logistic) DFDsigma(v, j int, x float64, q, u []float64) float64 {
	return 0
}
