// Package ic builds the consistent initial state for a run: a named
// profile supplies u0(x) and u0'(x), projected onto the basis for every
// variable, with sigma0 read off the same Pi(kappa) projection the
// residual's R3 block uses so the initial sigma already satisfies R3=0
// exactly. The remaining consistency work (lambda from R4=0, u-dot from
// R2=0) is left to dae.Harness.ConsistentIC, which this package's
// callers invoke afterward.
package ic

import (
	"fmt"
	"math"

	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/field"
	"github.com/openhdg/hdg1d/internal/physics"
)

// Profile is a named initial-condition closure pair.
type Profile struct {
	U0  func(x float64) float64
	DU0 func(x float64) float64
}

type ctor func(a, b float64) Profile

var registry = map[string]ctor{}

func register(name string, c ctor) {
	registry[name] = c
}

func init() {
	register("sine", func(a, b float64) Profile {
		return Profile{
			U0:  func(x float64) float64 { return math.Sin(math.Pi * x) },
			DU0: func(x float64) float64 { return math.Pi * math.Cos(math.Pi*x) },
		}
	})
	register("cosine-bump", func(a, b float64) Profile {
		return Profile{
			U0:  func(x float64) float64 { return 1 + math.Cos(2*math.Pi*x) },
			DU0: func(x float64) float64 { return -2 * math.Pi * math.Sin(2*math.Pi*x) },
		}
	})
	register("gaussian", func(a, b float64) Profile {
		x0 := 0.5 * (a + b)
		w := 0.1 * (b - a)
		return Profile{
			U0: func(x float64) float64 {
				d := x - x0
				return math.Exp(-(d * d) / (2 * w * w))
			},
			DU0: func(x float64) float64 {
				d := x - x0
				return -(d / (w * w)) * math.Exp(-(d*d)/(2*w*w))
			},
		}
	})
	register("step", func(a, b float64) Profile {
		mid := 0.5 * (a + b)
		return Profile{
			U0: func(x float64) float64 {
				if x < mid {
					return 0
				}
				return 1
			},
			DU0: func(x float64) float64 { return 0 },
		}
	})
}

// New looks up Initial_condition and builds its closures over the
// domain [a,b] (gaussian/step center on the domain midpoint).
func New(name string, a, b float64) (Profile, error) {
	c, ok := registry[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown Initial_condition %q", name)
	}
	return c(a, b), nil
}

// Apply projects prof onto every variable's u and q blocks of Y (same
// profile for all N channels), then sets sigma's coefficients from the
// same ProjectKappa quadrature the residual's R3 block uses, so R3=0
// holds exactly at t0 without a Newton correction. Y's lambda block is
// seeded with u0 sampled at the grid's trace points — a reasonable
// initial guess, not yet the exact R4=0 solution; callers finish the
// consistent state with dae.Harness.ConsistentIC.
func Apply(L field.Layout, grid basis.Grid, bas *basis.LegendreBasis, diff physics.Diffusion, prof Profile, Y []float64) {
	u := field.Bind(L, grid, bas, Y, field.U)
	q := field.Bind(L, grid, bas, Y, field.Q)
	sigma := field.Bind(L, grid, bas, Y, field.Sigma)
	lambda := field.BindTrace(L, Y)

	for v := 0; v < L.N; v++ {
		u.Assign(v, prof.U0)
		q.Assign(v, prof.DU0)
	}

	for i, I := range grid.Cells {
		qAt := func(j int, x float64) float64 { return q.EvalInCell(i, j, x) }
		uAt := func(j int, x float64) float64 { return u.EvalInCell(i, j, x) }
		for v := 0; v < L.N; v++ {
			proj := physics.ProjectKappa(diff, v, L.N, I, bas, qAt, uAt)
			c := sigma.Coeffs(v, i)
			for m, p := range proj {
				c[m] = -p
			}
		}
	}

	xs := make([]float64, L.Nc+1)
	xs[0] = grid.A
	for i, I := range grid.Cells {
		xs[i+1] = I.Xu
	}
	for v := 0; v < L.N; v++ {
		for j, x := range xs {
			lambda.Set(v, j, prof.U0(x))
		}
	}
}
