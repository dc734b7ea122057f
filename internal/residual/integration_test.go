package residual

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhdg/hdg1d/internal/assembler"
	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/dae"
	"github.com/openhdg/hdg1d/internal/field"
	"github.com/openhdg/hdg1d/internal/ic"
	"github.com/openhdg/hdg1d/internal/jacobian"
	"github.com/openhdg/hdg1d/internal/physics"
	_ "github.com/openhdg/hdg1d/internal/physics/diffusion"
	_ "github.com/openhdg/hdg1d/internal/physics/source"
)

// buildSineDirichletCase wires the whole core for a homogeneous-Dirichlet,
// constant-diffusion, zero-source case seeded with the sine profile —
// the S1-style end-to-end scenario.
func buildSineDirichletCase(t *testing.T) (*dae.Harness, field.Layout, []float64, []float64) {
	t.Helper()
	grid, err := basis.NewUniformGrid(0, 1, 6)
	require.NoError(t, err)
	bas, err := basis.NewLegendreBasis(2)
	require.NoError(t, err)
	L := field.Layout{N: 1, Nc: 6, K: 2}

	diff, err := physics.NewDiffusion("constant", 1, physics.Params{"kappa0": 1.0})
	require.NoError(t, err)
	src, err := physics.NewSource("zero", 1, physics.Params{})
	require.NoError(t, err)

	zeroBC := func(v int, t float64) float64 { return 0 }
	asm, err := assembler.New(assembler.Config{
		Layout: L,
		Grid:   grid,
		Bas:    bas,
		Lower:  assembler.Boundary{Kind: assembler.Dirichlet, Value: zeroBC},
		Upper:  assembler.Boundary{Kind: assembler.Dirichlet, Value: zeroBC},
		Tau:    1,
		C:      []float64{0},
	})
	require.NoError(t, err)

	ev := New(Config{Layout: L, Grid: grid, Bas: bas, Asm: asm, Diffusion: diff, Source: src})
	js := jacobian.New(jacobian.Config{Layout: L, Grid: grid, Bas: bas, Asm: asm, Diffusion: diff, Source: src})
	h := &dae.Harness{Layout: L, Eval: ev.Evaluate, Solve: js.LinearSolve}

	prof, err := ic.New("sine", 0, 1)
	require.NoError(t, err)
	Y := make([]float64, L.Len())
	Ydot := make([]float64, L.Len())
	ic.Apply(L, grid, bas, diff, prof, Y)
	require.NoError(t, h.ConsistentIC(0, Y, Ydot))
	return h, L, Y, Ydot
}

func TestConsistentICZeroesTraceAndEvolutionResidual(t *testing.T) {
	h, L, Y, Ydot := buildSineDirichletCase(t)

	res := make([]float64, L.Len())
	require.NoError(t, h.Eval(0, Y, Ydot, res))

	// R4 (trace) and R2 (q-block) are driven to exactly zero by
	// dae.Harness.ConsistentIC's construction.
	base := L.LambdaBase()
	for j := base; j < L.Len(); j++ {
		assert.InDelta(t, 0.0, res[j], 1e-9)
	}
	for i := 0; i < L.Nc; i++ {
		off := L.Offset(field.Q, 0, i)
		for j := 0; j < L.N*L.Np(); j++ {
			assert.InDelta(t, 0.0, res[off+j], 1e-9)
		}
	}

	// R3 (u-block: sigma + Pi(kappa)) is zero by ic.Apply's construction.
	for i := 0; i < L.Nc; i++ {
		off := L.Offset(field.U, 0, i)
		for j := 0; j < L.N*L.Np(); j++ {
			assert.InDelta(t, 0.0, res[off+j], 1e-9)
		}
	}
}

func TestJacobianLinearSolveProducesFiniteUpdate(t *testing.T) {
	h, L, Y, Ydot := buildSineDirichletCase(t)

	res := make([]float64, L.Len())
	require.NoError(t, h.Eval(0, Y, Ydot, res))

	g := make([]float64, L.Len())
	for i := range g {
		g[i] = -res[i]
	}
	delta := make([]float64, L.Len())
	require.NoError(t, h.Solve(1.0, Y, g, delta))
	for _, d := range delta {
		assert.False(t, math.IsNaN(d) || math.IsInf(d, 0))
	}
}
