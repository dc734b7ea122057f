package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/openhdg/hdg1d/internal/assembler"
	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/config"
	"github.com/openhdg/hdg1d/internal/dae"
	"github.com/openhdg/hdg1d/internal/field"
	"github.com/openhdg/hdg1d/internal/ic"
	"github.com/openhdg/hdg1d/internal/jacobian"
	"github.com/openhdg/hdg1d/internal/output"
	"github.com/openhdg/hdg1d/internal/physics"
	_ "github.com/openhdg/hdg1d/internal/physics/diffusion"
	_ "github.com/openhdg/hdg1d/internal/physics/source"
	"github.com/openhdg/hdg1d/internal/residual"
)

var (
	cpuProfile bool
	nOut       int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a configured case to completion, writing .plot trajectory files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cpuProfile {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		return runCase(cfgFile, nOut)
	},
}

func init() {
	runCmd.Flags().BoolVar(&cpuProfile, "cpuprofile", false, "profile CPU usage for this run")
	runCmd.Flags().IntVar(&nOut, "nout", 200, "number of spatial sample points per output frame")
	rootCmd.AddCommand(runCmd)
}

// runCase wires a validated config into a grid, basis, physics
// providers, assembler, residual/Jacobian evaluators and a BDF1
// integrator, then drives it from t=0 to TFinal, writing one output
// frame per step.
func runCase(cfgPath string, nOut int) error {
	if cfgPath == "" {
		return fmt.Errorf("hdg1d run: --config is required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	grid, err := basis.NewUniformGrid(cfg.LowerBoundary, cfg.UpperBoundary, cfg.GridSize)
	if err != nil {
		return err
	}
	bas, err := basis.NewLegendreBasis(cfg.PolynomialDegree)
	if err != nil {
		return err
	}
	layout := field.Layout{N: cfg.NumberOfChannels, Nc: cfg.GridSize, K: cfg.PolynomialDegree}

	diff, err := physics.NewDiffusion(cfg.DiffusionCase, layout.N, physics.Params(cfg.DiffusionParams))
	if err != nil {
		return fmt.Errorf("hdg1d run: %w", err)
	}
	src, err := physics.NewSource(cfg.ReactionCase, layout.N, physics.Params(cfg.ReactionParams))
	if err != nil {
		return fmt.Errorf("hdg1d run: %w", err)
	}

	lowerKind := assembler.Dirichlet
	if !config.IsDirichlet(cfg.LBType) {
		lowerKind = assembler.Neumann
	}
	upperKind := assembler.Dirichlet
	if !config.IsDirichlet(cfg.UBType) {
		upperKind = assembler.Neumann
	}
	lowerVal, upperVal := cfg.LBValue, cfg.UBValue
	c := make([]float64, layout.N)
	for v := range c {
		c[v] = cfg.ConvectionCoefficient
	}
	asm, err := assembler.New(assembler.Config{
		Layout: layout,
		Grid:   grid,
		Bas:    bas,
		Lower:  assembler.Boundary{Kind: lowerKind, Value: func(v int, t float64) float64 { return lowerVal }},
		Upper:  assembler.Boundary{Kind: upperKind, Value: func(v int, t float64) float64 { return upperVal }},
		Tau:    1,
		C:      c,
	})
	if err != nil {
		return err
	}

	ev := residual.New(residual.Config{Layout: layout, Grid: grid, Bas: bas, Asm: asm, Diffusion: diff, Source: src})
	js := jacobian.New(jacobian.Config{Layout: layout, Grid: grid, Bas: bas, Asm: asm, Diffusion: diff, Source: src})

	harness := &dae.Harness{
		Layout: layout,
		Eval:   ev.Evaluate,
		Solve:  js.LinearSolve,
	}
	stepper := dae.NewBDF1Stepper(harness, cfg.RelativeTolerance, cfg.AbsoluteTolerance)

	Y := make([]float64, layout.Len())
	Ydot := make([]float64, layout.Len())
	prof, err := ic.New(cfg.InitialCondition, cfg.LowerBoundary, cfg.UpperBoundary)
	if err != nil {
		return fmt.Errorf("hdg1d run: %w", err)
	}
	ic.Apply(layout, grid, bas, diff, prof, Y)
	if err := harness.ConsistentIC(0, Y, Ydot); err != nil {
		return fmt.Errorf("hdg1d run: consistent initial condition: %w", err)
	}

	configName := strings.TrimSuffix(filepath.Base(cfgPath), filepath.Ext(cfgPath))
	dir := filepath.Dir(cfgPath)
	w, err := output.New(dir, configName, layout, grid, bas, nOut)
	if err != nil {
		return err
	}
	defer w.Close()

	t := 0.0
	if err := w.WriteFrame(t, Y, Ydot); err != nil {
		return err
	}

	np := layout.Np()
	Yold := make([]float64, layout.Len())
	for t < cfg.TFinal {
		dt := cfg.DeltaT
		if t+dt > cfg.TFinal {
			dt = cfg.TFinal - t
		}
		copy(Yold, Y)
		if err := stepper.Step(t, dt, Y); err != nil {
			return fmt.Errorf("hdg1d run: %w", err)
		}
		t += dt
		for i := 0; i < layout.Nc; i++ {
			off := layout.Offset(field.U, 0, i)
			for j := 0; j < layout.N*np; j++ {
				Ydot[off+j] = (Y[off+j] - Yold[off+j]) / dt
			}
		}
		if err := w.WriteFrame(t, Y, Ydot); err != nil {
			return err
		}
	}
	return nil
}
