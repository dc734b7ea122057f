// Package output writes the plain-text ".plot" trajectory files a run
// produces, grounded on original_source/SystemSolver.cpp's two
// print(out, t, nOut, var[, ...]) overloads: one header line "# t =
// <value>" followed by nOut+1 sample rows of "x u q sigma udot qdot
// sigmadot", a blank line separating successive time frames.
package output

import (
	"fmt"
	"os"

	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/errs"
	"github.com/openhdg/hdg1d/internal/field"
)

// Writer owns one open file per variable and appends a time frame to
// each on every WriteFrame call.
type Writer struct {
	layout field.Layout
	grid   basis.Grid
	bas    *basis.LegendreBasis
	nOut   int
	files  []*os.File
}

// New opens nOut+1-sample-per-frame output files: variable 0 (the
// primary channel) writes to <configName>.plot in dir, every other
// variable v writes to u_t_<v>.plot, per spec.md §6.2's naming.
func New(dir, configName string, L field.Layout, grid basis.Grid, bas *basis.LegendreBasis, nOut int) (*Writer, error) {
	if nOut < 1 {
		return nil, fmt.Errorf("%w: output: nOut must be >= 1, got %d", errs.ErrConfiguration, nOut)
	}
	w := &Writer{layout: L, grid: grid, bas: bas, nOut: nOut, files: make([]*os.File, L.N)}
	for v := 0; v < L.N; v++ {
		name := fmt.Sprintf("u_t_%d.plot", v)
		if v == 0 {
			name = configName + ".plot"
		}
		f, err := os.Create(dir + "/" + name)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("output: opening %s: %w", name, err)
		}
		w.files[v] = f
	}
	return w, nil
}

// WriteFrame appends one time frame for every variable. Y and Ydot must
// be Layout.Len() long.
func (w *Writer) WriteFrame(t float64, Y, Ydot []float64) error {
	L := w.layout
	sigma := field.Bind(L, w.grid, w.bas, Y, field.Sigma)
	q := field.Bind(L, w.grid, w.bas, Y, field.Q)
	u := field.Bind(L, w.grid, w.bas, Y, field.U)
	sigmaDot := field.Bind(L, w.grid, w.bas, Ydot, field.Sigma)
	qDot := field.Bind(L, w.grid, w.bas, Ydot, field.Q)
	uDot := field.Bind(L, w.grid, w.bas, Ydot, field.U)

	for v := 0; v < L.N; v++ {
		f := w.files[v]
		if _, err := fmt.Fprintf(f, "# t = %v\n", t); err != nil {
			return fmt.Errorf("output: writing frame header: %w", err)
		}
		for i := 0; i <= w.nOut; i++ {
			x := w.grid.A + (w.grid.B-w.grid.A)*(float64(i)/float64(w.nOut))
			if _, err := fmt.Fprintf(f, "%v\t%v\t%v\t%v\t%v\t%v\t%v\n",
				x, u.Eval(x, v), q.Eval(x, v), sigma.Eval(x, v),
				uDot.Eval(x, v), qDot.Eval(x, v), sigmaDot.Eval(x, v)); err != nil {
				return fmt.Errorf("output: writing frame row: %w", err)
			}
		}
		if _, err := fmt.Fprintln(f); err != nil {
			return fmt.Errorf("output: writing frame separator: %w", err)
		}
	}
	return nil
}

// Close closes every open output file. Safe to call with files already
// nil from a partially-failed New.
func (w *Writer) Close() error {
	var firstErr error
	for _, f := range w.files {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
