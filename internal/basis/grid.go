package basis

import (
	"fmt"

	"github.com/openhdg/hdg1d/internal/errs"
)

// Interval is a single cell [Xl,Xu] of the grid. Immutable after
// construction.
type Interval struct {
	Xl, Xu float64
}

func (I Interval) Length() float64 {
	return I.Xu - I.Xl
}

// Grid is an ordered sequence of Nc abutting intervals covering [a,b].
// Immutable after construction.
type Grid struct {
	A, B  float64
	Cells []Interval
}

// NewUniformGrid splits [a,b] into nc equal cells.
func NewUniformGrid(a, b float64, nc int) (Grid, error) {
	if nc < 1 {
		return Grid{}, fmt.Errorf("%w: Grid_size must be >= 1, got %d", errs.ErrConfiguration, nc)
	}
	if !(a < b) {
		return Grid{}, fmt.Errorf("%w: Lower_boundary (%v) must be < Upper_boundary (%v)", errs.ErrConfiguration, a, b)
	}
	h := (b - a) / float64(nc)
	cells := make([]Interval, nc)
	for i := 0; i < nc; i++ {
		cells[i] = Interval{Xl: a + float64(i)*h, Xu: a + float64(i+1)*h}
	}
	return Grid{A: a, B: b, Cells: cells}, nil
}

// Locate returns the index of the cell containing x, or -1 if x is
// outside [a,b]. Callers that need a value rather than an index (DGField
// evaluation) must turn a -1 into NaN themselves.
func (g Grid) Locate(x float64) int {
	if x < g.A || x > g.B {
		return -1
	}
	for i, c := range g.Cells {
		if x <= c.Xu || i == len(g.Cells)-1 {
			return i
		}
	}
	return -1
}
