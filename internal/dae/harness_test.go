package dae

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhdg/hdg1d/internal/field"
)

func TestIDMaskMarksOnlyUSlots(t *testing.T) {
	L := field.Layout{N: 2, Nc: 3, K: 1}
	h := &Harness{Layout: L}
	mask := h.IDMask()
	require.Len(t, mask, L.Len())

	for i := 0; i < L.Nc; i++ {
		off := L.Offset(field.U, 0, i)
		for j := 0; j < L.N*L.Np(); j++ {
			assert.Equal(t, 1.0, mask[off+j])
		}
	}
	for j := 0; j < L.LambdaBase(); j++ {
		if !isUSlot(L, j) {
			assert.Equal(t, 0.0, mask[j])
		}
	}
	for j := L.LambdaBase(); j < L.Len(); j++ {
		assert.Equal(t, 0.0, mask[j])
	}
}

func isUSlot(L field.Layout, idx int) bool {
	for i := 0; i < L.Nc; i++ {
		off := L.Offset(field.U, 0, i)
		if idx >= off && idx < off+L.N*L.Np() {
			return true
		}
	}
	return false
}

func TestConsistentICCorrectsLambdaAndUDot(t *testing.T) {
	L := field.Layout{N: 1, Nc: 1, K: 0}
	h := &Harness{
		Layout: L,
		Eval: func(t float64, Y, Ydot, res []float64) error {
			// R4 = -lambda + target(5): drives lambda to 5.
			base := L.LambdaBase()
			for j := 0; j < L.N*(L.Nc+1); j++ {
				res[base+j] = -Y[base+j] + 5
			}
			// R2 (q-block) = -3 regardless of state: drives udot to 3.
			qOff := L.Offset(field.Q, 0, 0)
			res[qOff] = -3
			return nil
		},
	}

	Y := make([]float64, L.Len())
	Ydot := make([]float64, L.Len())
	require.NoError(t, h.ConsistentIC(0, Y, Ydot))

	base := L.LambdaBase()
	for j := 0; j < L.N*(L.Nc+1); j++ {
		assert.InDelta(t, 5.0, Y[base+j], 1e-12)
	}
	uOff := L.Offset(field.U, 0, 0)
	assert.InDelta(t, 3.0, Ydot[uOff], 1e-12)
}
