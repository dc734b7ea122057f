package linalg

import "gonum.org/v1/gonum/mat"

// AccumulateTraceBlock adds a 2x2 per-variable corner block into a
// global N*(Nc+1)-sized dense matrix at cell i, variable v, per the
// block-tridiagonal assembly rule shared by H_global and K_global: cell
// i contributes to block (i,i)...(i+1,i+1). block must be 2x2; it is
// added, not overwritten, since adjacent cells overlap at shared trace
// nodes.
func AccumulateTraceBlock(global *mat.Dense, nc, v, i int, block mat.Matrix) {
	base := v*(nc+1) + i
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			global.Set(base+r, base+c, global.At(base+r, base+c)+block.At(r, c))
		}
	}
}

// AccumulateTraceVec adds a length-2 per-variable corner contribution
// into a global N*(Nc+1) vector at cell i, variable v (used for the
// residual's sum(C*sigma + G*u) trace accumulation and for the F_global
// particular-solution assembly).
func AccumulateTraceVec(global []float64, nc, v, i int, vals [2]float64) {
	base := v*(nc+1) + i
	global[base] += vals[0]
	global[base+1] += vals[1]
}
