package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// IsNan reports whether A contains a NaN or Inf value. Providers are
// required to be finite; the residual evaluator uses this
// to convert a bad provider evaluation into a recoverable solver error
// rather than propagating a silent NaN into the integrator.
func IsNan(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsNaN(v) || math.IsInf(v, 0)
	case float32:
		return math.IsNaN(float64(v)) || math.IsInf(float64(v), 0)
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return true
			}
		}
	case []float32:
		for _, f := range v {
			if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
				return true
			}
		}
	case *mat.Dense:
		return IsNan(v.RawMatrix().Data)
	case *mat.VecDense:
		return IsNan(v.RawVector().Data)
	}
	return false
}
