package physics

import "fmt"

// FloatsOrUniform reads key from p as either a single float64
// (broadcast to all N variables) or a slice of length N. Missing key
// defaults to zero for every variable. Shared by the diffusion and
// source provider packages so each provider's config parsing stays a
// one-line call rather than duplicated type-switch boilerplate.
func FloatsOrUniform(p Params, key string, N int) ([]float64, error) {
	raw, ok := p[key]
	if !ok {
		return make([]float64, N), nil
	}
	switch v := raw.(type) {
	case float64:
		out := make([]float64, N)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case int:
		out := make([]float64, N)
		for i := range out {
			out[i] = float64(v)
		}
		return out, nil
	case []float64:
		if len(v) != N {
			return nil, fmt.Errorf("%s has %d entries, expected %d", key, len(v), N)
		}
		return v, nil
	case []interface{}:
		if len(v) != N {
			return nil, fmt.Errorf("%s has %d entries, expected %d", key, len(v), N)
		}
		out := make([]float64, N)
		for i, e := range v {
			f, ok := ToFloat(e)
			if !ok {
				return nil, fmt.Errorf("%s[%d] is not numeric", key, i)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s has unsupported type %T", key, raw)
	}
}

// MatrixParam reads key as an N x N matrix, encoded as a nested
// []interface{} of []interface{} (the natural TOML array-of-arrays
// shape for a coupled diffusion matrix).
func MatrixParam(p Params, key string, N int) ([][]float64, error) {
	raw, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("%s is required", key)
	}
	rows, ok := raw.([]interface{})
	if !ok || len(rows) != N {
		return nil, fmt.Errorf("%s must be an %dx%d matrix", key, N, N)
	}
	out := make([][]float64, N)
	for i, rowRaw := range rows {
		row, ok := rowRaw.([]interface{})
		if !ok || len(row) != N {
			return nil, fmt.Errorf("%s row %d must have %d entries", key, i, N)
		}
		out[i] = make([]float64, N)
		for j, e := range row {
			f, ok := ToFloat(e)
			if !ok {
				return nil, fmt.Errorf("%s[%d][%d] is not numeric", key, i, j)
			}
			out[i][j] = f
		}
	}
	return out, nil
}

func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
