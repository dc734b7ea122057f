// Package errs defines the error kinds the core raises: each entrypoint
// wraps its failures in one of these so callers (and the integrator) can tell
// a configuration mistake from a singular matrix from a bad provider
// value using errors.Is, without parsing error strings.
package errs

import "errors"

var (
	ErrConfiguration = errors.New("configuration error")
	ErrAssembly      = errors.New("assembly error")
	ErrResidual      = errors.New("residual error")
	ErrLinearSolve   = errors.New("linear-solve error")
)
