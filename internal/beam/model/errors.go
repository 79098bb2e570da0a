package model

import (
	"fmt"
	"strings"
)

// The engine fails with exactly three error kinds. All of them are pure
// functions of the input: the same request always produces the same error.

// ConfigError reports violated structural preconditions. It carries the
// full ordered list of problems found in a single validation pass.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid configuration: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid configuration (%d problems): %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Problems: []string{fmt.Sprintf(format, args...)}}
}

// NewConfigError builds a ConfigError from a non-empty problem list.
func NewConfigError(problems ...string) *ConfigError {
	return &ConfigError{Problems: problems}
}

type SolverErrorKind string

const (
	// Singular marks an equilibrium or compatibility system without a
	// unique solution (degenerate geometry, coincident supports).
	Singular SolverErrorKind = "singular"
	// Unsupported marks a support arrangement the solver has no
	// formulation for.
	Unsupported SolverErrorKind = "unsupported"
)

// SolverError reports an unsolvable equilibrium/compatibility system.
type SolverError struct {
	Kind SolverErrorKind
	Msg  string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver error (%s): %s", e.Kind, e.Msg)
}

func NewSolverError(kind SolverErrorKind, format string, args ...any) *SolverError {
	return &SolverError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NumericalError reports a singular boundary system or non-finite results
// during integration.
type NumericalError struct {
	Msg string
}

func (e *NumericalError) Error() string {
	return "numerical error: " + e.Msg
}

func NewNumericalError(format string, args ...any) *NumericalError {
	return &NumericalError{Msg: fmt.Sprintf(format, args...)}
}
