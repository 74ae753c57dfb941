package fathom

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeTolerance is returned by Params.Validate for a
	// tolerance below zero.
	ErrNegativeTolerance = errors.New("tolerance must not be negative")

	// ErrNegativeInterval is returned by Params.Validate for a status
	// interval below zero.
	ErrNegativeInterval = errors.New("print interval must not be negative")
)

// Params are the externally tunable knobs of a search. They are set
// once before the search starts and are immutable during the run.
type Params struct {
	// AbsoluteTolerance fathoms any subproblem whose bound is within
	// this absolute distance of the incumbent.
	AbsoluteTolerance float64
	// RelativeTolerance fathoms any subproblem whose bound is within
	// this fraction of the comparison scale (the bound's magnitude,
	// falling back to the incumbent's).
	RelativeTolerance float64
	// PrintInterval emits a status report every PrintInterval
	// processed nodes; zero disables status output.
	PrintInterval int
	// Debug enables per-node trace events and extra contract
	// assertions in the engine.
	Debug bool
}

// DefaultParams returns the zero configuration: both tolerances zero,
// so the search proves exact optimality, and status output disabled.
func DefaultParams() Params {
	return Params{}
}

// Validate rejects parameter values the engine cannot honor.
func (p Params) Validate() error {
	if p.AbsoluteTolerance < 0 {
		return fmt.Errorf("absolute tolerance %g: %w", p.AbsoluteTolerance, ErrNegativeTolerance)
	}
	if p.RelativeTolerance < 0 {
		return fmt.Errorf("relative tolerance %g: %w", p.RelativeTolerance, ErrNegativeTolerance)
	}
	if p.PrintInterval < 0 {
		return fmt.Errorf("print interval %d: %w", p.PrintInterval, ErrNegativeInterval)
	}
	return nil
}
