package solution

import "errors"

var (
	// ErrNoStates is returned for a controller with an empty state space.
	ErrNoStates = errors.New("controller has no states")
	// ErrUnknownState is returned for a state outside 0..bound-1.
	ErrUnknownState = errors.New("unknown state")
	// ErrUnknownOutput is returned for an output that was not declared.
	ErrUnknownOutput = errors.New("unknown output")
	// ErrUnknownInput is returned when a guard mentions an undeclared input.
	ErrUnknownInput = errors.New("unknown input")
	// ErrUndefinedOutput is returned when a declared output has no guard in
	// any state.
	ErrUndefinedOutput = errors.New("output is never defined")
	// ErrMissingOutputGuard is returned when a reachable Mealy state leaves
	// a declared output without a guard.
	ErrMissingOutputGuard = errors.New("output guard missing in reachable state")
	// ErrNonLiteralMooreGuard is returned when a Moore output guard depends
	// on the inputs.
	ErrNonLiteralMooreGuard = errors.New("moore output guard is not a literal")
	// ErrNameClash is returned when two signals of the circuit share a name.
	ErrNameClash = errors.New("signal name clash")
	// ErrNoTransition is returned by Step when no outgoing guard holds.
	ErrNoTransition = errors.New("no enabled transition")
)
