package search

import (
	"errors"
	"fmt"
)

var (
	// ErrEncodingFailed marks a failure to build the encoding for a bound.
	ErrEncodingFailed = errors.New("encoding failed")
	// ErrSolvingFailed marks a failure of the underlying solver.
	ErrSolvingFailed = errors.New("solving failed")
	// ErrInvalidDomain is returned when a domain cannot be searched with the
	// requested strategy.
	ErrInvalidDomain = errors.New("invalid search domain")
)

// SolveError reports the bound at which the solve function failed. It
// aborts the search; a failed attempt never counts as "unsolvable".
type SolveError struct {
	Bound int
	Err   error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solve at bound %d: %v", e.Bound, e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }
