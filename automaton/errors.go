package automaton

import (
	"errors"
	"fmt"
)

var (
	ErrNoInitialState        = errors.New("no initial state")
	ErrDuplicateInitialState = errors.New("duplicate initial state")
	ErrUnsupportedAcceptance = errors.New("unsupported acceptance condition")
	ErrMalformedLine         = errors.New("malformed line")
	ErrInvalidGuard          = errors.New("invalid guard")
	ErrUnknownProposition    = errors.New("unknown atomic proposition")
	ErrUnknownState          = errors.New("unknown state")
)

// ParseError reports where in the translator output parsing failed.
type ParseError struct {
	Line int    // 1-based; 0 when the problem is not tied to a line
	Text string // offending line, trimmed
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
