package automaton

import (
	"fmt"
	"strings"

	"github.com/jabaum/bosy/expr"
)

const (
	acceptPrefix = "accept_"
	initSuffix   = "_init"
)

// ParseNeverClaim reads a Spin never claim as printed by ltl3ba or
// `ltl2tgba --spin`. States named accept_* are rejecting, the unique state
// named *_init is initial. The result is simplified and SCC-annotated.
func ParseNeverClaim(text string) (*Annotated, error) {
	a := New()
	var (
		current    State
		hasCurrent bool
		hasInitial bool
	)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		fail := func(err error) (*Annotated, error) {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}

		switch {
		case line == "" || isNeverClaimNoise(line):
			continue

		case strings.HasPrefix(line, "::"):
			body := strings.TrimSpace(strings.TrimPrefix(line, "::"))
			guardText, target, ok := strings.Cut(body, "-> goto ")
			if !ok {
				return fail(fmt.Errorf("%w: expected '<guard> -> goto <state>'", ErrMalformedLine))
			}
			if !hasCurrent {
				return fail(fmt.Errorf("%w: transition outside of a state", ErrMalformedLine))
			}
			guard, err := expr.Parse(strings.TrimSpace(guardText))
			if err != nil {
				return fail(fmt.Errorf("%w: %v", ErrInvalidGuard, err))
			}
			target = strings.TrimSuffix(strings.TrimSpace(target), ";")
			a.AddTransition(current, normalizeStateName(target), guard)

		case strings.HasSuffix(line, ":"):
			orig := strings.TrimSuffix(line, ":")
			name := normalizeStateName(orig)
			a.AddState(name)
			if strings.HasPrefix(orig, acceptPrefix) {
				a.Rejecting.Add(name)
			}
			if strings.HasSuffix(orig, initSuffix) {
				if hasInitial {
					return fail(ErrDuplicateInitialState)
				}
				hasInitial = true
				a.Initial.Add(name)
			}
			current, hasCurrent = name, true

		case strings.Contains(line, "skip"):
			if !hasCurrent {
				return fail(fmt.Errorf("%w: skip outside of a state", ErrMalformedLine))
			}
			a.AddTransition(current, current, expr.True())
		}
	}

	if !hasInitial {
		return nil, &ParseError{Err: ErrNoInitialState}
	}
	annotated, err := Annotate(a)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return annotated, nil
}

func isNeverClaimNoise(line string) bool {
	if strings.HasPrefix(line, "never") || strings.HasPrefix(line, "}") || strings.HasPrefix(line, "/*") {
		return true
	}
	switch strings.Fields(line)[0] {
	case "if", "fi", "fi;":
		return true
	}
	return false
}

func normalizeStateName(name string) State {
	name = strings.TrimPrefix(name, acceptPrefix)
	name = strings.TrimSuffix(name, initSuffix)
	return State(name)
}
