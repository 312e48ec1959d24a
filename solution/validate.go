package solution

import (
	"fmt"
	"slices"

	"github.com/jabaum/bosy/expr"
)

// Validate checks the controller's consistency: the initial state exists,
// signal names are unique, guards only mention inputs, Moore output guards
// are literals, and under Mealy every declared output has a guard in every
// reachable state.
func (c *Controller) Validate() error {
	if c.Bound <= 0 {
		return ErrNoStates
	}
	if !c.hasState(c.Initial) {
		return fmt.Errorf("initial state: %w: %d", ErrUnknownState, c.Initial)
	}
	if err := c.checkNames(); err != nil {
		return err
	}
	if err := c.checkAtoms(); err != nil {
		return err
	}

	switch c.Semantics {
	case Moore:
		for _, st := range c.States() {
			for _, o := range c.Outputs {
				g, ok := c.OutputGuard(st, o)
				if !ok {
					continue
				}
				if _, err := mooreValue(st, o, g); err != nil {
					return err
				}
			}
		}
	case Mealy:
		reach := c.Reachable()
		for st, ok := reach.NextSet(0); ok; st, ok = reach.NextSet(st + 1) {
			for _, o := range c.Outputs {
				if _, defined := c.OutputGuard(int(st), o); !defined {
					return fmt.Errorf("state %d output %q: %w", st, o, ErrMissingOutputGuard)
				}
			}
		}
	}
	return nil
}

func (c *Controller) checkNames() error {
	seen := make(map[string]string, len(c.Inputs)+len(c.Outputs))
	for _, group := range []struct {
		kind  string
		names []string
	}{{"input", c.Inputs}, {"output", c.Outputs}} {
		for _, name := range group.names {
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("%w: %s %q is also declared as %s", ErrNameClash, group.kind, name, prev)
			}
			seen[name] = group.kind
		}
	}
	return nil
}

func (c *Controller) checkAtoms() error {
	var guards []*expr.Node
	for _, outgoing := range c.Transitions {
		for _, g := range outgoing {
			guards = append(guards, g)
		}
	}
	for _, outs := range c.OutputGuards {
		for _, g := range outs {
			guards = append(guards, g)
		}
	}
	for _, atom := range expr.Atoms(guards...) {
		if !slices.Contains(c.Inputs, atom) {
			return fmt.Errorf("%w: %q", ErrUnknownInput, atom)
		}
	}
	return nil
}

// mooreValue reduces a Moore output guard to its constant value.
func mooreValue(state int, output string, g *expr.Node) (bool, error) {
	v, ok, err := expr.Constant(g)
	if err != nil {
		return false, fmt.Errorf("state %d output %q: %w", state, output, err)
	}
	if !ok {
		return false, fmt.Errorf("state %d output %q: %w: %s", state, output, ErrNonLiteralMooreGuard, g)
	}
	return v, nil
}

// NonExhaustiveStates returns the states whose outgoing guards do not
// cover every input valuation, including states without any outgoing
// transition. The Verilog renderer takes the last guard of a state as an
// unconditional fallback, which is only faithful for exhaustive states.
func (c *Controller) NonExhaustiveStates() ([]int, error) {
	var out []int
	for _, st := range c.States() {
		var guards []*expr.Node
		for _, to := range c.Successors(st) {
			guards = append(guards, c.Transitions[st][to])
		}
		valid, err := expr.Valid(expr.Or(guards...))
		if err != nil {
			return nil, fmt.Errorf("state %d: %w", st, err)
		}
		if !valid {
			out = append(out, st)
		}
	}
	return out, nil
}
