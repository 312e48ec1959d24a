package solution

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/jabaum/bosy/expr"
)

// Semantics is the output discipline of a controller.
type Semantics int

const (
	// Mealy outputs may depend on the current inputs.
	Mealy Semantics = iota
	// Moore outputs depend on the current state only.
	Moore
)

func (s Semantics) String() string {
	switch s {
	case Mealy:
		return "mealy"
	case Moore:
		return "moore"
	}
	return fmt.Sprintf("Semantics(%d)", int(s))
}

// ParseSemantics parses "mealy" or "moore", ignoring case.
func ParseSemantics(s string) (Semantics, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mealy":
		return Mealy, nil
	case "moore":
		return Moore, nil
	}
	return Mealy, fmt.Errorf("unknown semantics %q (want mealy or moore)", s)
}

// Controller is an explicit-state reactive controller over the states
// 0..Bound-1. Guards are formulas over the input names.
type Controller struct {
	Semantics Semantics
	Bound     int
	Initial   int
	Inputs    []string
	Outputs   []string

	// Transitions[from][to] is the condition under which from moves to to.
	Transitions map[int]map[int]*expr.Node
	// OutputGuards[state][output] is the condition under which output is
	// raised in state.
	OutputGuards map[int]map[string]*expr.Node
}

// New returns an empty controller with states 0..bound-1 and initial
// state 0.
func New(bound int, inputs, outputs []string, sem Semantics) *Controller {
	return &Controller{
		Semantics:    sem,
		Bound:        bound,
		Inputs:       slices.Clone(inputs),
		Outputs:      slices.Clone(outputs),
		Transitions:  make(map[int]map[int]*expr.Node),
		OutputGuards: make(map[int]map[string]*expr.Node),
	}
}

// States returns 0..Bound-1.
func (c *Controller) States() []int {
	states := make([]int, max(c.Bound, 0))
	for i := range states {
		states[i] = i
	}
	return states
}

func (c *Controller) hasState(st int) bool { return st >= 0 && st < c.Bound }

// AddTransition adds guard to the condition of the edge from -> to. Guards
// added for the same edge accumulate by disjunction.
func (c *Controller) AddTransition(from, to int, guard *expr.Node) error {
	for _, st := range []int{from, to} {
		if !c.hasState(st) {
			return fmt.Errorf("transition %d -> %d: %w: %d", from, to, ErrUnknownState, st)
		}
	}
	outgoing, ok := c.Transitions[from]
	if !ok {
		outgoing = make(map[int]*expr.Node)
		c.Transitions[from] = outgoing
	}
	if prev, ok := outgoing[to]; ok {
		guard = expr.Or(prev, guard)
	}
	outgoing[to] = guard
	return nil
}

// AddOutput adds guard to the condition under which output is raised in
// state. Guards accumulate by disjunction.
func (c *Controller) AddOutput(output string, state int, guard *expr.Node) error {
	if !slices.Contains(c.Outputs, output) {
		return fmt.Errorf("%w: %q", ErrUnknownOutput, output)
	}
	if !c.hasState(state) {
		return fmt.Errorf("output %q: %w: %d", output, ErrUnknownState, state)
	}
	guards, ok := c.OutputGuards[state]
	if !ok {
		guards = make(map[string]*expr.Node)
		c.OutputGuards[state] = guards
	}
	if prev, ok := guards[output]; ok {
		guard = expr.Or(prev, guard)
	}
	guards[output] = guard
	return nil
}

// Guard returns the condition of the edge from -> to, false if absent.
func (c *Controller) Guard(from, to int) *expr.Node {
	if g, ok := c.Transitions[from][to]; ok {
		return g
	}
	return expr.False()
}

// OutputGuard returns the guard of output in state and whether one was
// defined.
func (c *Controller) OutputGuard(state int, output string) (*expr.Node, bool) {
	g, ok := c.OutputGuards[state][output]
	return g, ok
}

// Successors returns the targets of from whose guard is not literally
// false, in ascending order.
func (c *Controller) Successors(from int) []int {
	var out []int
	for to, g := range c.Transitions[from] {
		if !g.IsFalse() {
			out = append(out, to)
		}
	}
	slices.Sort(out)
	return out
}

// Reachable returns the states reachable from the initial state.
func (c *Controller) Reachable() *bitset.BitSet {
	seen := bitset.New(uint(max(c.Bound, 0)))
	if !c.hasState(c.Initial) {
		return seen
	}
	seen.Set(uint(c.Initial))
	queue := []int{c.Initial}
	for len(queue) > 0 {
		st := queue[0]
		queue = queue[1:]
		for _, next := range c.Successors(st) {
			if !seen.Test(uint(next)) {
				seen.Set(uint(next))
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// Step simulates one reaction: the outputs raised in state under inputs
// and the successor state. When several guards hold the smallest target
// wins.
func (c *Controller) Step(state int, inputs expr.Env) (int, map[string]bool, error) {
	if !c.hasState(state) {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnknownState, state)
	}
	outputs := make(map[string]bool, len(c.Outputs))
	for _, o := range c.Outputs {
		g, ok := c.OutputGuard(state, o)
		if !ok {
			outputs[o] = false
			continue
		}
		v, err := expr.Eval(g, inputs)
		if err != nil {
			return 0, nil, fmt.Errorf("state %d output %q: %w", state, o, err)
		}
		outputs[o] = v
	}
	for _, to := range c.Successors(state) {
		v, err := expr.Eval(c.Transitions[state][to], inputs)
		if err != nil {
			return 0, nil, fmt.Errorf("transition %d -> %d: %w", state, to, err)
		}
		if v {
			return to, outputs, nil
		}
	}
	return 0, outputs, fmt.Errorf("state %d: %w", state, ErrNoTransition)
}
