package solution

import (
	"fmt"
	"strings"

	"github.com/jabaum/bosy/expr"
)

// Dot renders the controller as a Graphviz graph. Moore states list the
// outputs they raise; Mealy edges are labelled "guard / outputs", one edge
// per target and output vector that can occur together.
func (c *Controller) Dot() (string, error) {
	if c.Bound <= 0 {
		return "", ErrNoStates
	}
	var sb strings.Builder
	sb.WriteString("digraph controller {\n")
	sb.WriteString("\t_init [style=\"invis\"];\n")
	fmt.Fprintf(&sb, "\t_init -> s%d [label=\"\"];\n", c.Initial)

	var err error
	switch c.Semantics {
	case Moore:
		err = c.mooreDot(&sb)
	default:
		err = c.mealyDot(&sb)
	}
	if err != nil {
		return "", err
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func (c *Controller) mooreDot(sb *strings.Builder) error {
	for _, st := range c.States() {
		var raised []string
		for _, o := range c.Outputs {
			g, ok := c.OutputGuard(st, o)
			if !ok {
				continue
			}
			v, err := mooreValue(st, o, g)
			if err != nil {
				return err
			}
			if v {
				raised = append(raised, o)
			}
		}
		fmt.Fprintf(sb, "\ts%d [shape=rectangle,label=\"s%d\\n%s\"];\n", st, st, strings.Join(raised, " "))
	}
	for _, from := range c.States() {
		for _, to := range c.Successors(from) {
			fmt.Fprintf(sb, "\ts%d -> s%d [label=\"%s\"];\n", from, to, c.Transitions[from][to])
		}
	}
	return nil
}

func (c *Controller) mealyDot(sb *strings.Builder) error {
	for _, st := range c.States() {
		fmt.Fprintf(sb, "\ts%d [shape=rectangle,label=\"s%d\"];\n", st, st)
	}
	for _, from := range c.States() {
		vectors, err := c.outputVectors(from)
		if err != nil {
			return err
		}
		for _, to := range c.Successors(from) {
			for _, v := range vectors {
				g := expr.And(c.Transitions[from][to], v.guard)
				ok, err := expr.Satisfiable(g)
				if err != nil {
					return fmt.Errorf("state %d: %w", from, err)
				}
				if !ok {
					continue
				}
				fmt.Fprintf(sb, "\ts%d -> s%d [label=\"%s / %s\"];\n", from, to, g, strings.Join(v.raised, " "))
			}
		}
	}
	return nil
}

// outputVector is a set of raised outputs and the input condition under
// which exactly those outputs are raised.
type outputVector struct {
	raised []string
	guard  *expr.Node
}

// outputVectors partitions the input valuations of st by the outputs they
// raise. Each output splits every vector into the part where its guard
// holds and the part where it fails; unsatisfiable parts are dropped.
func (c *Controller) outputVectors(st int) ([]outputVector, error) {
	vectors := []outputVector{{guard: expr.True()}}
	for _, o := range c.Outputs {
		g, ok := c.OutputGuard(st, o)
		if !ok || g.IsFalse() {
			continue
		}
		var split []outputVector
		for _, v := range vectors {
			with := outputVector{raised: append(v.raised[:len(v.raised):len(v.raised)], o), guard: expr.And(v.guard, g)}
			without := outputVector{raised: v.raised, guard: expr.And(v.guard, expr.Not(g))}
			for _, part := range []outputVector{with, without} {
				sat, err := expr.Satisfiable(part.guard)
				if err != nil {
					return nil, fmt.Errorf("state %d output %q: %w", st, o, err)
				}
				if sat {
					split = append(split, part)
				}
			}
		}
		vectors = split
	}
	return vectors, nil
}
