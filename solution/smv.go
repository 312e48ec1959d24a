package solution

import (
	"fmt"
	"strings"

	"github.com/jabaum/bosy/expr"
)

// SMV renders the controller as an SMV module with a symbolic state
// variable, one boolean variable per input and one DEFINE per output.
func (c *Controller) SMV() (string, error) {
	if c.Bound <= 0 {
		return "", ErrNoStates
	}
	p := expr.SMV.NewPrinter()
	operand := func(n *expr.Node) (string, error) {
		s, err := p.Fold(n)
		if err != nil {
			return "", err
		}
		return group(n, s), nil
	}

	var sb strings.Builder
	sb.WriteString("MODULE main\n")
	sb.WriteString("\tVAR\n")
	names := make([]string, c.Bound)
	for i := range names {
		names[i] = fmt.Sprintf("s%d", i)
	}
	fmt.Fprintf(&sb, "\t\tstate : {%s};\n", strings.Join(names, ", "))
	for _, in := range c.Inputs {
		fmt.Fprintf(&sb, "\t\t%s : boolean;\n", in)
	}

	sb.WriteString("\tASSIGN\n")
	fmt.Fprintf(&sb, "\t\tinit(state) := s%d;\n", c.Initial)
	sb.WriteString("\t\tnext(state) := case\n")
	for _, from := range c.States() {
		for _, to := range c.Successors(from) {
			g, err := operand(c.Transitions[from][to])
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, "\t\t\tstate = s%d & %s : s%d;\n", from, g, to)
		}
	}
	sb.WriteString("\t\t\tTRUE : state;\n")
	sb.WriteString("\t\tesac;\n")

	sb.WriteString("\tDEFINE\n")
	for _, o := range c.Outputs {
		var terms []string
		for _, st := range c.States() {
			g, ok := c.OutputGuard(st, o)
			if !ok || g.IsFalse() {
				continue
			}
			s, err := operand(g)
			if err != nil {
				return "", err
			}
			terms = append(terms, fmt.Sprintf("state = s%d & %s", st, s))
		}
		if len(terms) == 0 {
			terms = []string{expr.SMV.False}
		}
		fmt.Fprintf(&sb, "\t\t%s := (%s);\n", o, strings.Join(terms, " | "))
	}
	return sb.String(), nil
}

// group parenthesizes a printed disjunction so it can be conjoined.
func group(n *expr.Node, s string) string {
	if n.Type == expr.NodeOr {
		return "(" + s + ")"
	}
	return s
}
