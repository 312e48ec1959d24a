package solution

import (
	"fmt"
	"strings"

	"github.com/jabaum/bosy/expr"
)

// Verilog renders the controller as a synthesizable Verilog module with a
// binary-encoded state register.
//
// Within a state the outgoing guards are tested as an if/else chain, but
// the last one is taken unconditionally. This is only faithful when the
// guards of the state are exhaustive; see NonExhaustiveStates.
func (c *Controller) Verilog() (string, error) {
	if c.Bound <= 0 {
		return "", ErrNoStates
	}
	p := expr.Verilog.NewPrinter()
	operand := func(n *expr.Node) (string, error) {
		s, err := p.Fold(n)
		if err != nil {
			return "", err
		}
		return group(n, s), nil
	}

	width := max(BitsNeeded(c.Bound), 1)
	stateConst := func(st int) string { return fmt.Sprintf("`S%d", st) }

	var sb strings.Builder
	signature := append(append([]string(nil), c.Inputs...), c.Outputs...)
	fmt.Fprintf(&sb, "module fsm(%s);\n", strings.Join(signature, ", "))
	for _, in := range c.Inputs {
		fmt.Fprintf(&sb, "  input %s;\n", in)
	}
	for _, o := range c.Outputs {
		fmt.Fprintf(&sb, "  output %s;\n", o)
	}
	fmt.Fprintf(&sb, "  reg [%d:0] state;\n", width-1)
	for _, st := range c.States() {
		fmt.Fprintf(&sb, "  `define S%d %d'b%0*b\n", st, width, width, st)
	}

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
			terms = append(terms, fmt.Sprintf("(state == %s) && %s", stateConst(st), s))
		}
		if len(terms) == 0 {
			terms = []string{expr.Verilog.False}
		}
		fmt.Fprintf(&sb, "  assign %s = (%s) ? 1 : 0;\n", o, strings.Join(terms, " || "))
	}

	sb.WriteString("  initial\n  begin\n")
	fmt.Fprintf(&sb, "    state = %s;\n", stateConst(c.Initial))
	sb.WriteString("  end\n")
	sb.WriteString("  always @($global_clock)\n  begin\n")
	sb.WriteString("    case(state)\n")
	for _, from := range c.States() {
		targets := c.Successors(from)
		if len(targets) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "      %s: begin\n", stateConst(from))
		for i, to := range targets {
			last := i == len(targets)-1
			switch {
			case len(targets) == 1:
				fmt.Fprintf(&sb, "        state = %s;\n", stateConst(to))
				continue
			case last:
				sb.WriteString("        else\n")
			default:
				g, err := p.Fold(c.Transitions[from][to])
				if err != nil {
					return "", err
				}
				keyword := "if"
				if i > 0 {
					keyword = "else if"
				}
				fmt.Fprintf(&sb, "        %s (%s)\n", keyword, g)
			}
			fmt.Fprintf(&sb, "          state = %s;\n", stateConst(to))
		}
		sb.WriteString("      end\n")
	}
	sb.WriteString("    endcase\n")
	sb.WriteString("  end\n")
	sb.WriteString("endmodule\n")
	return sb.String(), nil
}
