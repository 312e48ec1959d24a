package automaton

import (
	"fmt"
	"strings"
)

// Dot renders the automaton in Graphviz DOT. Rejecting states are drawn
// with a double border; a non-trivial safety condition is shown under the
// state name.
func (a *Automaton) Dot() string {
	var sb strings.Builder
	sb.WriteString("digraph automaton {\n")

	for i, st := range a.Initial.Sorted() {
		fmt.Fprintf(&sb, "\t_init%d [style=\"invis\"];\n", i)
		fmt.Fprintf(&sb, "\t_init%d -> %q [label=\"\"];\n", i, st)
	}

	for _, st := range a.States.Sorted() {
		shape := "circle"
		if a.Rejecting.Has(st) {
			shape = "doublecircle"
		}
		label := string(st)
		if c := a.SafetyCondition(st); !c.IsTrue() {
			label += "\\n" + c.String()
		}
		fmt.Fprintf(&sb, "\t%q [shape=%s,label=\"%s\"];\n", st, shape, escapeLabel(label))
	}

	for _, source := range a.States.Sorted() {
		for _, target := range a.Successors(source) {
			guard := a.Transitions[source][target]
			fmt.Fprintf(&sb, "\t%q -> %q [label=\"%s\"];\n", source, target, escapeLabel(guard.String()))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
