package expr

import "strings"

// Dialect is the concrete syntax of a text backend.
type Dialect struct {
	True  string
	False string
	Not   string
	And   string
	Or    string
}

var (
	defaultDialect = Dialect{True: "true", False: "false", Not: "!", And: " & ", Or: " | "}

	// SMV is the syntax of SMV model files.
	SMV = Dialect{True: "TRUE", False: "FALSE", Not: "!", And: " & ", Or: " | "}

	// Verilog is the syntax of Verilog expressions.
	Verilog = Dialect{True: "1", False: "0", Not: "!", And: " && ", Or: " || "}
)

// Print renders n in dialect d.
func (d Dialect) Print(n *Node) string {
	s, _ := Fold[string](n, printer{d})
	return s
}

// NewPrinter returns a memoising printer, for rendering many formulas that
// share subformulas.
func (d Dialect) NewPrinter() *Folder[string] {
	return NewFolder[string](printer{d})
}

type printer struct {
	d Dialect
}

func (p printer) Lit(v bool) string {
	if v {
		return p.d.True
	}
	return p.d.False
}

func (p printer) Var(name string) (string, error) { return name, nil }

func (p printer) Not(n *Node, x string) string {
	return p.d.Not + wrap(n.Children[0], x)
}

func (p printer) And(n *Node, xs []string) string {
	return p.join(n, xs, p.d.And)
}

func (p printer) Or(n *Node, xs []string) string {
	return p.join(n, xs, p.d.Or)
}

func (p printer) join(n *Node, xs []string, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = wrap(n.Children[i], x)
	}
	return strings.Join(parts, sep)
}

func wrap(child *Node, s string) string {
	if child.Type == NodeAnd || child.Type == NodeOr {
		return "(" + s + ")"
	}
	return s
}

// writeNode renders the canonical form used by String. Children are already
// sealed, so their cached text is reused.
func writeNode(sb *strings.Builder, n *Node, d Dialect) {
	switch n.Type {
	case NodeLit:
		if n.Value {
			sb.WriteString(d.True)
		} else {
			sb.WriteString(d.False)
		}
	case NodeVar:
		sb.WriteString(n.Name)
	case NodeNot:
		sb.WriteString(d.Not)
		sb.WriteString(wrap(n.Children[0], n.Children[0].String()))
	case NodeAnd, NodeOr:
		sep := d.And
		if n.Type == NodeOr {
			sep = d.Or
		}
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteString(sep)
			}
			sb.WriteString(wrap(c, c.String()))
		}
	}
}
