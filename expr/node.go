package expr

import (
	"sort"
	"strings"
)

// NodeType classifies formula nodes.
type NodeType int

const (
	NodeLit NodeType = iota
	NodeVar
	NodeNot
	NodeAnd
	NodeOr
)

// Node is an immutable boolean formula. Nodes are built through the
// constructors below, which keep them structurally simplified; callers
// switch on Type and must not mutate a node after construction.
type Node struct {
	Type     NodeType
	Value    bool   // for Lit
	Name     string // for Var
	Children []*Node

	key string // cached String()
}

var (
	trueNode  = seal(&Node{Type: NodeLit, Value: true})
	falseNode = seal(&Node{Type: NodeLit, Value: false})
)

func seal(n *Node) *Node {
	var sb strings.Builder
	writeNode(&sb, n, defaultDialect)
	n.key = sb.String()
	return n
}

// True returns the constant true.
func True() *Node { return trueNode }

// False returns the constant false.
func False() *Node { return falseNode }

// Lit returns the constant for v.
func Lit(v bool) *Node {
	if v {
		return trueNode
	}
	return falseNode
}

// Var returns the atomic proposition name.
func Var(name string) *Node {
	return seal(&Node{Type: NodeVar, Name: name})
}

// Not returns the negation of n. Literals are folded and double negations
// removed.
func Not(n *Node) *Node {
	switch n.Type {
	case NodeLit:
		return Lit(!n.Value)
	case NodeNot:
		return n.Children[0]
	}
	return seal(&Node{Type: NodeNot, Children: []*Node{n}})
}

// And returns the conjunction of ns. The empty conjunction is true.
func And(ns ...*Node) *Node {
	return junction(NodeAnd, ns)
}

// Or returns the disjunction of ns. The empty disjunction is false.
func Or(ns ...*Node) *Node {
	return junction(NodeOr, ns)
}

// junction builds an n-ary And or Or. The neutral element is dropped, the
// dominating element short-circuits, nested nodes of the same type are
// flattened, structural duplicates are removed and a complementary pair
// (x and !x) collapses to the dominating element.
func junction(t NodeType, ns []*Node) *Node {
	neutral, dominant := true, false
	if t == NodeOr {
		neutral, dominant = false, true
	}

	var flat []*Node
	var collect func(n *Node) bool
	collect = func(n *Node) bool {
		switch {
		case n.Type == NodeLit && n.Value == dominant:
			return false
		case n.Type == NodeLit:
			// neutral element
		case n.Type == t:
			for _, c := range n.Children {
				if !collect(c) {
					return false
				}
			}
		default:
			flat = append(flat, n)
		}
		return true
	}
	for _, n := range ns {
		if !collect(n) {
			return Lit(dominant)
		}
	}

	seen := make(map[string]bool, len(flat))
	children := flat[:0:0]
	for _, n := range flat {
		key := n.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		children = append(children, n)
	}
	for _, n := range children {
		if n.Type == NodeNot && seen[n.Children[0].String()] {
			return Lit(dominant)
		}
	}

	switch len(children) {
	case 0:
		return Lit(neutral)
	case 1:
		return children[0]
	}
	return seal(&Node{Type: t, Children: children})
}

// IsTrue reports whether n is the literal true.
func (n *Node) IsTrue() bool { return n.Type == NodeLit && n.Value }

// IsFalse reports whether n is the literal false.
func (n *Node) IsFalse() bool { return n.Type == NodeLit && !n.Value }

// Equal reports structural equality.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	return a.String() == b.String()
}

// Atoms returns the sorted names of all propositions occurring in ns.
func Atoms(ns ...*Node) []string {
	set := make(map[string]bool)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Type == NodeVar {
			set[n.Name] = true
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range ns {
		walk(n)
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders n in the syntax accepted by Parse.
func (n *Node) String() string {
	if n.key != "" {
		return n.key
	}
	var sb strings.Builder
	writeNode(&sb, n, defaultDialect)
	return sb.String()
}
