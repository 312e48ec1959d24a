package expr

import "fmt"

// Algebra interprets each node kind of a formula into some backend value:
// a circuit literal, a text fragment, a BDD node. Children are interpreted
// before their parent; n is passed along so a backend can inspect the shape
// of the children (for instance to decide on parentheses).
type Algebra[T any] interface {
	Lit(v bool) T
	Var(name string) (T, error)
	Not(n *Node, x T) T
	And(n *Node, xs []T) T
	Or(n *Node, xs []T) T
}

// Folder evaluates formulas bottom-up through an Algebra. Results are
// memoised per node, so subformulas shared between several roots are
// interpreted once for the lifetime of the Folder.
type Folder[T any] struct {
	alg  Algebra[T]
	memo map[*Node]T
}

// NewFolder returns a Folder for alg.
func NewFolder[T any](alg Algebra[T]) *Folder[T] {
	return &Folder[T]{alg: alg, memo: make(map[*Node]T)}
}

// Fold interprets a single formula with a fresh memo table.
func Fold[T any](n *Node, alg Algebra[T]) (T, error) {
	return NewFolder(alg).Fold(n)
}

// Fold interprets n.
func (f *Folder[T]) Fold(n *Node) (T, error) {
	if v, ok := f.memo[n]; ok {
		return v, nil
	}
	var zero T
	var v T
	switch n.Type {
	case NodeLit:
		v = f.alg.Lit(n.Value)
	case NodeVar:
		x, err := f.alg.Var(n.Name)
		if err != nil {
			return zero, err
		}
		v = x
	case NodeNot:
		x, err := f.Fold(n.Children[0])
		if err != nil {
			return zero, err
		}
		v = f.alg.Not(n, x)
	case NodeAnd, NodeOr:
		xs := make([]T, len(n.Children))
		for i, c := range n.Children {
			x, err := f.Fold(c)
			if err != nil {
				return zero, err
			}
			xs[i] = x
		}
		if n.Type == NodeAnd {
			v = f.alg.And(n, xs)
		} else {
			v = f.alg.Or(n, xs)
		}
	default:
		return zero, fmt.Errorf("unknown node type %d", n.Type)
	}
	f.memo[n] = v
	return v, nil
}
