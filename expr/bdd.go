package expr

import (
	"errors"
	"fmt"

	"github.com/dalzilio/rudd"
)

// Semantic checks. Structural simplification only catches the trivial
// cases; these decide validity exactly by building a BDD over the atoms of
// the formulas involved.

var errBDD = errors.New("bdd operation failed")

type bddAlgebra struct {
	b     *rudd.BDD
	index map[string]int
}

func newBDD(ns ...*Node) (*bddAlgebra, error) {
	atoms := Atoms(ns...)
	b, err := rudd.New(max(1, len(atoms)), rudd.Nodesize(1<<12), rudd.Cachesize(1<<10))
	if err != nil {
		return nil, fmt.Errorf("create bdd: %w", err)
	}
	index := make(map[string]int, len(atoms))
	for i, a := range atoms {
		index[a] = i
	}
	return &bddAlgebra{b: b, index: index}, nil
}

func (a *bddAlgebra) Lit(v bool) rudd.Node {
	if v {
		return a.b.True()
	}
	return a.b.False()
}

func (a *bddAlgebra) Var(name string) (rudd.Node, error) {
	i, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("proposition %q not indexed", name)
	}
	return a.b.Ithvar(i), nil
}

func (a *bddAlgebra) Not(_ *Node, x rudd.Node) rudd.Node { return a.b.Not(x) }

func (a *bddAlgebra) And(_ *Node, xs []rudd.Node) rudd.Node { return a.b.And(xs...) }

func (a *bddAlgebra) Or(_ *Node, xs []rudd.Node) rudd.Node { return a.b.Or(xs...) }

func (a *bddAlgebra) build(n *Node) (rudd.Node, error) {
	r, err := Fold[rudd.Node](n, a)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errBDD
	}
	return r, nil
}

// Satisfiable reports whether some valuation makes n true.
func Satisfiable(n *Node) (bool, error) {
	if n.Type == NodeLit {
		return n.Value, nil
	}
	a, err := newBDD(n)
	if err != nil {
		return false, err
	}
	r, err := a.build(n)
	if err != nil {
		return false, err
	}
	return !a.b.Equal(r, a.b.False()), nil
}

// Valid reports whether every valuation makes n true.
func Valid(n *Node) (bool, error) {
	if n.Type == NodeLit {
		return n.Value, nil
	}
	a, err := newBDD(n)
	if err != nil {
		return false, err
	}
	r, err := a.build(n)
	if err != nil {
		return false, err
	}
	return a.b.Equal(r, a.b.True()), nil
}

// Equivalent reports whether x and y agree on every valuation.
func Equivalent(x, y *Node) (bool, error) {
	if Equal(x, y) {
		return true, nil
	}
	a, err := newBDD(x, y)
	if err != nil {
		return false, err
	}
	rx, err := a.build(x)
	if err != nil {
		return false, err
	}
	ry, err := a.build(y)
	if err != nil {
		return false, err
	}
	return a.b.Equal(rx, ry), nil
}

// Constant reduces n to a literal when it is a tautology or a
// contradiction. ok is false when n depends on its propositions.
func Constant(n *Node) (value, ok bool, err error) {
	if n.Type == NodeLit {
		return n.Value, true, nil
	}
	a, err := newBDD(n)
	if err != nil {
		return false, false, err
	}
	r, err := a.build(n)
	if err != nil {
		return false, false, err
	}
	switch {
	case a.b.Equal(r, a.b.True()):
		return true, true, nil
	case a.b.Equal(r, a.b.False()):
		return false, true, nil
	}
	return false, false, nil
}
