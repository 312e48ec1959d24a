package solution

import (
	"fmt"
	"io"
	"math/bits"
	"slices"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/logic/aiger"
	"github.com/go-air/gini/z"

	"github.com/jabaum/bosy/expr"
)

// Signal is a named formula over the circuit's inputs and latches.
type Signal struct {
	Name    string
	Formula *expr.Node
}

// Circuit is the binary-encoded form of a controller. Latch i holds bit i
// of the current state number. Next[i] is the next value of latch i.
type Circuit struct {
	Inputs  []string
	Latches []string
	Init    []bool
	Outputs []Signal
	Next    []Signal
}

// BitsNeeded returns the number of bits needed to number n states.
func BitsNeeded(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func latchName(i int) string { return fmt.Sprintf("s%d", i) }

// Circuit encodes the controller's states in ceil(log2(Bound)) latches and
// derives one formula per output and one next-state formula per latch.
// An inconsistent controller (see Validate) is rejected.
func (c *Controller) Circuit() (*Circuit, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := BitsNeeded(c.Bound)
	circ := &Circuit{
		Inputs:  slices.Clone(c.Inputs),
		Latches: make([]string, n),
		Init:    make([]bool, n),
		Next:    make([]Signal, n),
	}
	latches := make([]*expr.Node, n)
	for i := 0; i < n; i++ {
		name := latchName(i)
		if slices.Contains(c.Inputs, name) {
			return nil, fmt.Errorf("%w: input %q is also a latch", ErrNameClash, name)
		}
		circ.Latches[i] = name
		circ.Init[i] = c.Initial>>i&1 == 1
		latches[i] = expr.Var(name)
	}

	// code is the conjunction of latch literals selecting st.
	code := func(st int) *expr.Node {
		lits := make([]*expr.Node, n)
		for i := 0; i < n; i++ {
			lits[i] = latches[i]
			if st>>i&1 == 0 {
				lits[i] = expr.Not(latches[i])
			}
		}
		return expr.And(lits...)
	}

	for _, o := range c.Outputs {
		var terms []*expr.Node
		defined := false
		for _, st := range c.States() {
			g, ok := c.OutputGuard(st, o)
			if !ok {
				continue
			}
			defined = true
			terms = append(terms, expr.And(code(st), g))
		}
		if !defined {
			return nil, fmt.Errorf("%w: %q", ErrUndefinedOutput, o)
		}
		circ.Outputs = append(circ.Outputs, Signal{Name: o, Formula: expr.Or(terms...)})
	}

	next := make([][]*expr.Node, n)
	for _, from := range c.States() {
		for _, to := range c.Successors(from) {
			enabled := expr.And(code(from), c.Transitions[from][to])
			for i := 0; i < n; i++ {
				if to>>i&1 == 1 {
					next[i] = append(next[i], enabled)
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		circ.Next[i] = Signal{Name: circ.Latches[i], Formula: expr.Or(next[i]...)}
	}
	return circ, nil
}

// aigBuilder compiles formulas into gates of a gini circuit. Used through
// an expr.Folder, shared subformulas map to the same gate.
type aigBuilder struct {
	s    *logic.S
	vars map[string]z.Lit
}

func (b *aigBuilder) Lit(v bool) z.Lit {
	if v {
		return b.s.T
	}
	return b.s.F
}

func (b *aigBuilder) Var(name string) (z.Lit, error) {
	m, ok := b.vars[name]
	if !ok {
		return z.LitNull, fmt.Errorf("%w: %q", ErrUnknownInput, name)
	}
	return m, nil
}

func (b *aigBuilder) Not(_ *expr.Node, x z.Lit) z.Lit { return x.Not() }

func (b *aigBuilder) And(_ *expr.Node, xs []z.Lit) z.Lit { return b.s.Ands(xs...) }

func (b *aigBuilder) Or(_ *expr.Node, xs []z.Lit) z.Lit { return b.s.Ors(xs...) }

// AIG compiles the circuit into an and-inverter graph with named inputs,
// latches and outputs, ready to be written in AIGER format.
func (circ *Circuit) AIG() (*aiger.T, error) {
	s := logic.NewS()
	vars := make(map[string]z.Lit, len(circ.Inputs)+len(circ.Latches))
	for _, in := range circ.Inputs {
		vars[in] = s.Lit()
	}
	latches := make([]z.Lit, len(circ.Latches))
	for i, name := range circ.Latches {
		init := s.F
		if circ.Init[i] {
			init = s.T
		}
		latches[i] = s.Latch(init)
		vars[name] = latches[i]
	}

	f := expr.NewFolder[z.Lit](&aigBuilder{s: s, vars: vars})
	outs := make([]z.Lit, len(circ.Outputs))
	for i, o := range circ.Outputs {
		m, err := f.Fold(o.Formula)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", o.Name, err)
		}
		outs[i] = m
	}
	for i, nx := range circ.Next {
		m, err := f.Fold(nx.Formula)
		if err != nil {
			return nil, fmt.Errorf("latch %q: %w", nx.Name, err)
		}
		s.SetNext(latches[i], m)
	}

	a := aiger.MakeFor(s, outs...)
	for i, in := range circ.Inputs {
		if err := a.NameInput(i, in); err != nil {
			return nil, fmt.Errorf("name input %q: %w", in, err)
		}
	}
	for i, name := range circ.Latches {
		if err := a.NameLatch(i, name); err != nil {
			return nil, fmt.Errorf("name latch %q: %w", name, err)
		}
	}
	for i, o := range circ.Outputs {
		if err := a.NameOutput(i, o.Name); err != nil {
			return nil, fmt.Errorf("name output %q: %w", o.Name, err)
		}
	}
	return a, nil
}

// WriteAIGER writes the controller as an AIGER file, binary or ASCII.
func (c *Controller) WriteAIGER(w io.Writer, binary bool) error {
	circ, err := c.Circuit()
	if err != nil {
		return err
	}
	a, err := circ.AIG()
	if err != nil {
		return err
	}
	if binary {
		return a.WriteBinary(w)
	}
	return a.WriteAscii(w)
}
