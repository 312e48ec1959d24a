// Package automaton holds the co-Büchi automata that bounded synthesis
// works on: the graph model, its simplification, SCC analysis and the
// parsers for the output of LTL-to-automaton translators.
package automaton

import (
	"fmt"
	"sort"

	"github.com/jabaum/bosy/expr"
)

// State identifies an automaton state.
type State string

// StateSet is a set of states.
type StateSet map[State]struct{}

func NewStateSet(states ...State) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s.Add(st)
	}
	return s
}

func (s StateSet) Has(st State) bool {
	_, ok := s[st]
	return ok
}

func (s StateSet) Add(st State) { s[st] = struct{}{} }
func (s StateSet) Remove(st State) { delete(s, st) }
func (s StateSet) Len() int { return len(s) }

// Sorted returns the members in ascending order.
func (s StateSet) Sorted() []State {
	out := make([]State, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	sortStates(out)
	return out
}

func sortStates(states []State) {
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
}

// Automaton is a co-Büchi automaton: a run is accepting iff it visits
// Rejecting states only finitely often and, at every step, satisfies the
// safety condition of the state it is in.
type Automaton struct {
	Initial     StateSet
	States      StateSet
	Transitions map[State]map[State]*expr.Node // source -> target -> guard
	Safety      map[State]*expr.Node           // missing means true
	Rejecting   StateSet
}

// New returns an empty automaton.
func New() *Automaton {
	return &Automaton{
		Initial:     NewStateSet(),
		States:      NewStateSet(),
		Transitions: make(map[State]map[State]*expr.Node),
		Safety:      make(map[State]*expr.Node),
		Rejecting:   NewStateSet(),
	}
}

// AddState adds st with an empty outgoing edge set.
func (a *Automaton) AddState(st State) {
	a.States.Add(st)
	if _, ok := a.Transitions[st]; !ok {
		a.Transitions[st] = make(map[State]*expr.Node)
	}
}

// AddTransition adds an edge, merging its guard by disjunction with an
// existing edge between the same states.
func (a *Automaton) AddTransition(from, to State, guard *expr.Node) {
	out, ok := a.Transitions[from]
	if !ok {
		out = make(map[State]*expr.Node)
		a.Transitions[from] = out
	}
	if prev, ok := out[to]; ok {
		guard = expr.Or(prev, guard)
	}
	out[to] = guard
}

// SafetyCondition returns the invariant attached to st.
func (a *Automaton) SafetyCondition(st State) *expr.Node {
	if c, ok := a.Safety[st]; ok {
		return c
	}
	return expr.True()
}

// Successors returns the targets of st reachable over a guard that is not
// the literal false, in ascending order.
func (a *Automaton) Successors(st State) []State {
	var out []State
	for target, guard := range a.Transitions[st] {
		if guard.IsFalse() {
			continue
		}
		out = append(out, target)
	}
	sortStates(out)
	return out
}

// IsSafety reports whether no co-Büchi reasoning is needed, i.e. there are
// no rejecting states left. Meaningful after Simplify.
func (a *Automaton) IsSafety() bool {
	return a.Rejecting.Len() == 0
}

// Validate checks the structural invariants of the graph.
func (a *Automaton) Validate() error {
	if a.Initial.Len() == 0 {
		return ErrNoInitialState
	}
	for _, st := range a.Initial.Sorted() {
		if !a.States.Has(st) {
			return fmt.Errorf("%w: initial state %q", ErrUnknownState, st)
		}
	}
	for _, st := range a.Rejecting.Sorted() {
		if !a.States.Has(st) {
			return fmt.Errorf("%w: rejecting state %q", ErrUnknownState, st)
		}
	}
	for source, out := range a.Transitions {
		if !a.States.Has(source) {
			return fmt.Errorf("%w: transition source %q", ErrUnknownState, source)
		}
		for target := range out {
			if !a.States.Has(target) {
				return fmt.Errorf("%w: transition %q -> %q", ErrUnknownState, source, target)
			}
		}
	}
	return nil
}

// Annotated is a simplified automaton together with its SCC analysis. It is
// what the parsers hand out and is read-only from then on.
type Annotated struct {
	*Automaton
	SCC *SCCAnalysis
}

// Annotate simplifies a and computes its SCC analysis.
func Annotate(a *Automaton) (*Annotated, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.Simplify()
	return &Annotated{Automaton: a, SCC: ComputeSCC(a)}, nil
}

// Stats summarises an annotated automaton.
type Stats struct {
	States        int
	Initial       int
	Rejecting     int
	Transitions   int
	Safety        bool
	SCCs          int
	RejectingSCCs int
}

func (a *Annotated) Stats() Stats {
	s := Stats{
		States:    a.States.Len(),
		Initial:   a.Initial.Len(),
		Rejecting: a.Rejecting.Len(),
		Safety:    a.IsSafety(),
		SCCs:      len(a.SCC.Components()),
	}
	for _, out := range a.Transitions {
		s.Transitions += len(out)
	}
	for i := range a.SCC.Components() {
		if a.SCC.IsRejecting(i) {
			s.RejectingSCCs++
		}
	}
	return s
}
