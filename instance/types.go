package instance

import (
	"strings"

	"github.com/jabaum/bosy/solution"
)

// Instance is a synthesis problem: the signals of the controller and an LTL
// specification given as assumptions and guarantees.
type Instance struct {
	Name        string
	Semantics   solution.Semantics
	Inputs      []string
	Outputs     []string
	Assumptions []string
	Guarantees  []string
}

// LTL returns the specification as one formula, the conjunction of the
// assumptions implying the conjunction of the guarantees.
func (in *Instance) LTL() string {
	guarantees := conjunction(in.Guarantees)
	if len(in.Assumptions) == 0 {
		return guarantees
	}
	return "(" + conjunction(in.Assumptions) + ") -> (" + guarantees + ")"
}

// Negated returns the negation of LTL. A translator turns it into a Büchi
// automaton whose accepting states are the rejecting states of the
// co-Büchi automaton for the specification.
func (in *Instance) Negated() string {
	return "!(" + in.LTL() + ")"
}

func conjunction(fs []string) string {
	switch len(fs) {
	case 0:
		return "true"
	case 1:
		return fs[0]
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = "(" + f + ")"
	}
	return strings.Join(parts, " && ")
}
