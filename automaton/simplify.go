package automaton

import "github.com/jabaum/bosy/expr"

// Simplify removes rejecting sinks: rejecting states whose only outgoing
// edge is an unconditional self-loop. Reaching such a state is turned into
// a safety condition on every predecessor, and the guard that led into the
// sink is added to the predecessor's remaining edges.
//
// Removing a sink can turn a predecessor into a new sink, so the pass runs
// until no sink is left; each round works on a snapshot of the sinks found
// before any mutation.
//
// Initial states are never removed, so the initial set stays a subset of
// the states. An initial rejecting sink therefore survives Simplify and
// remains both rejecting and a sink; such an automaton rejects every run.
func (a *Automaton) Simplify() {
	for {
		sinks := a.rejectingSinks()
		if len(sinks) == 0 {
			return
		}
		for _, sink := range sinks {
			a.removeSink(sink)
		}
	}
}

// IsRejectingSink reports whether st is rejecting and its complete outgoing
// edge set is a single self-loop guarded by true.
func (a *Automaton) IsRejectingSink(st State) bool {
	if !a.Rejecting.Has(st) {
		return false
	}
	out := a.Transitions[st]
	if len(out) != 1 {
		return false
	}
	guard, ok := out[st]
	return ok && guard.IsTrue()
}

func (a *Automaton) rejectingSinks() []State {
	var sinks []State
	for _, st := range a.Rejecting.Sorted() {
		if a.Initial.Has(st) {
			continue
		}
		if a.IsRejectingSink(st) {
			sinks = append(sinks, st)
		}
	}
	return sinks
}

func (a *Automaton) removeSink(sink State) {
	a.Rejecting.Remove(sink)
	a.States.Remove(sink)
	delete(a.Transitions, sink)
	delete(a.Safety, sink)

	sources := make([]State, 0, len(a.Transitions))
	for source := range a.Transitions {
		sources = append(sources, source)
	}
	sortStates(sources)

	for _, source := range sources {
		out := a.Transitions[source]
		into, ok := out[sink]
		if !ok {
			continue
		}
		delete(out, sink)
		a.Safety[source] = expr.And(a.SafetyCondition(source), expr.Not(into))
		for target, guard := range out {
			out[target] = expr.Or(guard, into)
		}
	}
}
