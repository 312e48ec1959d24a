package automaton

// SCCAnalysis is the strongly connected component decomposition of an
// automaton, computed once over edges whose guard is not the literal false.
// It does not change when the automaton does; recompute after mutation.
type SCCAnalysis struct {
	components [][]State
	rejecting  []bool
	index      map[State]int
}

// ComputeSCC runs Tarjan's algorithm over a. A component is rejecting iff
// it contains a rejecting state.
func ComputeSCC(a *Automaton) *SCCAnalysis {
	r := &SCCAnalysis{index: make(map[State]int)}

	counter := 0
	indices := make(map[State]int)
	lowlink := make(map[State]int)
	onStack := make(map[State]bool)
	var stack []State

	var strongConnect func(v State)
	strongConnect = func(v State) {
		indices[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range a.Successors(v) {
			if _, seen := indices[w]; !seen {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var comp []State
			rejecting := false
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if a.Rejecting.Has(w) {
					rejecting = true
				}
				if w == v {
					break
				}
			}
			sortStates(comp)
			id := len(r.components)
			for _, w := range comp {
				r.index[w] = id
			}
			r.components = append(r.components, comp)
			r.rejecting = append(r.rejecting, rejecting)
		}
	}

	for _, st := range a.States.Sorted() {
		if _, seen := indices[st]; !seen {
			strongConnect(st)
		}
	}
	return r
}

// Components returns the components in the order Tarjan's algorithm closed
// them (reverse topological order).
func (r *SCCAnalysis) Components() [][]State { return r.components }

// Component returns the id of the component containing st.
func (r *SCCAnalysis) Component(st State) (int, bool) {
	id, ok := r.index[st]
	return id, ok
}

// IsRejecting reports whether component id contains a rejecting state.
func (r *SCCAnalysis) IsRejecting(id int) bool {
	return id >= 0 && id < len(r.rejecting) && r.rejecting[id]
}

// InNonRejectingSCC reports whether st lies in a component without
// rejecting states. Unknown states are reported as false. Encodings use it
// to drop ranking variables for states that cannot lie on a rejecting cycle.
func (r *SCCAnalysis) InNonRejectingSCC(st State) bool {
	id, ok := r.index[st]
	if !ok {
		return false
	}
	return !r.rejecting[id]
}

// InSameSCC reports whether s and t share a component. If either state is
// unknown the answer is true.
func (r *SCCAnalysis) InSameSCC(s, t State) bool {
	is, ok := r.index[s]
	if !ok {
		return true
	}
	it, ok := r.index[t]
	if !ok {
		return true
	}
	return is == it
}
