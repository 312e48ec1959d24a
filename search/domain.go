package search

import "math"

// Domain describes an ordered, steppable bound: where a search starts,
// when it has run out of candidates, and how a candidate value becomes a
// bound handed to the solver.
type Domain[P any] interface {
	Min() int
	PastMax(v int) bool
	FromInt(v int) P
}

// States is the number of states of a candidate controller.
type States int

// Ranks is the number of ranks available to a ranking annotation.
type Ranks int

// StateBound enumerates controller sizes 1, 2, ... up to but excluding
// Max. A zero Max leaves the domain unbounded.
type StateBound struct {
	Max int
}

func (StateBound) Min() int { return 1 }

func (d StateBound) PastMax(v int) bool { return pastMax(v, d.Max) }

func (StateBound) FromInt(v int) States { return States(v) }

// RankBound enumerates rank counts 1, 2, ... up to but excluding Max. A zero
// Max leaves the domain unbounded.
type RankBound struct {
	Max int
}

func (RankBound) Min() int { return 1 }

func (d RankBound) PastMax(v int) bool { return pastMax(v, d.Max) }

func (RankBound) FromInt(v int) Ranks { return Ranks(v) }

func pastMax(v, limit int) bool {
	if limit <= 0 {
		return v == math.MaxInt
	}
	return v >= limit
}
