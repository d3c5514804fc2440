package automaton

import (
	"github.com/dportin/pyform/common/disjoint"
	"github.com/dportin/pyform/internal/iset"
)

// reachedPair is one entry of the Hopcroft-Karp worklist: the input string
// consumed so far (the candidate witness) and the pair of states it leads
// to, one per automaton.
type reachedPair[Symbol comparable] struct {
	witness []Symbol
	q, r    int
}

// EquivalentHopcroftKarp decides whether d and other accept the same
// language, using the Hopcroft-Karp algorithm with a disjoint-set structure
// to achieve near-linear time. Neither automaton is assumed complete or to
// share a state numbering: states are kept apart using dummy sink states and
// an offset on other's state ids inside a single disjoint-set instance.
//
// Returns (true, nil) if the automata are equivalent, or (false, witness) for
// a shortest string accepted by exactly one of the two automata. An empty
// witness is valid when the two start states differ in finality.
func (d *DFA[Symbol]) EquivalentHopcroftKarp(other *DFA[Symbol]) (bool, []Symbol) {
	dummyD := 1 + maxState(d.states)
	dummyOther := 1 + maxState(other.states)
	offset := 1 + dummyD

	equiv := disjoint.New[int]()
	sigma := d.sigma.Union(other.sigma)

	queue := []reachedPair[Symbol]{{witness: nil, q: d.start, r: other.start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if equiv.Find(cur.q) == equiv.Find(cur.r+offset) {
			continue
		}
		if d.finals.Has(cur.q) != other.finals.Has(cur.r) {
			return false, cur.witness
		}

		for a := range sigma {
			q2 := dummyD
			if row, ok := d.delta[cur.q]; ok {
				if next, ok := row[a]; ok {
					q2 = next
				}
			}
			r2 := dummyOther
			if row, ok := other.delta[cur.r]; ok {
				if next, ok := row[a]; ok {
					r2 = next
				}
			}

			witness := make([]Symbol, len(cur.witness)+1)
			copy(witness, cur.witness)
			witness[len(cur.witness)] = a

			queue = append(queue, reachedPair[Symbol]{witness: witness, q: q2, r: r2})
		}

		equiv.Union(cur.q, cur.r+offset)
	}

	return true, nil
}

func maxState(states iset.Set[int]) int {
	max := 0
	first := true
	for s := range states {
		if first || s > max {
			max = s
			first = false
		}
	}
	return max
}
