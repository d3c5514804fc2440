// Package automaton implements deterministic finite automata over a partial
// transition function, Valmari's partition-refinement minimization,
// Hopcroft-Karp equivalence with witness generation, and reachable-subautomaton
// isomorphism.
package automaton

import (
	"github.com/pkg/errors"

	"github.com/dportin/pyform/internal/iset"
)

// Transition is a single (source, symbol, destination) edge, as reported by
// (*DFA).Iterate.
type Transition[Symbol comparable] struct {
	Q int
	A Symbol
	R int
}

// DFA is an immutable deterministic finite automaton (Q, Sigma, delta, q0, F)
// with a partial transition function. States are represented as integers;
// Symbol may be any comparable type the caller chooses for the alphabet,
// which may be empty. There must be at least one state, the start state.
//
// No method of DFA mutates any data structure passed to New, and no method
// mutates the receiver: DFA is a value-typed, immutable entity. There is
// deliberately no builder API.
type DFA[Symbol comparable] struct {
	states iset.Set[int]
	finals iset.Set[int]
	sigma  iset.Set[Symbol]
	start  int
	delta  map[int]map[Symbol]int
}

// New constructs a DFA from its five components. delta is the partial
// transition function represented as a nested map: delta[q][a] == r iff
// there is a transition from q to r on a. If delta[q] is absent, q has no
// outgoing transitions; if delta[q][a] is absent, q has no outgoing
// transition labeled a.
//
// New does not validate that states, finals, sigma and delta are mutually
// consistent; see Validate.
func New[Symbol comparable](states, finals iset.Set[int], sigma iset.Set[Symbol], start int, delta map[int]map[Symbol]int) *DFA[Symbol] {
	return &DFA[Symbol]{
		states: states,
		finals: finals,
		sigma:  sigma,
		start:  start,
		delta:  delta,
	}
}

// States returns the state set of d.
func (d *DFA[Symbol]) States() iset.Set[int] { return d.states }

// Finals returns the accepting states of d.
func (d *DFA[Symbol]) Finals() iset.Set[int] { return d.finals }

// Sigma returns the alphabet of d.
func (d *DFA[Symbol]) Sigma() iset.Set[Symbol] { return d.sigma }

// Start returns the start state of d.
func (d *DFA[Symbol]) Start() int { return d.start }

// Validate is not implemented by this library; callers are responsible for
// the consistency of states, finals, sigma and delta passed to New.
func (d *DFA[Symbol]) Validate() error {
	return errors.Wrapf(ErrNotImplemented, "automaton: %s", "Validate")
}

// Complete is not implemented by this library.
func (d *DFA[Symbol]) Complete() (*DFA[Symbol], error) {
	return nil, errors.Wrapf(ErrNotImplemented, "automaton: %s", "Complete")
}

// Iterate returns every transition of d as (q, a, r) triples, in an
// unspecified order that may differ from one call to the next.
func (d *DFA[Symbol]) Iterate() []Transition[Symbol] {
	trans := make([]Transition[Symbol], 0, len(d.delta))
	for q, row := range d.delta {
		for a, r := range row {
			trans = append(trans, Transition[Symbol]{Q: q, A: a, R: r})
		}
	}
	return trans
}

// Transition returns the set of states obtained by transitioning from some
// state in states on some symbol in symbols:
//
//	{ delta[q][a] : q in states, a in symbols, q in dom(delta), a in dom(delta[q]) }
//
// Does not assume the validity of states and symbols for d.
func (d *DFA[Symbol]) Transition(states iset.Set[int], symbols iset.Set[Symbol]) iset.Set[int] {
	reached := iset.New[int]()
	for q := range states {
		row, ok := d.delta[q]
		if !ok {
			continue
		}
		for a := range symbols {
			if r, ok := row[a]; ok {
				reached.Add(r)
			}
		}
	}
	return reached
}

// Reachable returns the set of states reachable from some state in states
// via repeated transitions on symbols in symbols. Does not assume the
// validity of states and symbols for d.
func (d *DFA[Symbol]) Reachable(states iset.Set[int], symbols iset.Set[Symbol]) iset.Set[int] {
	reached := iset.New[int]()
	worklist := states.Elements()

	for len(worklist) > 0 {
		state := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if reached.Has(state) {
			continue
		}
		reached.Add(state)

		targets := d.Transition(iset.New(state), symbols)
		for t := range targets {
			if !reached.Has(t) {
				worklist = append(worklist, t)
			}
		}
	}

	return reached
}

// Productive returns the set of states that can reach some state in states
// via repeated transitions on symbols in symbols. Does not assume the
// validity of states and symbols for d. Uses additional space proportional
// to the number of transitions.
//
// The inverse relation is many-to-many: several states may have an edge into
// the same state on the same symbol, and backward traversal must explore all
// of them, not just the last one recorded.
func (d *DFA[Symbol]) Productive(states iset.Set[int], symbols iset.Set[Symbol]) iset.Set[int] {
	inverse := make(map[int]map[Symbol]iset.Set[int])
	for _, t := range d.Iterate() {
		row, ok := inverse[t.R]
		if !ok {
			row = make(map[Symbol]iset.Set[int])
			inverse[t.R] = row
		}
		preds, ok := row[t.A]
		if !ok {
			preds = iset.New[int]()
			row[t.A] = preds
		}
		preds.Add(t.Q)
	}

	reached := iset.New[int]()
	worklist := states.Elements()

	for len(worklist) > 0 {
		state := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if reached.Has(state) {
			continue
		}
		reached.Add(state)

		row, ok := inverse[state]
		if !ok {
			continue
		}
		for a := range symbols {
			for q := range row[a] {
				if !reached.Has(q) {
					worklist = append(worklist, q)
				}
			}
		}
	}

	return reached
}

// Product computes the generalized synchronous product of d and other with
// respect to the boolean combiner f: state (q, r) of the product is
// accepting iff f(q in d.Finals(), r in other.Finals()) is true.
//
// If d or other is partial, or the two alphabets differ, missing
// transitions are modeled by a single additional sink state rather than
// being left undefined; the result is complete over Sigma(d) union
// Sigma(other).
func (d *DFA[Symbol]) Product(other *DFA[Symbol], f func(qFinal, rFinal bool) bool) *DFA[Symbol] {
	type pair struct {
		q, r           int
		qValid, rValid bool
	}

	sigma := d.sigma.Union(other.sigma)
	delta := make(map[int]map[Symbol]int)
	index := make(map[pair]int)

	start := pair{q: d.start, r: other.start, qValid: true, rValid: true}
	index[start] = 0

	// guard set: a pair is only enqueued once, the first time it is
	// discovered, so the worklist never revisits the same pair twice.
	worklist := []pair{start}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		for a := range sigma {
			var next pair
			if cur.qValid {
				if r, ok := d.delta[cur.q][a]; ok {
					next.q, next.qValid = r, true
				}
			}
			if cur.rValid {
				if r, ok := other.delta[cur.r][a]; ok {
					next.r, next.rValid = r, true
				}
			}

			nextID, seen := index[next]
			if !seen {
				nextID = len(index)
				index[next] = nextID
				worklist = append(worklist, next)
			}

			source := index[cur]
			if delta[source] == nil {
				delta[source] = make(map[Symbol]int)
			}
			delta[source][a] = nextID
		}
	}

	states := iset.New[int]()
	finals := iset.New[int]()
	for p, id := range index {
		states.Add(id)
		qFinal := p.qValid && d.finals.Has(p.q)
		rFinal := p.rValid && other.finals.Has(p.r)
		if f(qFinal, rFinal) {
			finals.Add(id)
		}
	}

	return New(states, finals, sigma, 0, delta)
}
