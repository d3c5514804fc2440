package automaton

// Isomorphism is a bijection between the states of two DFAs reachable from
// their respective start states, witnessing structural isomorphism of the
// reachable subautomata. Built by (*DFA).Isomorphic.
type Isomorphism struct {
	fwd map[int]int
	rev map[int]int
}

// Map returns the state of the second automaton corresponding to q in the
// first.
func (iso *Isomorphism) Map(q int) (int, bool) {
	r, ok := iso.fwd[q]
	return r, ok
}

// Inverse returns the state of the first automaton corresponding to r in the
// second.
func (iso *Isomorphism) Inverse(r int) (int, bool) {
	q, ok := iso.rev[r]
	return q, ok
}

// Len returns the number of state pairs in the isomorphism.
func (iso *Isomorphism) Len() int {
	return len(iso.fwd)
}

// isoPair is a worklist entry: a pair of states, one from each automaton,
// already known to correspond under the isomorphism being built.
type isoPair struct {
	q, r int
}

// Isomorphic determines whether the subautomata of d and other reachable
// from their start states are isomorphic, and if so, constructs the
// witnessing bijection.
//
// The final-consistency of the start-state pair is checked explicitly before
// any mapping is recorded, rather than seeding the map with the start pair
// and only discovering a mismatch once the main loop gets to it.
func (d *DFA[Symbol]) Isomorphic(other *DFA[Symbol]) (*Isomorphism, bool) {
	if d.finals.Has(d.start) != other.finals.Has(other.start) {
		return nil, false
	}

	iso := &Isomorphism{
		fwd: map[int]int{d.start: other.start},
		rev: map[int]int{other.start: d.start},
	}
	worklist := []isoPair{{d.start, other.start}}

	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if d.finals.Has(cur.q) != other.finals.Has(cur.r) {
			return nil, false
		}

		qRow, qHas := d.delta[cur.q]
		rRow, rHas := other.delta[cur.r]

		if !qHas && !rHas {
			continue
		}
		if qHas != rHas {
			return nil, false
		}
		if !sameSymbolSet(qRow, rRow) {
			return nil, false
		}

		for a, q2 := range qRow {
			r2 := rRow[a]

			if mapped, ok := iso.fwd[q2]; ok {
				if mapped != r2 {
					return nil, false
				}
				continue
			}
			if mapped, ok := iso.rev[r2]; ok {
				if mapped != q2 {
					return nil, false
				}
				continue
			}

			iso.fwd[q2] = r2
			iso.rev[r2] = q2
			worklist = append(worklist, isoPair{q2, r2})
		}
	}

	return iso, true
}

// sameSymbolSet reports whether a and b, maps keyed by transition label,
// have the same key set (but not necessarily the same values).
func sameSymbolSet[Symbol comparable](a, b map[Symbol]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
