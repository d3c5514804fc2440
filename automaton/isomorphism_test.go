package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsomorphicScenarios(t *testing.T) {
	for _, sc := range scenarios() {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			min := sc.dfa.MinimizeValmari()

			iso, ok := min.Isomorphic(sc.expected)
			require.True(t, ok)
			assert.Equal(t, min.States().Len(), iso.Len())
		})
	}
}

func TestIsomorphicRejectsDifferingStartFinality(t *testing.T) {
	final := newDFA([]int{0}, []int{0}, 0, nil, nil)
	nonfinal := newDFA([]int{0}, nil, 0, nil, nil)

	_, ok := final.Isomorphic(nonfinal)

	assert.False(t, ok)
}

func TestIsomorphicRejectsDifferingOutgoingLabels(t *testing.T) {
	withA := newDFA(
		[]int{0, 1}, []int{1}, 0, []string{"a"},
		map[int]map[string]int{0: {"a": 1}},
	)
	withB := newDFA(
		[]int{0, 1}, []int{1}, 0, []string{"b"},
		map[int]map[string]int{0: {"b": 1}},
	)

	_, ok := withA.Isomorphic(withB)

	assert.False(t, ok)
}

func TestIsomorphicRejectsConflictingMapping(t *testing.T) {
	// two states of d both trying to map to the same single state of other
	// via different symbols cannot be isomorphic to a 2-state automaton.
	d := newDFA(
		[]int{0, 1, 2}, []int{1, 2}, 0, []string{"a", "b"},
		map[int]map[string]int{0: {"a": 1, "b": 2}},
	)
	other := newDFA(
		[]int{0, 1}, []int{1}, 0, []string{"a", "b"},
		map[int]map[string]int{0: {"a": 1, "b": 1}},
	)

	_, ok := d.Isomorphic(other)

	assert.False(t, ok)
}

// TestIsomorphicAgreesWithEquivalence is universal invariant 7 of spec.md
// section 8: when two reachable-deterministic automata are isomorphic, they
// must also be language-equivalent.
func TestIsomorphicAgreesWithEquivalence(t *testing.T) {
	for _, sc := range scenarios() {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			min := sc.dfa.MinimizeValmari()

			_, isomorphic := min.Isomorphic(sc.expected)
			require.True(t, isomorphic)

			ok, witness := min.EquivalentHopcroftKarp(sc.expected)
			assert.True(t, ok, "witness %v", witness)
		})
	}
}

func TestIsomorphicIdentityIsAlwaysIsomorphic(t *testing.T) {
	for _, sc := range scenarios() {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			iso, ok := sc.dfa.Isomorphic(sc.dfa)
			require.True(t, ok)
			for _, q := range sc.dfa.States().Elements() {
				mapped, present := iso.Map(q)
				assert.True(t, present)
				assert.Equal(t, q, mapped)
			}
		})
	}
}
