package automaton

import (
	"github.com/dportin/pyform/common/partition"
	"github.com/dportin/pyform/internal/iset"
)

// valmariState stores the adjacency arrays and bookkeeping Valmari's
// minimization algorithm needs alongside the blocks and cords partitions. It
// is tightly coupled to both DFA's transition representation and partition's
// block layout: the transition and reached counts change as reach and
// removeUnreachable run, and the final count is set directly by
// (*DFA).MinimizeValmari as the algorithm progresses.
//
// There is a transition from state q to state r on symbol a iff there is an
// index i with tails[i]=q, heads[i]=r, labels[i]=a. The indices of the
// transitions adjacent to state s are stored in adjacent[offset[s]:offset[s+1]]
// for whichever orientation (tails or heads) the last call to makeAdjacent
// chose.
type valmariState[Symbol comparable] struct {
	tails  []int
	heads  []int
	labels []Symbol

	adjacent []int
	offset   []int

	numStates  int
	numTrans   int
	numFinals  int
	numReached int
}

func newValmariState[Symbol comparable](d *DFA[Symbol]) *valmariState[Symbol] {
	trans := d.Iterate()

	v := &valmariState[Symbol]{
		tails:     make([]int, len(trans)),
		heads:     make([]int, len(trans)),
		labels:    make([]Symbol, len(trans)),
		adjacent:  make([]int, len(trans)),
		offset:    make([]int, d.states.Len()+1),
		numStates: d.states.Len(),
		numTrans:  len(trans),
		numFinals: d.finals.Len(),
	}

	for i, t := range trans {
		v.tails[i] = t.Q
		v.labels[i] = t.A
		v.heads[i] = t.R
	}

	return v
}

// makeAdjacent rebuilds the adjacent/offset counting-sort index, ordered by
// tails (forwards) or heads (not forwards). Runs in time linear in numTrans
// and numStates.
func (v *valmariState[Symbol]) makeAdjacent(forwards bool) {
	trans := v.tails
	if !forwards {
		trans = v.heads
	}

	for i := range v.offset {
		v.offset[i] = 0
	}
	for i := 0; i < v.numTrans; i++ {
		v.offset[trans[i]]++
	}
	for i := 0; i < v.numStates; i++ {
		v.offset[i+1] += v.offset[i]
	}
	for i := v.numTrans - 1; i >= 0; i-- {
		v.offset[trans[i]]--
		v.adjacent[v.offset[trans[i]]] = i
	}
}

// reach marks state as reachable within blocks, a single-class partition
// with no marked elements. Swaps state to position numReached of
// blocks.Elements and advances numReached. Idempotent if state is already
// reached.
func (v *valmariState[Symbol]) reach(blocks *partition.Partition, state int) {
	index := blocks.Location[state]
	if index < v.numReached {
		return
	}

	unreached := blocks.Elements[v.numReached]
	blocks.Elements[index] = unreached
	blocks.Location[unreached] = index
	blocks.Elements[v.numReached] = state
	blocks.Location[state] = v.numReached

	v.numReached++
}

// removeUnreachable performs a breadth-first traversal from the states
// already reached in blocks, following transitions forwards or backwards,
// then compacts tails/heads/labels to drop transitions whose tail (in the
// traversal's orientation) was never reached. blocks must contain exactly
// one class and no marked elements; blocks.Past[0] is set to the number of
// reached states and numReached is reset to zero.
func (v *valmariState[Symbol]) removeUnreachable(blocks *partition.Partition, forwards bool) {
	tails, heads := v.tails, v.heads
	if !forwards {
		tails, heads = v.heads, v.tails
	}

	v.makeAdjacent(forwards)

	tail := 0
	for tail < v.numReached {
		state := blocks.Elements[tail]
		for i := v.offset[state]; i < v.offset[state+1]; i++ {
			v.reach(blocks, heads[v.adjacent[i]])
		}
		tail++
	}

	numTrans := 0
	for i := 0; i < v.numTrans; i++ {
		if blocks.Location[tails[i]] < v.numReached {
			heads[numTrans] = heads[i]
			tails[numTrans] = tails[i]
			v.labels[numTrans] = v.labels[i]
			numTrans++
		}
	}

	v.numTrans = numTrans
	blocks.Past[0] = v.numReached
	v.numReached = 0
}

// MinimizeValmari constructs the minimal partial DFA equivalent (up to
// isomorphism) to d, using Valmari's partition-refinement algorithm. Runs in
// O(n + m log m) time and O(n + m) additional space, where n is the number
// of states and m the number of transitions.
//
// The algorithm prunes unreachable and unproductive states up front, then
// alternates refining a partition of states ("blocks") against a partition
// of transition indices keyed by (label, target-block) ("cords") until both
// are stable. The alphabet of the result may be a proper subset of d's
// alphabet: symbols that lead nowhere useful are dropped.
func (d *DFA[Symbol]) MinimizeValmari() *DFA[Symbol] {
	v := newValmariState(d)
	blocks := partition.New(v.numStates, nil)

	v.reach(blocks, d.start)
	v.removeUnreachable(blocks, true)

	for state := range d.finals {
		if blocks.Location[state] < blocks.Past[0] {
			v.reach(blocks, state)
		}
	}
	v.numFinals = v.numReached
	v.removeUnreachable(blocks, false)

	blocks.Marked[0] = v.numFinals
	if v.numFinals > 0 && v.numFinals < blocks.Past[0] {
		blocks.Touched[blocks.NumTouched] = 0
		blocks.NumTouched++
		blocks.Split()
	} else {
		blocks.Marked[0] = 0
	}

	labelRank := make(map[Symbol]int, v.numTrans)
	for _, label := range v.labels[:v.numTrans] {
		if _, ok := labelRank[label]; !ok {
			labelRank[label] = len(labelRank)
		}
	}
	cords := partition.New(v.numTrans, func(i int) int { return labelRank[v.labels[i]] })

	cordCursor := 0
	blockCursor := 1

	v.makeAdjacent(false)

	for cordCursor < cords.Size {
		for i := cords.First[cordCursor]; i < cords.Past[cordCursor]; i++ {
			blocks.Mark(v.tails[cords.Elements[i]])
		}
		blocks.Split()
		cordCursor++

		for blockCursor < blocks.Size {
			for i := blocks.First[blockCursor]; i < blocks.Past[blockCursor]; i++ {
				state := blocks.Elements[i]
				for j := v.offset[state]; j < v.offset[state+1]; j++ {
					cords.Mark(v.adjacent[j])
				}
			}
			cords.Split()
			blockCursor++
		}
	}

	delta := make(map[int]map[Symbol]int)
	sigma := iset.New[Symbol]()

	for i := 0; i < v.numTrans; i++ {
		source := blocks.Setof[v.tails[i]]
		if blocks.Location[v.tails[i]] != blocks.First[source] {
			continue
		}
		label := v.labels[i]
		if delta[source] == nil {
			delta[source] = make(map[Symbol]int)
		}
		delta[source][label] = blocks.Setof[v.heads[i]]
		sigma.Add(label)
	}

	states := iset.New[int]()
	finals := iset.New[int]()
	for c := 0; c < blocks.Size; c++ {
		states.Add(c)
		if blocks.First[c] < v.numFinals {
			finals.Add(c)
		}
	}

	return New(states, finals, sigma, blocks.Setof[d.start], delta)
}
