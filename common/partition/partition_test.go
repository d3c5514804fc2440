package partition_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dportin/pyform/common/partition"
)

func TestNewWithNilKeyIsSingleClass(t *testing.T) {
	p := partition.New(5, nil)

	assert.Equal(t, 1, p.Size)
	assert.Equal(t, 0, p.First[0])
	assert.Equal(t, 5, p.Past[0])
}

func TestNewWithZeroCountIsEmpty(t *testing.T) {
	p := partition.New(0, nil)

	assert.Equal(t, 0, p.Size)
}

func TestNewWithKeySplitsByDistinctValues(t *testing.T) {
	// parity: evens in one class, odds in another.
	p := partition.New(6, func(e int) int { return e % 2 })

	assert.Equal(t, 2, p.Size)
	for c := 0; c < p.Size; c++ {
		members := p.Members(c)
		require.NotEmpty(t, members)
		parity := members[0] % 2
		for _, m := range members {
			assert.Equal(t, parity, m%2)
		}
	}
}

func TestMarkThenSplitSeparatesMarkedElements(t *testing.T) {
	p := partition.New(6, nil)

	for _, e := range []int{0, 2, 4} {
		p.Mark(e)
	}
	p.Split()

	assert.Equal(t, 2, p.Size)

	evenClass := p.Setof[0]
	for _, e := range []int{0, 2, 4} {
		assert.Equal(t, evenClass, p.Setof[e])
	}
	for _, e := range []int{1, 3, 5} {
		assert.NotEqual(t, evenClass, p.Setof[e])
	}
}

func TestMarkIsIdempotentPerElement(t *testing.T) {
	p := partition.New(4, nil)

	p.Mark(0)
	p.Mark(0)

	assert.Equal(t, 1, p.Marked[p.Setof[0]])
}

func TestSplitOfFullyMarkedClassDoesNotSplit(t *testing.T) {
	p := partition.New(3, nil)

	for e := 0; e < 3; e++ {
		p.Mark(e)
	}
	p.Split()

	assert.Equal(t, 1, p.Size)
}

func TestSplitChoosesSmallerHalfAsNewClass(t *testing.T) {
	p := partition.New(10, nil)

	// mark 3 of 10: the marked half (3) is smaller than the unmarked half (7),
	// so the new class should be the marked elements.
	marked := []int{1, 4, 7}
	for _, e := range marked {
		p.Mark(e)
	}
	p.Split()

	require.Equal(t, 2, p.Size)

	newClassMembers := append([]int{}, p.Members(1)...)
	sort.Ints(newClassMembers)
	assert.Equal(t, marked, newClassMembers)
}

func TestElementsAndLocationAreMutualInverses(t *testing.T) {
	p := partition.New(8, func(e int) int { return e % 3 })

	for e := 0; e < 8; e++ {
		assert.Equal(t, e, p.Elements[p.Location[e]])
	}
}

func TestClassesCoverAllElementsExactlyOnce(t *testing.T) {
	p := partition.New(20, func(e int) int { return e % 4 })

	p.Mark(1)
	p.Mark(5)
	p.Split()

	seen := make(map[int]bool, 20)
	for _, class := range p.Classes() {
		for _, e := range class {
			assert.False(t, seen[e], "element %d appears in more than one class", e)
			seen[e] = true
		}
	}
	assert.Len(t, seen, 20)
}
