// Package partition implements the index-array partition-refinement data
// structure used by Valmari's DFA minimization algorithm: a partition of the
// integer range [0, count) into contiguous blocks, refined by repeated
// mark/split passes in time proportional to the smaller half of each split.
package partition

import "sort"

// Partition is a refinable partition of the integers [0, count) into
// contiguous blocks. Elements of the same block occupy a contiguous range of
// Elements; Location and Elements are maintained as mutual inverses so that
// both "which block is e in" and "which elements are in block c" are O(1)
// and O(size-of-c) respectively.
//
// Construct with New; the zero value is not usable.
type Partition struct {
	Elements []int // permutation of [0,count); elements of a class are contiguous.
	Location []int // Location[e] is the index of e in Elements.
	Setof    []int // Setof[e] is the class id containing e.
	First    []int // First[c] is the start of class c's range in Elements.
	Past     []int // Past[c] is the end (exclusive) of class c's range in Elements.
	Marked   []int // Marked[c] is the count of currently marked elements in class c.

	Touched    []int // classes with >=1 marked element, valid in [0, NumTouched).
	NumTouched int

	Size int // number of classes currently in the partition.
}

// New constructs a partition of [0, count) from an optional key function.
// With key == nil the partition starts as a single class spanning all of
// [0, count). Otherwise elements are grouped into one class per distinct
// key value, with classes ordered by increasing key.
func New(count int, key func(int) int) *Partition {
	p := &Partition{
		Elements: make([]int, count),
		Location: make([]int, count),
		Setof:    make([]int, count),
		First:    make([]int, count),
		Past:     make([]int, count),
		Marked:   make([]int, count+1),
		Touched:  make([]int, count+1),
	}

	for i := 0; i < count; i++ {
		p.Elements[i] = i
		p.Location[i] = i
	}

	if count == 0 || key == nil {
		if count > 0 {
			p.Size = 1
			p.Past[0] = count
		}
		return p
	}

	sortByKey(p.Elements, key)
	for i, e := range p.Elements {
		p.Location[e] = i
	}

	current := key(p.Elements[0])
	for i := 0; i < count; i++ {
		e := p.Elements[i]
		k := key(e)
		if k != current {
			current = k
			p.Past[p.Size] = i
			p.Size++
			p.First[p.Size] = i
		}
		p.Setof[e] = p.Size
	}
	p.Past[p.Size] = count
	p.Size++

	return p
}

// sortByKey sorts elems in place by key, ascending.
func sortByKey(elems []int, key func(int) int) {
	sort.Slice(elems, func(i, j int) bool { return key(elems[i]) < key(elems[j]) })
}

// Mark marks e for splitting. If e's class had zero marked elements before
// this call, the class is appended to Touched. Marking an already-marked
// element is a no-op.
func (p *Partition) Mark(e int) {
	class := p.Setof[e]
	index := p.Location[e]
	unmarked := p.First[class] + p.Marked[class]

	if index < unmarked {
		return
	}

	other := p.Elements[unmarked]
	p.Elements[index] = other
	p.Location[other] = index
	p.Elements[unmarked] = e
	p.Location[e] = unmarked

	if p.Marked[class] == 0 {
		p.Touched[p.NumTouched] = class
		p.NumTouched++
	}
	p.Marked[class]++
}

// Split splits every touched class into its marked and unmarked halves,
// draining Touched. For each touched class, the smaller of the two halves
// becomes a new class id (Size, Size+1, ...); the larger half keeps the
// original class id. A class that is entirely marked is left unsplit.
func (p *Partition) Split() {
	for p.NumTouched > 0 {
		p.NumTouched--

		class := p.Touched[p.NumTouched]
		unmarked := p.First[class] + p.Marked[class]

		if unmarked == p.Past[class] {
			p.Marked[class] = 0
			continue
		}

		if p.Marked[class] <= p.Past[class]-unmarked {
			p.First[p.Size] = p.First[class]
			p.Past[p.Size] = unmarked
			p.First[class] = unmarked
		} else {
			p.Past[p.Size] = p.Past[class]
			p.First[p.Size] = unmarked
			p.Past[class] = unmarked
		}

		for i := p.First[p.Size]; i < p.Past[p.Size]; i++ {
			p.Setof[p.Elements[i]] = p.Size
		}

		p.Marked[class] = 0
		p.Marked[p.Size] = 0
		p.Size++
	}
}

// Members returns the elements currently in class c.
func (p *Partition) Members(c int) []int {
	return p.Elements[p.First[c]:p.Past[c]]
}

// Classes returns the elements of every class, indexed by class id.
func (p *Partition) Classes() [][]int {
	classes := make([][]int, p.Size)
	for c := 0; c < p.Size; c++ {
		classes[c] = p.Members(c)
	}
	return classes
}
