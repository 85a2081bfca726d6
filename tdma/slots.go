package tdma

import (
	"github.com/rhartert/sparsesets"
	"github.com/rhartert/yagh"
)

// SlotAssignment maps every instance of an interference graph to a time slot.
type SlotAssignment struct {
	// Slots[i] is the slot of instance i.
	Slots []int

	// NumSlots is the number of distinct slots used. Slots are numbered
	// from 0 to NumSlots-1 and none of them is empty.
	NumSlots int
}

// ColorSlots assigns a slot to every instance so that no two conflicting
// instances share a slot.
//
// This is the Welsh-Powell greedy heuristic: instances are visited by
// decreasing degree (ties broken by increasing instance index) and each one
// receives the smallest slot not already used by one of its neighbors. The
// coloring is valid but not necessarily minimal.
func ColorSlots(g *InterferenceGraph) *SlotAssignment {
	n := g.Len()
	sa := &SlotAssignment{Slots: make([]int, n)}
	if n == 0 {
		return sa
	}
	for i := range sa.Slots {
		sa.Slots[i] = -1
	}

	// Order instances by decreasing degree. The key is unique as degrees are
	// smaller than n, which makes the visit order independent of how the heap
	// breaks ties.
	byDegree := yagh.New[int](n)
	for i := 0; i < n; i++ {
		byDegree.Put(i, -g.Degree(i)*n+i)
	}

	// A vertex never needs more than n slots, so the set of slots used by
	// its neighbors fits in [0, n).
	used := sparsesets.New(n)
	for byDegree.Size() > 0 {
		i := byDegree.Pop().Elem

		used.Clear()
		for _, j := range g.Neighbors(i) {
			if s := sa.Slots[j]; s >= 0 {
				used.Insert(s)
			}
		}

		slot := 0
		for used.Contains(slot) {
			slot++
		}
		sa.Slots[i] = slot
		if slot >= sa.NumSlots {
			sa.NumSlots = slot + 1
		}
	}

	return sa
}
