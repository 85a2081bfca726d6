package tdma

import (
	"github.com/bits-and-blooms/bitset"
)

// Instance is one schedulable transmission. A link whose requirement is k
// yields k instances with Repetition 0 to k-1.
type Instance struct {
	Link       int // index in Snapshot.Links
	Repetition int
	From       int
	To         int
}

// interferes returns true if the two transmissions cannot be active at the
// same time: they share a sender, share a receiver, or one of them would
// have to transmit and receive at once.
func (a Instance) interferes(b Instance) bool {
	return a.From == b.From ||
		a.To == b.To ||
		a.From == b.To ||
		a.To == b.From
}

// ExpandInstances turns requirements into the ordered list of instances to
// schedule. Instances are ordered by sender (registration order), then by
// link (insertion order), then by repetition.
func ExpandInstances(r *Requirements) []Instance {
	s := r.Snapshot
	instances := make([]Instance, 0, r.Total())
	for u := range s.Nexts {
		for _, e := range s.Nexts[u] {
			l := s.Links[e]
			for k := 0; k < r.Counts[e]; k++ {
				instances = append(instances, Instance{
					Link:       e,
					Repetition: k,
					From:       l.From,
					To:         l.To,
				})
			}
		}
	}
	return instances
}

// InterferenceGraph is the conflict graph between transmission instances.
// Vertex i is Instances[i]; an edge means the two instances must not share a
// slot. The graph is symmetric and has no self-loops.
type InterferenceGraph struct {
	Instances []Instance

	// adj[i] has bit j set iff instances i and j interfere. Bitsets give
	// neighbor iteration in ascending index order.
	adj    []*bitset.BitSet
	nEdges int
}

// NewInterferenceGraph builds the conflict graph by checking every unordered
// pair of instances, which takes O(T²) for T instances.
func NewInterferenceGraph(instances []Instance) *InterferenceGraph {
	n := len(instances)
	g := &InterferenceGraph{
		Instances: instances,
		adj:       make([]*bitset.BitSet, n),
	}
	for i := range g.adj {
		g.adj[i] = bitset.New(uint(n))
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !instances[i].interferes(instances[j]) {
				continue
			}
			g.adj[i].Set(uint(j))
			g.adj[j].Set(uint(i))
			g.nEdges++
		}
	}
	return g
}

// Len returns the number of instances in the graph.
func (g *InterferenceGraph) Len() int {
	return len(g.Instances)
}

// NumEdges returns the number of conflicts.
func (g *InterferenceGraph) NumEdges() int {
	return g.nEdges
}

// Degree returns the number of instances that conflict with instance i.
func (g *InterferenceGraph) Degree(i int) int {
	return int(g.adj[i].Count())
}

// Adjacent returns true if instances i and j conflict.
func (g *InterferenceGraph) Adjacent(i int, j int) bool {
	return g.adj[i].Test(uint(j))
}

// Neighbors returns the instances conflicting with instance i in ascending
// order.
func (g *InterferenceGraph) Neighbors(i int) []int {
	ns := make([]int, 0, g.adj[i].Count())
	for j, ok := g.adj[i].NextSet(0); ok; j, ok = g.adj[i].NextSet(j + 1) {
		ns = append(ns, int(j))
	}
	return ns
}
