package tdma

import (
	"github.com/rhartert/yagh"
)

// Requirements holds the number of transmissions each link must carry per
// frame. Counts[e] is the requirement of link Snapshot.Links[e].
type Requirements struct {
	Snapshot *Snapshot
	Counts   []int
}

// ForwardingRequirements computes how many transmissions each link carries
// per frame once relaying is accounted for.
//
// Devices are processed in topological order. The packet total of a device is
// its own generation rate plus everything its predecessors forwarded to it.
// The device then sends its whole total on every outgoing link, which is
// recorded as that link's requirement and added to the successor's total.
// Note that a device with several successors sends its total on each of them,
// i.e. fan-out duplicates traffic rather than splitting it.
//
// Among the devices that are ready to be processed, the one registered first
// is processed first. The function returns a *CycleError (matching
// ErrCyclicTopology) if the links contain a directed cycle.
func ForwardingRequirements(s *Snapshot) (*Requirements, error) {
	nDevices := s.NumDevices()

	degrees := make([]int, nDevices)
	for _, l := range s.Links {
		degrees[l.To] += 1
	}

	totals := make([]int, nDevices)
	copy(totals, s.Rates)
	counts := make([]int, len(s.Links))

	// Devices whose predecessors have all been processed, keyed by their
	// registration index.
	ready := yagh.New[int](nDevices)
	for u := 0; u < nDevices; u++ {
		if degrees[u] == 0 {
			ready.Put(u, u)
		}
	}

	processed := 0
	for ready.Size() > 0 {
		u := ready.Pop().Elem
		processed++

		for _, e := range s.Nexts[u] {
			v := s.Links[e].To
			counts[e] += totals[u]
			totals[v] += totals[u]

			degrees[v] -= 1
			if degrees[v] == 0 {
				ready.Put(v, v)
			}
		}
	}

	if processed < nDevices {
		cerr := &CycleError{}
		for u, d := range degrees {
			if d > 0 {
				cerr.Devices = append(cerr.Devices, s.IDs[u])
			}
		}
		return nil, cerr
	}

	return &Requirements{Snapshot: s, Counts: counts}, nil
}

// Count returns the requirement of the link from sender to receiver. The
// second value is false if there is no such link.
func (r *Requirements) Count(sender string, receiver string) (int, bool) {
	from, ok := r.Snapshot.Index(sender)
	if !ok {
		return 0, false
	}
	to, ok := r.Snapshot.Index(receiver)
	if !ok {
		return 0, false
	}
	for _, e := range r.Snapshot.Nexts[from] {
		if r.Snapshot.Links[e].To == to {
			return r.Counts[e], true
		}
	}
	return 0, false
}

// Total returns the sum of all link requirements, which is also the number of
// transmission instances to schedule.
func (r *Requirements) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}
