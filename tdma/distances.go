package tdma

import "math"

const unreachable = math.MaxInt

// HopDistances holds the minimum number of links between every pair of
// devices when link directions are ignored.
type HopDistances struct {
	n    int
	dist []int // row-major n*n matrix
}

// NewHopDistances computes all-pairs hop distances over the undirected
// closure of the snapshot's links. It runs in O(n³) for n devices.
func NewHopDistances(s *Snapshot) *HopDistances {
	n := s.NumDevices()
	hd := &HopDistances{
		n:    n,
		dist: make([]int, n*n),
	}

	d := hd.dist
	for i := range d {
		d[i] = unreachable
	}
	for u := 0; u < n; u++ {
		d[u*n+u] = 0
	}
	for _, l := range s.Links {
		if l.From == l.To {
			continue
		}
		d[l.From*n+l.To] = 1
		d[l.To*n+l.From] = 1
	}

	// Relax every pair through every intermediate device k. The loop order
	// is fixed (k, i, j).
	for k := 0; k < n; k++ {
		rowK := k * n
		for i := 0; i < n; i++ {
			ik := d[i*n+k]
			if ik == unreachable {
				continue
			}
			rowI := i * n
			for j := 0; j < n; j++ {
				kj := d[rowK+j]
				if kj == unreachable {
					continue
				}
				if c := ik + kj; c < d[rowI+j] {
					d[rowI+j] = c
				}
			}
		}
	}

	return hd
}

// Distance returns the hop distance between devices u and v. The second
// value is false if v cannot be reached from u or if either index is out of
// range.
func (hd *HopDistances) Distance(u int, v int) (int, bool) {
	if u < 0 || v < 0 || hd.n <= u || hd.n <= v {
		return 0, false
	}
	d := hd.dist[u*hd.n+v]
	if d == unreachable {
		return 0, false
	}
	return d, true
}

// atLeast reports whether u and v are at least k hops apart. Unreachable
// pairs are infinitely far apart.
func (hd *HopDistances) atLeast(u int, v int, k int) bool {
	d, ok := hd.Distance(u, v)
	return !ok || d >= k
}
