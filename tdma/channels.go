package tdma

// InterferenceRadius is the minimum hop distance between the sender of one
// transmission and the receiver of another for both to share a channel.
const InterferenceRadius = 3

// ChannelAssignment splits every slot into channels.
type ChannelAssignment struct {
	// Channels[i] is the channel of instance i within its slot.
	Channels []int

	// Members[s][c] lists, in increasing order, the instances assigned to
	// channel c of slot s.
	Members [][][]int
}

// PackChannels groups the instances of each slot into channels. Slots are
// processed in increasing order and, within a slot, instances in increasing
// index order. Each instance joins the first channel of its slot in which it
// is far enough from every member (see separated) or opens a new channel.
//
// Like the slot coloring, this first-fit packing is valid but does not
// guarantee a minimal number of channels.
func PackChannels(g *InterferenceGraph, sa *SlotAssignment, hd *HopDistances) *ChannelAssignment {
	ca := &ChannelAssignment{
		Channels: make([]int, g.Len()),
		Members:  make([][][]int, sa.NumSlots),
	}

	bySlot := make([][]int, sa.NumSlots)
	for i, s := range sa.Slots {
		bySlot[s] = append(bySlot[s], i)
	}

	for s, instances := range bySlot {
		var channels [][]int
		for _, i := range instances {
			c := firstFit(g, hd, channels, i)
			if c == len(channels) {
				channels = append(channels, nil)
			}
			channels[c] = append(channels[c], i)
			ca.Channels[i] = c
		}
		ca.Members[s] = channels
	}

	return ca
}

// firstFit returns the index of the first channel that instance i can join,
// or len(channels) if none can take it.
func firstFit(g *InterferenceGraph, hd *HopDistances, channels [][]int, i int) int {
	for c, members := range channels {
		fits := true
		for _, m := range members {
			if !separated(hd, g.Instances[i], g.Instances[m]) {
				fits = false
				break
			}
		}
		if fits {
			return c
		}
	}
	return len(channels)
}

// separated returns true if the smallest of the two cross-endpoint distances
// between a and b (a's sender to b's receiver, a's receiver to b's sender) is
// at least InterferenceRadius.
func separated(hd *HopDistances, a Instance, b Instance) bool {
	return hd.atLeast(a.From, b.To, InterferenceRadius) &&
		hd.atLeast(a.To, b.From, InterferenceRadius)
}
