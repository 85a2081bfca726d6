package tdma

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestColorSlots(t *testing.T) {
	testCases := []struct {
		desc      string
		instances []Instance
		want      *SlotAssignment
	}{
		{
			desc:      "no instance",
			instances: nil,
			want:      &SlotAssignment{Slots: []int{}},
		},
		{
			desc: "independent instances share slot 0",
			instances: []Instance{
				{From: 0, To: 1},
				{From: 2, To: 3},
			},
			want: &SlotAssignment{Slots: []int{0, 0}, NumSlots: 1},
		},
		{
			// 0->1->2->3: instance 1 has the highest degree and is colored
			// first, then instances 0 and 2 in index order.
			desc: "path",
			instances: []Instance{
				{From: 0, To: 1},
				{From: 1, To: 2},
				{From: 2, To: 3},
			},
			want: &SlotAssignment{Slots: []int{1, 0, 1}, NumSlots: 2},
		},
		{
			desc: "repetitions of one link",
			instances: []Instance{
				{From: 0, To: 1, Repetition: 0},
				{From: 0, To: 1, Repetition: 1},
				{From: 0, To: 1, Repetition: 2},
			},
			want: &SlotAssignment{Slots: []int{0, 1, 2}, NumSlots: 3},
		},
		{
			// Instances 1 and 3 (B->E, D->E) have degree 2 and are colored
			// before 0 and 2.
			desc: "converging",
			instances: []Instance{
				{From: 0, To: 1}, // A->B
				{From: 1, To: 4}, // B->E
				{From: 2, To: 3}, // C->D
				{From: 3, To: 4}, // D->E
			},
			want: &SlotAssignment{Slots: []int{1, 0, 0, 1}, NumSlots: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := ColorSlots(NewInterferenceGraph(tc.instances))

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ColorSlots(): mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColorSlots_valid(t *testing.T) {
	snap := buildTopology(t, rates(1, "A", "B", "C", "D", "E", "F", "G", "H"), diamondChainLinks).Snapshot()
	reqs, err := ForwardingRequirements(snap)
	require.NoError(t, err)
	g := NewInterferenceGraph(ExpandInstances(reqs))

	sa := ColorSlots(g)

	used := map[int]bool{}
	for i := 0; i < g.Len(); i++ {
		used[sa.Slots[i]] = true
		for _, j := range g.Neighbors(i) {
			if sa.Slots[i] == sa.Slots[j] {
				t.Errorf("instances %d and %d conflict but share slot %d", i, j, sa.Slots[i])
			}
		}
	}
	require.Len(t, used, sa.NumSlots)
	for s := 0; s < sa.NumSlots; s++ {
		require.True(t, used[s], "slot %d is empty", s)
	}
}
