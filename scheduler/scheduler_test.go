package scheduler

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/neilotoole/slogt"
	"github.com/rhartert/meshtdma/tdma"
	"github.com/stretchr/testify/require"
)

// diamondChain returns the diamond followed by a chain, every device
// originating one packet per frame.
func diamondChain(t *testing.T) *tdma.Topology {
	t.Helper()
	topo := tdma.NewTopology()
	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		require.NoError(t, topo.AddDevice(id, 1))
	}
	for _, l := range [][2]string{
		{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"},
		{"D", "E"}, {"E", "F"}, {"F", "G"}, {"G", "H"},
	} {
		require.NoError(t, topo.AddLink(l[0], l[1]))
	}
	return topo
}

func TestScheduler_Run(t *testing.T) {
	topo := diamondChain(t)
	s := New(Config{Verify: true, Log: slogt.New(t)})

	got, err := s.Run(context.Background(), topo)
	require.NoError(t, err)

	want, err := tdma.GenerateSchedule(topo)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got.Schedule); diff != "" {
		t.Errorf("Run(): mismatch (-want +got):\n%s", diff)
	}
	require.NotEmpty(t, got.ID)
	require.Equal(t, 8, got.Stats.Devices)
	require.Equal(t, 8, got.Stats.Links)
	require.Equal(t, 32, got.Stats.Instances)
	require.Equal(t, got.Plan.Graph.NumEdges(), got.Stats.Conflicts)
	require.Equal(t, len(got.Schedule), got.Stats.Slots)
	require.Equal(t, got.Schedule.NumChannels(), got.Stats.Channels)
	require.NoError(t, tdma.Validate(got.Plan))
}

func TestScheduler_Run_maxInstances(t *testing.T) {
	testCases := []struct {
		desc    string
		max     int
		wantErr error
	}{
		{"no limit", 0, nil},
		{"limit reached", 32, nil},
		{"limit exceeded", 31, ErrTooManyInstances},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			s := New(Config{MaxInstances: tc.max, Log: slogt.New(t)})

			got, err := s.Run(context.Background(), diamondChain(t))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 32, got.Stats.Instances)
		})
	}
}

func TestScheduler_Run_cycle(t *testing.T) {
	topo := tdma.NewTopology()
	require.NoError(t, topo.AddDevice("A", 1))
	require.NoError(t, topo.AddDevice("B", 1))
	require.NoError(t, topo.AddLink("A", "B"))
	require.NoError(t, topo.AddLink("B", "A"))

	got, err := New(Config{Log: slogt.New(t)}).Run(context.Background(), topo)

	require.ErrorIs(t, err, tdma.ErrCyclicTopology)
	require.Nil(t, got)
}

func TestScheduler_Run_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := New(Config{}).Run(ctx, diamondChain(t))

	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, got)
}

func TestScheduler_Run_empty(t *testing.T) {
	got, err := New(Config{Verify: true}).Run(context.Background(), tdma.NewTopology())

	require.NoError(t, err)
	require.Empty(t, got.Schedule)
	require.Equal(t, Stats{}, got.Stats)
}
