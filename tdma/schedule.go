// Package tdma computes collision-free transmission schedules for multi-hop
// relay networks.
//
// A schedule is computed in stages, each a pure function of the previous
// stage's output:
//
//  1. ForwardingRequirements derives how many transmissions each link carries
//     per frame once relayed traffic is accounted for.
//  2. ExpandInstances and NewInterferenceGraph turn the requirements into
//     individual transmissions and the conflicts between them.
//  3. ColorSlots assigns a time slot to every transmission.
//  4. PackChannels splits each slot into channels of transmissions that are
//     far enough apart (see NewHopDistances) to run concurrently.
//
// Compute chains the stages; ComputeFunc also reports each of them as it
// completes. All of them work on a Snapshot of a Topology and never modify
// it, so several schedules can be computed concurrently.
package tdma

import (
	"fmt"
	"time"
)

// Transmission is one packet sent from Sender to Receiver.
type Transmission struct {
	Sender   string `json:"sender" yaml:"sender"`
	Receiver string `json:"receiver" yaml:"receiver"`
}

// Channel is a group of transmissions that run concurrently within a slot.
type Channel []Transmission

// Slot is the ordered list of channels of one time slot.
type Slot []Channel

// Schedule is the ordered list of time slots of a frame.
type Schedule []Slot

// NumChannels returns the total number of channels over all slots.
func (s Schedule) NumChannels() int {
	n := 0
	for _, slot := range s {
		n += len(slot)
	}
	return n
}

// NumTransmissions returns the total number of transmissions in the frame.
func (s Schedule) NumTransmissions() int {
	n := 0
	for _, slot := range s {
		for _, ch := range slot {
			n += len(ch)
		}
	}
	return n
}

// Plan holds the output of every stage of a schedule computation.
type Plan struct {
	Snapshot     *Snapshot
	Requirements *Requirements
	Distances    *HopDistances
	Graph        *InterferenceGraph
	Slots        *SlotAssignment
	Channels     *ChannelAssignment
}

// Stage identifies a step of a schedule computation.
type Stage int

const (
	StageRequirements Stage = iota
	StageDistances
	StageInterference
	StageSlots
	StageChannels
)

func (s Stage) String() string {
	switch s {
	case StageRequirements:
		return "requirements"
	case StageDistances:
		return "distances"
	case StageInterference:
		return "interference"
	case StageSlots:
		return "slots"
	case StageChannels:
		return "channels"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageFunc is called after each stage with the plan computed so far and the
// time the stage took. Fields of later stages are still nil.
type StageFunc func(stage Stage, p *Plan, took time.Duration) error

// Compute runs every stage on the snapshot. It fails only if the links
// contain a cycle, in which case no partial plan is returned.
func Compute(s *Snapshot) (*Plan, error) {
	return ComputeFunc(s, nil)
}

// ComputeFunc is like Compute but calls after (if not nil) once each stage is
// done. If after returns an error, the computation stops and ComputeFunc
// returns that error.
func ComputeFunc(s *Snapshot, after StageFunc) (*Plan, error) {
	p := &Plan{Snapshot: s}
	steps := []struct {
		stage Stage
		run   func() error
	}{
		{StageRequirements, func() (err error) {
			p.Requirements, err = ForwardingRequirements(s)
			return err
		}},
		{StageDistances, func() error {
			p.Distances = NewHopDistances(s)
			return nil
		}},
		{StageInterference, func() error {
			p.Graph = NewInterferenceGraph(ExpandInstances(p.Requirements))
			return nil
		}},
		{StageSlots, func() error {
			p.Slots = ColorSlots(p.Graph)
			return nil
		}},
		{StageChannels, func() error {
			p.Channels = PackChannels(p.Graph, p.Slots, p.Distances)
			return nil
		}},
	}

	for _, step := range steps {
		start := time.Now()
		if err := step.run(); err != nil {
			return nil, err
		}
		if after == nil {
			continue
		}
		if err := after(step.stage, p, time.Since(start)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Schedule renders the plan as slots of channels of transmissions.
func (p *Plan) Schedule() Schedule {
	schedule := make(Schedule, len(p.Channels.Members))
	for s, channels := range p.Channels.Members {
		schedule[s] = make(Slot, len(channels))
		for c, members := range channels {
			ch := make(Channel, len(members))
			for k, i := range members {
				ch[k] = p.Snapshot.Transmission(p.Snapshot.Links[p.Graph.Instances[i].Link])
			}
			schedule[s][c] = ch
		}
	}
	return schedule
}

// GenerateSchedule computes the schedule of the topology as it is at the time
// of the call.
func GenerateSchedule(t *Topology) (Schedule, error) {
	p, err := Compute(t.Snapshot())
	if err != nil {
		return nil, err
	}
	return p.Schedule(), nil
}
