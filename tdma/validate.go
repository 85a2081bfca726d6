package tdma

import "fmt"

// Validate checks that a plan respects the rules any schedule must follow:
//
//   - conservation: there is exactly one instance per unit of requirement,
//     each pointing back to its link;
//   - slots: conflicting instances never share a slot;
//   - channels: instances sharing a channel are separated by at least
//     InterferenceRadius hops.
//
// It returns a *ViolationError (matching ErrInvalidSchedule) for the first
// broken rule found.
func Validate(p *Plan) error {
	if err := validateConservation(p); err != nil {
		return err
	}
	if err := validateSlots(p); err != nil {
		return err
	}
	return validateChannels(p)
}

func validateConservation(p *Plan) error {
	seen := make([]int, len(p.Requirements.Counts))
	for i, inst := range p.Graph.Instances {
		if inst.Link < 0 || len(seen) <= inst.Link {
			return &ViolationError{
				Rule:   "conservation",
				Detail: fmt.Sprintf("instance %d references unknown link %d", i, inst.Link),
			}
		}
		l := p.Snapshot.Links[inst.Link]
		if l.From != inst.From || l.To != inst.To {
			return &ViolationError{
				Rule:   "conservation",
				Detail: fmt.Sprintf("instance %d does not match the endpoints of link %d", i, inst.Link),
			}
		}
		seen[inst.Link]++
	}
	for e, want := range p.Requirements.Counts {
		if seen[e] != want {
			t := p.Snapshot.Transmission(p.Snapshot.Links[e])
			return &ViolationError{
				Rule:   "conservation",
				Detail: fmt.Sprintf("link %s -> %s requires %d transmissions, got %d", t.Sender, t.Receiver, want, seen[e]),
			}
		}
	}
	return nil
}

func validateSlots(p *Plan) error {
	n := p.Graph.Len()
	if len(p.Slots.Slots) != n {
		return &ViolationError{
			Rule:   "slots",
			Detail: fmt.Sprintf("%d slots assigned for %d instances", len(p.Slots.Slots), n),
		}
	}
	for i := 0; i < n; i++ {
		for _, j := range p.Graph.Neighbors(i) {
			if j > i && p.Slots.Slots[i] == p.Slots.Slots[j] {
				return &ViolationError{
					Rule:   "slots",
					Detail: fmt.Sprintf("conflicting instances %d and %d share slot %d", i, j, p.Slots.Slots[i]),
				}
			}
		}
	}
	return nil
}

func validateChannels(p *Plan) error {
	assigned := 0
	for s, channels := range p.Channels.Members {
		for c, members := range channels {
			for a, i := range members {
				assigned++
				if p.Slots.Slots[i] != s || p.Channels.Channels[i] != c {
					return &ViolationError{
						Rule:   "channels",
						Detail: fmt.Sprintf("instance %d is listed in slot %d channel %d", i, s, c),
					}
				}
				for _, j := range members[a+1:] {
					if !separated(p.Distances, p.Graph.Instances[i], p.Graph.Instances[j]) {
						return &ViolationError{
							Rule:   "channels",
							Detail: fmt.Sprintf("instances %d and %d are too close to share slot %d channel %d", i, j, s, c),
						}
					}
				}
			}
		}
	}
	if assigned != p.Graph.Len() {
		return &ViolationError{
			Rule:   "channels",
			Detail: fmt.Sprintf("%d instances placed in channels, want %d", assigned, p.Graph.Len()),
		}
	}
	return nil
}
