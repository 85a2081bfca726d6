package tdma

import "sort"

// RequirementEntry is one line of a requirement report.
type RequirementEntry struct {
	Sender   string `json:"sender" yaml:"sender"`
	Receiver string `json:"receiver" yaml:"receiver"`
	Count    int    `json:"count" yaml:"count"`
}

// Report returns the requirement of every link ordered by sender, then by
// receiver. Links with a zero requirement are included.
func (r *Requirements) Report() []RequirementEntry {
	entries := make([]RequirementEntry, 0, len(r.Counts))
	for e, l := range r.Snapshot.Links {
		entries = append(entries, RequirementEntry{
			Sender:   r.Snapshot.IDs[l.From],
			Receiver: r.Snapshot.IDs[l.To],
			Count:    r.Counts[e],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Sender != entries[j].Sender {
			return entries[i].Sender < entries[j].Sender
		}
		return entries[i].Receiver < entries[j].Receiver
	})
	return entries
}
