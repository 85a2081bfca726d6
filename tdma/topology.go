package tdma

import "sync"

// Link represents a directed forwarding link between two devices, identified
// by their registration index.
type Link struct {
	From int
	To   int
}

// Topology is the mutable model of a relay network: devices with their
// per-frame generation rate, and directed links between them. Devices and
// links keep their registration order, which is the order every derived
// structure is built in.
//
// A Topology is safe for concurrent use. Schedules are never computed on the
// Topology itself but on a Snapshot of it.
type Topology struct {
	mu sync.RWMutex

	ids   []string
	rates []int
	index map[string]int

	nexts [][]int
	links []Link
	known map[Link]bool
}

// NewTopology returns an empty topology.
func NewTopology() *Topology {
	return &Topology{
		index: map[string]int{},
		known: map[Link]bool{},
	}
}

// AddDevice registers a device that originates rate packets per frame.
// Registering the same id twice fails with ErrDuplicateDevice.
func (t *Topology) AddDevice(id string, rate int) error {
	if id == "" {
		return &DeviceError{Op: "add device", Device: id, Err: ErrInvalidDevice}
	}
	if rate < 0 {
		return &DeviceError{Op: "add device", Device: id, Err: ErrInvalidRate}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.index[id]; ok {
		return &DeviceError{Op: "add device", Device: id, Err: ErrDuplicateDevice}
	}
	t.index[id] = len(t.ids)
	t.ids = append(t.ids, id)
	t.rates = append(t.rates, rate)
	t.nexts = append(t.nexts, nil)
	return nil
}

// AddLink records a directed link from sender to receiver. Both devices must
// already be registered, otherwise ErrUnknownDevice is returned and the
// topology is left unchanged. Adding a link that already exists is a no-op.
func (t *Topology) AddLink(sender string, receiver string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	from, ok := t.index[sender]
	if !ok {
		return &DeviceError{Op: "add link", Device: sender, Err: ErrUnknownDevice}
	}
	to, ok := t.index[receiver]
	if !ok {
		return &DeviceError{Op: "add link", Device: receiver, Err: ErrUnknownDevice}
	}

	l := Link{From: from, To: to}
	if t.known[l] {
		return nil
	}
	t.known[l] = true
	t.nexts[from] = append(t.nexts[from], len(t.links))
	t.links = append(t.links, l)
	return nil
}

// NumDevices returns the number of registered devices.
func (t *Topology) NumDevices() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}

// NumLinks returns the number of distinct links.
func (t *Topology) NumLinks() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.links)
}

// Snapshot returns an immutable copy of the topology. Later registrations do
// not affect the snapshot.
func (t *Topology) Snapshot() *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := &Snapshot{
		IDs:   append([]string{}, t.ids...),
		Rates: append([]int{}, t.rates...),
		Nexts: make([][]int, len(t.nexts)),
		Links: append([]Link{}, t.links...),
		index: make(map[string]int, len(t.index)),
	}
	for i, n := range t.nexts {
		if n != nil {
			s.Nexts[i] = append([]int{}, n...)
		}
	}
	for id, i := range t.index {
		s.index[id] = i
	}
	return s
}

// Snapshot is a frozen view of a Topology. Device i has identifier IDs[i]
// and generation rate Rates[i]; Nexts[i] lists the indexes in Links of the
// links leaving device i, in insertion order.
//
// Important: the slices must only be read. Every computation in this package
// treats a snapshot as immutable, which is what makes it safe to share
// between goroutines.
type Snapshot struct {
	IDs   []string
	Rates []int
	Nexts [][]int
	Links []Link

	index map[string]int
}

// NumDevices returns the number of devices in the snapshot.
func (s *Snapshot) NumDevices() int {
	return len(s.IDs)
}

// Index returns the registration index of the device with the given id.
func (s *Snapshot) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Transmission returns the (sender, receiver) identifiers of link l.
func (s *Snapshot) Transmission(l Link) Transmission {
	return Transmission{Sender: s.IDs[l.From], Receiver: s.IDs[l.To]}
}
