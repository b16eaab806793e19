// Package iec models the IEC serial bus connecting the C64 (via CIA2 port
// A) to the 1541 drive (via its VIA1): a 3-line open-collector bus (ATN,
// CLOCK, DATA) where any participant pulling a line low wins, regardless
// of how many others are left floating high.
package iec

// Lines is the asserted/not-asserted state of the bus's three signals.
// true means the line is pulled low (asserted); this is the inverted
// sense of the physical voltage, matching how the rest of this package's
// callers (and the CIA/VIA port bits driving them) reason about the bus.
type Lines struct {
	ATN  bool
	Clock bool
	Data  bool
}

func (l Lines) or(o Lines) Lines {
	return Lines{
		ATN:   l.ATN || o.ATN,
		Clock: l.Clock || o.Clock,
		Data:  l.Data || o.Data,
	}
}

// Bus is the shared, wired-OR IEC bus. Each participant publishes its own
// outgoing line state with SetDevice; State always reflects the logical OR
// of every participant's contribution (low wins).
type Bus struct {
	devices map[string]Lines
	state   Lines
}

func NewBus() *Bus {
	return &Bus{devices: make(map[string]Lines)}
}

// SetDevice records one participant's outgoing line state and recomputes
// the bus's resulting (shared) state.
func (b *Bus) SetDevice(name string, out Lines) {
	b.devices[name] = out
	b.recompute()
}

func (b *Bus) recompute() {
	var merged Lines
	for _, l := range b.devices {
		merged = merged.or(l)
	}
	b.state = merged
}

// State is the bus's current shared line state, as every participant sees
// it on read.
func (b *Bus) State() Lines { return b.state }
