package replay

import (
	"encoding/binary"
)

// Guard is a probabilistic duplicate-exchange detector, shared across
// however many packets a signer/verifier processes over its lifetime. It
// is explicitly NOT owned by any single Packet (spec.md §5): packets are
// single-owner values, the guard is composition-root state.
type Guard struct {
	f *filter
}

// NewGuard returns a Guard sized for capacity distinct (id, mac) pairs at
// the given target false-positive rate.
func NewGuard(capacity uint64, fpRate float64) *Guard {
	return &Guard{f: newFilter(capacity, fpRate)}
}

func key(id uint16, mac []byte) []byte {
	out := make([]byte, 2+len(mac))
	binary.BigEndian.PutUint16(out, id)
	copy(out[2:], mac)
	return out
}

// Seen reports whether (id, mac) has probably already been processed. A
// false positive occasionally rejects a fresh exchange; it never lets a
// truly-seen one slip through.
func (g *Guard) Seen(id uint16, mac []byte) bool {
	return g.f.mightContain(key(id, mac))
}

// Mark records (id, mac) as processed.
func (g *Guard) Mark(id uint16, mac []byte) {
	g.f.add(key(id, mac))
}
