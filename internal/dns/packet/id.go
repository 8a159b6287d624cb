package packet

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
)

// idCounter backs nextID: a monotonically increasing counter seeded once
// from a cryptographically random starting point, giving concurrently
// built queries collision-resistant transaction ids without a shared
// lock on every call (spec.md §4.5's "new()": "any scheme with collision
// resistance across concurrent queries; a counter seeded from a random
// starting point is sufficient").
var idCounter atomic.Uint32

func init() {
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err == nil {
		idCounter.Store(binary.BigEndian.Uint32(seed[:]))
	}
}

// nextID returns a fresh 16-bit transaction id. Safe for concurrent use.
func nextID() uint16 {
	return uint16(idCounter.Add(1))
}
