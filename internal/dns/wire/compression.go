// Package wire implements the RFC 1035 wire codec: domain-name
// compression and pointer expansion, the generic resource-record
// envelope, question entries, and the 12-octet message header. Package
// packet drives these codecs to assemble and take apart whole messages.
package wire

// MaxPointerOffset is the exclusive upper bound on the absolute offset a
// compression pointer can address: the top two bits of a 16-bit pointer
// are reserved as the 11-marker, leaving 14 bits for the offset, so the
// largest addressable offset is 0x3FFF (RFC 1035 §4.1.4).
const MaxPointerOffset = 0x4000

// CompressionTable maps a name's canonical (lowercased dotted) suffix to
// the absolute offset, within the message currently being encoded, where
// that suffix was first written. It exists only for the duration of one
// Packet.Encode call.
type CompressionTable map[string]int

// NewCompressionTable returns an empty compression table.
func NewCompressionTable() CompressionTable {
	return make(CompressionTable)
}
