package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/wiredns/internal/dns/domain"
)

// HeaderLen is the fixed size, in octets, of a DNS message header.
const HeaderLen = 12

// EncodeHeader writes the 12-octet header to buf per RFC 1035 §4.1.1.
func EncodeHeader(buf *bytes.Buffer, h domain.Header) {
	var tmp [2]byte
	putU16 := func(v uint16) {
		binary.BigEndian.PutUint16(tmp[:], v)
		buf.Write(tmp[:])
	}
	putU16(h.ID)
	putU16(h.Flags())
	putU16(h.QDCount)
	putU16(h.ANCount)
	putU16(h.NSCount)
	putU16(h.ARCount)
}

// DecodeHeader reads the 12-octet header from buf at offset.
func DecodeHeader(buf []byte, offset int) (domain.Header, int, error) {
	if offset+HeaderLen > len(buf) {
		return domain.Header{}, 0, domain.ErrTruncatedHeader
	}
	var h domain.Header
	h.ID = binary.BigEndian.Uint16(buf[offset : offset+2])
	h.SetFlags(binary.BigEndian.Uint16(buf[offset+2 : offset+4]))
	h.QDCount = binary.BigEndian.Uint16(buf[offset+4 : offset+6])
	h.ANCount = binary.BigEndian.Uint16(buf[offset+6 : offset+8])
	h.NSCount = binary.BigEndian.Uint16(buf[offset+8 : offset+10])
	h.ARCount = binary.BigEndian.Uint16(buf[offset+10 : offset+12])
	return h, offset + HeaderLen, nil
}
