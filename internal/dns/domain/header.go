package domain

// Header holds the 12-octet DNS message header fields (RFC 1035 §4.1.1).
// The four section counts mirror what was declared on the wire; once a
// Packet is built or decoded, its section slice lengths are the source of
// truth and Header's counts are re-derived at encode time.
type Header struct {
	ID uint16

	QR     bool
	Opcode Opcode
	AA     bool
	TC     bool
	RD     bool
	RA     bool
	Z      bool
	AD     bool
	CD     bool
	Rcode  RCode // low 4 bits; the upper 8 bits ride on an OPT record, if any

	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// Flags packs the second header octet-pair per RFC 1035 §4.1.1.
func (h Header) Flags() uint16 {
	var f uint16
	if h.QR {
		f |= 1 << 15
	}
	f |= uint16(h.Opcode&0xF) << 11
	if h.AA {
		f |= 1 << 10
	}
	if h.TC {
		f |= 1 << 9
	}
	if h.RD {
		f |= 1 << 8
	}
	if h.RA {
		f |= 1 << 7
	}
	if h.Z {
		f |= 1 << 6
	}
	if h.AD {
		f |= 1 << 5
	}
	if h.CD {
		f |= 1 << 4
	}
	f |= uint16(h.Rcode & 0xF)
	return f
}

// SetFlags unpacks a raw flags octet-pair into the boolean/enum fields.
func (h *Header) SetFlags(f uint16) {
	h.QR = f&(1<<15) != 0
	h.Opcode = Opcode((f >> 11) & 0xF)
	h.AA = f&(1<<10) != 0
	h.TC = f&(1<<9) != 0
	h.RD = f&(1<<8) != 0
	h.RA = f&(1<<7) != 0
	h.Z = f&(1<<6) != 0
	h.AD = f&(1<<5) != 0
	h.CD = f&(1<<4) != 0
	h.Rcode = RCode(f & 0xF)
}

// ExtendedRcode combines the header's low 4 rcode bits with the extended
// rcode byte carried in an EDNS OPT record's repurposed TTL field
// (RFC 6891 §6.1.3).
func (h Header) ExtendedRcode(optPresent bool, optExtendedByte uint8) RCode {
	if !optPresent {
		return h.Rcode
	}
	return RCode(uint16(optExtendedByte)<<4 | uint16(h.Rcode&0xF))
}

// SplitExtendedRcode splits a full 12-bit rcode into the header's low 4
// bits and the OPT record's high 8 bits, the inverse of ExtendedRcode.
func SplitExtendedRcode(full RCode) (low RCode, extended uint8) {
	return full & 0xF, uint8((full >> 4) & 0xFF)
}
