package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/wiredns/internal/dns/domain"
)

// EncodeRR writes the generic RR envelope (owner, type, class, ttl,
// RDLENGTH, RDATA) to buf, back-patching RDLENGTH once RDATA is known
// (spec.md §4.2).
func EncodeRR(buf *bytes.Buffer, rr domain.ResourceRecord, table CompressionTable) error {
	if err := EncodeName(buf, rr.Name, table); err != nil {
		return err
	}
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], uint16(rr.Type))
	buf.Write(tmp[:])
	binary.BigEndian.PutUint16(tmp[:], uint16(rr.Class))
	buf.Write(tmp[:])

	ttl := rr.TTL
	if rr.RData.Kind == domain.RDataOPT {
		ttl = rr.RData.OPT.TTL()
	}
	var tmp4 [4]byte
	binary.BigEndian.PutUint32(tmp4[:], ttl)
	buf.Write(tmp4[:])

	rdlenPos := buf.Len()
	buf.Write([]byte{0, 0}) // RDLENGTH placeholder

	rdataStart := buf.Len()
	if err := EncodeRData(buf, rr, table); err != nil {
		return err
	}
	rdlen := buf.Len() - rdataStart

	patched := buf.Bytes()
	binary.BigEndian.PutUint16(patched[rdlenPos:rdlenPos+2], uint16(rdlen))
	return nil
}

// DecodeRR reads a generic RR envelope from buf at offset, dispatching to
// the type-specific RDATA decoder.
func DecodeRR(buf []byte, offset int) (domain.ResourceRecord, int, error) {
	name, offset, err := DecodeName(buf, offset)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	if offset+10 > len(buf) {
		return domain.ResourceRecord{}, 0, domain.ErrTruncatedSection
	}

	rrtype := domain.RRType(binary.BigEndian.Uint16(buf[offset : offset+2]))
	offset += 2
	rrclass := domain.RRClass(binary.BigEndian.Uint16(buf[offset : offset+2]))
	offset += 2
	ttl := binary.BigEndian.Uint32(buf[offset : offset+4])
	offset += 4
	rdlen := int(binary.BigEndian.Uint16(buf[offset : offset+2]))
	offset += 2

	if offset+rdlen > len(buf) {
		return domain.ResourceRecord{}, 0, domain.ErrTruncatedRData
	}

	rdata, err := DecodeRData(buf, offset, rdlen, rrtype)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	offset += rdlen

	rr := domain.ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: rrclass,
		TTL:   ttl,
		RData: rdata,
	}
	if rrtype == domain.RRTypeOPT {
		rr.RData.OPT.SetTTL(ttl)
	}
	return rr, offset, nil
}
