package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/wiredns/internal/dns/common/log"
	"github.com/haukened/wiredns/internal/dns/domain"
)

// EncodeName writes name into buf in wire format, compressing against
// table wherever a suffix has already been written earlier in the same
// message. Every suffix it writes uncompressed (up to MaxPointerOffset)
// is recorded into table for later names to reuse (spec.md §4.1).
func EncodeName(buf *bytes.Buffer, name domain.Name, table CompressionTable) error {
	labels := name.Labels
	for i := 0; i <= len(labels); i++ {
		suffix := domain.Name{Labels: labels[i:]}
		if suffix.IsRoot() {
			buf.WriteByte(0)
			return nil
		}

		key := suffix.Canonical()
		if ptrOffset, ok := table[key]; ok && ptrOffset < MaxPointerOffset {
			ptr := uint16(0xC000 | ptrOffset)
			buf.WriteByte(byte(ptr >> 8))
			buf.WriteByte(byte(ptr))
			return nil
		}

		label := labels[i]
		if len(label) > domain.MaxLabelLength {
			log.Warn(map[string]any{
				"label_len": len(label),
			}, "dns: truncating over-long label during encode")
			label = label[:domain.MaxLabelLength]
		}

		currentOffset := buf.Len()
		if currentOffset < MaxPointerOffset {
			table[key] = currentOffset
		}
		buf.WriteByte(byte(len(label)))
		buf.Write(label)
	}
	return nil
}

// DecodeName expands a domain name starting at offset within buf,
// following at most one compression pointer chain and rejecting any
// pointer cycle. It returns the expanded name and the offset immediately
// following the name's own encoding (after the terminating zero octet, or
// after a 2-octet pointer) — never the offset inside a followed pointer's
// target (spec.md §4.1).
func DecodeName(buf []byte, offset int) (domain.Name, int, error) {
	visited := make(map[int]bool)
	labels, next, err := decodeNameStep(buf, offset, visited)
	if err != nil {
		return domain.Name{}, 0, err
	}
	name := domain.Name{Labels: labels}
	if name.EncodedLen() > domain.MaxNameLength {
		return domain.Name{}, 0, domain.ErrNameTooLong
	}
	return name, next, nil
}

// decodeNameStep decodes one label or pointer at offset, recursing for
// the remainder of the name. visited is shared across the whole
// expansion and bounds total work to len(buf) regardless of how a
// crafted packet chains pointers.
func decodeNameStep(buf []byte, offset int, visited map[int]bool) ([][]byte, int, error) {
	if visited[offset] {
		return nil, 0, domain.ErrUnboundedNameExpansion
	}
	visited[offset] = true

	if offset >= len(buf) {
		return nil, 0, domain.ErrTruncatedName
	}

	lengthByte := buf[offset]
	switch lengthByte & 0xC0 {
	case 0x00:
		length := int(lengthByte)
		if length == 0 {
			return nil, offset + 1, nil
		}
		if offset+1+length > len(buf) {
			return nil, 0, domain.ErrTruncatedName
		}
		label := buf[offset+1 : offset+1+length]
		rest, next, err := decodeNameStep(buf, offset+1+length, visited)
		if err != nil {
			return nil, 0, err
		}
		return append([][]byte{label}, rest...), next, nil

	case 0xC0:
		if offset+1 >= len(buf) {
			return nil, 0, domain.ErrTruncatedName
		}
		ptr := int(binary.BigEndian.Uint16(buf[offset:offset+2]) & 0x3FFF)
		rest, _, err := decodeNameStep(buf, ptr, visited)
		if err != nil {
			return nil, 0, err
		}
		return rest, offset + 2, nil

	default: // 0x40, 0x80: reserved label-type bits
		return nil, 0, domain.ErrMalformedName
	}
}
