package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/wiredns/internal/dns/domain"
)

// EncodeQuestion writes a question entry (owner name, qtype, qclass) to
// buf, compressing the owner name against table.
func EncodeQuestion(buf *bytes.Buffer, q domain.Question, table CompressionTable) error {
	if err := EncodeName(buf, q.Name, table); err != nil {
		return err
	}
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], uint16(q.Type))
	buf.Write(tmp[:])
	binary.BigEndian.PutUint16(tmp[:], uint16(q.Class))
	buf.Write(tmp[:])
	return nil
}

// DecodeQuestion reads a question entry from buf at offset.
func DecodeQuestion(buf []byte, offset int) (domain.Question, int, error) {
	name, offset, err := DecodeName(buf, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if offset+4 > len(buf) {
		return domain.Question{}, 0, domain.ErrTruncatedSection
	}
	qtype := domain.RRType(binary.BigEndian.Uint16(buf[offset : offset+2]))
	qclass := domain.RRClass(binary.BigEndian.Uint16(buf[offset+2 : offset+4]))
	return domain.Question{Name: name, Type: qtype, Class: qclass}, offset + 4, nil
}
