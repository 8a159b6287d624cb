package wire

import (
	"bytes"

	"github.com/haukened/wiredns/internal/dns/domain"
)

// WireToPresentation renders a self-contained (uncompressed) wire-format
// name buffer, such as an RDATA-embedded name a type handler already has
// as raw bytes, into dotted presentation form (spec.md §6).
func WireToPresentation(b []byte) (string, error) {
	name, _, err := decodeNameNoCompression(b, 0)
	if err != nil {
		return "", err
	}
	return name.String(), nil
}

// NameToLabels splits a presentation-form domain name into its raw,
// unescaped label byte strings (spec.md §6).
func NameToLabels(presentation string) ([][]byte, error) {
	n, err := domain.NewName(presentation)
	if err != nil {
		return nil, err
	}
	return n.Labels, nil
}

// DnExpand is the collaborator interface type-specific decoders use to
// expand a name embedded in their own RDATA against the full packet
// buffer (spec.md §6). It is simply DecodeName exposed under the name
// the spec gives it.
func DnExpand(buffer []byte, offset int) (domain.Name, int, error) {
	return DecodeName(buffer, offset)
}

// DnComp is the collaborator interface type-specific encoders use to
// write a name embedded in their own RDATA against the message's shared
// compression table (spec.md §6). It is simply EncodeName exposed under
// the name the spec gives it.
func DnComp(buf *bytes.Buffer, name domain.Name, table CompressionTable) error {
	return EncodeName(buf, name, table)
}
