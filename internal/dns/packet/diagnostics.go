package packet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/haukened/wiredns/internal/dns/cache"
	"github.com/haukened/wiredns/internal/dns/domain"
)

// String renders p as a zone-file-ish dump grouped by section, in the
// style dig/named-checkzone use for debugging. Exact column spacing is
// not part of any wire contract; this exists for humans reading logs.
func (p *Packet) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, ";; HEADER SECTION\n")
	fmt.Fprintf(&b, ";; id: %d, opcode: %s, rcode: %s\n", p.Header.ID, p.Header.Opcode, p.Header.Rcode)
	fmt.Fprintf(&b, ";; flags: qr=%t aa=%t tc=%t rd=%t ra=%t ad=%t cd=%t\n",
		p.Header.QR, p.Header.AA, p.Header.TC, p.Header.RD, p.Header.RA, p.Header.AD, p.Header.CD)
	fmt.Fprintf(&b, ";; qdcount: %d, ancount: %d, nscount: %d, arcount: %d\n\n",
		len(p.Question), len(p.Answer), len(p.Authority), len(p.Additional))

	questionLabel := ";; QUESTION SECTION"
	answerLabel := ";; ANSWER SECTION"
	authorityLabel := ";; AUTHORITY SECTION"
	if p.Header.Opcode.String() == "UPDATE" {
		questionLabel = ";; ZONE SECTION"
		answerLabel = ";; PREREQUISITE SECTION"
		authorityLabel = ";; UPDATE SECTION"
	}

	fmt.Fprintf(&b, "%s\n", questionLabel)
	for _, q := range p.Question {
		fmt.Fprintf(&b, "%s\t\t%s\t%s\n", q.Name.String(), q.Class, q.Type)
	}

	fmt.Fprintf(&b, "\n%s\n", answerLabel)
	for _, rr := range p.Answer {
		fmt.Fprintf(&b, "%s\t%d\t%s\t%s\t%s\n", rr.Name.String(), rr.TTL, rr.Class, rr.Type, rdataString(rr))
	}

	fmt.Fprintf(&b, "\n%s\n", authorityLabel)
	for _, rr := range p.Authority {
		fmt.Fprintf(&b, "%s\t%d\t%s\t%s\t%s\n", rr.Name.String(), rr.TTL, rr.Class, rr.Type, rdataString(rr))
	}

	fmt.Fprintf(&b, "\n;; ADDITIONAL SECTION\n")
	for _, rr := range p.Additional {
		fmt.Fprintf(&b, "%s\t%d\t%s\t%s\t%s\n", rr.Name.String(), rr.TTL, rr.Class, rr.Type, rdataString(rr))
	}

	return b.String()
}

// rdataString renders an RR's RDATA for the diagnostic dump. It does not
// attempt full type-specific presentation format for every RR type
// (that belongs to a much larger zone-file library); it renders what
// this codec models structurally and falls back to hex for the rest.
func rdataString(rr domain.ResourceRecord) string {
	switch rr.RData.Kind {
	case domain.RDataPTR:
		return rr.RData.PTR.String()
	case domain.RDataOPT:
		return fmt.Sprintf("; EDNS: version: %d, flags: %04x, options: %d", rr.RData.OPT.Version, rr.RData.OPT.Flags, len(rr.RData.OPT.Options))
	case domain.RDataTSIG:
		return fmt.Sprintf("%s %d %d %s", rr.RData.TSIG.Algorithm, rr.RData.TSIG.TimeSigned, rr.RData.TSIG.Fudge, hex.EncodeToString(rr.RData.TSIG.MAC))
	case domain.RDataSIG:
		return fmt.Sprintf("%d %d %s %s", rr.RData.SIG.TypeCovered, rr.RData.SIG.KeyTag, rr.RData.SIG.SignerName.String(), hex.EncodeToString(rr.RData.SIG.Signature))
	default:
		return "\\# " + hex.EncodeToString(rr.RData.Opaque)
	}
}

// StringCached behaves like String but memoizes the result in c, keyed
// by a digest of p's wire encoding, so a caller re-dumping the same
// decoded packet repeatedly (busy logging paths) does no repeated
// string-building work. It is NOT a substitute for an answer cache: it
// never affects what Encode or Decode produce.
func (p *Packet) StringCached(c *cache.RenderCache) string {
	wireForm, err := p.Encode()
	if err != nil {
		return p.String()
	}
	digest := sha256.Sum256(wireForm)
	if s, ok := c.Get(digest); ok {
		return s
	}
	s := p.String()
	c.Set(digest, s)
	return s
}
