// Package packet assembles and takes apart whole DNS messages on top of
// the wire codec: the four-section message body, EDNS(0) OPT merging,
// RFC 2181 §9 truncation, and TSIG/SIG(0) transaction signing. It is the
// orchestration layer described in the teacher repo's rr-dns core, here
// generalized from a resolving/caching server's message type into a
// standalone codec library's Packet value.
package packet

import (
	"bytes"

	"github.com/haukened/wiredns/internal/dns/common/log"
	"github.com/haukened/wiredns/internal/dns/domain"
	"github.com/haukened/wiredns/internal/dns/wire"
)

// section identifies one of the four message sections a caller can push
// records into or pop them from.
type section int

const (
	sectionQuestion section = iota
	sectionAnswer
	sectionAuthority
	sectionAdditional
)

// aliasSection resolves the UPDATE-opcode section aliases (RFC 2136
// §3.2: zone/prerequisite/update/additional reuse the same four-section
// wire layout as query/answer/authority/additional) onto the canonical
// section a query message would use.
func aliasSection(key string) (section, bool) {
	switch key {
	case "question", "zone":
		return sectionQuestion, true
	case "answer", "pre", "prerequisite":
		return sectionAnswer, true
	case "authority", "upd", "update":
		return sectionAuthority, true
	case "additional", "add":
		return sectionAdditional, true
	default:
		return 0, false
	}
}

// Packet is a single-owner, non-concurrent-safe DNS message under
// construction or just decoded (spec.md §5). Nothing about Packet is
// shared across goroutines; a caller that fans work out across a message
// must copy or synchronize externally.
type Packet struct {
	Header     domain.Header
	Question   []domain.Question
	Answer     []domain.ResourceRecord
	Authority  []domain.ResourceRecord
	Additional []domain.ResourceRecord

	// edns caches the merged EDNS(0) view found in Additional, if any.
	// See edns.go.
	edns *domain.OPTRData

	// answersize records how large the decoded wire form was, for
	// diagnostics only.
	answersize int
}

// New returns an empty Packet with an auto-assigned transaction id (see
// nextID) and RD set, matching spec.md §4.5's new(): "rd=1" and a
// collision-resistant id scheme. A caller building a response instead of
// a query overwrites Header.ID and Header.RD from the request it answers.
func New() *Packet {
	p := &Packet{}
	p.Header.ID = nextID()
	p.Header.RD = true
	return p
}

// NewQuery builds a single-question query Packet with RD set, matching
// what a stub resolver would send.
func NewQuery(qname string, qtype domain.RRType, qclass domain.RRClass) (*Packet, error) {
	q, err := domain.NewQuestion(qname, qtype, qclass)
	if err != nil {
		return nil, err
	}
	p := New()
	p.Header.QDCount = 1
	p.Question = append(p.Question, q)
	return p, nil
}

// Decode parses buffer into a Packet. On a truncation or malformed-name
// error partway through a section, Decode still returns whatever it
// assembled so far alongside the error, so a caller can inspect a
// TC-flagged UDP response's partial answer section.
func Decode(buffer []byte, debug bool) (*Packet, error) {
	p := New()
	p.answersize = len(buffer)

	h, offset, err := wire.DecodeHeader(buffer, 0)
	if err != nil {
		return p, err
	}
	p.Header = h

	for i := 0; i < int(h.QDCount); i++ {
		q, next, err := wire.DecodeQuestion(buffer, offset)
		if err != nil {
			return p, err
		}
		p.Question = append(p.Question, q)
		offset = next
	}

	decodeSection := func(count int, dst *[]domain.ResourceRecord) error {
		for i := 0; i < count; i++ {
			rr, next, err := wire.DecodeRR(buffer, offset)
			if err != nil {
				return err
			}
			*dst = append(*dst, rr)
			offset = next
		}
		return nil
	}

	if err := decodeSection(int(h.ANCount), &p.Answer); err != nil {
		return p, err
	}
	if err := decodeSection(int(h.NSCount), &p.Authority); err != nil {
		return p, err
	}
	if err := decodeSection(int(h.ARCount), &p.Additional); err != nil {
		return p, err
	}

	if err := p.mergeEDNS(); err != nil {
		return p, err
	}

	if debug {
		log.Debug(map[string]any{
			"id":         p.Header.ID,
			"qdcount":    len(p.Question),
			"ancount":    len(p.Answer),
			"nscount":    len(p.Authority),
			"arcount":    len(p.Additional),
			"answersize": p.answersize,
		}, "decoded packet")
	}

	return p, nil
}

func (p *Packet) sectionSlice(s section) *[]domain.ResourceRecord {
	switch s {
	case sectionAnswer:
		return &p.Answer
	case sectionAuthority:
		return &p.Authority
	case sectionAdditional:
		return &p.Additional
	default:
		return nil
	}
}

// coerceUpdateClass implements RFC 2136 §2.4-2.5's class inheritance for
// prerequisite/update records: an RR pushed into the answer or authority
// section of an UPDATE message takes the zone's class (the first
// question's class) unless it already carries ANY or NONE, which are
// meaningful RFC 2136 wildcards in their own right (spec.md §3, §4.5,
// §8 "UPDATE class coercion").
func (p *Packet) coerceUpdateClass(sec section, rr *domain.ResourceRecord) {
	if p.Header.Opcode != domain.OpcodeUpdate || len(p.Question) == 0 {
		return
	}
	if sec != sectionAnswer && sec != sectionAuthority {
		return
	}
	if rr.Class == domain.RRClassANY || rr.Class == domain.RRClassNONE {
		return
	}
	rr.Class = p.Question[0].Class
}

// Push appends rrs to the named section, accepting the query-form,
// UPDATE-form, or "additional/add" aliases (spec.md §4.5). For an
// UPDATE-opcode message, a record pushed into the prerequisite/update
// aliases has its class coerced to the zone's class per
// coerceUpdateClass. Returns the section's new length.
func (p *Packet) Push(sectionKey string, rrs ...domain.ResourceRecord) (int, error) {
	sec, ok := aliasSection(sectionKey)
	if !ok {
		return 0, domain.ErrTruncatedSection
	}
	if sec == sectionQuestion {
		for _, rr := range rrs {
			p.Question = append(p.Question, domain.Question{Name: rr.Name, Type: rr.Type, Class: rr.Class})
		}
		return len(p.Question), nil
	}
	dst := p.sectionSlice(sec)
	for _, rr := range rrs {
		p.coerceUpdateClass(sec, &rr)
		*dst = append(*dst, rr)
	}
	p.syncCounts()
	return len(*dst), nil
}

// UniquePush behaves like Push but drops any rr whose ResourceRecord.Key
// already appears in the destination section, keeping the last write for
// a colliding key (spec.md §4.5 "unique_push": TTL updates replace
// in place rather than duplicating the RRset).
func (p *Packet) UniquePush(sectionKey string, rrs ...domain.ResourceRecord) (int, error) {
	sec, ok := aliasSection(sectionKey)
	if !ok || sec == sectionQuestion {
		return p.Push(sectionKey, rrs...)
	}
	dst := p.sectionSlice(sec)
	for _, rr := range rrs {
		p.coerceUpdateClass(sec, &rr)
		key := rr.Key()
		replaced := false
		for i, existing := range *dst {
			if existing.Key() == key {
				(*dst)[i] = rr
				replaced = true
				break
			}
		}
		if !replaced {
			*dst = append(*dst, rr)
		}
	}
	p.syncCounts()
	return len(*dst), nil
}

// Pop removes and returns the last record in the named section.
func (p *Packet) Pop(sectionKey string) (domain.ResourceRecord, bool) {
	sec, ok := aliasSection(sectionKey)
	if !ok || sec == sectionQuestion {
		return domain.ResourceRecord{}, false
	}
	dst := p.sectionSlice(sec)
	if len(*dst) == 0 {
		return domain.ResourceRecord{}, false
	}
	last := (*dst)[len(*dst)-1]
	*dst = (*dst)[:len(*dst)-1]
	p.syncCounts()
	return last, true
}

// syncCounts re-derives the header's section counts from actual slice
// lengths; they are the source of truth once a Packet is under
// construction (see Header's doc comment).
func (p *Packet) syncCounts() {
	p.Header.QDCount = uint16(len(p.Question))
	p.Header.ANCount = uint16(len(p.Answer))
	p.Header.NSCount = uint16(len(p.Authority))
	p.Header.ARCount = uint16(len(p.Additional))
}

// Encode serializes p to wire format using a fresh compression table
// scoped to this single call (spec.md §4.1, §5). Before serializing, it
// runs mergeEDNS: a single OPT record anywhere in the additional section
// is cached and moved to its head. Several OPT records are not merged
// into one: Encode returns domain.ErrTooManyOpt and encodes nothing, so
// a packet built by pushing OPT RRs directly never encodes more than one.
func (p *Packet) Encode() ([]byte, error) {
	if err := p.mergeEDNS(); err != nil {
		return nil, err
	}
	p.writeEDNSBack()
	p.syncCounts()
	buf := &bytes.Buffer{}
	table := wire.NewCompressionTable()

	wire.EncodeHeader(buf, p.Header)

	for _, q := range p.Question {
		if err := wire.EncodeQuestion(buf, q, table); err != nil {
			return nil, err
		}
	}
	for _, rr := range p.Answer {
		if err := wire.EncodeRR(buf, rr, table); err != nil {
			return nil, err
		}
	}
	for _, rr := range p.Authority {
		if err := wire.EncodeRR(buf, rr, table); err != nil {
			return nil, err
		}
	}
	for _, rr := range p.Additional {
		if err := wire.EncodeRR(buf, rr, table); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// Reply builds a response Packet addressed to p: same ID, opcode, RD,
// and CD, QR set, questions copied verbatim, default rcode FORMERR
// (callers are expected to overwrite it once they know the real
// outcome), and an EDNS OPT record attached to the reply's additional
// section if the request carried one. Reply refuses to answer a message
// that is already a response.
func (p *Packet) Reply(maxUDPSize uint16) (*Packet, error) {
	if p.Header.QR {
		return nil, domain.ErrErroneousQr
	}
	r := New()
	r.Header.ID = p.Header.ID
	r.Header.QR = true
	r.Header.Opcode = p.Header.Opcode
	r.Header.RD = p.Header.RD
	r.Header.CD = p.Header.CD
	r.Question = append(r.Question, p.Question...)

	if p.edns != nil {
		opt := domain.OPTRData{Version: 0}
		r.edns = &opt
		r.Additional = append(r.Additional, domain.ResourceRecord{
			Name:  domain.Root,
			Type:  domain.RRTypeOPT,
			Class: domain.RRClass(maxUDPSize),
			RData: domain.RData{Kind: domain.RDataOPT, OPT: opt},
		})
	}
	r.SetRcode(domain.RCodeFormErr)
	r.syncCounts()
	return r, nil
}

// defaultEDNSUDPSize is the advertised UDP payload size used when
// SetRcode has to attach a fresh OPT record for an extended rcode on a
// packet that did not already carry EDNS(0).
const defaultEDNSUDPSize = 1232

// SetRcode sets the header's response code (spec.md §4.4's "rcode(set)"),
// splitting any value above 15 into the header's low 4 bits and the
// EDNS(0) OPT record's extended-rcode byte per RFC 6891 §6.1.3. Setting
// an extended value attaches an OPT record to additional if the packet
// does not already carry one; setting a plain 4-bit value zeroes an
// existing OPT record's extended-rcode byte without removing it.
func (p *Packet) SetRcode(rc domain.RCode) {
	low, extended := domain.SplitExtendedRcode(rc)
	p.Header.Rcode = low
	if extended == 0 {
		if p.edns != nil {
			p.edns.ExtendedRcode = 0
			p.writeEDNSBack()
		}
		return
	}
	if p.edns == nil {
		opt := domain.OPTRData{Version: 0}
		p.edns = &opt
		p.Additional = append([]domain.ResourceRecord{{
			Name:  domain.Root,
			Type:  domain.RRTypeOPT,
			Class: domain.RRClass(defaultEDNSUDPSize),
			RData: domain.RData{Kind: domain.RDataOPT},
		}}, p.Additional...)
		p.syncCounts()
	}
	p.edns.ExtendedRcode = extended
	p.writeEDNSBack()
}
