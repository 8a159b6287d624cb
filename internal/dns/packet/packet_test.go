package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/wiredns/internal/dns/domain"
)

func TestNewQuery_EncodesStandardQueryFlags(t *testing.T) {
	q, err := NewQuery("www.example.com.", domain.RRTypeA, domain.RRClassIN)
	require.NoError(t, err)
	q.Header.ID = 0x1234

	wireBytes, err := q.Encode()
	require.NoError(t, err)

	// Flags octet-pair: RD set, everything else zero -> 0x0100.
	flags := uint16(wireBytes[2])<<8 | uint16(wireBytes[3])
	assert.Equal(t, uint16(0x0100), flags)
	assert.Equal(t, uint16(0x1234), uint16(wireBytes[0])<<8|uint16(wireBytes[1]))
}

func TestDecode_RoundTripsEncodedQuery(t *testing.T) {
	q, err := NewQuery("www.example.com.", domain.RRTypeA, domain.RRClassIN)
	require.NoError(t, err)
	wireBytes, err := q.Encode()
	require.NoError(t, err)

	got, err := Decode(wireBytes, false)
	require.NoError(t, err)
	require.Len(t, got.Question, 1)
	assert.True(t, got.Question[0].Name.EqualFold(domain.MustName("www.example.com.")))
	assert.True(t, got.Header.RD)
}

func TestDecode_PTRQueryAnswerRoundTrip(t *testing.T) {
	p := New()
	p.Header.QR = true
	p.Question = []domain.Question{{Name: domain.MustName("1.0.0.127.in-addr.arpa."), Type: domain.RRTypePTR, Class: domain.RRClassIN}}
	_, err := p.Push("answer", domain.ResourceRecord{
		Name:  domain.MustName("1.0.0.127.in-addr.arpa."),
		Type:  domain.RRTypePTR,
		Class: domain.RRClassIN,
		TTL:   3600,
		RData: domain.PTRRData(domain.MustName("localhost.")),
	})
	require.NoError(t, err)

	wireBytes, err := p.Encode()
	require.NoError(t, err)

	got, err := Decode(wireBytes, false)
	require.NoError(t, err)
	require.Len(t, got.Answer, 1)
	assert.True(t, got.Answer[0].RData.PTR.EqualFold(domain.MustName("localhost.")))
}

func TestDecode_PointerCycleReturnsBoundedError(t *testing.T) {
	// A header claiming one question, whose name is a self-referential
	// compression pointer immediately after the header.
	buf := make([]byte, 14)
	buf[4] = 0 // QDCOUNT high
	buf[5] = 1 // QDCOUNT low
	buf[12] = 0xC0
	buf[13] = 0x0C // points at itself (offset 12)

	_, err := Decode(buf, false)
	assert.ErrorIs(t, err, domain.ErrUnboundedNameExpansion)
}

func TestPush_AliasesUpdateSections(t *testing.T) {
	p := New()
	rr := domain.ResourceRecord{Name: domain.MustName("www.example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN, RData: domain.OpaqueRData([]byte{1, 2, 3, 4})}

	n, err := p.Push("upd", rr)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, p.Authority, 1)

	n, err = p.Push("pre", rr)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, p.Answer, 1)

	n, err = p.Push("add", rr)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, p.Additional, 1)
}

func TestPush_UpdateCoercesRRClassToZoneClass(t *testing.T) {
	p := New()
	p.Header.Opcode = domain.OpcodeUpdate
	p.Question = []domain.Question{{Name: domain.MustName("example.com."), Type: domain.RRTypeSOA, Class: domain.RRClassCH}}

	rr := domain.ResourceRecord{Name: domain.MustName("www.example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN, RData: domain.OpaqueRData([]byte{1, 2, 3, 4})}
	_, err := p.Push("update", rr)
	require.NoError(t, err)
	require.Len(t, p.Authority, 1)
	assert.Equal(t, domain.RRClassCH, p.Authority[0].Class)

	rrDelete := rr
	rrDelete.Class = domain.RRClassANY
	_, err = p.Push("pre", rrDelete)
	require.NoError(t, err)
	require.Len(t, p.Answer, 1)
	assert.Equal(t, domain.RRClassANY, p.Answer[0].Class, "ANY delete wildcard must survive zone-class coercion")

	rrNone := rr
	rrNone.Class = domain.RRClassNONE
	_, err = p.Push("update", rrNone)
	require.NoError(t, err)
	require.Len(t, p.Authority, 2)
	assert.Equal(t, domain.RRClassNONE, p.Authority[1].Class, "NONE deletion wildcard must survive zone-class coercion")
}

func TestPush_NonUpdateOpcodeLeavesClassUntouched(t *testing.T) {
	p := New()
	p.Question = []domain.Question{{Name: domain.MustName("example.com."), Type: domain.RRTypeA, Class: domain.RRClassCH}}
	rr := domain.ResourceRecord{Name: domain.MustName("www.example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN, RData: domain.OpaqueRData([]byte{1, 2, 3, 4})}

	_, err := p.Push("answer", rr)
	require.NoError(t, err)
	assert.Equal(t, domain.RRClassIN, p.Answer[0].Class)
}

func TestEncode_RejectsScatteredOPTRecords(t *testing.T) {
	p := New()
	p.Question = []domain.Question{{Name: domain.MustName("example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN}}
	_, err := p.Push("additional", domain.ResourceRecord{
		Name: domain.Root, Type: domain.RRTypeOPT, Class: domain.RRClass(1232),
		RData: domain.RData{Kind: domain.RDataOPT, OPT: domain.OPTRData{Version: 0}},
	})
	require.NoError(t, err)
	_, err = p.Push("additional", domain.ResourceRecord{
		Name: domain.Root, Type: domain.RRTypeOPT, Class: domain.RRClass(1232),
		RData: domain.RData{Kind: domain.RDataOPT, OPT: domain.OPTRData{Version: 0}},
	})
	require.NoError(t, err)

	_, err = p.Encode()
	assert.ErrorIs(t, err, domain.ErrTooManyOpt)
}

func TestEncode_MovesSingleOPTRecordToHeadOfAdditional(t *testing.T) {
	p := New()
	p.Question = []domain.Question{{Name: domain.MustName("example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN}}
	glue := domain.ResourceRecord{Name: domain.MustName("ns1.example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN, RData: domain.OpaqueRData([]byte{1, 1, 1, 1})}
	opt := domain.ResourceRecord{
		Name: domain.Root, Type: domain.RRTypeOPT, Class: domain.RRClass(1232),
		RData: domain.RData{Kind: domain.RDataOPT, OPT: domain.OPTRData{Version: 0}},
	}
	_, err := p.Push("additional", glue, opt)
	require.NoError(t, err)
	require.Equal(t, domain.RRTypeOPT, p.Additional[1].Type, "OPT pushed after glue starts out second")

	_, err = p.Encode()
	require.NoError(t, err)
	assert.Equal(t, domain.RRTypeOPT, p.Additional[0].Type, "Encode must move the merged OPT record to the head of additional")
	edns, ok := p.EDNS()
	require.True(t, ok)
	assert.Equal(t, uint8(0), edns.Version)
}

func TestUniquePush_LastWriteWinsOnKeyCollision(t *testing.T) {
	p := New()
	rr := domain.ResourceRecord{Name: domain.MustName("www.example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 300, RData: domain.OpaqueRData([]byte{1, 2, 3, 4})}
	rrUpdatedTTL := rr
	rrUpdatedTTL.TTL = 60

	_, err := p.UniquePush("answer", rr)
	require.NoError(t, err)
	_, err = p.UniquePush("answer", rrUpdatedTTL)
	require.NoError(t, err)

	require.Len(t, p.Answer, 1)
	assert.Equal(t, uint32(60), p.Answer[0].TTL)
}

func TestPop_RemovesLastRecord(t *testing.T) {
	p := New()
	rrA := domain.ResourceRecord{Name: domain.MustName("a.example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN, RData: domain.OpaqueRData([]byte{1, 1, 1, 1})}
	rrB := domain.ResourceRecord{Name: domain.MustName("b.example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN, RData: domain.OpaqueRData([]byte{2, 2, 2, 2})}
	_, _ = p.Push("answer", rrA, rrB)

	popped, ok := p.Pop("answer")
	require.True(t, ok)
	assert.True(t, popped.Name.EqualFold(rrB.Name))
	assert.Len(t, p.Answer, 1)
}

func TestReply_RejectsAlreadyAnsweredMessage(t *testing.T) {
	p := New()
	p.Header.QR = true
	_, err := p.Reply(1232)
	assert.ErrorIs(t, err, domain.ErrErroneousQr)
}

func TestReply_CopiesQuestionAndSetsQR(t *testing.T) {
	q, err := NewQuery("example.com.", domain.RRTypeA, domain.RRClassIN)
	require.NoError(t, err)
	q.Header.ID = 42

	r, err := q.Reply(1232)
	require.NoError(t, err)
	assert.True(t, r.Header.QR)
	assert.Equal(t, uint16(42), r.Header.ID)
	require.Len(t, r.Question, 1)
	assert.True(t, r.Question[0].Name.EqualFold(domain.MustName("example.com.")))
}

func TestNew_AssignsAutoIDAndSetsRD(t *testing.T) {
	a := New()
	b := New()
	assert.NotZero(t, a.Header.ID)
	assert.NotEqual(t, a.Header.ID, b.Header.ID)
	assert.True(t, a.Header.RD)
}

func TestSetRcode_LowValueOnlySetsHeaderBits(t *testing.T) {
	p := New()
	p.SetRcode(domain.RCodeNXDomain)
	assert.Equal(t, domain.RCodeNXDomain, p.Header.Rcode)
	_, ok := p.EDNS()
	assert.False(t, ok, "a plain 4-bit rcode must not attach an OPT record")
}

func TestSetRcode_ExtendedValueAttachesOPTAndSurvivesEncode(t *testing.T) {
	q, err := NewQuery("example.com.", domain.RRTypeA, domain.RRClassIN)
	require.NoError(t, err)
	q.SetRcode(domain.RCodeBadVers)

	edns, ok := q.EDNS()
	require.True(t, ok, "an rcode above 15 must attach an OPT record")
	assert.Equal(t, uint8(1), edns.ExtendedRcode)

	wireBytes, err := q.Encode()
	require.NoError(t, err)

	got, err := Decode(wireBytes, false)
	require.NoError(t, err)
	gotEDNS, ok := got.EDNS()
	require.True(t, ok)
	assert.Equal(t, uint8(1), gotEDNS.ExtendedRcode)
	fullRcode := got.Header.ExtendedRcode(true, gotEDNS.ExtendedRcode)
	assert.Equal(t, domain.RCodeBadVers, fullRcode)
}

func TestSetRcode_ClearingExtendedValueZeroesOPTByte(t *testing.T) {
	p := New()
	p.SetRcode(domain.RCodeBadVers)
	require.NotZero(t, p.edns.ExtendedRcode)

	p.SetRcode(domain.RCodeNoError)
	assert.Equal(t, domain.RCodeNoError, p.Header.Rcode)
	edns, ok := p.EDNS()
	require.True(t, ok, "clearing the extended rcode must not remove an existing OPT record")
	assert.Equal(t, uint8(0), edns.ExtendedRcode)
}
