package packet

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/wiredns/internal/dns/common/clock"
	"github.com/haukened/wiredns/internal/dns/domain"
	"github.com/haukened/wiredns/internal/dns/wire"
)

// sig0Preimage builds the octet stream a SIG(0) signature is computed
// over (RFC 2931 §3.1): the packet's own wire image, followed by the SIG
// RDATA fields that precede the signature itself (everything but
// Signature), with SignerName written uncompressed.
func sig0Preimage(msgWire []byte, sig domain.SIGRData) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write(msgWire)

	var tmp2 [2]byte
	binary.BigEndian.PutUint16(tmp2[:], sig.TypeCovered)
	buf.Write(tmp2[:])
	buf.WriteByte(sig.Algorithm)
	buf.WriteByte(sig.Labels)

	var tmp4 [4]byte
	binary.BigEndian.PutUint32(tmp4[:], sig.OriginalTTL)
	buf.Write(tmp4[:])
	binary.BigEndian.PutUint32(tmp4[:], sig.Expiration)
	buf.Write(tmp4[:])
	binary.BigEndian.PutUint32(tmp4[:], sig.Inception)
	buf.Write(tmp4[:])

	binary.BigEndian.PutUint16(tmp2[:], sig.KeyTag)
	buf.Write(tmp2[:])

	if err := wire.EncodeNameNoCompression(buf, sig.SignerName); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SignSIG0 appends a SIG(0) record (RFC 2931 §3) to p's additional
// section, signing over the packet's current wire form under the given
// key. algorithm is the SIG RDATA algorithm octet stored in the new
// record; the Signer is called with the name algorithmName maps it to,
// which is "hmac-sha256." for every octet.
func SignSIG0(p *Packet, signer Signer, clk clock.Clock, signerName string, algorithm uint8, keyTag uint16, key []byte, ttl uint32) (*domain.ResourceRecord, error) {
	name, err := domain.NewName(signerName)
	if err != nil {
		return nil, err
	}

	msgWire, err := p.Encode()
	if err != nil {
		return nil, err
	}

	now := uint32(clk.Now().Unix())
	sig := domain.SIGRData{
		TypeCovered: 0, // SIG(0) covers the whole message, not one RRset
		Algorithm:   algorithm,
		Labels:      0,
		OriginalTTL: ttl,
		Expiration:  now + 300,
		Inception:   now - 300,
		KeyTag:      keyTag,
		SignerName:  name,
	}

	preimage, err := sig0Preimage(msgWire, sig)
	if err != nil {
		return nil, err
	}
	mac, err := signer.Create(algorithmName(algorithm), key, preimage)
	if err != nil {
		return nil, err
	}
	sig.Signature = mac

	rr := domain.ResourceRecord{
		Name:  domain.Root,
		Type:  domain.RRTypeSIG,
		Class: domain.RRClassANY,
		TTL:   0,
		RData: domain.RData{Kind: domain.RDataSIG, SIG: sig},
	}
	p.Additional = append(p.Additional, rr)
	p.syncCounts()
	return &rr, nil
}

// VerifySIG0 checks the trailing SIG record in p's additional section
// against key, returning ErrSigNotPresent if none is present or
// ErrBadTsigTime if the current time falls outside [Inception,
// Expiration].
func VerifySIG0(p *Packet, signer Signer, clk clock.Clock, key []byte) error {
	if len(p.Additional) == 0 || p.Additional[len(p.Additional)-1].Type != domain.RRTypeSIG {
		return domain.ErrSigNotPresent
	}
	sigRR := p.Additional[len(p.Additional)-1]
	sig := sigRR.RData.SIG

	withoutSIG := *p
	withoutSIG.Additional = p.Additional[:len(p.Additional)-1]
	withoutSIG.syncCounts()
	msgWire, err := withoutSIG.Encode()
	if err != nil {
		return err
	}

	preimage, err := sig0Preimage(msgWire, domain.SIGRData{
		TypeCovered: sig.TypeCovered,
		Algorithm:   sig.Algorithm,
		Labels:      sig.Labels,
		OriginalTTL: sig.OriginalTTL,
		Expiration:  sig.Expiration,
		Inception:   sig.Inception,
		KeyTag:      sig.KeyTag,
		SignerName:  sig.SignerName,
	})
	if err != nil {
		return err
	}

	now := uint32(clk.Now().Unix())
	if now < sig.Inception || now > sig.Expiration {
		return domain.ErrBadTsigTime
	}

	return signer.Verify(algorithmName(sig.Algorithm), key, preimage, sig.Signature)
}

// algorithmName maps a SIG RDATA algorithm octet (RFC 2535 §3.2's
// registry) to the presentation-form algorithm name HMACSigner expects.
// HMACSigner is the only built-in Signer, so every algorithm octet maps
// to the one family it supports. SignSIG0 and VerifySIG0 always pass this
// name to their Signer, so a custom Signer also receives "hmac-sha256."
// whatever octet the SIG record carries.
func algorithmName(alg uint8) string {
	return "hmac-sha256."
}
