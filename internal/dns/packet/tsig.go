package packet

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/wiredns/internal/dns/common/clock"
	"github.com/haukened/wiredns/internal/dns/domain"
	"github.com/haukened/wiredns/internal/dns/wire"
)

// signedMessage assembles the octet stream a TSIG MAC is computed over
// (RFC 2845 §3.4.1/§4.2): an optional prior-MAC prefix for a chained
// signature on a multi-message TCP exchange, followed by the packet's
// own wire image (with header ID substituted per §4.6 when verifying a
// reply signed under the original query's ID), followed by the TSIG
// variables that never actually go out as a separate RR field but still
// feed the MAC.
func signedMessage(msgWire []byte, priorMAC []byte, keyName domain.Name, algorithm string, timeSigned uint64, fudge uint16, tsigErr domain.RCode, otherData []byte) ([]byte, error) {
	buf := &bytes.Buffer{}

	if len(priorMAC) > 0 {
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(len(priorMAC)))
		buf.Write(tmp[:])
		buf.Write(priorMAC)
	}

	buf.Write(msgWire)

	if err := wire.EncodeNameNoCompression(buf, keyName); err != nil {
		return nil, err
	}
	var tmp2 [2]byte
	binary.BigEndian.PutUint16(tmp2[:], uint16(domain.RRClassANY))
	buf.Write(tmp2[:])
	var tmp4 [4]byte
	binary.BigEndian.PutUint32(tmp4[:], 0) // TTL is always 0 for TSIG
	buf.Write(tmp4[:])

	algName, err := domain.NewName(algorithm)
	if err != nil {
		return nil, err
	}
	if err := wire.EncodeNameNoCompression(buf, algName); err != nil {
		return nil, err
	}

	var tmp6 [6]byte
	tmp6[0] = byte(timeSigned >> 40)
	tmp6[1] = byte(timeSigned >> 32)
	tmp6[2] = byte(timeSigned >> 24)
	tmp6[3] = byte(timeSigned >> 16)
	tmp6[4] = byte(timeSigned >> 8)
	tmp6[5] = byte(timeSigned)
	buf.Write(tmp6[:])

	binary.BigEndian.PutUint16(tmp2[:], fudge)
	buf.Write(tmp2[:])
	binary.BigEndian.PutUint16(tmp2[:], uint16(tsigErr))
	buf.Write(tmp2[:])
	binary.BigEndian.PutUint16(tmp2[:], uint16(len(otherData)))
	buf.Write(tmp2[:])
	buf.Write(otherData)

	return buf.Bytes(), nil
}

// SignTSIG appends a TSIG record (RFC 2845 §2) to p's additional section
// and returns the MAC just computed, so a caller signing a chain of
// messages over one TCP connection can pass it back in as priorMAC on
// the next call (§4.4). The MAC covers p's wire form as it was before the
// TSIG record was added, with ARCount not counting it; ARCount is updated
// to include the new record only after it is appended.
func SignTSIG(p *Packet, signer Signer, clk clock.Clock, keyName string, algorithm string, key []byte, fudge uint16, priorMAC []byte) ([]byte, error) {
	name, err := domain.NewName(keyName)
	if err != nil {
		return nil, err
	}

	msgWire, err := p.Encode()
	if err != nil {
		return nil, err
	}

	timeSigned := uint64(clk.Now().Unix())
	toSign, err := signedMessage(msgWire, priorMAC, name, algorithm, timeSigned, fudge, domain.RCodeNoError, nil)
	if err != nil {
		return nil, err
	}

	mac, err := signer.Create(algorithm, key, toSign)
	if err != nil {
		return nil, err
	}

	p.Additional = append(p.Additional, domain.ResourceRecord{
		Name:  name,
		Type:  domain.RRTypeTSIG,
		Class: domain.RRClassANY,
		TTL:   0,
		RData: domain.RData{
			Kind: domain.RDataTSIG,
			TSIG: domain.TSIGRData{
				Algorithm:  algorithm,
				TimeSigned: timeSigned,
				Fudge:      fudge,
				MAC:        mac,
				OriginalID: p.Header.ID,
				Error:      domain.RCodeNoError,
			},
		},
	})
	p.syncCounts()
	return mac, nil
}

// VerifyTSIG checks the trailing TSIG record in p's additional section
// (RFC 2845 §4.6), which must be the last additional record. It returns
// the record's MAC (for chaining into the next VerifyTSIG call) and a
// non-nil error identifying which TSIG error occurred: ErrSigNotPresent,
// ErrBadTsigTime, or the Signer's own ErrBadTsigSig.
func VerifyTSIG(p *Packet, signer Signer, clk clock.Clock, key []byte, priorMAC []byte) ([]byte, error) {
	if len(p.Additional) == 0 || p.Additional[len(p.Additional)-1].Type != domain.RRTypeTSIG {
		return nil, domain.ErrSigNotPresent
	}
	tsigRR := p.Additional[len(p.Additional)-1]
	t := tsigRR.RData.TSIG

	withoutTSIG := *p
	withoutTSIG.Additional = p.Additional[:len(p.Additional)-1]
	withoutTSIG.Header.ID = t.OriginalID
	withoutTSIG.syncCounts()
	msgWire, err := withoutTSIG.Encode()
	if err != nil {
		return t.MAC, err
	}

	toVerify, err := signedMessage(msgWire, priorMAC, tsigRR.Name, t.Algorithm, t.TimeSigned, t.Fudge, domain.RCodeNoError, nil)
	if err != nil {
		return t.MAC, err
	}

	if err := signer.Verify(t.Algorithm, key, toVerify, t.MAC); err != nil {
		return t.MAC, err
	}

	now := uint64(clk.Now().Unix())
	var skew uint64
	if now > t.TimeSigned {
		skew = now - t.TimeSigned
	} else {
		skew = t.TimeSigned - now
	}
	if skew > uint64(t.Fudge) {
		return t.MAC, domain.ErrBadTsigTime
	}

	return t.MAC, nil
}
