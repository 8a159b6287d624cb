package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/wiredns/internal/dns/domain"
)

// EncodeRData writes rr's RDATA (without the RDLENGTH prefix) into buf,
// compressing any names it contains when rr.Type is eligible
// (spec.md §4.2). Unknown/opaque RDATA is copied verbatim.
func EncodeRData(buf *bytes.Buffer, rr domain.ResourceRecord, table CompressionTable) error {
	switch rr.RData.Kind {
	case domain.RDataPTR:
		if rr.Type.IsCompressible() {
			return EncodeName(buf, rr.RData.PTR, table)
		}
		return encodeNameNoCompression(buf, rr.RData.PTR)

	case domain.RDataOPT:
		return encodeOPTOptions(buf, rr.RData.OPT.Options)

	case domain.RDataTSIG:
		return encodeTSIGRData(buf, rr.RData.TSIG)

	case domain.RDataSIG:
		return encodeSIGRData(buf, rr.RData.SIG)

	default:
		buf.Write(rr.RData.Opaque)
		return nil
	}
}

// DecodeRData decodes RDLENGTH octets of RDATA starting at rdataStart
// within the full message buffer fullBuf, dispatching on rrtype.
// fullBuf (not just the RDATA slice) is required because compressible
// types' RDATA may contain pointers into the whole message.
func DecodeRData(fullBuf []byte, rdataStart, rdlen int, rrtype domain.RRType) (domain.RData, error) {
	if rdataStart+rdlen > len(fullBuf) {
		return domain.RData{}, domain.ErrTruncatedRData
	}
	data := fullBuf[rdataStart : rdataStart+rdlen]

	switch rrtype {
	case domain.RRTypePTR:
		if rdlen == 0 {
			return domain.RData{}, domain.ErrTruncatedRData
		}
		name, _, err := DecodeName(fullBuf, rdataStart)
		if err != nil {
			return domain.RData{}, err
		}
		return domain.PTRRData(name), nil

	case domain.RRTypeOPT:
		opts, err := decodeOPTOptions(data)
		if err != nil {
			return domain.RData{}, err
		}
		return domain.RData{Kind: domain.RDataOPT, OPT: domain.OPTRData{Options: opts}}, nil

	case domain.RRTypeTSIG:
		tsig, err := decodeTSIGRData(data)
		if err != nil {
			return domain.RData{}, err
		}
		return domain.RData{Kind: domain.RDataTSIG, TSIG: tsig}, nil

	case domain.RRTypeSIG:
		sig, err := decodeSIGRData(data)
		if err != nil {
			return domain.RData{}, err
		}
		return domain.RData{Kind: domain.RDataSIG, SIG: sig}, nil

	default:
		cp := make([]byte, len(data))
		copy(cp, data)
		return domain.OpaqueRData(cp), nil
	}
}

// EncodeNameNoCompression writes name as a self-contained, uncompressed
// label sequence. Exported for callers assembling TSIG/SIG(0) signing
// input outside a single RR's RDATA (spec.md §4.7).
func EncodeNameNoCompression(buf *bytes.Buffer, name domain.Name) error {
	return encodeNameNoCompression(buf, name)
}

// encodeNameNoCompression writes name as a self-contained label sequence,
// never emitting or consulting a compression pointer. Used for names
// (TSIG algorithm, SIG signer) that RFC 2845/2931 require in canonical,
// uncompressed form.
func encodeNameNoCompression(buf *bytes.Buffer, name domain.Name) error {
	for _, label := range name.Labels {
		if len(label) > domain.MaxLabelLength {
			return domain.ErrLabelTooLong
		}
		buf.WriteByte(byte(len(label)))
		buf.Write(label)
	}
	buf.WriteByte(0)
	return nil
}

// decodeNameNoCompression decodes a self-contained label sequence from
// data, rejecting pointers as malformed (RFC 2845 names must not compress).
func decodeNameNoCompression(data []byte, offset int) (domain.Name, int, error) {
	var labels [][]byte
	for {
		if offset >= len(data) {
			return domain.Name{}, 0, domain.ErrTruncatedName
		}
		length := int(data[offset])
		if length&0xC0 != 0 {
			return domain.Name{}, 0, domain.ErrMalformedName
		}
		offset++
		if length == 0 {
			return domain.Name{Labels: labels}, offset, nil
		}
		if offset+length > len(data) {
			return domain.Name{}, 0, domain.ErrTruncatedName
		}
		labels = append(labels, data[offset:offset+length])
		offset += length
	}
}

func encodeOPTOptions(buf *bytes.Buffer, opts []domain.OPTOption) error {
	var tmp [2]byte
	for _, o := range opts {
		binary.BigEndian.PutUint16(tmp[:], o.Code)
		buf.Write(tmp[:])
		binary.BigEndian.PutUint16(tmp[:], uint16(len(o.Data)))
		buf.Write(tmp[:])
		buf.Write(o.Data)
	}
	return nil
}

func decodeOPTOptions(data []byte) ([]domain.OPTOption, error) {
	var opts []domain.OPTOption
	offset := 0
	for offset < len(data) {
		if offset+4 > len(data) {
			return nil, domain.ErrTruncatedRData
		}
		code := binary.BigEndian.Uint16(data[offset : offset+2])
		optLen := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
		offset += 4
		if offset+optLen > len(data) {
			return nil, domain.ErrTruncatedRData
		}
		optData := make([]byte, optLen)
		copy(optData, data[offset:offset+optLen])
		opts = append(opts, domain.OPTOption{Code: code, Data: optData})
		offset += optLen
	}
	return opts, nil
}

func encodeTSIGRData(buf *bytes.Buffer, t domain.TSIGRData) error {
	alg, err := domain.NewName(t.Algorithm)
	if err != nil {
		return err
	}
	if err := encodeNameNoCompression(buf, alg); err != nil {
		return err
	}
	var tmp6 [6]byte
	tmp6[0] = byte(t.TimeSigned >> 40)
	tmp6[1] = byte(t.TimeSigned >> 32)
	tmp6[2] = byte(t.TimeSigned >> 24)
	tmp6[3] = byte(t.TimeSigned >> 16)
	tmp6[4] = byte(t.TimeSigned >> 8)
	tmp6[5] = byte(t.TimeSigned)
	buf.Write(tmp6[:])

	var tmp2 [2]byte
	binary.BigEndian.PutUint16(tmp2[:], t.Fudge)
	buf.Write(tmp2[:])
	binary.BigEndian.PutUint16(tmp2[:], uint16(len(t.MAC)))
	buf.Write(tmp2[:])
	buf.Write(t.MAC)
	binary.BigEndian.PutUint16(tmp2[:], t.OriginalID)
	buf.Write(tmp2[:])
	binary.BigEndian.PutUint16(tmp2[:], uint16(t.Error))
	buf.Write(tmp2[:])
	binary.BigEndian.PutUint16(tmp2[:], uint16(len(t.OtherData)))
	buf.Write(tmp2[:])
	buf.Write(t.OtherData)
	return nil
}

func decodeTSIGRData(data []byte) (domain.TSIGRData, error) {
	alg, offset, err := decodeNameNoCompression(data, 0)
	if err != nil {
		return domain.TSIGRData{}, err
	}
	if offset+10 > len(data) {
		return domain.TSIGRData{}, domain.ErrTruncatedRData
	}
	timeSigned := uint64(data[offset])<<40 | uint64(data[offset+1])<<32 |
		uint64(data[offset+2])<<24 | uint64(data[offset+3])<<16 |
		uint64(data[offset+4])<<8 | uint64(data[offset+5])
	offset += 6
	fudge := binary.BigEndian.Uint16(data[offset : offset+2])
	offset += 2
	macSize := int(binary.BigEndian.Uint16(data[offset : offset+2]))
	offset += 2
	if offset+macSize > len(data) {
		return domain.TSIGRData{}, domain.ErrTruncatedRData
	}
	mac := make([]byte, macSize)
	copy(mac, data[offset:offset+macSize])
	offset += macSize

	if offset+6 > len(data) {
		return domain.TSIGRData{}, domain.ErrTruncatedRData
	}
	originalID := binary.BigEndian.Uint16(data[offset : offset+2])
	offset += 2
	tsigErr := domain.RCode(binary.BigEndian.Uint16(data[offset : offset+2]))
	offset += 2
	otherLen := int(binary.BigEndian.Uint16(data[offset : offset+2]))
	offset += 2
	if offset+otherLen > len(data) {
		return domain.TSIGRData{}, domain.ErrTruncatedRData
	}
	other := make([]byte, otherLen)
	copy(other, data[offset:offset+otherLen])

	return domain.TSIGRData{
		Algorithm:  alg.String(),
		TimeSigned: timeSigned,
		Fudge:      fudge,
		MAC:        mac,
		OriginalID: originalID,
		Error:      tsigErr,
		OtherData:  other,
	}, nil
}

func encodeSIGRData(buf *bytes.Buffer, s domain.SIGRData) error {
	var tmp2 [2]byte
	binary.BigEndian.PutUint16(tmp2[:], s.TypeCovered)
	buf.Write(tmp2[:])
	buf.WriteByte(s.Algorithm)
	buf.WriteByte(s.Labels)
	var tmp4 [4]byte
	binary.BigEndian.PutUint32(tmp4[:], s.OriginalTTL)
	buf.Write(tmp4[:])
	binary.BigEndian.PutUint32(tmp4[:], s.Expiration)
	buf.Write(tmp4[:])
	binary.BigEndian.PutUint32(tmp4[:], s.Inception)
	buf.Write(tmp4[:])
	binary.BigEndian.PutUint16(tmp2[:], s.KeyTag)
	buf.Write(tmp2[:])
	if err := encodeNameNoCompression(buf, s.SignerName); err != nil {
		return err
	}
	buf.Write(s.Signature)
	return nil
}

func decodeSIGRData(data []byte) (domain.SIGRData, error) {
	if len(data) < 18 {
		return domain.SIGRData{}, domain.ErrTruncatedRData
	}
	s := domain.SIGRData{
		TypeCovered: binary.BigEndian.Uint16(data[0:2]),
		Algorithm:   data[2],
		Labels:      data[3],
		OriginalTTL: binary.BigEndian.Uint32(data[4:8]),
		Expiration:  binary.BigEndian.Uint32(data[8:12]),
		Inception:   binary.BigEndian.Uint32(data[12:16]),
		KeyTag:      binary.BigEndian.Uint16(data[16:18]),
	}
	name, offset, err := decodeNameNoCompression(data, 18)
	if err != nil {
		return domain.SIGRData{}, err
	}
	s.SignerName = name
	sig := make([]byte, len(data)-offset)
	copy(sig, data[offset:])
	s.Signature = sig
	return s, nil
}
