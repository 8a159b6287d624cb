package domain

import "encoding/hex"

// RDataKind tags which typed variant a ResourceRecord's RDATA carries.
// Any rrtype this core does not model structurally uses RDataOpaque.
type RDataKind uint8

const (
	RDataOpaque RDataKind = iota
	RDataPTR
	RDataOPT
	RDataTSIG
	RDataSIG
)

// RData is a resource record's payload. Exactly one field is meaningful,
// selected by Kind.
type RData struct {
	Kind RDataKind

	Opaque []byte // raw RDATA octets, for any type not modeled below

	PTR Name

	OPT OPTRData

	TSIG TSIGRData

	SIG SIGRData
}

// OpaqueRData wraps raw bytes as an untyped RDATA payload.
func OpaqueRData(b []byte) RData {
	return RData{Kind: RDataOpaque, Opaque: b}
}

// PTRRData wraps a Name as PTR RDATA.
func PTRRData(n Name) RData {
	return RData{Kind: RDataPTR, PTR: n}
}

// canonicalKey renders RDATA content (never TTL) into a string suitable
// for ResourceRecord.Key's dedup comparison.
func (d RData) canonicalKey() string {
	switch d.Kind {
	case RDataPTR:
		return "ptr:" + d.PTR.Canonical()
	case RDataOPT:
		return "opt"
	case RDataTSIG:
		return "tsig:" + d.TSIG.Algorithm + ":" + hex.EncodeToString(d.TSIG.MAC)
	case RDataSIG:
		return "sig:" + hex.EncodeToString(d.SIG.Signature)
	default:
		return "opaque:" + hex.EncodeToString(d.Opaque)
	}
}

// ResourceRecord is the generic RR envelope shared by every section
// (spec.md §3): an owner name, type, class, TTL, and RDATA.
type ResourceRecord struct {
	Name  Name
	Type  RRType
	Class RRClass
	TTL   uint32
	RData RData
}

// Key returns the canonical dedup key used by Packet.UniquePush: owner
// lowercased, type, class, and canonical RDATA, with TTL deliberately
// excluded so that a re-TTLed record collides with its predecessor
// (spec.md §4.5 "unique_push").
func (rr ResourceRecord) Key() string {
	return rr.Name.Canonical() + "|" + rr.Type.String() + "|" + rr.Class.String() + "|" + rr.RData.canonicalKey()
}

// RRSetKey groups records into an RRset per RFC 2181: same owner, type,
// and class.
func (rr ResourceRecord) RRSetKey() string {
	return rr.Name.Canonical() + "|" + rr.Type.String() + "|" + rr.Class.String()
}
