package domain

// SIGRData is the SIG (type 24) RDATA, reused by SIG(0) transaction
// signatures (RFC 2931) from the RRSIG-style envelope defined by RFC 2535.
// For SIG(0), TypeCovered is 0 and Labels/OriginalTTL are unused.
type SIGRData struct {
	TypeCovered uint16
	Algorithm   uint8
	Labels      uint8
	OriginalTTL uint32
	Expiration  uint32
	Inception   uint32
	KeyTag      uint16
	SignerName  Name
	Signature   []byte
}
