package domain

// TSIGRData is RFC 2845's transaction signature RDATA. The owning
// ResourceRecord's Name carries the key name, Class is ANY, and TTL is
// always zero (TSIG records are never cached).
type TSIGRData struct {
	Algorithm  string // presentation-form algorithm name, e.g. "hmac-sha256."
	TimeSigned uint64 // 48-bit seconds since the Unix epoch
	Fudge      uint16 // seconds of allowed clock skew
	MAC        []byte
	OriginalID uint16
	Error      RCode  // TSIG error extended rcode: BADSIG/BADKEY/BADTIME/BADTRUNC
	OtherData  []byte // present only when Error == RCodeBadTime (server's time)
}
