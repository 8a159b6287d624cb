package domain

import "fmt"

// RCode represents a DNS response code. It is 12 bits wide to hold the
// EDNS(0) extended RCODE (RFC 6891 §6.1.3); the base header field only
// ever carries the low 4 bits.
type RCode uint16

// DNS response codes, including the TSIG-specific extended codes
// (RFC 2845 §4.1) which live in the same extended-RCODE space.
const (
	RCodeNoError  RCode = 0
	RCodeFormErr  RCode = 1
	RCodeServFail RCode = 2
	RCodeNXDomain RCode = 3
	RCodeNotImp   RCode = 4
	RCodeRefused  RCode = 5
	RCodeYXDomain RCode = 6
	RCodeYXRRSet  RCode = 7
	RCodeNXRRSet  RCode = 8
	RCodeNotAuth  RCode = 9
	RCodeNotZone  RCode = 10
	RCodeBadVers  RCode = 16 // also BADSIG in the TSIG error field
	RCodeBadKey   RCode = 17
	RCodeBadTime  RCode = 18
	RCodeBadTrunc RCode = 22
)

// IsValid returns true if the RCode fits the 12-bit extended-RCODE space.
func (r RCode) IsValid() bool {
	return r <= 0xFFF
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	case RCodeYXDomain:
		return "YXDOMAIN"
	case RCodeYXRRSet:
		return "YXRRSET"
	case RCodeNXRRSet:
		return "NXRRSET"
	case RCodeNotAuth:
		return "NOTAUTH"
	case RCodeNotZone:
		return "NOTZONE"
	case RCodeBadVers: // == RCodeBadSig
		return "BADVERS-OR-BADSIG"
	case RCodeBadKey:
		return "BADKEY"
	case RCodeBadTime:
		return "BADTIME"
	case RCodeBadTrunc:
		return "BADTRUNC"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(r))
	}
}

// ParseRCode converts a string name to an RCode value.
func ParseRCode(s string) RCode {
	switch s {
	case "NOERROR":
		return RCodeNoError
	case "FORMERR":
		return RCodeFormErr
	case "SERVFAIL":
		return RCodeServFail
	case "NXDOMAIN":
		return RCodeNXDomain
	case "NOTIMP":
		return RCodeNotImp
	case "REFUSED":
		return RCodeRefused
	case "YXDOMAIN":
		return RCodeYXDomain
	case "YXRRSET":
		return RCodeYXRRSet
	case "NXRRSET":
		return RCodeNXRRSet
	case "NOTAUTH":
		return RCodeNotAuth
	case "NOTZONE":
		return RCodeNotZone
	case "BADKEY":
		return RCodeBadKey
	case "BADTIME":
		return RCodeBadTime
	case "BADTRUNC":
		return RCodeBadTrunc
	default:
		return RCodeNoError
	}
}
