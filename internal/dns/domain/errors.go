package domain

import "errors"

// Decode/verify error taxonomy for the wire codec and TSIG/SIG0 hooks.
// Decode errors never panic: a decoder returns whatever it parsed so far
// alongside one of these, wrapped with context via fmt.Errorf("...: %w").
var (
	// ErrTruncatedHeader means the buffer ended before a full 12-octet header.
	ErrTruncatedHeader = errors.New("dns: truncated header")

	// ErrTruncatedName means a label or pointer ran past the buffer end.
	ErrTruncatedName = errors.New("dns: truncated name")

	// ErrTruncatedRData means RDLENGTH extends past the buffer end.
	ErrTruncatedRData = errors.New("dns: truncated rdata")

	// ErrTruncatedSection means a question or RR count exceeds what the
	// buffer actually contains. Packet.Push also returns it for a section
	// key it does not recognize.
	ErrTruncatedSection = errors.New("dns: truncated section")

	// ErrMalformedName means a label length octet used a reserved top-bit
	// pattern (01 or 10).
	ErrMalformedName = errors.New("dns: malformed name: reserved label length bits")

	// ErrUnboundedNameExpansion means a compression pointer chain revisited
	// an offset already seen while expanding the same name.
	ErrUnboundedNameExpansion = errors.New("dns: compression pointer cycle detected")

	// ErrNameTooLong means the expanded name exceeds 255 encoded octets.
	ErrNameTooLong = errors.New("dns: name exceeds 255 octets")

	// ErrLabelTooLong means a single label exceeds 63 octets.
	ErrLabelTooLong = errors.New("dns: label exceeds 63 octets")

	// ErrBadPointer means a compression pointer targets an offset that is
	// not strictly smaller than its own position, or is >= 0x4000.
	ErrBadPointer = errors.New("dns: compression pointer out of range")

	// ErrErroneousQr means Reply was called on a message that already has
	// the QR (response) bit set.
	ErrErroneousQr = errors.New("dns: reply: source message already has QR set")

	// ErrBadTsigSig means TSIG MAC verification failed.
	ErrBadTsigSig = errors.New("dns: BADSIG: TSIG MAC verification failed")

	// ErrBadTsigKey means the TSIG key name/algorithm pair is unknown.
	ErrBadTsigKey = errors.New("dns: BADKEY: unrecognized TSIG key")

	// ErrBadTsigTime means the TSIG timestamp fell outside the fudge window.
	ErrBadTsigTime = errors.New("dns: BADTIME: TSIG timestamp outside fudge window")

	// ErrBadTsigTrunc means a truncated MAC was presented shorter than
	// policy allows.
	ErrBadTsigTrunc = errors.New("dns: BADTRUNC: TSIG MAC truncated below minimum length")

	// ErrSigNotPresent means Verify was called on a message with no
	// trailing TSIG/SIG record in the additional section.
	ErrSigNotPresent = errors.New("dns: not signed: no trailing TSIG/SIG record")

	// ErrTooManyOpt means more than one OPT record was found while merging.
	ErrTooManyOpt = errors.New("dns: multiple OPT records in additional section")
)
