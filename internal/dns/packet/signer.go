package packet

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/haukened/wiredns/internal/dns/domain"
)

// Signer computes and checks the MACs that back TSIG (RFC 2845) and
// SIG(0) (RFC 2931) transaction authentication. It is deliberately an
// interface, not a concrete type baked into Packet: signing key material
// and algorithm choice are a deployment concern external to the codec
// (spec.md §1 names cryptography as an external collaborator, not
// something this library owns).
type Signer interface {
	// Create computes a MAC over msg using key, for the named algorithm.
	Create(algorithm string, key []byte, msg []byte) (mac []byte, err error)
	// Verify checks that mac is the correct MAC over msg under key for
	// the named algorithm, returning a non-nil error on mismatch.
	Verify(algorithm string, key []byte, msg []byte, mac []byte) error
}

// HMACSigner is the default Signer, implementing the HMAC-based TSIG
// algorithms of RFC 2845 §5.1. It is built on the standard library's
// crypto/hmac and crypto/sha256/sha512 rather than a third-party
// dependency: this Signer boundary exists precisely so real key material
// and real cryptography stay outside the codec's dependency surface, and
// none of the corpus's example repos ship an HMAC/TSIG-signing package
// to wire in its place.
type HMACSigner struct{}

func hmacHashFor(algorithm string) (func() hash.Hash, error) {
	switch algorithm {
	case "hmac-sha256.", "hmac-sha256":
		return sha256.New, nil
	case "hmac-sha512.", "hmac-sha512":
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("packet: unsupported TSIG algorithm %q", algorithm)
	}
}

// Create implements Signer.
func (HMACSigner) Create(algorithm string, key []byte, msg []byte) ([]byte, error) {
	newHash, err := hmacHashFor(algorithm)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(newHash, key)
	mac.Write(msg)
	return mac.Sum(nil), nil
}

// Verify implements Signer.
func (s HMACSigner) Verify(algorithm string, key []byte, msg []byte, mac []byte) error {
	expected, err := s.Create(algorithm, key, msg)
	if err != nil {
		return err
	}
	if !hmac.Equal(expected, mac) {
		return domain.ErrBadTsigSig
	}
	return nil
}
