// Package keyring persists TSIG/SIG0 key material keyed by name, so a
// long-running signer/verifier does not need the key handed to it on
// every call. Adapted from the teacher repo's blocklist bolt store: same
// "open bucket, get/put keyed by name" shape, repurposed from
// domain-blocking to signing keys.
package keyring

import (
	"errors"
	"time"

	bbolt "go.etcd.io/bbolt"
)

var (
	bucketKeys = []byte("keys")

	// ErrNotFound is returned by Get when no key is registered under name.
	ErrNotFound = errors.New("keyring: key not found")
)

// entry is the on-disk record for one key: algorithm name followed by the
// raw key bytes, joined by a NUL separator (both are short, human-typed
// values in practice, never containing NUL themselves).
type entry struct {
	algorithm string
	key       []byte
}

// Store persists TSIG/SIG0 keys in a bbolt database file.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) a Bolt database at path and ensures the key
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKeys)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put registers or replaces the key material for name.
func (s *Store) Put(name, algorithm string, key []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketKeys)
		return b.Put([]byte(name), encodeEntry(entry{algorithm: algorithm, key: key}))
	})
}

// Get retrieves the algorithm and key material registered under name.
func (s *Store) Get(name string) (algorithm string, key []byte, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketKeys)
		v := b.Get([]byte(name))
		if v == nil {
			return ErrNotFound
		}
		e, decodeErr := decodeEntry(v)
		if decodeErr != nil {
			return decodeErr
		}
		algorithm, key = e.algorithm, e.key
		return nil
	})
	return algorithm, key, err
}

// Delete removes the key registered under name, if any.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketKeys).Delete([]byte(name))
	})
}

func encodeEntry(e entry) []byte {
	out := make([]byte, 0, len(e.algorithm)+1+len(e.key))
	out = append(out, e.algorithm...)
	out = append(out, 0)
	out = append(out, e.key...)
	return out
}

func decodeEntry(b []byte) (entry, error) {
	for i, c := range b {
		if c == 0 {
			return entry{algorithm: string(b[:i]), key: b[i+1:]}, nil
		}
	}
	return entry{}, errors.New("keyring: corrupt entry")
}
