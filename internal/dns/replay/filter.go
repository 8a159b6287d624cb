// Package replay provides a probabilistic duplicate-transaction guard for
// TSIG-chained exchanges: a Bloom filter over (id, MAC) pairs lets
// a signer/verifier cheaply refuse to re-answer a request it has already
// processed. Adapted from the teacher repo's blocklist Bloom filter
// (sizer + filter), repurposed from "is this domain blocked" membership
// testing to "have we already seen this (id, mac) pair".
package replay

import (
	"math"
	"sync"

	bitsbloom "github.com/bits-and-blooms/bloom/v3"
)

// size computes Bloom filter parameters from capacity and target
// false-positive rate using the standard formulas:
//
//	m = - (n * ln p) / (ln 2)^2
//	k = (m / n) * ln 2
func size(capacity uint64, fpRate float64) (m uint64, k uint8) {
	if capacity == 0 {
		capacity = 1
	}
	if !(fpRate > 0 && fpRate < 1) {
		fpRate = 0.01
	}
	ln2 := math.Ln2
	m = uint64(math.Ceil(-float64(capacity) * math.Log(fpRate) / (ln2 * ln2)))
	if m == 0 {
		m = 1
	}
	k = uint8(math.Max(1, math.Round((float64(m)/float64(capacity))*ln2)))
	return m, k
}

// filter wraps bits-and-blooms BloomFilter with a mutex for writes. Reads
// (MightContain) are safe concurrently; Add is serialized.
type filter struct {
	mu sync.RWMutex
	bf *bitsbloom.BloomFilter
}

func newFilter(capacity uint64, fpRate float64) *filter {
	m, k := size(capacity, fpRate)
	return &filter{bf: bitsbloom.New(uint(m), uint(k))}
}

func (f *filter) add(key []byte) {
	f.mu.Lock()
	f.bf.Add(key)
	f.mu.Unlock()
}

func (f *filter) mightContain(key []byte) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.bf.Test(key)
}
