// Package hash computes xxHash64 fingerprints of bin-store contents.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Digest incrementally fingerprints a sequence of integers. Two stores with
// the same offsets and data feed the digest identically and therefore hash
// identically, regardless of storage width.
type Digest struct {
	d   xxhash.Digest
	buf [8]byte
}

// NewDigest returns a Digest ready for use.
func NewDigest() *Digest {
	var h Digest
	h.d.Reset()

	return &h
}

// WriteUint64 adds one value to the fingerprint.
func (h *Digest) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

// Sum64 returns the fingerprint of everything written so far.
func (h *Digest) Sum64() uint64 {
	return h.d.Sum64()
}
