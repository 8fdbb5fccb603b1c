// Package hash wraps the keyed-Blake3 primitives the wallet core builds
// its hashing domains on: the plain/double hash used for transaction ids
// and the keyed variants used for signature digests.
package hash

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Size256 is the length in bytes of every hash this package produces.
const Size256 = 32

// Hash32 is a 32-byte digest, stored in the order it is computed
// (big-endian display, matching how the chain renders transaction ids and
// hashes in hex). Use Reversed() where the wire format needs the
// byte-reversed form (see the Outpoint transaction-id asymmetry in
// pkg/transaction).
type Hash32 [Size256]byte

// Bytes returns the raw 32 bytes, in computed (big-endian-hex) order.
func (h Hash32) Bytes() []byte {
	out := make([]byte, Size256)
	copy(out, h[:])
	return out
}

// Reversed returns a copy of h with its byte order reversed.
func (h Hash32) Reversed() Hash32 {
	var out Hash32
	for i := 0; i < Size256; i++ {
		out[i] = h[Size256-1-i]
	}
	return out
}

// String renders the hash as lowercase big-endian hex.
func (h Hash32) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether every byte of h is zero.
func (h Hash32) IsZero() bool {
	for _, b := range h {
		if b != 0 {
			return false
		}
	}
	return true
}

// Sum256 returns the unkeyed Blake3-256 hash of data.
func Sum256(data []byte) Hash32 {
	return Hash32(blake3.Sum256(data))
}

// DoubleSum256 returns Blake3(Blake3(data)), the construction used for
// transaction ids.
func DoubleSum256(data []byte) Hash32 {
	first := Sum256(data)
	return Sum256(first[:])
}

// domainKey right-pads name with zero bytes out to a 32-byte Blake3 key.
func domainKey(name string) [32]byte {
	var key [32]byte
	copy(key[:], name)
	return key
}

// KeyedSum256 returns the Blake3-256 hash of data keyed with the given
// 32-byte-padded domain-separator string.
func KeyedSum256(domain string, data []byte) Hash32 {
	key := domainKey(domain)
	h := blake3.New(Size256, key[:])
	h.Write(data)
	var out Hash32
	copy(out[:], h.Sum(nil))
	return out
}

// KeyedWriter accumulates parts for a single keyed Blake3 digest, used by
// the sighash engine to finalize a signature digest from an
// already-assembled pre-image under a given domain separator.
type KeyedWriter struct {
	h interface {
		Write([]byte) (int, error)
		Sum([]byte) []byte
	}
}

// NewKeyedWriter starts a new keyed Blake3 hash under the given
// zero-padded 32-byte domain-separator string.
func NewKeyedWriter(domain string) *KeyedWriter {
	key := domainKey(domain)
	return &KeyedWriter{h: blake3.New(Size256, key[:])}
}

// Write feeds p into the digest. It never returns an error.
func (w *KeyedWriter) Write(p []byte) {
	w.h.Write(p)
}

// Sum finalizes and returns the digest.
func (w *KeyedWriter) Sum() Hash32 {
	var out Hash32
	copy(out[:], w.h.Sum(nil))
	return out
}
