// Package random provides deterministic-free random values for tests:
// byte slices, hashes, and outpoints, so test fixtures don't need to
// hand-roll filler bytes.
package random

import (
	"math/rand"
	"time"

	"github.com/Namp88/hoosat-wallet-core/pkg/hash"
	"github.com/Namp88/hoosat-wallet-core/pkg/transaction"
)

// Bytes returns a random byte slice of length n.
func Bytes(n int) []byte {
	b := make([]byte, n)
	Fill(b)
	return b
}

// Fill fills buf with random bytes.
func Fill(buf []byte) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	// math/rand's Read never returns an error.
	r.Read(buf)
}

// Uint32 returns a random uint32.
func Uint32() uint32 {
	return rand.Uint32()
}

// Hash32 returns a random 32-byte hash value, useful for filling in
// outpoint transaction-ids in test fixtures that don't care about the
// specific bytes.
func Hash32() hash.Hash32 {
	var h hash.Hash32
	Fill(h[:])
	return h
}

// Outpoint returns a random outpoint.
func Outpoint() transaction.Outpoint {
	return transaction.Outpoint{TransactionID: Hash32(), Index: Uint32()}
}

func init() {
	rand.Seed(time.Now().UTC().UnixNano())
}
