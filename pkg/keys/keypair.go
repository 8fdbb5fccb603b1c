// Package keys handles secp256k1 key generation, validation, and the two
// public-key forms the chain uses: the 33-byte compressed ECDSA form and
// the 32-byte x-only Schnorr form.
package keys

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"

	"github.com/Namp88/hoosat-wallet-core/pkg/hash"
	"github.com/Namp88/hoosat-wallet-core/pkg/walleterrors"
)

// SecretSize is the length in bytes of the secp256k1 secret scalar.
const SecretSize = 32

// CompressedPubKeySize is the length of the compressed ECDSA public key.
const CompressedPubKeySize = 33

// XOnlyPubKeySize is the length of the Schnorr x-only public key.
const XOnlyPubKeySize = 32

// KeyPair holds a validated secp256k1 secret scalar and its two derived
// public-key forms. The secret is never logged or included in any debug
// rendering: Format on *KeyPair prints only the compressed public key.
type KeyPair struct {
	secret      secp256k1.PrivateKey
	compressed  [CompressedPubKeySize]byte
	xOnlyPubKey [XOnlyPubKeySize]byte
}

// Format renders the key pair by its compressed public key alone, for every
// fmt verb, so the secret scalar never appears in formatted output.
func (k *KeyPair) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "KeyPair{pub:%x}", k.compressed[:])
}

// Generate draws 32 cryptographically random bytes, rejecting and
// redrawing until the scalar lies in (0, n), and derives both public-key
// forms.
func Generate() (*KeyPair, error) {
	for {
		var buf [SecretSize]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("keys: generate: %w", err)
		}
		kp, err := Import(buf[:])
		if err == nil {
			return kp, nil
		}
		if !errors.Is(err, walleterrors.ErrInvalidKey) {
			return nil, err
		}
		// out-of-range scalar: redraw.
	}
}

// Import validates secretBytes as a secp256k1 scalar in (0, n) and
// derives both public-key forms.
func Import(secretBytes []byte) (*KeyPair, error) {
	if len(secretBytes) != SecretSize {
		return nil, fmt.Errorf("keys: import: secret is %d bytes, want %d: %w", len(secretBytes), SecretSize, walleterrors.ErrInvalidKey)
	}

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(secretBytes)
	if overflow || scalar.IsZero() {
		return nil, fmt.Errorf("keys: import: secret scalar is zero or exceeds the curve order: %w", walleterrors.ErrInvalidKey)
	}

	priv := secp256k1.NewPrivateKey(&scalar)
	pub := priv.PubKey()

	kp := &KeyPair{secret: *priv}
	copy(kp.compressed[:], pub.SerializeCompressed())

	// The x-only Schnorr form is the x-coordinate of the point, which sits
	// at offset 1 of the 65-byte uncompressed encoding (0x04 ‖ X ‖ Y).
	uncompressed := pub.SerializeUncompressed()
	copy(kp.xOnlyPubKey[:], uncompressed[1:33])

	return kp, nil
}

// CompressedPublicKey returns the 33-byte compressed ECDSA public key.
func (k *KeyPair) CompressedPublicKey() []byte {
	out := make([]byte, CompressedPubKeySize)
	copy(out, k.compressed[:])
	return out
}

// SchnorrPublicKey returns the 32-byte x-only Schnorr public key: the
// x-coordinate of the derived point, per BIP-340.
func (k *KeyPair) SchnorrPublicKey() []byte {
	out := make([]byte, XOnlyPubKeySize)
	copy(out, k.xOnlyPubKey[:])
	return out
}

// Secp256k1PrivateKey exposes the underlying decred key for use by the
// signer package. It is not exported as raw bytes to discourage callers
// from retaining the secret past the signing call.
func (k *KeyPair) Secp256k1PrivateKey() *secp256k1.PrivateKey {
	return &k.secret
}

// Destroy zeroes the secret scalar. Callers that need to guarantee
// zeroing on an error path should call this explicitly; Go has no
// deterministic destructors, so there is no implicit finalizer.
func (k *KeyPair) Destroy() {
	k.secret.Key.Zero()
}

// secretWIFVersion tags the payload byte a WIF-style export string starts
// with. It has no meaning beyond disambiguating this format from other
// base58 payloads; it is not a network selector.
const secretWIFVersion = 0x80

// ExportSecretWIF renders the secret scalar as a base58 string: version
// byte ‖ 32-byte secret ‖ 4-byte checksum (the first four bytes of the
// double hash of the preceding bytes), the same envelope shape as
// Bitcoin's WIF format but with this module's own hash in place of
// double-SHA256. This is an explicit, caller-invoked export; it is never
// produced implicitly by logging or error paths.
func (k *KeyPair) ExportSecretWIF() string {
	secretBytes := k.secret.Key.Bytes()
	payload := make([]byte, 0, 1+SecretSize)
	payload = append(payload, secretWIFVersion)
	payload = append(payload, secretBytes[:]...)
	checksum := hash.DoubleSum256(payload)
	payload = append(payload, checksum[:4]...)
	return base58.Encode(payload)
}

// ImportSecretWIF parses a string produced by ExportSecretWIF, verifies
// its checksum and version byte, and builds the KeyPair.
func ImportSecretWIF(s string) (*KeyPair, error) {
	payload, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("keys: import wif: not valid base58: %w", walleterrors.ErrInvalidKey)
	}
	if len(payload) != 1+SecretSize+4 {
		return nil, fmt.Errorf("keys: import wif: payload is %d bytes, want %d: %w", len(payload), 1+SecretSize+4, walleterrors.ErrInvalidKey)
	}
	if payload[0] != secretWIFVersion {
		return nil, fmt.Errorf("keys: import wif: version byte 0x%02x, want 0x%02x: %w", payload[0], secretWIFVersion, walleterrors.ErrInvalidKey)
	}
	body := payload[:1+SecretSize]
	checksum := hash.DoubleSum256(body)
	for i := 0; i < 4; i++ {
		if payload[1+SecretSize+i] != checksum[i] {
			return nil, fmt.Errorf("keys: import wif: checksum mismatch at byte %d: %w", i, walleterrors.ErrInvalidKey)
		}
	}
	return Import(body[1:])
}
