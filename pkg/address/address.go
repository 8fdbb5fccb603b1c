// Package address implements the round-trip between a public key plus
// network tag and the chain's human-readable address, and the reverse
// direction of decoding an address into a ScriptPublicKey.
package address

import (
	"fmt"

	"github.com/Namp88/hoosat-wallet-core/pkg/bech32"
	"github.com/Namp88/hoosat-wallet-core/pkg/transaction"
	"github.com/Namp88/hoosat-wallet-core/pkg/walleterrors"
)

// Network selects which prefix an address uses.
type Network int

const (
	// Mainnet uses the "hoosat" prefix.
	Mainnet Network = iota
	// Testnet uses the "hoosattest" prefix.
	Testnet
)

func (n Network) prefix() string {
	if n == Testnet {
		return "hoosattest"
	}
	return "hoosat"
}

// FromPublicKey chooses the version byte from the key length (32 bytes:
// Schnorr, 33 bytes: ECDSA) and encodes it as a human-readable address.
func FromPublicKey(network Network, pubKey []byte) (string, error) {
	var version transaction.AddressVersion
	switch len(pubKey) {
	case 32:
		version = transaction.AddressVersionSchnorr
	case 33:
		version = transaction.AddressVersionECDSA
	default:
		return "", fmt.Errorf("address: from public key: length %d is neither 32 (Schnorr) nor 33 (ECDSA): %w", len(pubKey), walleterrors.ErrInvalidAddress)
	}
	return bech32.Encode(network.prefix(), byte(version), pubKey)
}

// FromScriptHash encodes a P2SH address (version 0x08) for a 32-byte
// script hash.
func FromScriptHash(network Network, scriptHash []byte) (string, error) {
	if len(scriptHash) != 32 {
		return "", fmt.Errorf("address: from script hash: length %d, want 32: %w", len(scriptHash), walleterrors.ErrInvalidAddress)
	}
	return bech32.Encode(network.prefix(), byte(transaction.AddressVersionP2SH), scriptHash)
}

// Decoded is the result of decoding an address.
type Decoded struct {
	Network         Network
	Version         transaction.AddressVersion
	Payload         []byte
	ScriptPublicKey transaction.ScriptPublicKey
}

// Decode parses addr, dispatches on its version byte, and builds the
// corresponding ScriptPublicKey.
func Decode(addr string) (*Decoded, error) {
	prefix, versionByte, payload, err := bech32.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("address: decode %q: %w", addr, err)
	}

	var network Network
	switch prefix {
	case "hoosat":
		network = Mainnet
	case "hoosattest":
		network = Testnet
	default:
		return nil, fmt.Errorf("address: decode %q: unrecognized prefix %q: %w", addr, prefix, walleterrors.ErrInvalidAddress)
	}

	version := transaction.AddressVersion(versionByte)

	var spk transaction.ScriptPublicKey
	switch version {
	case transaction.AddressVersionSchnorr:
		if len(payload) != 32 {
			return nil, fmt.Errorf("address: decode %q: Schnorr payload is %d bytes, want 32: %w", addr, len(payload), walleterrors.ErrInvalidAddress)
		}
		spk, err = transaction.NewSchnorrP2PKScript(payload)
	case transaction.AddressVersionECDSA:
		if len(payload) != 33 {
			return nil, fmt.Errorf("address: decode %q: ECDSA payload is %d bytes, want 33: %w", addr, len(payload), walleterrors.ErrInvalidAddress)
		}
		spk, err = transaction.NewECDSAP2PKScript(payload)
	case transaction.AddressVersionP2SH:
		if len(payload) != 32 {
			return nil, fmt.Errorf("address: decode %q: P2SH payload is %d bytes, want 32: %w", addr, len(payload), walleterrors.ErrInvalidAddress)
		}
		spk, err = transaction.NewP2SHScript(payload)
	default:
		return nil, fmt.Errorf("address: decode %q: unrecognized version byte 0x%02x: %w", addr, versionByte, walleterrors.ErrInvalidAddress)
	}
	if err != nil {
		return nil, fmt.Errorf("address: decode %q: %w", addr, err)
	}

	return &Decoded{Network: network, Version: version, Payload: payload, ScriptPublicKey: spk}, nil
}
