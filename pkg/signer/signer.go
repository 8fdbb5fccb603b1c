// Package signer produces signature-scripts over secp256k1, in both the
// ECDSA and Schnorr (BIP-340) forms the chain's script templates accept.
package signer

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"

	"github.com/Namp88/hoosat-wallet-core/pkg/hash"
	"github.com/Namp88/hoosat-wallet-core/pkg/keys"
	"github.com/Namp88/hoosat-wallet-core/pkg/sighash"
	"github.com/Namp88/hoosat-wallet-core/pkg/walleterrors"
)

// signatureScriptLen is 0x41 (the push-length byte) + 64-byte signature +
// 1-byte sighash-type.
const signatureScriptLen = 1 + 64 + 1

const pushLen64 = 0x41

// SignSchnorr signs digest with kp's private key and returns the
// signature-script: 0x41 ‖ 64-byte BIP-340 signature ‖ hashType.
func SignSchnorr(kp *keys.KeyPair, digest hash.Hash32, hashType sighash.SigHashType) ([]byte, error) {
	sig, err := schnorr.Sign(kp.Secp256k1PrivateKey(), digest[:])
	if err != nil {
		return nil, fmt.Errorf("signer: sign schnorr: %w: %v", walleterrors.ErrSigningError, err)
	}
	return assembleScript(sig.Serialize(), hashType)
}

// SignECDSA signs digest with kp's private key and returns the
// signature-script: 0x41 ‖ 64-byte compact (r‖s, low-S) signature ‖
// hashType.
func SignECDSA(kp *keys.KeyPair, digest hash.Hash32, hashType sighash.SigHashType) ([]byte, error) {
	compact := ecdsa.SignCompact(kp.Secp256k1PrivateKey(), digest[:], false)
	if len(compact) != 65 {
		return nil, fmt.Errorf("signer: sign ecdsa: compact signature is %d bytes, want 65: %w", len(compact), walleterrors.ErrSigningError)
	}
	// SignCompact prepends a 1-byte recovery/header id ahead of the raw
	// r‖s pair; the chain's script template has no room for key recovery,
	// so only the 64-byte signature body is kept.
	return assembleScript(compact[1:], hashType)
}

func assembleScript(sig []byte, hashType sighash.SigHashType) ([]byte, error) {
	if len(sig) != 64 {
		return nil, fmt.Errorf("signer: assemble script: signature is %d bytes, want 64: %w", len(sig), walleterrors.ErrSigningError)
	}
	out := make([]byte, 0, signatureScriptLen)
	out = append(out, pushLen64)
	out = append(out, sig...)
	out = append(out, byte(hashType))
	return out, nil
}
