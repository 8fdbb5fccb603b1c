// Package transaction defines the in-memory transaction shape and its
// canonical transaction-id serialization (Mode A). The sighash pre-image
// (Mode B) lives in pkg/sighash since it needs per-input,
// per-sighash-type context this package doesn't carry.
package transaction

import (
	"github.com/Namp88/hoosat-wallet-core/pkg/hash"
)

// AddressVersion identifies which script template an address/public key
// maps to. No values besides these three are recognized.
type AddressVersion byte

const (
	// AddressVersionSchnorr is the Schnorr pay-to-public-key version.
	AddressVersionSchnorr AddressVersion = 0x00
	// AddressVersionECDSA is the ECDSA pay-to-public-key version.
	AddressVersionECDSA AddressVersion = 0x01
	// AddressVersionP2SH is the pay-to-script-hash version.
	AddressVersionP2SH AddressVersion = 0x08
)

// SubnetworkIDSize is the fixed length of a subnetwork id.
const SubnetworkIDSize = 20

// SubnetworkID tags the logical execution lane a transaction belongs to.
// The all-zero value is the native coin-transfer lane.
type SubnetworkID [SubnetworkIDSize]byte

// IsNative reports whether id is the all-zero native subnetwork.
func (id SubnetworkID) IsNative() bool {
	for _, b := range id {
		if b != 0 {
			return false
		}
	}
	return true
}

// Outpoint identifies a prior transaction output.
type Outpoint struct {
	TransactionID hash.Hash32
	Index         uint32
}

// TxInput is a transaction input: the outpoint it spends, its signature
// script (empty until the Signer fills it in), sequence number, and
// sig-op count.
type TxInput struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       uint8
}

// Script shape constants: fixed lengths of the two pay-to-public-key
// script templates and the pay-to-script-hash template, and their opcodes.
const (
	schnorrP2PKLen = 34
	ecdsaP2PKLen   = 35
	p2shLen        = 35

	opData32    = 0x20
	opData33    = 0x21
	opCheckSig  = 0xac
	opCheckSigE = 0xab // ECDSA CHECKSIG opcode variant
	opHash256   = 0xaa
	opEqual     = 0x87
)

// ScriptPublicKey is a versioned output script.
type ScriptPublicKey struct {
	Version uint16
	Script  []byte
}

// NewSchnorrP2PKScript builds `[0x20][32-byte x-only pubkey][0xAC]`.
func NewSchnorrP2PKScript(xOnlyPubKey []byte) (ScriptPublicKey, error) {
	if len(xOnlyPubKey) != 32 {
		return ScriptPublicKey{}, errInvalidScriptInput
	}
	script := make([]byte, 0, schnorrP2PKLen)
	script = append(script, opData32)
	script = append(script, xOnlyPubKey...)
	script = append(script, opCheckSig)
	return ScriptPublicKey{Version: 0, Script: script}, nil
}

// NewECDSAP2PKScript builds `[0x21][33-byte compressed pubkey][0xAB]`.
func NewECDSAP2PKScript(compressedPubKey []byte) (ScriptPublicKey, error) {
	if len(compressedPubKey) != 33 {
		return ScriptPublicKey{}, errInvalidScriptInput
	}
	script := make([]byte, 0, ecdsaP2PKLen)
	script = append(script, opData33)
	script = append(script, compressedPubKey...)
	script = append(script, opCheckSigE)
	return ScriptPublicKey{Version: 0, Script: script}, nil
}

// NewP2SHScript builds `[0xAA][0x20][32-byte script-hash][0x87]`.
func NewP2SHScript(scriptHash []byte) (ScriptPublicKey, error) {
	if len(scriptHash) != 32 {
		return ScriptPublicKey{}, errInvalidScriptInput
	}
	script := make([]byte, 0, p2shLen)
	script = append(script, opHash256, opData32)
	script = append(script, scriptHash...)
	script = append(script, opEqual)
	return ScriptPublicKey{Version: 0, Script: script}, nil
}

// Shape classifies a script as one of the three recognized templates.
func (s ScriptPublicKey) Shape() (AddressVersion, bool) {
	switch {
	case len(s.Script) == schnorrP2PKLen && s.Script[0] == opData32 && s.Script[schnorrP2PKLen-1] == opCheckSig:
		return AddressVersionSchnorr, true
	case len(s.Script) == ecdsaP2PKLen && s.Script[0] == opData33 && s.Script[ecdsaP2PKLen-1] == opCheckSigE:
		return AddressVersionECDSA, true
	case len(s.Script) == p2shLen && s.Script[0] == opHash256 && s.Script[1] == opData32 && s.Script[p2shLen-1] == opEqual:
		return AddressVersionP2SH, true
	default:
		return 0, false
	}
}

// TxOutput is a transaction output.
type TxOutput struct {
	Amount          uint64
	ScriptPublicKey ScriptPublicKey
}

// Transaction is the in-memory representation of a chain transaction.
type Transaction struct {
	Version      uint16
	Inputs       []*TxInput
	Outputs      []*TxOutput
	LockTime     uint64
	SubnetworkID SubnetworkID
	Gas          uint64
	Payload      []byte
}

// UtxoForSigning is the spent-output context the sighash engine needs:
// the outpoint plus everything that isn't otherwise reconstructible from
// the transaction itself.
type UtxoForSigning struct {
	Outpoint        Outpoint
	Amount          uint64
	ScriptPublicKey ScriptPublicKey
	BlockDAAScore   uint64
	IsCoinbase      bool
}
