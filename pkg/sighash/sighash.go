// Package sighash computes the per-input signature digest: the chain's
// 17-field keyed-Blake3 construction, with the four reusable sub-hashes
// cached across all inputs of one transaction.
package sighash

import (
	"fmt"

	walletio "github.com/Namp88/hoosat-wallet-core/pkg/io"

	"github.com/Namp88/hoosat-wallet-core/pkg/hash"
	"github.com/Namp88/hoosat-wallet-core/pkg/transaction"
	"github.com/Namp88/hoosat-wallet-core/pkg/walleterrors"
)

// SigHashType selects which parts of the transaction a signature commits
// to. Only SigHashAll is required by callers; the others must still be
// structurally correct.
type SigHashType uint8

const (
	// SigHashAll signs every input and every output.
	SigHashAll SigHashType = 0x01
	// SigHashNone signs every input and no outputs.
	SigHashNone SigHashType = 0x02
	// SigHashSingle signs every input and only the output at the same
	// index as the input being signed.
	SigHashSingle SigHashType = 0x04
	// SigHashAnyOneCanPay, OR'd with one of the above, signs only the
	// current input instead of every input.
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashBaseMask = SigHashAll | SigHashNone | SigHashSingle
)

// Base returns t with the AnyOneCanPay bit stripped.
func (t SigHashType) Base() SigHashType {
	return t & sigHashBaseMask
}

// IsAnyOneCanPay reports whether the AnyOneCanPay bit is set.
func (t SigHashType) IsAnyOneCanPay() bool {
	return t&SigHashAnyOneCanPay != 0
}

// Valid reports whether t is a recognized combination.
func (t SigHashType) Valid() bool {
	switch t.Base() {
	case SigHashAll, SigHashNone, SigHashSingle:
		return true
	default:
		return false
	}
}

// Domain-separator keys for the two signature schemes.
const (
	domainSchnorr = "TransactionSigningHash"
	domainECDSA   = "TransactionSigningHashECDSA"
)

// ReusedValues caches the four sub-hashes that are stable across every
// input of one transaction (previousOutputsHash, sequencesHash,
// sigOpCountsHash) plus the SigHashAll outputsHash and the payload hash.
// Scope this to one call-chain signing a single transaction; never share
// an instance across transactions or alias it across concurrent builds.
type ReusedValues struct {
	previousOutputsHash *hash.Hash32
	sequencesHash       *hash.Hash32
	sigOpCountsHash     *hash.Hash32
	outputsHashAll      *hash.Hash32
	payloadHash         *hash.Hash32
}

var zeroHash hash.Hash32

func previousOutputsHash(tx *transaction.Transaction, hashType SigHashType, reused *ReusedValues) hash.Hash32 {
	if hashType.IsAnyOneCanPay() {
		return zeroHash
	}
	if reused.previousOutputsHash != nil {
		return *reused.previousOutputsHash
	}
	w := walletio.NewBufBinWriter()
	for _, in := range tx.Inputs {
		w.WriteBytes(in.PreviousOutpoint.TransactionID[:])
		w.WriteU32LE(in.PreviousOutpoint.Index)
	}
	h := hash.Sum256(w.Bytes())
	reused.previousOutputsHash = &h
	return h
}

func sequencesHash(tx *transaction.Transaction, hashType SigHashType, reused *ReusedValues) hash.Hash32 {
	if hashType.IsAnyOneCanPay() || hashType.Base() == SigHashSingle || hashType.Base() == SigHashNone {
		return zeroHash
	}
	if reused.sequencesHash != nil {
		return *reused.sequencesHash
	}
	w := walletio.NewBufBinWriter()
	for _, in := range tx.Inputs {
		w.WriteU64LE(in.Sequence)
	}
	h := hash.Sum256(w.Bytes())
	reused.sequencesHash = &h
	return h
}

func sigOpCountsHash(tx *transaction.Transaction, hashType SigHashType, reused *ReusedValues) hash.Hash32 {
	if hashType.IsAnyOneCanPay() {
		return zeroHash
	}
	if reused.sigOpCountsHash != nil {
		return *reused.sigOpCountsHash
	}
	w := walletio.NewBufBinWriter()
	for _, in := range tx.Inputs {
		w.WriteB(in.SigOpCount)
	}
	h := hash.Sum256(w.Bytes())
	reused.sigOpCountsHash = &h
	return h
}

func encodeOutput(w *walletio.BinWriter, out *transaction.TxOutput) {
	w.WriteU64LE(out.Amount)
	w.WriteU16LE(out.ScriptPublicKey.Version)
	w.WriteVarBytes(out.ScriptPublicKey.Script)
}

func outputsHash(tx *transaction.Transaction, inputIndex int, hashType SigHashType, reused *ReusedValues) hash.Hash32 {
	switch hashType.Base() {
	case SigHashNone:
		return zeroHash
	case SigHashSingle:
		if inputIndex >= len(tx.Outputs) {
			return zeroHash
		}
		w := walletio.NewBufBinWriter()
		encodeOutput(w.BinWriter, tx.Outputs[inputIndex])
		return hash.Sum256(w.Bytes())
	default: // SigHashAll
		if reused.outputsHashAll != nil {
			return *reused.outputsHashAll
		}
		w := walletio.NewBufBinWriter()
		for _, out := range tx.Outputs {
			encodeOutput(w.BinWriter, out)
		}
		h := hash.Sum256(w.Bytes())
		reused.outputsHashAll = &h
		return h
	}
}

func payloadHash(tx *transaction.Transaction, reused *ReusedValues) hash.Hash32 {
	if tx.SubnetworkID.IsNative() {
		return zeroHash
	}
	if reused.payloadHash != nil {
		return *reused.payloadHash
	}
	w := walletio.NewBufBinWriter()
	w.WriteVarBytes(tx.Payload)
	h := hash.Sum256(w.Bytes())
	reused.payloadHash = &h
	return h
}

// Preimage assembles the 17-field Mode-B pre-image for input i, without
// hashing it.
func Preimage(tx *transaction.Transaction, inputIndex int, utxo *transaction.UtxoForSigning, hashType SigHashType, reused *ReusedValues) ([]byte, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return nil, fmt.Errorf("sighash: preimage: input index %d out of range [0,%d): %w", inputIndex, len(tx.Inputs), walleterrors.ErrInvalidTransaction)
	}
	if !hashType.Valid() {
		return nil, fmt.Errorf("sighash: preimage: input %d: sighash type 0x%02x: %w", inputIndex, byte(hashType), walleterrors.ErrInvalidTransaction)
	}
	in := tx.Inputs[inputIndex]

	w := walletio.NewBufBinWriter()
	w.WriteU16LE(tx.Version)

	poh := previousOutputsHash(tx, hashType, reused)
	w.WriteBytes(poh[:])

	sh := sequencesHash(tx, hashType, reused)
	w.WriteBytes(sh[:])

	soh := sigOpCountsHash(tx, hashType, reused)
	w.WriteBytes(soh[:])

	// The outpoint's transaction-id is written in its natural order here,
	// unlike Mode A where it is byte-reversed.
	w.WriteBytes(in.PreviousOutpoint.TransactionID[:])
	w.WriteU32LE(in.PreviousOutpoint.Index)

	w.WriteU16LE(utxo.ScriptPublicKey.Version)
	w.WriteVarBytes(utxo.ScriptPublicKey.Script)
	w.WriteU64LE(utxo.Amount)

	w.WriteU64LE(in.Sequence)
	w.WriteB(in.SigOpCount)

	oh := outputsHash(tx, inputIndex, hashType, reused)
	w.WriteBytes(oh[:])

	w.WriteU64LE(tx.LockTime)
	w.WriteBytes(tx.SubnetworkID[:])
	w.WriteU64LE(tx.Gas)

	ph := payloadHash(tx, reused)
	w.WriteBytes(ph[:])

	w.WriteB(byte(hashType))

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("sighash: preimage: input %d: %w: %v", inputIndex, walleterrors.ErrSerializationError, err)
	}
	return w.Bytes(), nil
}

// ComputeSchnorr computes the digest the Schnorr signer signs directly.
func ComputeSchnorr(tx *transaction.Transaction, inputIndex int, utxo *transaction.UtxoForSigning, hashType SigHashType, reused *ReusedValues) (hash.Hash32, error) {
	preimage, err := Preimage(tx, inputIndex, utxo, hashType, reused)
	if err != nil {
		return hash.Hash32{}, err
	}
	w := hash.NewKeyedWriter(domainSchnorr)
	w.Write(preimage)
	return w.Sum(), nil
}

// ComputeECDSA computes the Schnorr digest and then hashes it again under
// the ECDSA domain separator -- one additional keyed Blake3 call.
func ComputeECDSA(tx *transaction.Transaction, inputIndex int, utxo *transaction.UtxoForSigning, hashType SigHashType, reused *ReusedValues) (hash.Hash32, error) {
	inner, err := ComputeSchnorr(tx, inputIndex, utxo, hashType, reused)
	if err != nil {
		return hash.Hash32{}, err
	}
	w := hash.NewKeyedWriter(domainECDSA)
	w.Write(inner[:])
	return w.Sum(), nil
}
