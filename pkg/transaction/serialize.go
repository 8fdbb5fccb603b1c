package transaction

import (
	walletio "github.com/Namp88/hoosat-wallet-core/pkg/io"

	"github.com/Namp88/hoosat-wallet-core/pkg/hash"
)

// writeOutpointReversed writes the outpoint with its transaction-id
// byte-reversed, the form Mode A uses. The sighash pre-image (Mode B,
// pkg/sighash) writes the transaction-id in its natural order instead.
func writeOutpointReversed(w *walletio.BinWriter, o Outpoint) {
	reversed := o.TransactionID.Reversed()
	w.WriteBytes(reversed[:])
	w.WriteU32LE(o.Index)
}

func writeScriptPublicKey(w *walletio.BinWriter, spk ScriptPublicKey) {
	w.WriteU16LE(spk.Version)
	w.WriteVarBytes(spk.Script)
}

// EncodeID serializes tx in Mode A: the form whose double-Blake3 hash is
// the transaction id. Signature scripts are omitted (their length is
// written as zero) so the id is stable across signing.
func EncodeID(tx *Transaction) []byte {
	w := walletio.NewBufBinWriter()
	w.WriteU16LE(tx.Version)

	w.WriteVarUint(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		writeOutpointReversed(w.BinWriter, in.PreviousOutpoint)
		w.WriteVarUint(0) // signature-script omitted for id purposes
		w.WriteU64LE(in.Sequence)
		w.WriteB(in.SigOpCount)
	}

	w.WriteVarUint(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		w.WriteU64LE(out.Amount)
		writeScriptPublicKey(w.BinWriter, out.ScriptPublicKey)
	}

	w.WriteU64LE(tx.LockTime)
	w.WriteBytes(tx.SubnetworkID[:])
	w.WriteU64LE(tx.Gas)
	w.WriteVarBytes(tx.Payload)

	return w.Bytes()
}

// ID computes the transaction id: the double-Blake3 hash of the Mode-A
// serialization, stable against any change to signature-script bytes.
func ID(tx *Transaction) hash.Hash32 {
	return hash.DoubleSum256(EncodeID(tx))
}
