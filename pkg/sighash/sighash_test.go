package sighash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Namp88/hoosat-wallet-core/pkg/hash"
	"github.com/Namp88/hoosat-wallet-core/pkg/transaction"
)

func mustHash(t *testing.T, s string) (out [32]byte) {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 32)
	copy(out[:], b)
	return out
}

func referenceScenario(t *testing.T) (*transaction.Transaction, *transaction.UtxoForSigning) {
	txid := mustHash(t, "091ea22a707ac840c8291706fca5421a61ee03147f3f9655133d5b62ec38f29f")
	script1, err := hex.DecodeString("20fe34183d4e783b5dbd572b338d6e4c084ef92fa941a77bbe9b23acf27107f065ac")
	require.NoError(t, err)
	script2, err := hex.DecodeString("2102eddf8d68ad880ec15b9d0de338d62f53630af2efc2e2d3a03e2f7a65c379fbaaab")
	require.NoError(t, err)

	tx := &transaction.Transaction{
		Version: 0,
		Inputs: []*transaction.TxInput{
			{
				PreviousOutpoint: transaction.Outpoint{TransactionID: txid, Index: 0},
				Sequence:         0,
				SigOpCount:       1,
			},
		},
		Outputs: []*transaction.TxOutput{
			{Amount: 1000, ScriptPublicKey: transaction.ScriptPublicKey{Version: 0, Script: script1}},
			{Amount: 19999989000, ScriptPublicKey: transaction.ScriptPublicKey{Version: 0, Script: script2}},
		},
		LockTime: 0,
		Gas:      0,
	}

	// UTXO script from the reference scenario: 0x21 ‖ 33-byte compressed
	// pubkey ‖ 0xab, 35 bytes.
	utxoScript, err := hex.DecodeString("210294eb83da2c7ad14c91a941ea2dbe22786b2eff5969ee794891dc55538fd67c37ab")
	require.NoError(t, err)
	utxo := &transaction.UtxoForSigning{
		Outpoint:        tx.Inputs[0].PreviousOutpoint,
		Amount:          19399800000,
		ScriptPublicKey: transaction.ScriptPublicKey{Version: 0, Script: utxoScript},
	}
	return tx, utxo
}

// TestPreimageLengthMatchesReferenceScenario checks the assembled pre-image
// length against the field-by-field byte layout for this skeleton+UTXO:
// 2 (version) + 32*3 (reused sub-hashes) + 32 (outpoint txid) + 4 (index)
// + 2 (script version) + 1+35 (varint-prefixed 35-byte script) + 8 (amount)
// + 8 (sequence) + 1 (sig-op-count) + 32 (outputsHash) + 8 (lock-time)
// + 20 (subnetwork-id) + 8 (gas) + 32 (payloadHash) + 1 (sighash-type) = 290.
func TestPreimageLengthMatchesReferenceScenario(t *testing.T) {
	tx, utxo := referenceScenario(t)
	preimage, err := Preimage(tx, 0, utxo, SigHashAll, &ReusedValues{})
	require.NoError(t, err)
	assert.Len(t, preimage, 290)
}

func TestPreimageOutpointNotReversed(t *testing.T) {
	tx, utxo := referenceScenario(t)
	preimage, err := Preimage(tx, 0, utxo, SigHashAll, &ReusedValues{})
	require.NoError(t, err)

	// Fields 1-4 (version + three 32-byte hashes) occupy the first
	// 2+32*3 = 98 bytes; the outpoint's transaction-id follows immediately,
	// in its natural (non-reversed) order.
	txidStart := 2 + 32*3
	gotTxID := preimage[txidStart : txidStart+32]
	assert.Equal(t, tx.Inputs[0].PreviousOutpoint.TransactionID[:], gotTxID)
}

func TestComputeSchnorrDeterministic(t *testing.T) {
	tx, utxo := referenceScenario(t)
	h1, err := ComputeSchnorr(tx, 0, utxo, SigHashAll, &ReusedValues{})
	require.NoError(t, err)
	h2, err := ComputeSchnorr(tx, 0, utxo, SigHashAll, &ReusedValues{})
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestComputeECDSADiffersFromSchnorr(t *testing.T) {
	tx, utxo := referenceScenario(t)
	schnorrDigest, err := ComputeSchnorr(tx, 0, utxo, SigHashAll, &ReusedValues{})
	require.NoError(t, err)
	ecdsaDigest, err := ComputeECDSA(tx, 0, utxo, SigHashAll, &ReusedValues{})
	require.NoError(t, err)
	assert.NotEqual(t, schnorrDigest, ecdsaDigest)
}

func TestReusedValuesCacheIsStableAcrossInputs(t *testing.T) {
	tx, utxo := referenceScenario(t)
	tx.Inputs = append(tx.Inputs, &transaction.TxInput{
		PreviousOutpoint: transaction.Outpoint{TransactionID: tx.Inputs[0].PreviousOutpoint.TransactionID, Index: 1},
		Sequence:         0,
		SigOpCount:       1,
	})

	reused := &ReusedValues{}
	_, err := ComputeSchnorr(tx, 0, utxo, SigHashAll, reused)
	require.NoError(t, err)
	require.NotNil(t, reused.previousOutputsHash)
	require.NotNil(t, reused.sequencesHash)
	require.NotNil(t, reused.sigOpCountsHash)
	require.NotNil(t, reused.outputsHashAll)

	cachedPrevOuts := *reused.previousOutputsHash
	_, err = ComputeSchnorr(tx, 1, utxo, SigHashAll, reused)
	require.NoError(t, err)
	assert.Equal(t, cachedPrevOuts, *reused.previousOutputsHash)
}

func TestSigHashSingleUsesOnlyMatchingOutput(t *testing.T) {
	tx, utxo := referenceScenario(t)
	d1, err := ComputeSchnorr(tx, 0, utxo, SigHashSingle, &ReusedValues{})
	require.NoError(t, err)

	tx2, _ := referenceScenario(t)
	tx2.Outputs[1].Amount = 1 // change the output SIGHASH_SINGLE does NOT cover
	d2, err := ComputeSchnorr(tx2, 0, utxo, SigHashSingle, &ReusedValues{})
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
}

func TestSigHashNoneZeroesOutputsHash(t *testing.T) {
	tx, utxo := referenceScenario(t)
	d1, err := ComputeSchnorr(tx, 0, utxo, SigHashNone, &ReusedValues{})
	require.NoError(t, err)

	tx2, _ := referenceScenario(t)
	tx2.Outputs[0].Amount = 42
	tx2.Outputs[1].Amount = 42
	d2, err := ComputeSchnorr(tx2, 0, utxo, SigHashNone, &ReusedValues{})
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
}

func TestAnyOneCanPayZeroesPreviousOutputsHash(t *testing.T) {
	tx, utxo := referenceScenario(t)
	preimage, err := Preimage(tx, 0, utxo, SigHashAll|SigHashAnyOneCanPay, &ReusedValues{})
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), preimage[2:34])
}

func TestInvalidInputIndexRejected(t *testing.T) {
	tx, utxo := referenceScenario(t)
	_, err := Preimage(tx, 5, utxo, SigHashAll, &ReusedValues{})
	assert.Error(t, err)
}

func TestInvalidSigHashTypeRejected(t *testing.T) {
	tx, utxo := referenceScenario(t)
	_, err := Preimage(tx, 0, utxo, SigHashType(0xF0), &ReusedValues{})
	assert.Error(t, err)
}

var _ = hash.Size256
