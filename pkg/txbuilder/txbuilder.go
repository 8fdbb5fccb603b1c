// Package txbuilder assembles a Transaction from inputs and outputs,
// computes change, and produces the fully signed result.
package txbuilder

import (
	"fmt"

	"github.com/Namp88/hoosat-wallet-core/pkg/address"
	"github.com/Namp88/hoosat-wallet-core/pkg/config"
	"github.com/Namp88/hoosat-wallet-core/pkg/keys"
	"github.com/Namp88/hoosat-wallet-core/pkg/sighash"
	"github.com/Namp88/hoosat-wallet-core/pkg/signer"
	"github.com/Namp88/hoosat-wallet-core/pkg/transaction"
	"github.com/Namp88/hoosat-wallet-core/pkg/walleterrors"
)

// DustThreshold is the minimum amount, in base units, a change output may
// carry, used when a Builder is constructed with New instead of
// NewWithConfig. Below it, change is folded into the fee instead.
const DustThreshold = 1000

// MaxRecipients is the policy cap on non-change recipient outputs per
// transaction, mirrored from network spam-protection policy.
const MaxRecipients = 2

type pendingInput struct {
	utxo        *transaction.UtxoForSigning
	spendingKey *keys.KeyPair
}

// Builder is stateful and single-shot: construct one, call its methods in
// order, then call Sign once. It is not safe for concurrent use.
type Builder struct {
	network       address.Network
	dustThreshold uint64
	inputs        []pendingInput
	outpoints     map[string]struct{}
	outputs       []*transaction.TxOutput
	recipients    int
	fee           uint64
	feeSet        bool
	subnetworkID  transaction.SubnetworkID
	payload       []byte
}

// New creates an empty Builder for the given network (used to validate
// recipient addresses), using the package default DustThreshold. Callers
// that have a pkg/config.Config should use NewWithConfig instead so the
// configured dust floor actually takes effect.
func New(network address.Network) *Builder {
	return &Builder{
		network:       network,
		dustThreshold: DustThreshold,
		outpoints:     make(map[string]struct{}),
	}
}

// NewWithConfig creates an empty Builder using cfg's network and dust
// threshold.
func NewWithConfig(cfg *config.Config) *Builder {
	return &Builder{
		network:       cfg.Network,
		dustThreshold: cfg.DustThreshold,
		outpoints:     make(map[string]struct{}),
	}
}

func outpointKey(o transaction.Outpoint) string {
	return string(o.TransactionID[:]) + string([]byte{
		byte(o.Index), byte(o.Index >> 8), byte(o.Index >> 16), byte(o.Index >> 24),
	})
}

// AddInput appends utxo to the ordered input list, to be signed with
// spendingKey. Duplicate outpoints are rejected.
func (b *Builder) AddInput(utxo *transaction.UtxoForSigning, spendingKey *keys.KeyPair) error {
	key := outpointKey(utxo.Outpoint)
	if _, exists := b.outpoints[key]; exists {
		return fmt.Errorf("txbuilder: add input: outpoint %x:%d already added: %w", utxo.Outpoint.TransactionID[:], utxo.Outpoint.Index, walleterrors.ErrInvalidTransaction)
	}
	b.outpoints[key] = struct{}{}
	b.inputs = append(b.inputs, pendingInput{utxo: utxo, spendingKey: spendingKey})
	return nil
}

// AddOutput appends a recipient output of amount base units to addr.
// Rejects a non-positive amount, an invalid address, or exceeding the
// policy cap of MaxRecipients non-change outputs.
func (b *Builder) AddOutput(addr string, amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("txbuilder: add output: amount must be positive, got %d: %w", amount, walleterrors.ErrInvalidTransaction)
	}
	if b.recipients >= MaxRecipients {
		return fmt.Errorf("txbuilder: add output: recipient %d exceeds cap of %d: %w", b.recipients+1, MaxRecipients, walleterrors.ErrTooManyRecipients)
	}
	decoded, err := address.Decode(addr)
	if err != nil {
		return fmt.Errorf("txbuilder: add output: address %q: %w", addr, walleterrors.ErrInvalidAddress)
	}
	b.outputs = append(b.outputs, &transaction.TxOutput{
		Amount:          amount,
		ScriptPublicKey: decoded.ScriptPublicKey,
	})
	b.recipients++
	return nil
}

// SetFee sets the explicit fee, in base units.
func (b *Builder) SetFee(amount uint64) {
	b.fee = amount
	b.feeSet = true
}

// SetSubnetworkID sets a non-native subnetwork id. The builder does not
// itself enforce the network rule that the native subnetwork must carry
// an empty payload; the node rejects a violation at submission time.
func (b *Builder) SetSubnetworkID(id transaction.SubnetworkID) {
	b.subnetworkID = id
}

// SetPayload sets the transaction payload.
func (b *Builder) SetPayload(payload []byte) {
	b.payload = payload
}

func (b *Builder) inputSum() uint64 {
	var sum uint64
	for _, in := range b.inputs {
		sum += in.utxo.Amount
	}
	return sum
}

func (b *Builder) outputSum() uint64 {
	var sum uint64
	for _, out := range b.outputs {
		sum += out.Amount
	}
	return sum
}

// AddChangeOutput computes change = Σinputs − Σoutputs − fee and, if it
// meets the builder's dust threshold (DustThreshold for New, the Config
// value for NewWithConfig), appends a change output paid to addr; otherwise the
// change is folded silently into the fee. Fails with InsufficientFunds
// when change would be negative.
func (b *Builder) AddChangeOutput(addr string) error {
	inSum := b.inputSum()
	outSum := b.outputSum()
	spent := outSum + b.fee
	if spent > inSum {
		return fmt.Errorf("txbuilder: add change output: inputs %d short of outputs+fee %d by %d: %w", inSum, spent, spent-inSum, walleterrors.ErrInsufficientFunds)
	}
	change := inSum - spent
	if change < b.dustThreshold {
		b.fee += change
		return nil
	}
	decoded, err := address.Decode(addr)
	if err != nil {
		return fmt.Errorf("txbuilder: add change output: address %q: %w", addr, walleterrors.ErrInvalidAddress)
	}
	b.outputs = append(b.outputs, &transaction.TxOutput{
		Amount:          change,
		ScriptPublicKey: decoded.ScriptPublicKey,
	})
	return nil
}

// EstimateMass returns the transaction mass under the same model
// pkg/feepolicy uses, given the builder's current input/output/payload
// counts, without requiring a fee to already be set.
func (b *Builder) EstimateMass(massPerInput, massPerOutput, massPerPayloadByte, baseMass uint64) uint64 {
	return baseMass +
		massPerInput*uint64(len(b.inputs)) +
		massPerOutput*uint64(len(b.outputs)) +
		massPerPayloadByte*uint64(len(b.payload))
}

func (b *Builder) buildSkeleton() *transaction.Transaction {
	inputs := make([]*transaction.TxInput, len(b.inputs))
	for i, in := range b.inputs {
		inputs[i] = &transaction.TxInput{
			PreviousOutpoint: in.utxo.Outpoint,
			Sequence:         0,
			SigOpCount:       1,
		}
	}
	return &transaction.Transaction{
		Version:      0,
		Inputs:       inputs,
		Outputs:      b.outputs,
		LockTime:     0,
		SubnetworkID: b.subnetworkID,
		Gas:          0,
		Payload:      b.payload,
	}
}

// Sign validates the builder's invariants, signs every input in the order
// it was added (reusing a single SighashReusedValues cache), and returns
// the fully signed transaction.
func (b *Builder) Sign() (*transaction.Transaction, error) {
	if len(b.inputs) == 0 || len(b.outputs) == 0 {
		return nil, fmt.Errorf("txbuilder: sign: %d inputs, %d outputs: %w", len(b.inputs), len(b.outputs), walleterrors.ErrEmptyTransaction)
	}

	tx := b.buildSkeleton()
	reused := &sighash.ReusedValues{}

	for i, in := range b.inputs {
		if in.spendingKey == nil {
			return nil, fmt.Errorf("txbuilder: sign: input %d: %w", i, walleterrors.ErrMissingKey)
		}
		script, err := b.signInput(tx, i, in.utxo, in.spendingKey, reused)
		if err != nil {
			return nil, err
		}
		tx.Inputs[i].SignatureScript = script
	}
	return tx, nil
}

// SignInput signs a single input of an already-built skeleton, for
// callers that need finer control than Sign's all-at-once pass (e.g.
// partial signing, or re-signing after editing unrelated fields).
func (b *Builder) SignInput(tx *transaction.Transaction, index int, utxo *transaction.UtxoForSigning, key *keys.KeyPair, reused *sighash.ReusedValues) error {
	script, err := b.signInput(tx, index, utxo, key, reused)
	if err != nil {
		return err
	}
	tx.Inputs[index].SignatureScript = script
	return nil
}

func (b *Builder) signInput(tx *transaction.Transaction, index int, utxo *transaction.UtxoForSigning, key *keys.KeyPair, reused *sighash.ReusedValues) ([]byte, error) {
	version, ok := utxo.ScriptPublicKey.Shape()
	if !ok {
		return nil, fmt.Errorf("txbuilder: sign input %d: unrecognized script-public-key shape: %w", index, walleterrors.ErrInvalidTransaction)
	}

	switch version {
	case transaction.AddressVersionECDSA:
		digest, err := sighash.ComputeECDSA(tx, index, utxo, sighash.SigHashAll, reused)
		if err != nil {
			return nil, fmt.Errorf("txbuilder: sign input %d: %w", index, err)
		}
		script, err := signer.SignECDSA(key, digest, sighash.SigHashAll)
		if err != nil {
			return nil, fmt.Errorf("txbuilder: sign input %d: %w", index, err)
		}
		return script, nil
	case transaction.AddressVersionSchnorr:
		digest, err := sighash.ComputeSchnorr(tx, index, utxo, sighash.SigHashAll, reused)
		if err != nil {
			return nil, fmt.Errorf("txbuilder: sign input %d: %w", index, err)
		}
		script, err := signer.SignSchnorr(key, digest, sighash.SigHashAll)
		if err != nil {
			return nil, fmt.Errorf("txbuilder: sign input %d: %w", index, err)
		}
		return script, nil
	default:
		// P2SH redemption requires supplying the redeem script, which is
		// out of scope for this key-only signing path.
		return nil, fmt.Errorf("txbuilder: sign input %d: script-public-key version %d (P2SH): %w", index, version, walleterrors.ErrInvalidTransaction)
	}
}
