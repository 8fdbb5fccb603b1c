// Package walleterrors collects the sentinel error kinds the wallet core
// surfaces to callers. Every failure mode named by a component is one of
// these, wrapped with fmt.Errorf("%w", ...) so callers can still
// errors.Is/As against the sentinel while getting a message with enough
// context (input index, offending field) to act on.
package walleterrors

import "errors"

var (
	// ErrInvalidAddress covers bech32 decode failure, unknown version
	// byte, or wrong payload length.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidKey covers an out-of-range scalar or corrupt key material.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidTransaction covers structural problems: no inputs, no
	// outputs, negative amount, duplicate outpoint.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrInsufficientFunds is returned when inputs don't cover outputs
	// plus fee at change-computation time.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTooManyRecipients is returned when the non-change output cap is
	// exceeded.
	ErrTooManyRecipients = errors.New("too many recipients")

	// ErrMissingKey is returned when an input has no spending key at
	// sign time.
	ErrMissingKey = errors.New("missing spending key")

	// ErrSerializationError covers varint overflow or a length exceeding
	// the protocol cap.
	ErrSerializationError = errors.New("serialization error")

	// ErrSigningError covers a secp256k1 failure.
	ErrSigningError = errors.New("signing error")

	// ErrEmptyTransaction is returned when Sign is called with no inputs
	// or no outputs.
	ErrEmptyTransaction = errors.New("empty transaction")
)
