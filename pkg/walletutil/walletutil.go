// Package walletutil holds small conversions and validators shared across
// the wallet-core packages: base-unit <-> decimal-string conversion, and
// shallow address/transaction-id format checks.
package walletutil

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Namp88/hoosat-wallet-core/pkg/address"
	"github.com/Namp88/hoosat-wallet-core/pkg/walleterrors"
)

// BaseUnitsPerCoin is the number of base units ("sompi") in one coin.
const BaseUnitsPerCoin = 100_000_000

// SompiToHoosat formats amount base units as a decimal coin string with
// up to 8 fractional digits, trimming trailing zeros.
func SompiToHoosat(amount uint64) string {
	whole := amount / BaseUnitsPerCoin
	frac := amount % BaseUnitsPerCoin
	s := fmt.Sprintf("%d.%08d", whole, frac)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// HoosatToSompi parses a decimal coin string into base units, rounding
// value * 10^8 to the nearest integer.
func HoosatToSompi(value string) (uint64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("walletutil: hoosat to sompi: %q is not a non-negative decimal: %w", value, walleterrors.ErrInvalidTransaction)
	}
	scaled := f*BaseUnitsPerCoin + 0.5
	if scaled < 0 || scaled > math.MaxUint64 {
		return 0, fmt.Errorf("walletutil: hoosat to sompi: %q scales outside uint64 range: %w", value, walleterrors.ErrInvalidTransaction)
	}
	return uint64(scaled), nil
}

// IsValidAddress reports whether addr decodes successfully as a chain
// address.
func IsValidAddress(addr string) bool {
	_, err := address.Decode(addr)
	return err == nil
}

// IsValidTxID reports whether s is a syntactically valid transaction id:
// 64 lowercase hex characters.
func IsValidTxID(s string) bool {
	if len(s) != 64 {
		return false
	}
	if strings.ToLower(s) != s {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
