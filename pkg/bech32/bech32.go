// Package bech32 implements the chain's address codec: a bech32-family
// encoding with a CashAddr-derived polymod checksum, a "prefix:data"
// separator instead of bech32's "1", and a version byte folded into the
// payload before 5-bit expansion.
package bech32

import (
	"fmt"
	"strings"

	"github.com/Namp88/hoosat-wallet-core/pkg/walleterrors"
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// checksumConst is XORed into the final polymod result, the same way
// bech32 XORs in 1 and bech32m XORs in 0x2bc830a3 -- this chain's variant
// reuses the CashAddr convention of XORing in 1.
const checksumConst = 1

var charsetRev = func() [128]int8 {
	var rev [128]int8
	for i := range rev {
		rev[i] = -1
	}
	for i, c := range charset {
		rev[c] = int8(i)
	}
	return rev
}()

// generator is the chain's custom polymod generator, distinct from both
// the standard bech32 and bech32m generator constants.
var generator = [5]uint64{
	0x98f2bc8e61,
	0x79b76d99e2,
	0xf33e5fb3c4,
	0xae2eabe2a8,
	0x1e4f43e470,
}

func polymod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := byte(c >> 35)
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)
		for i := 0; i < 5; i++ {
			if (c0>>uint(i))&1 != 0 {
				c ^= generator[i]
			}
		}
	}
	return c
}

func prefixExpand(prefix string) []byte {
	out := make([]byte, len(prefix))
	for i := 0; i < len(prefix); i++ {
		out[i] = prefix[i] & 0x1f
	}
	return out
}

func checksum(prefix string, payload5 []byte) []byte {
	data := prefixExpand(prefix)
	data = append(data, 0)
	data = append(data, payload5...)
	data = append(data, make([]byte, 8)...)
	mod := polymod(data) ^ checksumConst

	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		shift := uint(5 * (7 - i))
		out[i] = byte((mod >> shift) & 0x1f)
	}
	return out
}

// convertBits repacks a bit string from `from`-bit groups to `to`-bit
// groups. When pad is false, trailing bits must all be zero or the
// conversion fails -- this is how Decode rejects a malformed payload with
// trailing non-zero padding bits.
func convertBits(data []byte, from, to uint, pad bool) ([]byte, bool) {
	acc := uint32(0)
	bits := uint(0)
	var out []byte
	maxV := uint32(1<<to) - 1
	maxAcc := uint32(1<<(from+to-1)) - 1

	for _, value := range data {
		v := uint32(value)
		if v>>from != 0 {
			return nil, false
		}
		acc = ((acc << from) | v) & maxAcc
		bits += from
		for bits >= to {
			bits -= to
			out = append(out, byte((acc>>bits)&maxV))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, byte((acc<<(to-bits))&maxV))
		}
	} else if bits >= from || ((acc<<(to-bits))&maxV) != 0 {
		return nil, false
	}

	return out, true
}

// Encode produces a human-readable "prefix:data" address string for the
// given version byte and payload, expanding versionByte‖payload to 5-bit
// groups and appending an 8-character checksum.
func Encode(prefix string, versionByte byte, payload []byte) (string, error) {
	raw := make([]byte, 0, len(payload)+1)
	raw = append(raw, versionByte)
	raw = append(raw, payload...)

	data5, ok := convertBits(raw, 8, 5, true)
	if !ok {
		return "", fmt.Errorf("bech32: encode: payload of %d bytes failed 8-to-5-bit conversion: %w", len(payload), walleterrors.ErrInvalidAddress)
	}

	chk := checksum(prefix, data5)
	all := append(data5, chk...)

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte(':')
	for _, v := range all {
		sb.WriteByte(charset[v])
	}
	return sb.String(), nil
}

// Decode reverses Encode, verifying the checksum and returning the
// version byte and raw payload.
func Decode(address string) (prefix string, versionByte byte, payload []byte, err error) {
	sep := strings.LastIndexByte(address, ':')
	if sep < 0 {
		return "", 0, nil, fmt.Errorf("bech32: decode: %q: missing ':' separator: %w", address, walleterrors.ErrInvalidAddress)
	}
	prefix = address[:sep]
	data := address[sep+1:]
	if prefix == "" || data == "" {
		return "", 0, nil, fmt.Errorf("bech32: decode: %q: empty prefix or data half: %w", address, walleterrors.ErrInvalidAddress)
	}
	if strings.ToLower(address) != address {
		return "", 0, nil, fmt.Errorf("bech32: decode: %q: mixed case not allowed: %w", address, walleterrors.ErrInvalidAddress)
	}

	data5 := make([]byte, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c >= 128 || charsetRev[c] == -1 {
			return "", 0, nil, fmt.Errorf("bech32: decode: %q: byte %d (%q) not in charset: %w", address, i, c, walleterrors.ErrInvalidAddress)
		}
		data5[i] = byte(charsetRev[c])
	}

	if len(data5) < 8 {
		return "", 0, nil, fmt.Errorf("bech32: decode: %q: data half shorter than the 8-character checksum: %w", address, walleterrors.ErrInvalidAddress)
	}
	payload5 := data5[:len(data5)-8]
	chk := data5[len(data5)-8:]

	want := checksum(prefix, payload5)
	for i := range want {
		if want[i] != chk[i] {
			return "", 0, nil, fmt.Errorf("bech32: decode: %q: checksum mismatch: %w", address, walleterrors.ErrInvalidAddress)
		}
	}

	raw, ok := convertBits(payload5, 5, 8, false)
	if !ok || len(raw) < 1 {
		return "", 0, nil, fmt.Errorf("bech32: decode: %q: 5-to-8-bit conversion failed or produced no version byte: %w", address, walleterrors.ErrInvalidAddress)
	}

	return prefix, raw[0], raw[1:], nil
}
