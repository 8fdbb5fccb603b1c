package bech32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(i)
	}

	addr, err := Encode("hoosat", 0x00, payload)
	require.NoError(t, err)

	prefix, version, got, err := Decode(addr)
	require.NoError(t, err)
	assert.Equal(t, "hoosat", prefix)
	assert.Equal(t, byte(0x00), version)
	assert.Equal(t, payload, got)
}

func TestEncodeSchnorrVersionStartsWithQ(t *testing.T) {
	payload := make([]byte, 32)
	addr, err := Encode("hoosat", 0x00, payload)
	require.NoError(t, err)
	assert.Contains(t, addr, "hoosat:q")
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	payload := make([]byte, 32)
	addr, err := Encode("hoosat", 0x00, payload)
	require.NoError(t, err)

	corrupted := addr[:len(addr)-1] + flipChar(addr[len(addr)-1])
	_, _, _, err = Decode(corrupted)
	assert.Error(t, err)
}

func flipChar(c byte) string {
	if c == 'q' {
		return "p"
	}
	return "q"
}

func TestDecodeRejectsUnknownAlphabetChar(t *testing.T) {
	_, _, _, err := Decode("hoosat:q1bad!char")
	assert.Error(t, err)
}

func TestDecodeRejectsMissingPrefix(t *testing.T) {
	_, _, _, err := Decode("qqqqqqqqqqqqqqqq")
	assert.Error(t, err)
}

func TestDecodeRejectsUppercase(t *testing.T) {
	payload := make([]byte, 32)
	addr, err := Encode("hoosat", 0x00, payload)
	require.NoError(t, err)
	upper := addr[:7] + "Q" + addr[8:]
	_, _, _, err = Decode(upper)
	assert.Error(t, err)
}

func TestEncodeDecodeAllVersions(t *testing.T) {
	versions := []byte{0x00, 0x01, 0x08}
	for _, v := range versions {
		payload := make([]byte, 20)
		addr, err := Encode("hoosattest", v, payload)
		require.NoError(t, err)
		_, gotV, gotP, err := Decode(addr)
		require.NoError(t, err)
		assert.Equal(t, v, gotV)
		assert.Equal(t, payload, gotP)
	}
}
