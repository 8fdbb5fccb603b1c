package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Namp88/hoosat-wallet-core/pkg/transaction"
)

func TestFromPublicKeySchnorrStartsWithQ(t *testing.T) {
	addr, err := FromPublicKey(Mainnet, make([]byte, 32))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "hoosat:q"))

	d, err := Decode(addr)
	require.NoError(t, err)
	assert.Equal(t, transaction.AddressVersionSchnorr, d.Version)
}

func TestFromPublicKeyECDSAVersion(t *testing.T) {
	addr, err := FromPublicKey(Mainnet, make([]byte, 33))
	require.NoError(t, err)

	d, err := Decode(addr)
	require.NoError(t, err)
	assert.Equal(t, transaction.AddressVersionECDSA, d.Version)
}

func TestFromPublicKeyRejectsBadLength(t *testing.T) {
	_, err := FromPublicKey(Mainnet, make([]byte, 20))
	assert.Error(t, err)
}

func TestFromScriptHashRoundTrip(t *testing.T) {
	addr, err := FromScriptHash(Testnet, make([]byte, 32))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "hoosattest:"))

	d, err := Decode(addr)
	require.NoError(t, err)
	assert.Equal(t, transaction.AddressVersionP2SH, d.Version)
	assert.Equal(t, Testnet, d.Network)
}

func TestDecodeRejectsUnknownPrefix(t *testing.T) {
	addr, err := FromPublicKey(Mainnet, make([]byte, 32))
	require.NoError(t, err)
	bad := strings.Replace(addr, "hoosat:", "nothoosat:", 1)
	_, err = Decode(bad)
	assert.Error(t, err)
}

func TestDecodeAddressRoundTripAllNetworks(t *testing.T) {
	for _, network := range []Network{Mainnet, Testnet} {
		addr, err := FromPublicKey(network, make([]byte, 32))
		require.NoError(t, err)
		d, err := Decode(addr)
		require.NoError(t, err)
		assert.Equal(t, network, d.Network)
	}
}
