package walletutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Namp88/hoosat-wallet-core/pkg/address"
	"github.com/Namp88/hoosat-wallet-core/pkg/keys"
)

func TestSompiToHoosatTrimsTrailingZeros(t *testing.T) {
	assert.Equal(t, "1", SompiToHoosat(100_000_000))
	assert.Equal(t, "1.5", SompiToHoosat(150_000_000))
	assert.Equal(t, "0.00000001", SompiToHoosat(1))
	assert.Equal(t, "0", SompiToHoosat(0))
}

func TestHoosatToSompiRoundsToNearest(t *testing.T) {
	v, err := HoosatToSompi("1.23456789")
	require.NoError(t, err)
	assert.Equal(t, uint64(123456789), v)
}

func TestHoosatToSompiRejectsNegative(t *testing.T) {
	_, err := HoosatToSompi("-1")
	assert.Error(t, err)
}

func TestHoosatToSompiRejectsGarbage(t *testing.T) {
	_, err := HoosatToSompi("not-a-number")
	assert.Error(t, err)
}

func TestHoosatToSompiRejectsNaNAndInf(t *testing.T) {
	for _, v := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf"} {
		_, err := HoosatToSompi(v)
		assert.Error(t, err, "value %q should be rejected", v)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	s := SompiToHoosat(19999989000)
	v, err := HoosatToSompi(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(19999989000), v)
}

func TestIsValidAddress(t *testing.T) {
	kp, err := keys.Generate()
	require.NoError(t, err)
	addr, err := address.FromPublicKey(address.Mainnet, kp.SchnorrPublicKey())
	require.NoError(t, err)

	assert.True(t, IsValidAddress(addr))
	assert.False(t, IsValidAddress("not-an-address"))
}

func TestIsValidTxID(t *testing.T) {
	assert.True(t, IsValidTxID("091ea22a707ac840c8291706fca5421a61ee03147f3f9655133d5b62ec38f29f"[:64]))
	assert.False(t, IsValidTxID("too-short"))
	assert.False(t, IsValidTxID("091EA22A707AC840C8291706FCA5421A61EE03147F3F9655133D5B62EC38F29"))
}
