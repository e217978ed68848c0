package alias

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorAddressRoundTrip(t *testing.T) {
	addr := MirrorAddress(0, 0, 1001)
	require.True(t, IsEvmAddress(addr))

	num, ok := MirrorNum(addr, 0, 0)
	require.True(t, ok)
	assert.Equal(t, int64(1001), num)

	_, ok = MirrorNum(addr, 0, 1)
	assert.False(t, ok, "different realm must not decode as mirror")

	notMirror := bytes.Repeat([]byte{0xab}, EvmAddressSize)
	_, ok = MirrorNum(notMirror, 0, 0)
	assert.False(t, ok)
}

func TestParseKeyEd25519(t *testing.T) {
	raw := bytes.Repeat([]byte{0x11}, 32)
	a, err := KeyAlias(KeyTypeEd25519, raw)
	require.NoError(t, err)
	assert.Equal(t, byte(0x12), a[0])

	keyType, parsed, err := ParseKey(a)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeEd25519, keyType)
	assert.Equal(t, raw, parsed)

	_, err = EvmAddressFromKeyAlias(a)
	assert.ErrorIs(t, err, ErrNotECDSAKey)
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":         {},
		"short ed25519": append([]byte{0x12, 0x02}, 0x01, 0x02),
		"varint field":  {0x10, 0x01},
		"unknown field": append([]byte{0x1a, 0x20}, bytes.Repeat([]byte{1}, 32)...),
		"trailing":      append(append([]byte{0x12, 0x20}, bytes.Repeat([]byte{1}, 32)...), 0x00),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseKey(data)
			assert.ErrorIs(t, err, ErrInvalidKeyAlias)
		})
	}
}

func TestEvmAddressFromECDSAKey(t *testing.T) {
	// secp256k1 generator point; its address is the well-known address of private key 1.
	priv, _ := btcec.PrivKeyFromBytes(append(make([]byte, 31), 0x01))
	a, err := KeyAlias(KeyTypeECDSASecp256k1, priv.PubKey().SerializeCompressed())
	require.NoError(t, err)
	assert.Equal(t, byte(0x3a), a[0])

	addr, err := EvmAddressFromKeyAlias(a)
	require.NoError(t, err)
	assert.Equal(t, "7e5f4552091a69125d5dfcb7b8c2659029395bdf", hex.EncodeToString(addr))
}
