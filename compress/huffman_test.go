package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuffmanBytes_Empty(t *testing.T) {
	encoded := EncodeBytes(nil)
	assert.Equal(t, []byte{0x00}, encoded)

	decoded, err := DecodeBytes(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestHuffmanBytes_SingleDistinctSymbol(t *testing.T) {
	data := []byte{0x41, 0x41, 0x41, 0x41, 0x41}

	encoded := EncodeBytes(data)
	assert.Equal(t, byte(0x01), encoded[0])

	decoded, err := DecodeBytes(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestHuffmanBytes_GeneralCase(t *testing.T) {
	data := []byte("abracadabra, the quick brown fox jumps over the lazy dog")

	encoded := EncodeBytes(data)
	assert.Equal(t, byte(0x02), encoded[0])

	decoded, err := DecodeBytes(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestHuffmanBytes_TwoDistinctSymbols(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x01}

	encoded := EncodeBytes(data)
	decoded, err := DecodeBytes(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestHuffmanRunes_RoundTrip(t *testing.T) {
	data := []rune("héllo wörld 日本語 日本語 日本語")

	encoded := EncodeRunes(data)
	decoded, err := DecodeRunes(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestHuffmanBytes_CorruptTagFails(t *testing.T) {
	_, err := DecodeBytes([]byte{0x05})
	assert.Error(t, err)
}
