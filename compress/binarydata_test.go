package compress

import (
	"bytes"
	"testing"

	"github.com/BurntNail/sourisdb/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryData_RoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x01, 0x02, 0x03},
		bytes.Repeat([]byte{0xFF}, 1000),
		[]byte("the quick brown fox jumps over the lazy dog, repeatedly, the quick brown fox jumps over the lazy dog"),
	}

	for _, data := range cases {
		encoded, err := EncodeBinaryData(data)
		require.NoError(t, err)

		decoded, err := DecodeBinaryData(encoded)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, decoded))
	}
}

func TestBinaryData_LongRunPicksRLE(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 1000)

	encoded, err := EncodeBinaryData(data)
	require.NoError(t, err)

	assert.Equal(t, byte(format.CompressionRLE), encoded[0])
}

func TestBinaryData_ShortRandomDataPicksRaw(t *testing.T) {
	// Three bytes can't beat Raw's overhead with any of RLE or LZ.
	data := []byte{0x9f, 0x02, 0x7c}

	encoded, err := EncodeBinaryData(data)
	require.NoError(t, err)

	assert.Equal(t, byte(format.CompressionNone), encoded[0])
}
