package compress

import (
	"bytes"
	"testing"

	"github.com/BurntNail/sourisdb/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRLE_RoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x01},
		{0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("aaabbbbccccccd"),
	}

	for _, data := range cases {
		encoded := RLEEncode(data)
		decoded, err := RLEDecode(encoded)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, decoded))
	}
}

func TestRLE_LongRunSplitsAtRunLengthCap(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = 0xFF
	}

	encoded := RLEEncode(data)
	decoded, err := RLEDecode(encoded)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, decoded))
}

func TestRLE_DecodeCorruptPairCount(t *testing.T) {
	_, err := RLEDecode([]byte{0xFF})
	assert.Error(t, err)
}

func TestRLE_DecodeTruncatedPairs(t *testing.T) {
	// count=2 pairs announced, but only one pair's worth of bytes follow.
	encoded := varint.FromUint64(2).Ser(nil)
	encoded = append(encoded, 0x05, 0x41)
	_, err := RLEDecode(encoded)
	assert.Error(t, err)
}
