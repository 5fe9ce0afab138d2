package compress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLZ_RoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		bytes.Repeat([]byte("abcabcabcabc"), 50),
	}

	for _, data := range cases {
		encoded, err := LZEncode(data)
		require.NoError(t, err)

		decoded, err := LZDecode(encoded)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, decoded))
	}
}

// TestLZ_IncompressibleReportsSentinel exercises the "too short/incompressible
// for LZ4" path that EncodeBinaryData treats as "this candidate does not
// apply" rather than a hard failure.
func TestLZ_IncompressibleReportsSentinel(t *testing.T) {
	_, err := LZEncode([]byte{0x01})
	if err != nil {
		assert.True(t, errors.Is(err, errs.ErrLZIncompressible))
	}
}

func TestLZ_EmptyInputEncodesToIntegerZeroOnly(t *testing.T) {
	encoded, err := LZEncode(nil)
	require.NoError(t, err)
	// LZEncode returns immediately after writing Integer(0) for zero-length
	// input: one discriminant byte plus the Small-width magnitude byte.
	assert.Len(t, encoded, 2)
}
