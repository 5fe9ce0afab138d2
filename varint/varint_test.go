package varint

import (
	"testing"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteger_S1_NicheFromSpec(t *testing.T) {
	// Integer::u64(1).ser() == [0b01_100_001, 0x01]
	i := FromUint64(1)

	got := i.Ser(nil)
	require.Equal(t, []byte{0b01_100_001, 0x01}, got)

	c := cursor.New(got)
	back, err := Deser(c)
	require.NoError(t, err)
	assert.Equal(t, Large, back.OriginalSize())
	v, err := back.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestInteger_ZeroIsCanonical(t *testing.T) {
	i := FromUint8(0)
	got := i.Ser(nil)
	assert.Equal(t, []byte{0b01_001_001, 0x00}, got)
}

func TestInteger_RoundTrip(t *testing.T) {
	cases := []Integer{
		FromUint8(0xFF),
		FromUint16(0x1234),
		FromUint32(0xDEADBEEF),
		FromUint64(0x1122334455667788),
		FromInt8(-5),
		FromInt16(-1234),
		FromInt32(-70000),
		FromInt64(-1),
	}

	for _, orig := range cases {
		buf := orig.Ser(nil)
		c := cursor.New(buf)
		got, err := Deser(c)
		require.NoError(t, err)
		assert.True(t, orig.Equal(got), "round trip mismatch for %s", orig.String())
		assert.True(t, c.IsFinished())
	}
}

func TestInteger_StoredSizeNarrowsButOriginalSizePersists(t *testing.T) {
	// A Large-declared Integer holding a small value should still serialize
	// original_size=Large, stored_size=Small, and deserialize back to
	// OriginalSize()==Large even though only one magnitude byte is on the wire.
	i := FromUint64(1)
	buf := i.Ser(nil)

	discriminant := buf[0]
	originalSize := Size(discriminant >> 3 & 0b111)
	storedSize := Size(discriminant & 0b111)

	assert.Equal(t, Large, originalSize)
	assert.Equal(t, Small, storedSize)
	assert.Len(t, buf, 2) // discriminant + 1 magnitude byte
}

func TestInteger_TryIntoRejectsCrossWidth(t *testing.T) {
	i := FromUint64(1) // OriginalSize == Large

	_, err := i.TryUint8()
	assert.Error(t, err, "narrowing a Large-declared Integer into uint8 must fail")

	v, err := i.TryUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestInteger_TryIntoRejectsNegativeForUnsigned(t *testing.T) {
	i := FromInt32(-1)

	_, err := i.TryUint32()
	assert.Error(t, err)

	v, err := i.TryInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}

func TestParseString(t *testing.T) {
	i, err := ParseString("-42")
	require.NoError(t, err)
	assert.Equal(t, SignedNegative, i.SignedState())
	assert.Equal(t, Small, i.OriginalSize())

	j, err := ParseString("70000")
	require.NoError(t, err)
	assert.Equal(t, Unsigned, j.SignedState())
	assert.Equal(t, Medium, j.OriginalSize())
}

func TestParseString_InvalidText(t *testing.T) {
	_, err := ParseString("not a number")
	assert.Error(t, err)
}

func TestDeser_InvalidSignedState(t *testing.T) {
	c := cursor.New([]byte{0b00_100_001, 0x01}) // signed_state bits == 00, reserved
	_, err := Deser(c)
	assert.Error(t, err)
}

func TestDeser_NotEnoughBytes(t *testing.T) {
	c := cursor.New([]byte{0b01_100_100}) // claims 8 stored bytes but none follow
	_, err := Deser(c)
	assert.Error(t, err)
}
