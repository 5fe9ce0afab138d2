package bits

import (
	"testing"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBits_PushIndex(t *testing.T) {
	b := New()
	b.Push(true)
	b.Push(false)
	b.Push(true)

	assert.Equal(t, 3, b.Len())

	v, ok := b.Index(0)
	require.True(t, ok)
	assert.True(t, v)

	v, ok = b.Index(1)
	require.True(t, ok)
	assert.False(t, v)

	v, ok = b.Index(2)
	require.True(t, ok)
	assert.True(t, v)
}

func TestBits_PushPopIsIdentity(t *testing.T) {
	b := New()
	for _, v := range []bool{true, false, true, true, false, false, false, true, true} {
		b.Push(v)
	}

	original := b.Len()
	var popped []bool
	for {
		v, ok := b.Pop()
		if !ok {
			break
		}
		popped = append(popped, v)
	}

	assert.Equal(t, original, len(popped))
	assert.Equal(t, 0, b.Len())
}

func TestBits_TrailingBitsStayZero(t *testing.T) {
	b := New()
	for i := 0; i < 5; i++ {
		b.Push(true)
	}
	// 5 valid bits in a single byte; bits 5..7 must be zero.
	raw := b.Ser(nil)
	lastByte := raw[len(raw)-1]
	assert.Equal(t, byte(0b0001_1111), lastByte)
}

func TestBits_SerDeserRoundTrip(t *testing.T) {
	b := New()
	pattern := []bool{true, true, false, true, false, false, true, false, true, true, false}
	for _, v := range pattern {
		b.Push(v)
	}

	raw := b.Ser(nil)
	c := cursor.New(raw)
	got, err := Deser(c)
	require.NoError(t, err)

	assert.True(t, b.Equal(got))
	assert.Equal(t, b.Len(), got.Len())
	for i, want := range pattern {
		v, ok := got.Index(i)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
}

func TestBits_EmptyRoundTrip(t *testing.T) {
	b := New()
	raw := b.Ser(nil)
	c := cursor.New(raw)
	got, err := Deser(c)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestBits_ClearResetsLength(t *testing.T) {
	b := New()
	b.Push(true)
	b.Push(true)
	b.Clear()
	assert.Equal(t, 0, b.Len())

	_, ok := b.Index(0)
	assert.False(t, ok)
}
