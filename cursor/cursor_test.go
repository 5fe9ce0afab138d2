package cursor

import (
	"testing"

	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ReadAdvances(t *testing.T) {
	c := New([]byte{1, 2, 3, 4, 5})

	got, err := c.Read(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got)
	assert.Equal(t, 2, c.Pos())
	assert.Equal(t, 3, c.Len())
}

func TestCursor_ReadPastEndFails(t *testing.T) {
	c := New([]byte{1, 2})

	_, err := c.Read(3)
	assert.ErrorIs(t, err, errs.ErrNotEnoughBytes)
}

func TestCursor_PeekDoesNotAdvance(t *testing.T) {
	c := New([]byte{9, 8, 7})

	got, err := c.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8}, got)
	assert.Equal(t, 0, c.Pos())
}

func TestCursor_SeekForwardAndBackward(t *testing.T) {
	c := New([]byte{1, 2, 3, 4, 5})

	require.NoError(t, c.Seek(3))
	assert.Equal(t, 3, c.Pos())

	require.NoError(t, c.Seek(-2))
	assert.Equal(t, 1, c.Pos())
}

func TestCursor_SeekSaturatesAtZero(t *testing.T) {
	c := New([]byte{1, 2, 3})
	require.NoError(t, c.Seek(1))

	require.NoError(t, c.Seek(-100))
	assert.Equal(t, 0, c.Pos())
}

func TestCursor_SeekPastEndFails(t *testing.T) {
	c := New([]byte{1, 2, 3})

	err := c.Seek(10)
	assert.Error(t, err)
}

func TestCursor_ReadRemaining(t *testing.T) {
	c := New([]byte{1, 2, 3, 4})
	_, err := c.Read(1)
	require.NoError(t, err)

	rest := c.ReadRemaining()
	assert.Equal(t, []byte{2, 3, 4}, rest)
	assert.True(t, c.IsFinished())
}

func TestCursor_ReadByte(t *testing.T) {
	c := New([]byte{0xAB, 0xCD})

	b, err := c.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)
}
