package store

import (
	"testing"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_S5_EmptyHeader(t *testing.T) {
	got := New().Ser(nil)

	want := append([]byte{}, "DADDYSTORE"...)
	want = append(want, 0)
	want = append(want, Version...)
	want = append(want, 0)
	want = append(want, "SIZE"...)
	want = append(want, 0)
	want = varint.FromUint64(0).Ser(want)
	want = append(want, 0)

	assert.Equal(t, want, got)
}

func TestStore_RoundTrip(t *testing.T) {
	s := New()
	s.Set("name", souris.NewString("mouse"))
	s.Set("age", souris.NewInteger(varint.FromUint8(3)))
	s.Set("tags", souris.NewArray([]souris.Value{souris.NewString("small"), souris.NewString("grey")}))

	buf := s.Ser(nil)
	got, err := Deser(cursor.New(buf))
	require.NoError(t, err)

	assert.Equal(t, s.Len(), got.Len())
	for k, v := range s.Pairs() {
		gv, ok := got.Get(k)
		require.True(t, ok)
		assert.True(t, v.Equal(gv), "mismatch for key %q", k)
	}
}

func TestStore_RoundTrip_Empty(t *testing.T) {
	s := New()
	buf := s.Ser(nil)

	got, err := Deser(cursor.New(buf))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestStore_Deser_RejectsBadMagic(t *testing.T) {
	buf := []byte("NOTASTORE!")
	_, err := Deser(cursor.New(buf))
	assert.Error(t, err)
}

func TestStore_Deser_RejectsBadVersion(t *testing.T) {
	buf := append([]byte{}, "DADDYSTORE"...)
	buf = append(buf, 0)
	buf = append(buf, "V9_9_9"...)
	buf = append(buf, 0)

	_, err := Deser(cursor.New(buf))
	assert.Error(t, err)
}

func TestStore_Merge(t *testing.T) {
	a := New()
	a.Set("x", souris.NewInteger(varint.FromUint8(1)))

	b := New()
	b.Set("y", souris.NewInteger(varint.FromUint8(2)))

	a.Merge(b)
	assert.Equal(t, 2, a.Len())
}

func TestStore_Delete(t *testing.T) {
	s := New()
	s.Set("k", souris.NewNull())

	assert.True(t, s.Delete("k"))
	assert.False(t, s.Delete("k"))
	assert.Equal(t, 0, s.Len())
}
