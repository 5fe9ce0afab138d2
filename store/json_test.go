package store

import (
	"testing"

	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_FromJSON_NumberRanges(t *testing.T) {
	s, err := FromJSON([]byte(`{
		"neg": -5,
		"big_positive": 18446744073709551615,
		"frac": 1.5,
		"str": "hi",
		"flag": true,
		"nothing": null,
		"list": [1, 2, 3],
		"nested": {"a": 1}
	}`))
	require.NoError(t, err)

	neg, ok := s.Get("neg")
	require.True(t, ok)
	i, ok := neg.AsInteger()
	require.True(t, ok)
	v, err := i.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-5), v)

	big, ok := s.Get("big_positive")
	require.True(t, ok)
	bi, _ := big.AsInteger()
	bu, err := bi.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), bu)

	frac, ok := s.Get("frac")
	require.True(t, ok)
	f, ok := frac.AsFloat()
	require.True(t, ok)
	assert.Equal(t, 1.5, f)
}

func TestStore_FromJSON_RootMustBeObject(t *testing.T) {
	_, err := FromJSON([]byte(`[1, 2, 3]`))
	assert.Error(t, err)
}

func TestStore_ToJSON_PlainValuesRoundTrip(t *testing.T) {
	s := New()
	s.Set("name", souris.NewString("mouse"))
	s.Set("count", souris.NewInteger(varint.FromInt64(-7)))
	s.Set("ratio", souris.NewFloat(2.5))
	s.Set("ok", souris.NewBool(true))
	s.Set("nothing", souris.NewNull())

	b, ok := s.ToJSON(false)
	require.True(t, ok)

	got, err := FromJSON(b)
	require.NoError(t, err)

	for k, orig := range s.Pairs() {
		gv, found := got.Get(k)
		require.True(t, found)
		assert.True(t, orig.Equal(gv), "mismatch for %q", k)
	}
}

func TestStore_ToJSON_LossyWithoutSourisTypes(t *testing.T) {
	s := New()
	s.Set("blob", souris.NewBinary([]byte{1, 2, 3}))

	_, ok := s.ToJSON(false)
	assert.False(t, ok)
}

func TestStore_ToJSON_WrapsWithSourisTypes(t *testing.T) {
	s := New()
	s.Set("blob", souris.NewBinary([]byte{1, 2, 3}))

	b, ok := s.ToJSON(true)
	require.True(t, ok)
	assert.Contains(t, string(b), `"souris_type"`)
	assert.Contains(t, string(b), `"payload"`)
}
