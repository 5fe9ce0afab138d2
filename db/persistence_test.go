package db

import (
	"testing"

	"github.com/BurntNail/sourisdb/souris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m, err := New(dir, nil)
	require.NoError(t, err)
	_, _ = m.AddKV("pets", "mouse", souris.NewString("squeak"))
	_, _ = m.NewDB("empty", false)

	require.NoError(t, m.Save())

	reloaded, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())

	v, err := reloaded.GetValue("pets", "mouse")
	require.NoError(t, err)
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "squeak", s)

	assert.ElementsMatch(t, []string{"pets", "empty"}, reloaded.GetAllDBNames())
}

func TestManager_Load_MissingMetaIsNotAnError(t *testing.T) {
	m, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	assert.NoError(t, m.Load())
	assert.Empty(t, m.GetAllDBNames())
}

func TestResolveBaseLocation_HonoursEnvVar(t *testing.T) {
	t.Setenv("BASE_LOCATION", t.TempDir()+"/custom")

	loc, err := ResolveBaseLocation()
	require.NoError(t, err)
	assert.Contains(t, loc, "custom")
}
