package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/BurntNail/sourisdb/db"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	m, err := db.New(t.TempDir(), nil)
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(m, nil))
	t.Cleanup(srv.Close)

	return srv, NewClient(srv.URL)
}

func TestRouter_HealthCheck(t *testing.T) {
	_, client := newTestServer(t)
	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestRouter_FullLifecycle(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	created, err := client.AddDB(ctx, "pets", false)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = client.AddKV(ctx, "pets", "mouse", souris.NewString("squeak"))
	require.NoError(t, err)
	assert.True(t, created)

	v, err := client.GetValue(ctx, "pets", "mouse")
	require.NoError(t, err)
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "squeak", s)

	names, err := client.GetAllDBNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "pets")

	got, err := client.GetDB(ctx, "pets")
	require.NoError(t, err)
	gv, ok := got.Get("mouse")
	require.True(t, ok)
	assert.True(t, v.Equal(gv))

	require.NoError(t, client.RemoveKey(ctx, "pets", "mouse"))
	_, err = client.GetValue(ctx, "pets", "mouse")
	assert.Error(t, err)

	require.NoError(t, client.RemoveDB(ctx, "pets"))
	_, err = client.GetValue(ctx, "pets", "mouse")
	assert.Error(t, err)
}

func TestRouter_AddDBWithContent(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	contents := store.New()
	contents.Set("dog", souris.NewString("woof"))

	created, err := client.AddDBWithContent(ctx, "pets", true, contents)
	require.NoError(t, err)
	assert.True(t, created)

	v, err := client.GetValue(ctx, "pets", "dog")
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "woof", s)
}

func TestRouter_NotFoundMappings(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.GetDB(ctx, "ghost")
	assert.Error(t, err)

	err = client.RemoveDB(ctx, "ghost")
	assert.Error(t, err)
}
