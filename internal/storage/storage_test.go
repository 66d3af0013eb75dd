package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`"hello"`)
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(got), "stored value must not alias the caller's slice")

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_LoadMissingReturnsEmpty(t *testing.T) {
	c := NewCollection[item](NewMemory(), KeyTopics, zap.NewNop())

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollection_SaveAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	c := NewCollection[item](kv, KeyComments, zap.NewNop())

	want := []item{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}
	require.NoError(t, c.SaveAll(ctx, want))

	got, err := NewCollection[item](kv, KeyComments, zap.NewNop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCollection_SaveAllNilStoresEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	c := NewCollection[item](kv, KeyNotifications, zap.NewNop())

	require.NoError(t, c.SaveAll(ctx, nil))

	raw, err := kv.Get(ctx, KeyNotifications)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestCollection_CorruptValueIsDiscarded(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.Set(ctx, KeyTopics, []byte("{not json")))

	items, err := NewCollection[item](kv, KeyTopics, zap.NewNop()).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = kv.Get(ctx, KeyTopics)
	assert.ErrorIs(t, err, ErrNotFound, "corrupt key should be cleared")
}

func TestDocument_LoadSaveClear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	d := NewDocument[item](kv, KeyCurrentUser, zap.NewNop())

	_, ok, err := d.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Save(ctx, item{ID: "u1", Name: "alice"}))
	got, ok, err := d.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", got.Name)

	require.NoError(t, d.Clear(ctx))
	_, ok, err = d.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocument_CorruptValueYieldsZero(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.Set(ctx, KeyCurrentUser, []byte(`{"id": 42`)))

	got, ok, err := NewDocument[item](kv, KeyCurrentUser, zap.NewNop()).Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, item{}, got)

	_, err = kv.Get(ctx, KeyCurrentUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoritesKey(t *testing.T) {
	assert.Equal(t, "favorites_user1", FavoritesKey("user1"))
}

func TestRedis_GetSetDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	r, err := NewRedis(mr.Addr(), "test:")
	require.NoError(t, err)
	defer r.Close()

	ctx := context.Background()
	_, err = r.Get(ctx, KeyUsers)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Set(ctx, KeyUsers, []byte(`[]`)))
	assert.True(t, mr.Exists("test:users"), "keys are stored under the prefix")

	got, err := r.Get(ctx, KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, r.Delete(ctx, KeyUsers))
	_, err = r.Get(ctx, KeyUsers)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis_URLAddress(t *testing.T) {
	mr := miniredis.RunT(t)
	r, err := NewRedis("redis://"+mr.Addr()+"/0", "")
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Set(context.Background(), KeyLanguage, []byte(`"ru"`)))
	v, err := mr.Get("language")
	require.NoError(t, err)
	assert.Equal(t, `"ru"`, v)
}

func TestRedis_CollectionCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	r, err := NewRedis(mr.Addr(), "")
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, mr.Set(KeyComments, "garbage"))
	items, err := NewCollection[item](r, KeyComments, zap.NewNop()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, mr.Exists(KeyComments))
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(addr, "")
	assert.Error(t, err)
}
