package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeu/chatstore/internal/codec"
	"github.com/codeu/chatstore/internal/entitystore"
	"github.com/codeu/chatstore/internal/entitystore/memory"
	"github.com/codeu/chatstore/internal/model"
	"github.com/codeu/chatstore/internal/store"
)

func TestWriteThenLoadUsersScenario(t *testing.T) {
	ctx := context.Background()
	ds := store.New(memory.New())
	t0 := time.UnixMilli(1000).UTC()

	alice := model.NewUser(uuid.New(), "alice", "h1", t0)
	bob := model.NewUser(uuid.New(), "bob", "h2", t0.Add(time.Second))

	require.NoError(t, ds.WriteThrough(ctx, alice))
	require.NoError(t, ds.WriteThrough(ctx, bob))

	users, err := ds.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].Equal(alice))
	assert.True(t, users[1].Equal(bob))
}

func TestDeleteFromRemovesMessage(t *testing.T) {
	ctx := context.Background()
	ds := store.New(memory.New())

	msg := model.NewMessage(uuid.New(), uuid.New(), uuid.New(), "bye", time.UnixMilli(1000))
	require.NoError(t, ds.WriteThrough(ctx, msg))
	require.NoError(t, ds.DeleteFrom(ctx, msg))

	msgs, err := ds.LoadMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestLoadHashtagsLastWriteWinsOnDuplicateContent(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()
	ds := store.New(backing)

	// The backing store does not enforce content uniqueness; two records can
	// share it. The later-enumerated one silently wins.
	first := model.NewHashtag(uuid.New(), "soccer", time.UnixMilli(1000), []string{"u1"}, []string{})
	second := model.NewHashtag(uuid.New(), "soccer", time.UnixMilli(2000), []string{"u2"}, []string{})
	require.NoError(t, ds.WriteThrough(ctx, first))
	require.NoError(t, ds.WriteThrough(ctx, second))

	tags, err := ds.LoadHashtags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.True(t, tags["soccer"].Equal(second))
}

func TestWriteThroughPersistsAssociationsAsGiven(t *testing.T) {
	ctx := context.Background()
	ds := store.New(memory.New())

	tag := model.NewHashtag(uuid.New(), "soccer", time.UnixMilli(1000), []string{"u1"}, []string{})
	require.NoError(t, ds.WriteThrough(ctx, tag))

	// A message mentioning the tag does not grow the tag's source sets; that
	// bookkeeping belongs to the caller.
	msg := model.NewMessage(uuid.New(), uuid.New(), uuid.New(), "#soccer is on", time.UnixMilli(2000))
	require.NoError(t, ds.WriteThrough(ctx, msg))

	tags, err := ds.LoadHashtags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, tags["soccer"].UserSource)
}

func TestLoadFailsOnCorruptRecord(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()
	ds := store.New(backing)

	good := model.NewUser(uuid.New(), "alice", "h", time.UnixMilli(1000))
	require.NoError(t, ds.WriteThrough(ctx, good))

	// Plant a record with no creation time next to the good one.
	bad := entitystore.Properties{}
	bad.SetString("uuid", uuid.New().String())
	require.NoError(t, backing.Put(ctx, codec.KindUser, "bad", bad))

	users, err := ds.LoadUsers(ctx)
	require.Error(t, err)
	assert.Nil(t, users, "a corrupt record fails the whole load, no partial result")
	assert.ErrorIs(t, err, model.ErrDataCorruption)

	var serr *store.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "load", serr.Op)
	assert.Equal(t, codec.KindUser, serr.Kind)
}

type downStore struct{ cause error }

func (d *downStore) Put(ctx context.Context, kind, id string, p entitystore.Properties) error {
	return d.cause
}
func (d *downStore) Delete(ctx context.Context, kind, id string) error { return d.cause }
func (d *downStore) QueryAll(ctx context.Context, kind, orderBy string) ([]entitystore.Record, error) {
	return nil, d.cause
}

func TestUnreachableBackingStoreSurfacesUnavailable(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection refused")
	ds := store.New(&downStore{cause: cause})

	u := model.NewUser(uuid.New(), "alice", "h", time.UnixMilli(1000))

	for name, err := range map[string]error{
		"write":  ds.WriteThrough(ctx, u),
		"delete": ds.DeleteFrom(ctx, u),
	} {
		require.Error(t, err, name)
		assert.ErrorIs(t, err, model.ErrStoreUnavailable, name)
		assert.ErrorIs(t, err, cause, name)
	}

	_, err := ds.LoadUsers(ctx)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	_, err = ds.LoadHashtags(ctx)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestUnsupportedEntityType(t *testing.T) {
	ds := store.New(memory.New())
	err := ds.WriteThrough(context.Background(), struct{}{})
	assert.Error(t, err)
	err = ds.DeleteFrom(context.Background(), 42)
	assert.Error(t, err)
}

func TestLoadEmptyKindsReturnEmptySequences(t *testing.T) {
	ctx := context.Background()
	ds := store.New(memory.New())

	users, err := ds.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	convs, err := ds.LoadConversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, convs)

	acts, err := ds.LoadActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, acts)
}
