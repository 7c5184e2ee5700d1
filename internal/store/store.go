// Package store exposes the PersistentDataStore façade: a thin, synchronous
// translation layer between typed chat entities and the backing entity store.
// It performs no retries, no caching and no logging; recovery policy belongs
// to the caller.
package store

import (
	"context"
	"fmt"

	"github.com/codeu/chatstore/internal/codec"
	"github.com/codeu/chatstore/internal/entitystore"
	"github.com/codeu/chatstore/internal/model"
)

// PersistentDataStore holds no mutable state beyond the backing handle, so a
// single instance is safe to share across concurrent callers.
type PersistentDataStore struct {
	backing entitystore.Store
}

// New wires the façade to a backing entity store. The handle is injected so
// tests can substitute an in-memory driver.
func New(backing entitystore.Store) *PersistentDataStore {
	return &PersistentDataStore{backing: backing}
}

// WriteThrough encodes the entity and upserts it by kind and id. Writing the
// same id twice overwrites in place; the backing store's last-write-wins
// semantics decide races. Denormalized associations (hashtag source sets) are
// persisted exactly as given, never inferred from other writes.
func (s *PersistentDataStore) WriteThrough(ctx context.Context, entity any) error {
	var (
		kind  string
		id    string
		props entitystore.Properties
	)
	switch e := entity.(type) {
	case *model.User:
		kind, id, props = codec.KindUser, e.ID.String(), codec.EncodeUser(e)
	case *model.Conversation:
		kind, id, props = codec.KindConversation, e.ID.String(), codec.EncodeConversation(e)
	case *model.Message:
		kind, id, props = codec.KindMessage, e.ID.String(), codec.EncodeMessage(e)
	case *model.Hashtag:
		kind, id, props = codec.KindHashtag, e.ID.String(), codec.EncodeHashtag(e)
	case *model.Activity:
		kind, id, props = codec.KindActivity, e.ID.String(), codec.EncodeActivity(e)
	default:
		return &Error{Op: "write", Err: fmt.Errorf("unsupported entity type %T", entity)}
	}
	if err := s.backing.Put(ctx, kind, id, props); err != nil {
		return unavailable("write", kind, err)
	}
	return nil
}

// DeleteFrom removes the record identified by the entity's kind and id.
// Deleting an absent id is a no-op.
func (s *PersistentDataStore) DeleteFrom(ctx context.Context, entity any) error {
	var kind, id string
	switch e := entity.(type) {
	case *model.User:
		kind, id = codec.KindUser, e.ID.String()
	case *model.Conversation:
		kind, id = codec.KindConversation, e.ID.String()
	case *model.Message:
		kind, id = codec.KindMessage, e.ID.String()
	case *model.Hashtag:
		kind, id = codec.KindHashtag, e.ID.String()
	case *model.Activity:
		kind, id = codec.KindActivity, e.ID.String()
	default:
		return &Error{Op: "delete", Err: fmt.Errorf("unsupported entity type %T", entity)}
	}
	if err := s.backing.Delete(ctx, kind, id); err != nil {
		return unavailable("delete", kind, err)
	}
	return nil
}

// LoadUsers returns every stored user sorted ascending by creation time.
// An empty kind yields an empty slice, not an error.
func (s *PersistentDataStore) LoadUsers(ctx context.Context) ([]*model.User, error) {
	return loadKind(ctx, s, codec.KindUser, codec.DecodeUser)
}

// LoadConversations returns every stored conversation sorted ascending by
// creation time.
func (s *PersistentDataStore) LoadConversations(ctx context.Context) ([]*model.Conversation, error) {
	return loadKind(ctx, s, codec.KindConversation, codec.DecodeConversation)
}

// LoadMessages returns every stored message sorted ascending by creation time.
func (s *PersistentDataStore) LoadMessages(ctx context.Context) ([]*model.Message, error) {
	return loadKind(ctx, s, codec.KindMessage, codec.DecodeMessage)
}

// LoadActivities returns every stored activity sorted ascending by creation
// time.
func (s *PersistentDataStore) LoadActivities(ctx context.Context) ([]*model.Activity, error) {
	return loadKind(ctx, s, codec.KindActivity, codec.DecodeActivity)
}

// LoadHashtags returns stored hashtags keyed by content, since hashtag lookup
// is always by display text. When two records share content the
// later-enumerated one silently wins.
func (s *PersistentDataStore) LoadHashtags(ctx context.Context) (map[string]*model.Hashtag, error) {
	recs, err := s.backing.QueryAll(ctx, codec.KindHashtag, codec.CreationTimeProperty)
	if err != nil {
		return nil, unavailable("load", codec.KindHashtag, err)
	}
	out := make(map[string]*model.Hashtag, len(recs))
	for _, r := range recs {
		h, err := codec.DecodeHashtag(r.Props)
		if err != nil {
			return nil, &Error{Op: "load", Kind: codec.KindHashtag, Err: err}
		}
		out[h.Content] = h
	}
	return out, nil
}

// loadKind queries all records of a kind pre-sorted by creation time and
// decodes each one. A single corrupt record fails the whole call; a partial,
// ambiguous result would be worse than a hard failure.
func loadKind[E any](ctx context.Context, s *PersistentDataStore, kind string, decode func(entitystore.Properties) (E, error)) ([]E, error) {
	recs, err := s.backing.QueryAll(ctx, kind, codec.CreationTimeProperty)
	if err != nil {
		return nil, unavailable("load", kind, err)
	}
	out := make([]E, 0, len(recs))
	for _, r := range recs {
		e, err := decode(r.Props)
		if err != nil {
			return nil, &Error{Op: "load", Kind: kind, Err: err}
		}
		out = append(out, e)
	}
	return out, nil
}
