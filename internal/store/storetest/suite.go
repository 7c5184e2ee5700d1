// Package storetest holds a compliance suite run against every entitystore
// driver through the PersistentDataStore façade. Implementations provide a
// clean, isolated backing store from makeStore.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/codeu/chatstore/internal/entitystore"
	"github.com/codeu/chatstore/internal/model"
	"github.com/codeu/chatstore/internal/store"
)

// Run exercises the persistence contract: round-trip identity, creation-time
// ordering, idempotent delete, keyed hashtag lookup and empty-kind loads.
func Run(t *testing.T, makeStore func(t *testing.T) entitystore.Store) {
	t.Helper()

	ds := store.New(makeStore(t))
	ctx := context.Background()
	t0 := time.UnixMilli(1000).UTC()

	// Empty kinds load as empty sequences, never failures.
	if users, err := ds.LoadUsers(ctx); err != nil || len(users) != 0 {
		t.Fatalf("LoadUsers on empty store: n=%d err=%v", len(users), err)
	}
	if tags, err := ds.LoadHashtags(ctx); err != nil || len(tags) != 0 {
		t.Fatalf("LoadHashtags on empty store: n=%d err=%v", len(tags), err)
	}

	// Users: written out of timestamp order, loaded in ascending order with
	// every field surviving the round trip.
	alice := model.NewUser(uuid.New(), "alice", "h1", t0)
	alice.SetEmail("alice@example.test")
	alice.AddHashtag("soccer")
	alice.AddHashtag("chess")
	bob := model.NewUser(uuid.New(), "bob", "h2", t0.Add(time.Second))
	bob.SetAdmin(true)

	if err := ds.WriteThrough(ctx, bob); err != nil {
		t.Fatalf("WriteThrough bob: %v", err)
	}
	if err := ds.WriteThrough(ctx, alice); err != nil {
		t.Fatalf("WriteThrough alice: %v", err)
	}
	users, err := ds.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 2 || users[0].Name != "alice" || users[1].Name != "bob" {
		t.Fatalf("LoadUsers order: got %v", userNames(users))
	}
	if !users[0].Equal(alice) {
		t.Fatalf("alice round trip mismatch: %+v vs %+v", users[0], alice)
	}
	if !users[1].Equal(bob) {
		t.Fatalf("bob round trip mismatch: %+v vs %+v", users[1], bob)
	}

	// Overwriting the same id is idempotent upsert, not a duplicate.
	alice.SetAboutMe("updated")
	if err := ds.WriteThrough(ctx, alice); err != nil {
		t.Fatalf("WriteThrough alice again: %v", err)
	}
	if users, err = ds.LoadUsers(ctx); err != nil || len(users) != 2 {
		t.Fatalf("LoadUsers after overwrite: n=%d err=%v", len(users), err)
	}
	if users[0].AboutMe != "updated" {
		t.Fatalf("overwrite not applied: %q", users[0].AboutMe)
	}

	// Conversations: the nil member set of a public conversation and the
	// empty-but-present set of a private one are distinct states.
	public := model.NewConversation(uuid.New(), alice.ID, "town-square", t0, false)
	private := model.NewConversation(uuid.New(), bob.ID, "backroom", t0.Add(time.Second), true)
	if err := ds.WriteThrough(ctx, public); err != nil {
		t.Fatalf("WriteThrough public conversation: %v", err)
	}
	if err := ds.WriteThrough(ctx, private); err != nil {
		t.Fatalf("WriteThrough private conversation: %v", err)
	}
	convs, err := ds.LoadConversations(ctx)
	if err != nil || len(convs) != 2 {
		t.Fatalf("LoadConversations: n=%d err=%v", len(convs), err)
	}
	if convs[0].Members != nil {
		t.Fatalf("public conversation should load with nil members, got %v", convs[0].Members)
	}
	if convs[1].Members == nil || len(convs[1].Members) != 0 {
		t.Fatalf("private conversation should load with empty non-nil members, got %v", convs[1].Members)
	}

	// Messages: write, then idempotent delete leaves the kind empty.
	msg := model.NewMessage(uuid.New(), public.ID, alice.ID, "hello", t0)
	if err := ds.WriteThrough(ctx, msg); err != nil {
		t.Fatalf("WriteThrough message: %v", err)
	}
	if err := ds.DeleteFrom(ctx, msg); err != nil {
		t.Fatalf("DeleteFrom message: %v", err)
	}
	if err := ds.DeleteFrom(ctx, msg); err != nil {
		t.Fatalf("DeleteFrom message twice: %v", err)
	}
	if msgs, err := ds.LoadMessages(ctx); err != nil || len(msgs) != 0 {
		t.Fatalf("LoadMessages after delete: n=%d err=%v", len(msgs), err)
	}

	// Hashtags: keyed by content, id and sources intact.
	soccer := model.NewHashtag(uuid.New(), "soccer", t0, []string{alice.ID.String()}, []string{})
	chess := model.NewHashtag(uuid.New(), "chess", t0, []string{}, []string{public.ID.String()})
	if err := ds.WriteThrough(ctx, soccer); err != nil {
		t.Fatalf("WriteThrough soccer: %v", err)
	}
	if err := ds.WriteThrough(ctx, chess); err != nil {
		t.Fatalf("WriteThrough chess: %v", err)
	}
	tags, err := ds.LoadHashtags(ctx)
	if err != nil {
		t.Fatalf("LoadHashtags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("LoadHashtags: want 2 keys, got %d", len(tags))
	}
	if got := tags["soccer"]; got == nil || !got.Equal(soccer) {
		t.Fatalf("soccer round trip mismatch: %+v", got)
	}
	if got := tags["chess"]; got == nil || !got.Equal(chess) {
		t.Fatalf("chess round trip mismatch: %+v", got)
	}

	// Activities: feed round trip in creation order.
	act1 := model.NewActivity(uuid.New(), alice.ID, model.ActionRegisterUser, true, t0, "alice joined")
	act2 := model.NewActivity(uuid.New(), bob.ID, model.ActionSendMessage, false, t0.Add(time.Second), "bob posted")
	if err := ds.WriteThrough(ctx, act2); err != nil {
		t.Fatalf("WriteThrough act2: %v", err)
	}
	if err := ds.WriteThrough(ctx, act1); err != nil {
		t.Fatalf("WriteThrough act1: %v", err)
	}
	acts, err := ds.LoadActivities(ctx)
	if err != nil || len(acts) != 2 {
		t.Fatalf("LoadActivities: n=%d err=%v", len(acts), err)
	}
	if !acts[0].Equal(act1) || !acts[1].Equal(act2) {
		t.Fatalf("activity order/round trip mismatch: %+v %+v", acts[0], acts[1])
	}
}

func userNames(users []*model.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}
