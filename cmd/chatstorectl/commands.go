package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/codeu/chatstore/internal/model"
	"github.com/codeu/chatstore/internal/store"
)

func runStats(ctx context.Context, ds *store.PersistentDataStore, w io.Writer) error {
	users, err := ds.LoadUsers(ctx)
	if err != nil {
		return err
	}
	convs, err := ds.LoadConversations(ctx)
	if err != nil {
		return err
	}
	msgs, err := ds.LoadMessages(ctx)
	if err != nil {
		return err
	}
	tags, err := ds.LoadHashtags(ctx)
	if err != nil {
		return err
	}
	acts, err := ds.LoadActivities(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "users:         %d\n", len(users))
	fmt.Fprintf(w, "conversations: %d\n", len(convs))
	fmt.Fprintf(w, "messages:      %d\n", len(msgs))
	fmt.Fprintf(w, "hashtags:      %d\n", len(tags))
	fmt.Fprintf(w, "activities:    %d\n", len(acts))
	return nil
}

// runSeed writes one user, one conversation and one message so a fresh
// backing store has something to look at.
func runSeed(ctx context.Context, ds *store.PersistentDataStore) error {
	now := time.Now().UTC()

	demo := model.NewUser(uuid.New(), "demo", "$2a$10$seeded-hash-not-a-secret", now)
	demo.SetAboutMe("seeded demo account")
	if err := ds.WriteThrough(ctx, demo); err != nil {
		return err
	}

	conv := model.NewConversation(uuid.New(), demo.ID, "demo-conversation", now.Add(time.Millisecond), false)
	if err := ds.WriteThrough(ctx, conv); err != nil {
		return err
	}

	msg := model.NewMessage(uuid.New(), conv.ID, demo.ID, "hello from chatstorectl seed", now.Add(2*time.Millisecond))
	if err := ds.WriteThrough(ctx, msg); err != nil {
		return err
	}

	act := model.NewActivity(uuid.New(), demo.ID, model.ActionRegisterUser, true, now, "demo joined")
	return ds.WriteThrough(ctx, act)
}
