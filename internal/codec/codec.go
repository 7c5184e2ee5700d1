// Package codec maps typed chat entities to and from the flat property bags
// the backing entity store holds. The mapping is an explicit field-by-field
// table per kind, so a missing or extra field is visible right here rather
// than hidden behind reflection.
package codec

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codeu/chatstore/internal/entitystore"
	"github.com/codeu/chatstore/internal/model"
)

// Kind tags used in the backing store.
const (
	KindUser         = "chat-users"
	KindConversation = "chat-conversations"
	KindMessage      = "chat-messages"
	KindHashtag      = "chat-hashtags"
	KindActivity     = "chat-activities"
)

// CreationTimeProperty is the shared order-by property every kind carries.
const CreationTimeProperty = "creation_time"

const setSeparator = ", "

func EncodeUser(u *model.User) entitystore.Properties {
	p := entitystore.Properties{}
	p.SetString("uuid", u.ID.String())
	p.SetString("username", u.Name)
	p.SetString("password_hash", u.PasswordHash)
	p.SetInt64(CreationTimeProperty, u.CreationTime.UnixMilli())
	p.SetBool("is_admin", u.IsAdmin)
	p.SetString("email", u.Email)
	p.SetString("about_me", u.AboutMe)
	p.SetString("hashtags", joinSet(u.Hashtags))
	return p
}

func DecodeUser(p entitystore.Properties) (*model.User, error) {
	id, err := requireUUID(p, KindUser, "uuid")
	if err != nil {
		return nil, err
	}
	creation, err := requireTime(p, KindUser, CreationTimeProperty)
	if err != nil {
		return nil, err
	}
	u := model.NewUser(id, optString(p, "username"), optString(p, "password_hash"), creation)
	u.IsAdmin = optBool(p, "is_admin")
	u.Email = optString(p, "email")
	u.AboutMe = optString(p, "about_me")
	u.Hashtags = splitSet(optString(p, "hashtags"))
	return u, nil
}

func EncodeConversation(c *model.Conversation) entitystore.Properties {
	p := entitystore.Properties{}
	p.SetString("uuid", c.ID.String())
	p.SetString("owner_uuid", c.OwnerID.String())
	p.SetString("title", c.Title)
	p.SetInt64(CreationTimeProperty, c.CreationTime.UnixMilli())
	p.SetBool("is_private", c.IsPrivate)
	// A nil member set means membership is not tracked (public conversation);
	// the property is omitted entirely so nil and empty stay distinguishable.
	if c.Members != nil {
		ids := make([]string, len(c.Members))
		for i, m := range c.Members {
			ids[i] = m.String()
		}
		p.SetString("members", joinSet(ids))
	}
	return p
}

func DecodeConversation(p entitystore.Properties) (*model.Conversation, error) {
	id, err := requireUUID(p, KindConversation, "uuid")
	if err != nil {
		return nil, err
	}
	owner, err := requireUUID(p, KindConversation, "owner_uuid")
	if err != nil {
		return nil, err
	}
	creation, err := requireTime(p, KindConversation, CreationTimeProperty)
	if err != nil {
		return nil, err
	}
	c := &model.Conversation{
		ID:           id,
		OwnerID:      owner,
		Title:        optString(p, "title"),
		CreationTime: creation,
		IsPrivate:    optBool(p, "is_private"),
	}
	if raw, ok := p.String("members"); ok {
		members := []uuid.UUID{}
		for _, s := range splitSet(raw) {
			m, err := uuid.Parse(s)
			if err != nil {
				return nil, corruptf(KindConversation, "members", err)
			}
			members = append(members, m)
		}
		c.Members = members
	}
	return c, nil
}

func EncodeMessage(m *model.Message) entitystore.Properties {
	p := entitystore.Properties{}
	p.SetString("uuid", m.ID.String())
	p.SetString("conv_uuid", m.ConversationID.String())
	p.SetString("author_uuid", m.AuthorID.String())
	p.SetString("content", m.Content)
	p.SetInt64(CreationTimeProperty, m.CreationTime.UnixMilli())
	p.SetBool("is_deleted", m.IsDeleted)
	return p
}

func DecodeMessage(p entitystore.Properties) (*model.Message, error) {
	id, err := requireUUID(p, KindMessage, "uuid")
	if err != nil {
		return nil, err
	}
	conv, err := requireUUID(p, KindMessage, "conv_uuid")
	if err != nil {
		return nil, err
	}
	author, err := requireUUID(p, KindMessage, "author_uuid")
	if err != nil {
		return nil, err
	}
	creation, err := requireTime(p, KindMessage, CreationTimeProperty)
	if err != nil {
		return nil, err
	}
	m := model.NewMessage(id, conv, author, optString(p, "content"), creation)
	m.IsDeleted = optBool(p, "is_deleted")
	return m, nil
}

func EncodeHashtag(h *model.Hashtag) entitystore.Properties {
	p := entitystore.Properties{}
	p.SetString("uuid", h.ID.String())
	p.SetString("content", h.Content)
	p.SetInt64(CreationTimeProperty, h.CreationTime.UnixMilli())
	p.SetString("user_source", joinSet(h.UserSource))
	p.SetString("conv_source", joinSet(h.ConvSource))
	return p
}

func DecodeHashtag(p entitystore.Properties) (*model.Hashtag, error) {
	id, err := requireUUID(p, KindHashtag, "uuid")
	if err != nil {
		return nil, err
	}
	creation, err := requireTime(p, KindHashtag, CreationTimeProperty)
	if err != nil {
		return nil, err
	}
	return model.NewHashtag(id,
		optString(p, "content"),
		creation,
		splitSet(optString(p, "user_source")),
		splitSet(optString(p, "conv_source")),
	), nil
}

func EncodeActivity(a *model.Activity) entitystore.Properties {
	p := entitystore.Properties{}
	p.SetString("uuid", a.ID.String())
	p.SetString("owner_uuid", a.OwnerID.String())
	p.SetString("action", a.Action.String())
	p.SetBool("is_public", a.IsPublic)
	p.SetInt64(CreationTimeProperty, a.CreationTime.UnixMilli())
	p.SetString("thumbnail", a.Thumbnail)
	return p
}

func DecodeActivity(p entitystore.Properties) (*model.Activity, error) {
	id, err := requireUUID(p, KindActivity, "uuid")
	if err != nil {
		return nil, err
	}
	owner, err := requireUUID(p, KindActivity, "owner_uuid")
	if err != nil {
		return nil, err
	}
	raw, ok := p.String("action")
	if !ok {
		return nil, corruptf(KindActivity, "action", errMissing)
	}
	action, err := model.ParseAction(raw)
	if err != nil {
		return nil, corruptf(KindActivity, "action", err)
	}
	creation, err := requireTime(p, KindActivity, CreationTimeProperty)
	if err != nil {
		return nil, err
	}
	return model.NewActivity(id, owner, action, optBool(p, "is_public"), creation, optString(p, "thumbnail")), nil
}

var errMissing = fmt.Errorf("property missing")

func corruptf(kind, name string, cause error) error {
	return fmt.Errorf("%s: property %q: %v: %w", kind, name, cause, model.ErrDataCorruption)
}

func requireUUID(p entitystore.Properties, kind, name string) (uuid.UUID, error) {
	raw, ok := p.String(name)
	if !ok {
		return uuid.Nil, corruptf(kind, name, errMissing)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, corruptf(kind, name, err)
	}
	return id, nil
}

func requireTime(p entitystore.Properties, kind, name string) (time.Time, error) {
	ms, ok := p.Int64(name)
	if !ok {
		return time.Time{}, corruptf(kind, name, errMissing)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func optString(p entitystore.Properties, name string) string {
	v, _ := p.String(name)
	return v
}

func optBool(p entitystore.Properties, name string) bool {
	v, _ := p.Bool(name)
	return v
}

// joinSet flattens a string set to a single delimited property. An empty set
// encodes to "", never null. Elements are sorted so encoding is stable.
func joinSet(set []string) string {
	s := slices.Clone(set)
	slices.Sort(s)
	return strings.Join(s, setSeparator)
}

// splitSet is the inverse of joinSet; "" decodes to an empty, non-nil set.
func splitSet(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, setSeparator)
}
