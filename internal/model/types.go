package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. ID, Name and CreationTime are fixed at
// construction; everything else is mutable through the setters below.
type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
	CreationTime time.Time
	IsAdmin      bool
	Email        string
	AboutMe      string
	Hashtags     []string
}

// NewUser constructs a user with the documented defaults: not an admin, empty
// email and about-me, no hashtags.
func NewUser(id uuid.UUID, name, passwordHash string, creation time.Time) *User {
	return &User{ID: id, Name: name, PasswordHash: passwordHash, CreationTime: creation}
}

// SetPasswordHash replaces the stored hash. The store only ever sees opaque
// ciphertext; hashing the plaintext is the caller's concern.
func (u *User) SetPasswordHash(hash string) { u.PasswordHash = hash }

func (u *User) SetAdmin(admin bool)    { u.IsAdmin = admin }
func (u *User) SetEmail(email string)  { u.Email = email }
func (u *User) SetAboutMe(text string) { u.AboutMe = text }

// AddHashtag records that the user used a hashtag. Duplicates are ignored.
func (u *User) AddHashtag(content string) { u.Hashtags = addToSet(u.Hashtags, content) }

// HashtagNames renders the hashtag set as a display string, e.g. "a, b, c".
func (u *User) HashtagNames() string { return strings.Join(u.Hashtags, ", ") }

// Equal reports structural value equality.
func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.ID == o.ID &&
		u.Name == o.Name &&
		u.PasswordHash == o.PasswordHash &&
		u.IsAdmin == o.IsAdmin &&
		u.Email == o.Email &&
		u.AboutMe == o.AboutMe &&
		sameSet(u.Hashtags, o.Hashtags) &&
		u.CreationTime.Equal(o.CreationTime)
}

// Conversation is a chat room owned by a user.
//
// Members is nil for a public conversation (membership not tracked) and
// non-nil, possibly empty, for a private one. The two states are distinct and
// must survive a persistence round trip.
type Conversation struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	CreationTime time.Time
	IsPrivate    bool
	Members      []uuid.UUID
}

// NewConversation constructs a conversation. Private conversations start with
// an empty, non-nil member list; public ones leave Members nil.
func NewConversation(id, ownerID uuid.UUID, title string, creation time.Time, private bool) *Conversation {
	c := &Conversation{ID: id, OwnerID: ownerID, Title: title, CreationTime: creation, IsPrivate: private}
	if private {
		c.Members = []uuid.UUID{}
	}
	return c
}

// AddMember adds a user to the allow-list. No-op when the id is already
// present or when the conversation does not track membership.
func (c *Conversation) AddMember(userID uuid.UUID) {
	if c.Members == nil {
		return
	}
	for _, m := range c.Members {
		if m == userID {
			return
		}
	}
	c.Members = append(c.Members, userID)
}

func (c *Conversation) Equal(o *Conversation) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.ID == o.ID &&
		c.OwnerID == o.OwnerID &&
		c.Title == o.Title &&
		c.IsPrivate == o.IsPrivate &&
		sameIDSet(c.Members, o.Members) &&
		c.CreationTime.Equal(o.CreationTime)
}

// Message is a single post in a conversation. IsDeleted soft-deletes it for
// read paths; removing the record is a separate store operation.
type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	AuthorID       uuid.UUID
	Content        string
	CreationTime   time.Time
	IsDeleted      bool
}

func NewMessage(id, conversationID, authorID uuid.UUID, content string, creation time.Time) *Message {
	return &Message{ID: id, ConversationID: conversationID, AuthorID: authorID, Content: content, CreationTime: creation}
}

func (m *Message) SetDeleted(deleted bool) { m.IsDeleted = deleted }

func (m *Message) Equal(o *Message) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.ID == o.ID &&
		m.ConversationID == o.ConversationID &&
		m.AuthorID == o.AuthorID &&
		m.Content == o.Content &&
		m.IsDeleted == o.IsDeleted &&
		m.CreationTime.Equal(o.CreationTime)
}

// Hashtag is a tag with denormalized back-references to the users and
// conversations that used it. Content is the natural lookup key; the source
// sets grow as callers record usage and are never pruned by the store.
type Hashtag struct {
	ID           uuid.UUID
	Content      string
	CreationTime time.Time
	UserSource   []string
	ConvSource   []string
}

func NewHashtag(id uuid.UUID, content string, creation time.Time, userSource, convSource []string) *Hashtag {
	return &Hashtag{ID: id, Content: content, CreationTime: creation, UserSource: userSource, ConvSource: convSource}
}

// AddUserSource records that a user used this tag. Duplicates are ignored.
func (h *Hashtag) AddUserSource(userID string) { h.UserSource = addToSet(h.UserSource, userID) }

// AddConvSource records that a conversation used this tag. Duplicates are ignored.
func (h *Hashtag) AddConvSource(convID string) { h.ConvSource = addToSet(h.ConvSource, convID) }

func (h *Hashtag) Equal(o *Hashtag) bool {
	if h == nil || o == nil {
		return h == o
	}
	return h.ID == o.ID &&
		h.Content == o.Content &&
		sameSet(h.UserSource, o.UserSource) &&
		sameSet(h.ConvSource, o.ConvSource) &&
		h.CreationTime.Equal(o.CreationTime)
}

// Activity is an append-only feed record describing something a user did.
type Activity struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Action       Action
	IsPublic     bool
	CreationTime time.Time
	Thumbnail    string
}

func NewActivity(id, ownerID uuid.UUID, action Action, isPublic bool, creation time.Time, thumbnail string) *Activity {
	return &Activity{ID: id, OwnerID: ownerID, Action: action, IsPublic: isPublic, CreationTime: creation, Thumbnail: thumbnail}
}

func (a *Activity) Equal(o *Activity) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.ID == o.ID &&
		a.OwnerID == o.OwnerID &&
		a.Action == o.Action &&
		a.IsPublic == o.IsPublic &&
		a.Thumbnail == o.Thumbnail &&
		a.CreationTime.Equal(o.CreationTime)
}

// addToSet keeps slice-backed sets free of duplicates.
func addToSet(set []string, v string) []string {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}

// sameSet compares slice-backed sets ignoring order. A nil set and an empty
// set are the same thing here; only Conversation.Members gives nil a meaning,
// and sameIDSet handles that.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

func sameIDSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	if (a == nil) != (b == nil) {
		return false
	}
	as := make([]string, len(a))
	for i, id := range a {
		as[i] = id.String()
	}
	bs := make([]string, len(b))
	for i, id := range b {
		bs[i] = id.String()
	}
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
