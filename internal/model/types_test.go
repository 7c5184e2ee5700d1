package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserDefaults(t *testing.T) {
	id := uuid.New()
	creation := time.UnixMilli(1000).UTC()
	u := NewUser(id, "alice", "hash", creation)

	assert.Equal(t, id, u.ID)
	assert.Equal(t, "alice", u.Name)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.True(t, u.CreationTime.Equal(creation))
	assert.False(t, u.IsAdmin)
	assert.Empty(t, u.Email)
	assert.Empty(t, u.AboutMe)
	assert.Empty(t, u.Hashtags)
}

func TestUserAddHashtagSetSemantics(t *testing.T) {
	u := NewUser(uuid.New(), "alice", "hash", time.Now())
	u.AddHashtag("soccer")
	u.AddHashtag("chess")
	u.AddHashtag("soccer")

	require.Len(t, u.Hashtags, 2)
	assert.ElementsMatch(t, []string{"soccer", "chess"}, u.Hashtags)
	assert.Equal(t, "soccer, chess", u.HashtagNames())
}

func TestUserEqualIgnoresHashtagOrder(t *testing.T) {
	id := uuid.New()
	creation := time.UnixMilli(1000)
	a := NewUser(id, "alice", "hash", creation)
	b := NewUser(id, "alice", "hash", creation)
	a.Hashtags = []string{"x", "y"}
	b.Hashtags = []string{"y", "x"}

	assert.True(t, a.Equal(b))

	b.SetAdmin(true)
	assert.False(t, a.Equal(b))
}

func TestNewConversationMembership(t *testing.T) {
	owner := uuid.New()

	public := NewConversation(uuid.New(), owner, "open", time.Now(), false)
	assert.Nil(t, public.Members, "public conversation does not track membership")

	private := NewConversation(uuid.New(), owner, "closed", time.Now(), true)
	require.NotNil(t, private.Members)
	assert.Empty(t, private.Members)

	m := uuid.New()
	private.AddMember(m)
	private.AddMember(m)
	assert.Equal(t, []uuid.UUID{m}, private.Members)

	// AddMember on an untracked conversation stays a no-op.
	public.AddMember(m)
	assert.Nil(t, public.Members)
}

func TestConversationEqualDistinguishesNilFromEmpty(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	creation := time.UnixMilli(1000)

	public := NewConversation(id, owner, "t", creation, false)
	private := NewConversation(id, owner, "t", creation, false)
	private.Members = []uuid.UUID{}

	assert.False(t, public.Equal(private))
}

func TestHashtagSourceSets(t *testing.T) {
	h := NewHashtag(uuid.New(), "soccer", time.Now(), []string{}, []string{})
	h.AddUserSource("u1")
	h.AddUserSource("u1")
	h.AddConvSource("c1")

	assert.Equal(t, []string{"u1"}, h.UserSource)
	assert.Equal(t, []string{"c1"}, h.ConvSource)
}

func TestMessageSoftDelete(t *testing.T) {
	m := NewMessage(uuid.New(), uuid.New(), uuid.New(), "hi", time.Now())
	assert.False(t, m.IsDeleted)
	m.SetDeleted(true)
	assert.True(t, m.IsDeleted)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("SEND_MESSAGE")
	require.NoError(t, err)
	assert.Equal(t, ActionSendMessage, a)

	_, err = ParseAction("NOT_AN_ACTION")
	assert.Error(t, err)
}
