package entitystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesTypedAccessors(t *testing.T) {
	p := Properties{}
	p.SetString("name", "alice")
	p.SetInt64("creation_time", 1000)
	p.SetBool("is_admin", true)

	s, ok := p.String("name")
	assert.True(t, ok)
	assert.Equal(t, "alice", s)

	n, ok := p.Int64("creation_time")
	assert.True(t, ok)
	assert.Equal(t, int64(1000), n)

	b, ok := p.Bool("is_admin")
	assert.True(t, ok)
	assert.True(t, b)

	// Wrong type and missing both report !ok.
	_, ok = p.Int64("name")
	assert.False(t, ok)
	_, ok = p.String("missing")
	assert.False(t, ok)

	assert.True(t, p.Has("name"))
	assert.False(t, p.Has("missing"))
}

func TestPropertiesJSONRoundTripKeepsInt64(t *testing.T) {
	p := Properties{}
	p.SetString("name", "alice")
	p.SetInt64("creation_time", 1755550000123)
	p.SetBool("flag", false)

	raw, err := MarshalProps(p)
	require.NoError(t, err)

	got, err := UnmarshalProps(raw)
	require.NoError(t, err)

	n, ok := got.Int64("creation_time")
	require.True(t, ok, "integer property must decode back to int64, not float64")
	assert.Equal(t, int64(1755550000123), n)

	s, _ := got.String("name")
	assert.Equal(t, "alice", s)
	b, ok := got.Bool("flag")
	assert.True(t, ok)
	assert.False(t, b)
}

func TestUnmarshalPropsRejectsNested(t *testing.T) {
	_, err := UnmarshalProps([]byte(`{"nested":{"a":1}}`))
	assert.Error(t, err)
}

func TestCloneDoesNotAlias(t *testing.T) {
	p := Properties{}
	p.SetString("k", "v1")
	c := p.Clone()
	c.SetString("k", "v2")

	v, _ := p.String("k")
	assert.Equal(t, "v1", v)
}
