package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nholstein/passphrase"
	"github.com/nholstein/passphrase/session"
)

var _ passphrase.SessionCache = (*session.Cache)(nil)

func TestCacheEmpty(t *testing.T) {
	c := session.New()

	assert.False(t, c.PassphraseCached())
	_, err := c.Passphrase()
	assert.ErrorIs(t, err, session.ErrNotCached)
}

func TestCachePassphrase(t *testing.T) {
	c := session.New()
	c.CachePassphrase("hunter2")

	require.True(t, c.PassphraseCached())
	got, err := c.Passphrase()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	c.CachePassphrase("correct horse")
	got, err = c.Passphrase()
	require.NoError(t, err)
	assert.Equal(t, "correct horse", got)
}

func TestCacheEmptyPassphrase(t *testing.T) {
	c := session.New()
	c.CachePassphrase("")

	assert.True(t, c.PassphraseCached())
	got, err := c.Passphrase()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCacheClearRotatesSession(t *testing.T) {
	c := session.New()
	id := c.ID()
	c.CachePassphrase("hunter2")

	c.Clear()

	assert.False(t, c.PassphraseCached())
	assert.NotEqual(t, id, c.ID())
	_, err := c.Passphrase()
	assert.ErrorIs(t, err, session.ErrNotCached)
}

func TestCacheSessionsAreDistinct(t *testing.T) {
	a, b := session.New(), session.New()
	assert.NotEqual(t, a.ID(), b.ID())
}
