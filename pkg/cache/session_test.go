package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSession(userId, tokenId string) *Session {
	now := time.Now()
	return &Session{
		UserId:    userId,
		Email:     userId + "@example.com",
		TokenId:   tokenId,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(NewMemoryCache(), "")

	require.NoError(t, store.Save(ctx, newSession("u1", "t1")))

	got, err := store.Get(ctx, "u1", "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1@example.com", got.Email)

	missing, err := store.Get(ctx, "u1", "other")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionStore_Revoke(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(NewMemoryCache(), "test:")

	require.NoError(t, store.Save(ctx, newSession("u1", "t1")))
	require.NoError(t, store.Save(ctx, newSession("u1", "t2")))

	require.NoError(t, store.Revoke(ctx, "u1", "t1"))
	got, err := store.Get(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(ctx, "u1", "t2")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSessionStore_RevokeAll(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(NewMemoryCache(), "")

	require.NoError(t, store.Save(ctx, newSession("u1", "t1")))
	require.NoError(t, store.Save(ctx, newSession("u1", "t2")))
	require.NoError(t, store.Save(ctx, newSession("u2", "t3")))

	require.NoError(t, store.RevokeAll(ctx, "u1"))

	for _, tok := range []string{"t1", "t2"} {
		got, err := store.Get(ctx, "u1", tok)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	got, err := store.Get(ctx, "u2", "t3")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", "v", time.Minute)
	val, err := c.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, int64(0), c.Exists(ctx, "k").Val())
}

func TestMemoryCache_HashCommands(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	assert.Equal(t, int64(2), c.HSet(ctx, "h", "a", "1", "b", 2).Val())
	assert.Equal(t, "2", c.HGet(ctx, "h", "b").Val())
	assert.Len(t, c.HGetAll(ctx, "h").Val(), 2)
	assert.Equal(t, int64(1), c.HDel(ctx, "h", "a", "missing").Val())
	assert.Error(t, c.HSet(ctx, "h", "odd").Err())

	c.Set(ctx, "s", "v", 0)
	assert.Error(t, c.HSet(ctx, "s", "f", "v").Err())
}

func TestProvideICache_Memory(t *testing.T) {
	c, cleanup, err := ProvideICache(Redis{Mode: ModeMemory}, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &MemoryCache{}, c)
}
