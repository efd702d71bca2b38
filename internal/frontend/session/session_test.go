package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/internal/frontend/session"
	"github.com/shopmesh/shopmesh/internal/model"
)

func TestSessionDefaults(t *testing.T) {
	sess := session.New("abc")

	assert.False(t, sess.IsAuthenticated())
	_, ok := sess.Credential()
	assert.False(t, ok)

	// no cached order yields the empty default, never nil items
	order := sess.CachedOrder()
	assert.Equal(t, model.EmptyOrder(), order)
	assert.NotNil(t, order.Items)
	assert.Zero(t, order.Total)
}

func TestSessionCredentialLifecycle(t *testing.T) {
	sess := session.New("abc")
	sess.SetCredential("K")

	assert.True(t, sess.IsAuthenticated())
	cred, ok := sess.Credential()
	require.True(t, ok)
	assert.Equal(t, "K", cred)

	sess.User = &model.User{ID: 1, Username: "maria"}
	sess.Clear()
	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User)
}

func TestSessionCachedOrder(t *testing.T) {
	sess := session.New("abc")
	sess.SetCachedOrder(model.OrderSnapshot{Items: map[string]int{"p1": 2}, Total: 19.98})

	assert.Equal(t, 2, sess.CachedOrder().Items["p1"])

	sess.ClearCachedOrder()
	assert.Equal(t, model.EmptyOrder(), sess.CachedOrder())
}

func TestSessionCompletedOrderConsumeOnce(t *testing.T) {
	sess := session.New("abc")
	sess.SetCompletedOrder(model.OrderSnapshot{Items: map[string]int{"p1": 1}, Total: 5})

	order, ok := sess.PopCompletedOrder()
	require.True(t, ok)
	assert.Equal(t, 5.0, order.Total)

	_, ok = sess.PopCompletedOrder()
	assert.False(t, ok)
}

func TestSessionFlashes(t *testing.T) {
	sess := session.New("abc")
	sess.Flash(session.FlashError, "Unable to login")
	sess.Flash(session.FlashSuccess, "Welcome back")

	flashes := sess.PopFlashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, session.FlashError, flashes[0].Level)
	assert.Empty(t, sess.PopFlashes())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	// unknown id loads as nil, not an error
	sess, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, sess)

	saved := session.New("abc")
	saved.SetCredential("K")
	saved.SetCachedOrder(model.OrderSnapshot{Items: map[string]int{"p1": 1}, Total: 9.99})
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "K", loaded.APIKey)
	assert.Equal(t, 9.99, loaded.CachedOrder().Total)

	// loaded copy is independent of the stored one
	loaded.SetCredential("other")
	again, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "K", again.APIKey)

	require.NoError(t, store.Delete(ctx, "abc"))
	gone, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis-backed store test")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	store, err := session.NewRedisStore(session.RedisConfig{
		Client:    client,
		KeyPrefix: "shopmesh:test:session:",
		TTL:       time.Minute,
	})
	require.NoError(t, err)

	saved := session.New("redis-test")
	saved.SetCredential("K")
	require.NoError(t, store.Save(ctx, saved))
	t.Cleanup(func() { _ = store.Delete(ctx, "redis-test") })

	loaded, err := store.Load(ctx, "redis-test")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "K", loaded.APIKey)
}

func TestRedisStoreRequiresClient(t *testing.T) {
	_, err := session.NewRedisStore(session.RedisConfig{})
	require.Error(t, err)
}
