package orderservice

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmesh/shopmesh/internal/model"
)

func TestMemoryStoreDefaultsToEmpty(t *testing.T) {
	store := NewMemoryStore()

	order, err := store.Get(context.Background(), "K")
	require.NoError(t, err)
	assert.Equal(t, model.EmptyOrder(), order)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := model.OrderSnapshot{Items: map[string]int{"p1": 2}, Total: 19.98}
	require.NoError(t, store.Save(ctx, "K", in))

	out, err := store.Get(ctx, "K")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// stored copy is isolated from later mutation
	out.Items["p1"] = 99
	again, err := store.Get(ctx, "K")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items["p1"])
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "K", model.OrderSnapshot{Items: map[string]int{"p1": 1}}))
	require.NoError(t, store.Delete(ctx, "K"))

	order, err := store.Get(ctx, "K")
	require.NoError(t, err)
	assert.True(t, order.IsEmpty())
}

func TestMemoryStoreKeyedByCredential(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "K1", model.OrderSnapshot{Items: map[string]int{"p1": 1}}))

	other, err := store.Get(ctx, "K2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisStore(RedisConfig{
		Client:    client,
		KeyPrefix: "shopmesh:test:order:",
		TTL:       time.Minute,
	})
	require.NoError(t, err)

	ctx := context.Background()
	t.Cleanup(func() { _ = store.Delete(ctx, "K") })

	order, err := store.Get(ctx, "K")
	require.NoError(t, err)
	assert.True(t, order.IsEmpty())

	in := model.OrderSnapshot{Items: map[string]int{"p1": 2}, Total: 19.98}
	require.NoError(t, store.Save(ctx, "K", in))

	out, err := store.Get(ctx, "K")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, store.Delete(ctx, "K"))
	order, err = store.Get(ctx, "K")
	require.NoError(t, err)
	assert.True(t, order.IsEmpty())
}

func TestNewRedisStoreRequiresClient(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{})
	assert.Error(t, err)
}
