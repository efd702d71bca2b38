package orderservice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/shopmesh/shopmesh/internal/model"
)

const defaultKeyPrefix = "shopmesh:order:"

// RedisConfig contains configuration options for the Redis order store.
type RedisConfig struct {
	// Client is the Redis client instance
	Client *redis.Client

	// KeyPrefix is the prefix for all order keys.
	// Default: "shopmesh:order:"
	KeyPrefix string

	// TTL bounds how long an abandoned cart survives. Zero means no expiry.
	TTL time.Duration
}

// RedisStore keeps open orders in Redis so multiple order-service replicas
// share them.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStore(config RedisConfig) (*RedisStore, error) {
	if config.Client == nil {
		return nil, errors.New("redis client is required")
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		client:    config.Client,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, credential string) (model.OrderSnapshot, error) {
	result := s.client.Get(ctx, s.keyPrefix+credential)
	if err := result.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return model.EmptyOrder(), nil // no open order
		}
		return model.EmptyOrder(), errors.Wrap(err, "loading order")
	}

	var order model.OrderSnapshot
	if err := json.Unmarshal([]byte(result.Val()), &order); err != nil {
		return model.EmptyOrder(), errors.Wrap(err, "unmarshalling order")
	}
	if order.Items == nil {
		order.Items = map[string]int{}
	}
	return order, nil
}

func (s *RedisStore) Save(ctx context.Context, credential string, order model.OrderSnapshot) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return errors.Wrap(err, "marshalling order")
	}
	if err := s.client.Set(ctx, s.keyPrefix+credential, raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "saving order")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, credential string) error {
	if err := s.client.Del(ctx, s.keyPrefix+credential).Err(); err != nil {
		return errors.Wrap(err, "deleting order")
	}
	return nil
}
