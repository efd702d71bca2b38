package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "shopmesh:session:"

// RedisConfig contains configuration options for the Redis session store.
type RedisConfig struct {
	// Client is the Redis client instance
	Client *redis.Client

	// KeyPrefix is the prefix for all session keys.
	// Default: "shopmesh:session:"
	KeyPrefix string

	// TTL bounds the session lifetime. Zero means no expiry.
	TTL time.Duration
}

// RedisStore keeps sessions in Redis so multiple frontend replicas share
// them. Save resets the TTL, so active sessions stay alive.
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

func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	result := s.client.Get(ctx, s.keyPrefix+id)
	if err := result.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // unknown session
		}
		return nil, errors.Wrap(err, "loading session")
	}

	var sess Session
	if err := json.Unmarshal([]byte(result.Val()), &sess); err != nil {
		return nil, errors.Wrap(err, "unmarshalling session")
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	if err := s.client.Set(ctx, s.keyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}
