package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roamio/tour-booking/internal/utils"
)

const keyPrefix = "session:"

// RedisStore keeps session records in Redis with a per-record TTL, so
// expiry needs no sweeper and sessions survive process restarts.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) Create(ctx context.Context, id Identity, ttl time.Duration) (string, error) {
	sid, err := utils.NewSessionID()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+sid, payload, ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (Identity, error) {
	var id Identity
	payload, err := s.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return id, ErrNotFound
	}
	if err != nil {
		return id, err
	}
	if err := json.Unmarshal(payload, &id); err != nil {
		return id, ErrNotFound
	}
	return id, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, keyPrefix+sessionID).Err()
}
