package cache

import (
	"context"
	"math"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// MsgpackCodec encodes shared-tier values with msgpack.
type MsgpackCodec struct{}

func (MsgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// RedisStore is a Store backed by go-zero's redis client.
type RedisStore struct {
	rds *redis.Redis
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rds *redis.Redis) *RedisStore {
	return &RedisStore{rds: rds}
}

// MustNewRedisStore connects using conf and panics on invalid configuration.
func MustNewRedisStore(conf redis.RedisConf) *RedisStore {
	return NewRedisStore(redis.MustNewRedis(conf))
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rds.GetCtx(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if val == "" {
		return nil, false, nil
	}
	return []byte(val), true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rds.SetexCtx(ctx, key, string(value), ttlSeconds(ttl))
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	_, err := s.rds.DelCtx(ctx, key)
	return err
}

// ttlSeconds rounds up so sub-second TTLs still expire.
func ttlSeconds(ttl time.Duration) int {
	secs := int(math.Ceil(ttl.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
