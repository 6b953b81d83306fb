package cache

import (
	"context"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/syncx"
)

// Store is a shared cache tier consulted after a local miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Codec converts values for the shared tier.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now   func() time.Time
	store Store
	codec Codec
}

// WithClock injects the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithStore enables the shared tier.
func WithStore(store Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCodec overrides the shared tier codec (msgpack by default).
func WithCodec(codec Codec) Option {
	return func(o *options) {
		if codec != nil {
			o.codec = codec
		}
	}
}

type entry[T any] struct {
	value    T
	storedAt time.Time
	ttl      time.Duration
}

func (e entry[T]) expired(now time.Time) bool {
	return now.Sub(e.storedAt) >= e.ttl
}

// Cache memoizes producer results per Key with a caller supplied TTL.
// Failed producer calls are never stored; concurrent misses for one key share
// a single producer call.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[Key]entry[T]
	flight  syncx.SingleFlight
	opts    options
}

// New constructs an empty cache.
func New[T any](opts ...Option) *Cache[T] {
	o := options{now: time.Now, codec: MsgpackCodec{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		entries: make(map[Key]entry[T]),
		flight:  syncx.NewSingleFlight(),
		opts:    o,
	}
}

// Get returns the cached value for key or invokes producer on a miss. A
// non-positive ttl bypasses the cache entirely.
func (c *Cache[T]) Get(ctx context.Context, key Key, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	if ttl <= 0 {
		return producer(ctx)
	}
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	val, err := c.flight.Do(key.String(), func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		if v, ok := c.loadShared(ctx, key); ok {
			c.put(key, v, ttl)
			return v, nil
		}
		v, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, v, ttl)
		c.storeShared(ctx, key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := val.(T)
	return v, nil
}

// Evict drops key from both tiers.
func (c *Cache[T]) Evict(ctx context.Context, key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	if c.opts.store != nil {
		if err := c.opts.store.Del(ctx, key.String()); err != nil {
			logx.WithContext(ctx).Errorf("cache: evict %s err=%v", key, err)
		}
	}
}

// Len returns the number of locally held entries, expired ones included until
// they are next looked up.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) lookup(key Key) (T, bool) {
	now := c.opts.now()
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if e.expired(now) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *Cache[T]) put(key Key, value T, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, storedAt: c.opts.now(), ttl: ttl}
	c.mu.Unlock()
}

func (c *Cache[T]) loadShared(ctx context.Context, key Key) (T, bool) {
	var zero T
	if c.opts.store == nil {
		return zero, false
	}
	data, ok, err := c.opts.store.Get(ctx, key.String())
	if err != nil {
		logx.WithContext(ctx).Errorf("cache: shared get %s err=%v", key, err)
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var v T
	if err := c.opts.codec.Unmarshal(data, &v); err != nil {
		logx.WithContext(ctx).Errorf("cache: decode %s err=%v", key, err)
		return zero, false
	}
	return v, true
}

func (c *Cache[T]) storeShared(ctx context.Context, key Key, value T, ttl time.Duration) {
	if c.opts.store == nil {
		return
	}
	data, err := c.opts.codec.Marshal(value)
	if err != nil {
		logx.WithContext(ctx).Errorf("cache: encode %s err=%v", key, err)
		return
	}
	if err := c.opts.store.Set(ctx, key.String(), data, ttl); err != nil {
		logx.WithContext(ctx).Errorf("cache: shared set %s err=%v", key, err)
	}
}
