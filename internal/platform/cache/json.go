package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Metrics counts lookups per cache name.
type Metrics struct {
	Lookups *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartsense",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result (hit, miss, error).",
		}, []string{"cache", "result"}),
	}
	reg.MustRegister(m.Lookups)
	return m
}

// JSON stores values of T as JSON strings under prefix:key with a TTL.
type JSON[T any] struct {
	rdb    redis.Cmdable
	name   string
	prefix string
	ttl    time.Duration
	m      *Metrics
}

// NewJSON builds a typed cache. metrics may be nil.
func NewJSON[T any](rdb redis.Cmdable, name string, ttl time.Duration, metrics *Metrics) *JSON[T] {
	return &JSON[T]{rdb: rdb, name: name, prefix: name + ":", ttl: ttl, m: metrics}
}

func (c *JSON[T]) key(k string) string { return c.prefix + k }

func (c *JSON[T]) record(result string) {
	if c.m != nil {
		c.m.Lookups.WithLabelValues(c.name, result).Inc()
	}
}

func (c *JSON[T]) Get(ctx context.Context, key string) (*T, error) {
	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.record("miss")
			return nil, ErrMiss
		}
		c.record("error")
		return nil, fmt.Errorf("get %s cache: %w", c.name, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.record("error")
		return nil, fmt.Errorf("decode %s cache: %w", c.name, err)
	}
	c.record("hit")
	return &v, nil
}

func (c *JSON[T]) Set(ctx context.Context, key string, v *T) error {
	if v == nil {
		return fmt.Errorf("%s cache value is required", c.name)
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s cache: %w", c.name, err)
	}
	if err := c.rdb.Set(ctx, c.key(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("save %s cache: %w", c.name, err)
	}
	return nil
}

func (c *JSON[T]) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("delete %s cache: %w", c.name, err)
	}
	return nil
}

// Flush removes every key under this cache's prefix and returns how many
// were deleted. It uses SCAN, so keys written concurrently may survive.
func (c *JSON[T]) Flush(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, c.prefix+"*", 200).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan %s cache: %w", c.name, err)
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("flush %s cache: %w", c.name, err)
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
