package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PortfolioCache guarda el payload agregado ya serializado.
type PortfolioCache interface {
	Get(ctx context.Context) ([]byte, bool)
	Set(ctx context.Context, payload []byte)
	Invalidate(ctx context.Context)
}

type memoryPortfolioCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	payload []byte
	expires time.Time
	now     func() time.Time
}

// NewMemoryPortfolioCache crea un cache local al proceso. ttl <= 0 desactiva el cache.
func NewMemoryPortfolioCache(ttl time.Duration) PortfolioCache {
	return &memoryPortfolioCache{
		ttl: ttl,
		now: time.Now,
	}
}

func (c *memoryPortfolioCache) Get(_ context.Context) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payload == nil {
		return nil, false
	}
	if c.now().After(c.expires) {
		c.payload = nil
		return nil, false
	}
	return c.payload, true
}

func (c *memoryPortfolioCache) Set(_ context.Context, payload []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = payload
	c.expires = c.now().Add(c.ttl)
}

func (c *memoryPortfolioCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisPortfolioCache struct {
	client redisKV
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisPortfolioCache comparte el payload entre instancias. Los errores de redis se tratan como miss.
func NewRedisPortfolioCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) PortfolioCache {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisPortfolioCache{
		client: client,
		key:    "portfolio:payload",
		ttl:    ttl,
		logger: logger,
	}
}

func (c *redisPortfolioCache) Get(ctx context.Context) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis cache get failed", zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

func (c *redisPortfolioCache) Set(ctx context.Context, payload []byte) {
	if c.ttl <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := c.client.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("redis cache set failed", zap.Error(err))
	}
}

func (c *redisPortfolioCache) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		c.logger.Warn("redis cache invalidate failed", zap.Error(err))
	}
}
