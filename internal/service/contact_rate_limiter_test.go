package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestContactRateLimiter(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	l := NewContactRateLimiter(time.Hour, 2).(*contactRateLimiter)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	if !l.Allow(ctx, "10.0.0.1") || !l.Allow(ctx, "10.0.0.1") {
		t.Fatalf("expected first two requests allowed")
	}
	if l.Allow(ctx, "10.0.0.1") {
		t.Fatalf("expected third request denied")
	}
	if !l.Allow(ctx, "10.0.0.2") {
		t.Fatalf("expected other client allowed")
	}

	now = now.Add(61 * time.Minute)
	if !l.Allow(ctx, "10.0.0.1") {
		t.Fatalf("expected allow once the window moved")
	}
}

func TestContactRateLimiterEvictsIdleKeys(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	l := NewContactRateLimiter(time.Hour, 2).(*contactRateLimiter)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		l.Allow(ctx, ip)
	}
	if len(l.hits) != 3 {
		t.Fatalf("expected 3 tracked keys, got %d", len(l.hits))
	}

	now = now.Add(30 * time.Minute)
	l.Allow(ctx, "10.0.0.1")

	now = now.Add(61 * time.Minute)
	l.Allow(ctx, "10.0.0.9")

	if _, ok := l.hits["10.0.0.2"]; ok {
		t.Fatalf("expected idle key 10.0.0.2 evicted")
	}
	if _, ok := l.hits["10.0.0.3"]; ok {
		t.Fatalf("expected idle key 10.0.0.3 evicted")
	}
	if len(l.hits) != 1 {
		t.Fatalf("expected only the new key tracked, got %d", len(l.hits))
	}
}

func TestRedisContactRateLimiterAllow(t *testing.T) {
	ctx := context.Background()

	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisContactRateLimiter
		if !l.Allow(ctx, "10.0.0.1") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		l := &redisContactRateLimiter{client: &mockRedisEvaler{result: 1}, window: time.Minute, max: 3, prefix: "contact:rl:"}
		if l.Allow(ctx, "   ") {
			t.Fatalf("expected empty key to be rejected")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 2}
		l := &redisContactRateLimiter{client: mock, window: 2 * time.Minute, max: 3, prefix: "contact:rl:"}
		if !l.Allow(ctx, " 10.0.0.1 ") {
			t.Fatalf("expected allow when count <= max")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "contact:rl:10.0.0.1" {
			t.Fatalf("unexpected key normalization, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != 120 {
			t.Fatalf("expected TTL seconds=120, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisContactAllowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("deny when count exceeds max", func(t *testing.T) {
		l := &redisContactRateLimiter{client: &mockRedisEvaler{result: 4}, window: time.Minute, max: 3, prefix: "contact:rl:"}
		if l.Allow(ctx, "10.0.0.1") {
			t.Fatalf("expected deny when count > max")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &redisContactRateLimiter{client: &mockRedisEvaler{err: errors.New("redis down")}, window: time.Minute, max: 3, prefix: "contact:rl:"}
		if !l.Allow(ctx, "10.0.0.1") {
			t.Fatalf("expected fail-open on redis errors")
		}
	})
}
