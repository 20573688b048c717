//go:build integration

package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"asso-portal/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := NewClient(&config.RedisConfig{Addr: addr, DB: 15}, zap.NewNop())
	if err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCheckRateLimit_BlocksOverLimit(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	key := fmt.Sprintf("test:ratelimit:%d", time.Now().UnixNano())

	for i := 0; i < 3; i++ {
		ok, err := client.CheckRateLimit(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("CheckRateLimit failed: %v", err)
		}
		if !ok {
			t.Fatalf("hit %d should be allowed", i+1)
		}
	}
	ok, err := client.CheckRateLimit(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("CheckRateLimit failed: %v", err)
	}
	if ok {
		t.Error("the fourth hit must be denied")
	}
}

func TestCheckRateLimit_RetriesDoNotExtendWindow(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	key := fmt.Sprintf("test:ratelimit:%d", time.Now().UnixNano())
	window := 2 * time.Second

	if _, err := client.CheckRateLimit(ctx, key, 10, window); err != nil {
		t.Fatalf("CheckRateLimit failed: %v", err)
	}
	time.Sleep(1200 * time.Millisecond)
	if _, err := client.CheckRateLimit(ctx, key, 10, window); err != nil {
		t.Fatalf("CheckRateLimit failed: %v", err)
	}

	// The second hit must not re-arm the TTL back to the full window.
	ttl, err := client.rdb.TTL(ctx, key).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl > window-time.Second {
		t.Errorf("expected the window to keep ticking, TTL is still %v", ttl)
	}
}
