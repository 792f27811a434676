package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*SessionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionCache(client, time.Hour), mr
}

func TestSessionCache_PutGetDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Put(ctx, "hash-1", "user_1"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	userID, ok, err := cache.Get(ctx, "hash-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || userID != "user_1" {
		t.Fatalf("expected hit for user_1, got ok=%v id=%q", ok, userID)
	}

	if err := cache.Delete(ctx, "hash-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "hash-1"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestSessionCache_MissIsNotAnError(t *testing.T) {
	cache, _ := newTestCache(t)

	userID, ok, err := cache.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("Get returned error on miss: %v", err)
	}
	if ok || userID != "" {
		t.Fatalf("expected clean miss, got ok=%v id=%q", ok, userID)
	}
}

func TestSessionCache_EntryExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Put(ctx, "hash-1", "user_1"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, ok, _ := cache.Get(ctx, "hash-1"); ok {
		t.Fatalf("expected entry to expire with the token lifetime")
	}
}
