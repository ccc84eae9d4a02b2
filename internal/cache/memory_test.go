package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	if err := mc.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := mc.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("Get = %q, want v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	if _, err := mc.Get(ctx, "absent"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get absent = %v, want ErrMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	if err := mc.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := mc.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expired Get = %v, want ErrMiss", err)
	}
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	_ = mc.Set(ctx, "event_summary_1", []byte("a"), time.Minute)
	_ = mc.Set(ctx, "event_summary_2", []byte("b"), time.Minute)
	_ = mc.Set(ctx, "leaderboard_1", []byte("c"), time.Minute)

	if err := mc.DeletePrefix(ctx, "event_summary_"); err != nil {
		t.Fatalf("DeletePrefix: %v", err)
	}

	if _, err := mc.Get(ctx, "event_summary_1"); !errors.Is(err, ErrMiss) {
		t.Fatalf("prefixed key survived")
	}
	if _, err := mc.Get(ctx, "leaderboard_1"); err != nil {
		t.Fatalf("unrelated key deleted: %v", err)
	}
}
