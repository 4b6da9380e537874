package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "articles:1"); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "articles:1", []byte(`{"id":1}`), time.Minute)

	val, ok := c.Get(ctx, "articles:1")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(val) != `{"id":1}` {
		t.Errorf("unexpected value: %s", val)
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "articles:1", []byte("old"), time.Minute)
	c.Set(ctx, "articles:1", []byte("new"), time.Minute)

	val, ok := c.Get(ctx, "articles:1")
	if !ok || string(val) != "new" {
		t.Errorf("expected overwritten value, got %q (hit=%v)", val, ok)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "articles:1", []byte("v"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get(ctx, "articles:1"); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "articles:1", []byte("v"), time.Minute)
	c.Delete(ctx, "articles:1")
	// Deleting an absent key is a no-op.
	c.Delete(ctx, "articles:1")

	if _, ok := c.Get(ctx, "articles:1"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryCacheInvalidatePattern(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "articles:1", []byte("a"), time.Minute)
	c.Set(ctx, "articles:intro-bim", []byte("b"), time.Minute)
	c.Set(ctx, "services:1", []byte("c"), time.Minute)

	c.InvalidatePattern(ctx, "articles:")

	if _, ok := c.Get(ctx, "articles:1"); ok {
		t.Error("articles:1 should have been invalidated")
	}
	if _, ok := c.Get(ctx, "articles:intro-bim"); ok {
		t.Error("articles:intro-bim should have been invalidated")
	}
	if _, ok := c.Get(ctx, "services:1"); !ok {
		t.Error("services:1 should have survived the articles invalidation")
	}
}
