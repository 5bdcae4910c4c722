package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("miss must return ErrNotFound, got %v", err)
	}

	want := []byte(`{"id":"abc"}`)
	if err := c.Set(ctx, "account:abc", want, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "account:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("value mismatch: %q", got)
	}

	if err := c.Delete(ctx, "account:abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, "account:abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted key must miss, got %v", err)
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	if err := c.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired key must miss, got %v", err)
	}
}

func TestNew_KindSelection(t *testing.T) {
	for _, kind := range []string{"", "memory", "none", "off"} {
		c, err := New(Config{Kind: kind})
		if err != nil {
			t.Fatalf("kind %q: %v", kind, err)
		}
		if c == nil {
			t.Fatalf("kind %q: nil client", kind)
		}
	}

	if _, err := New(Config{Kind: "memcached"}); err == nil {
		t.Fatal("unsupported kind must fail")
	}
}

func TestNoop_AlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{Kind: "none"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("noop must always miss, got %v", err)
	}
}
