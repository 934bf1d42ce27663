package disk

import (
	"context"
	"testing"
	"time"
)

func TestStoreTTLExpiry(t *testing.T) {
	store, err := NewStore(Config{Root: t.TempDir(), MaxEntries: 10})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.SetWithExpiry(ctx, "k1", "v1", 30*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, err := store.Get(ctx, "k1"); err != nil || !ok {
		t.Fatalf("get before expiry: ok=%v err=%v", ok, err)
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok, err := store.Get(ctx, "k1"); err != nil {
		t.Fatalf("get after expiry: %v", err)
	} else if ok {
		t.Fatalf("expected miss after ttl expiry")
	}
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store, err := NewStore(Config{Root: t.TempDir(), MaxEntries: 2})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.SetWithExpiry(ctx, "a", "aa", time.Minute); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if err := store.SetWithExpiry(ctx, "b", "bb", time.Minute); err != nil {
		t.Fatalf("set b: %v", err)
	}
	if _, ok, err := store.Get(ctx, "a"); err != nil || !ok {
		t.Fatalf("touch a: ok=%v err=%v", ok, err)
	}
	if err := store.SetWithExpiry(ctx, "c", "cc", time.Minute); err != nil {
		t.Fatalf("set c: %v", err)
	}

	if _, ok, err := store.Get(ctx, "b"); err != nil {
		t.Fatalf("get b: %v", err)
	} else if ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok, err := store.Get(ctx, "a"); err != nil || !ok {
		t.Fatalf("expected a to remain: ok=%v err=%v", ok, err)
	}
}

func TestStoreRestoresFromIndex(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(Config{Root: root, MaxEntries: 10})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.SetWithExpiry(ctx, "persist", "value", time.Minute); err != nil {
		t.Fatalf("set persist: %v", err)
	}

	store2, err := NewStore(Config{Root: root, MaxEntries: 10})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	raw, ok, err := store2.Get(ctx, "persist")
	if err != nil {
		t.Fatalf("get persist: %v", err)
	}
	if !ok {
		t.Fatalf("expected persisted key to exist")
	}
	if raw != "value" {
		t.Fatalf("unexpected value: %q", raw)
	}
}
