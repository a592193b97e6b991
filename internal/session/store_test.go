package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	s := NewState()
	if err := s.Complete(sampleResult()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "a", s); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Page() != PageResults || got.Result() == nil {
		t.Fatalf("Get() = %s/%v", got.Page(), got.Result())
	}

	// Mutating the loaded copy does not leak into the store until saved.
	if err := got.NewScan(); err != nil {
		t.Fatal(err)
	}
	again, _ := store.Get(ctx, "a")
	if again.Page() != PageResults {
		t.Error("store should hold a snapshot, not the live state")
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete error = %v", err)
	}
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	a := NewState()
	_ = a.Complete(sampleResult())
	_ = store.Save(ctx, "a", a)
	_ = store.Save(ctx, "b", NewState())

	b, err := store.Get(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if b.Page() != PageUpload || b.Result() != nil {
		t.Error("session b must not see session a's result")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return now }

	_ = store.Save(ctx, "a", NewState())
	_ = store.Save(ctx, "b", NewState())

	now = now.Add(20 * time.Minute)
	if _, err := store.Get(ctx, "a"); err != nil {
		t.Fatalf("Get within TTL error = %v", err)
	}

	// a was touched at +20m; b was last touched at 0.
	now = now.Add(15 * time.Minute)
	if _, err := store.Get(ctx, "a"); err != nil {
		t.Fatalf("Get after touch error = %v", err)
	}
	if _, err := store.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(expired) error = %v, want ErrNotFound", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("LECTURENOTES_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LECTURENOTES_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	store, err := ConnectRedis(ctx, addr, time.Minute)
	if err != nil {
		t.Fatalf("ConnectRedis() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	id := uuid.NewString()
	t.Cleanup(func() { _ = store.Delete(ctx, id) })

	if _, err := store.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v", err)
	}

	s := NewState()
	_ = s.Complete(sampleResult())
	if err := store.Save(ctx, id, s); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Result() == nil || got.Result().FileInfo.Name != "graphs.mp3" {
		t.Errorf("unexpected restored result %+v", got.Result())
	}
}
