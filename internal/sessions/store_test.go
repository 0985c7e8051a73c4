package sessions

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	sess := &Session{
		ID:      "s1",
		Name:    "Asha",
		Age:     34,
		Contact: "9876543210",
		Email:   "asha@example.com",
		Conversation: []Turn{
			{Role: "user", Text: "I have a headache"},
			{Role: "assistant", Text: "How long has it lasted?"},
		},
		ReportFiles: []string{"uploads/s1/report.pdf"},
	}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "Asha" || got.Age != 34 {
		t.Errorf("unexpected session %+v", got)
	}
	if len(got.Conversation) != 2 || got.Conversation[1].Text != "How long has it lasted?" {
		t.Errorf("conversation not preserved: %+v", got.Conversation)
	}
	if len(got.ReportFiles) != 1 {
		t.Errorf("report files not preserved: %+v", got.ReportFiles)
	}
}

func TestRedisStoreUnknownID(t *testing.T) {
	store := newRedisStore(t)
	if _, err := store.Load(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, &Session{ID: "s2", Name: "Ravi"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "s2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "s2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	ctx := context.Background()

	if err := store.Save(ctx, &Session{ID: "s3", Name: "Meera"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Load(ctx, "s3"); err != nil {
		t.Fatalf("Load before expiry: %v", err)
	}

	store.now = func() time.Time { return base.Add(time.Hour + time.Second) }
	if _, err := store.Load(ctx, "s3"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after TTL, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, &Session{ID: "s4"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "s4"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "s4"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
