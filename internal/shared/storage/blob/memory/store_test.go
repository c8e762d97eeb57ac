package memory

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"attachments-backend/internal/shared/storage/blob"
)

func TestPutGetStat(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	data := []byte("payload")
	metadata := map[string]string{"eier": "tag"}
	put, err := store.Put(ctx, "folder/key", data, "application/pdf", metadata)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if put.Size != int64(len(data)) || put.ContentType != "application/pdf" {
		t.Fatalf("put info = %+v", put)
	}

	got, info, err := store.Get(ctx, "folder/key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("content = %q", got)
	}
	if info.Metadata["eier"] != "tag" {
		t.Fatalf("metadata = %+v", info.Metadata)
	}

	stat, err := store.Stat(ctx, "folder/key")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if stat.Key != "folder/key" || stat.CreatedAt.IsZero() {
		t.Fatalf("stat info = %+v", stat)
	}
}

func TestGetAbsent(t *testing.T) {
	t.Parallel()

	store := New()
	if _, _, err := store.Get(context.Background(), "nope"); !errors.Is(err, blob.ErrNotExist) {
		t.Fatalf("Get absent: %v", err)
	}
	if _, err := store.Stat(context.Background(), "nope"); !errors.Is(err, blob.ErrNotExist) {
		t.Fatalf("Stat absent: %v", err)
	}
}

func TestPutReplaces(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	if _, err := store.Put(ctx, "k", []byte("old"), "text/plain", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Put(ctx, "k", []byte("new"), "text/plain", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "new" {
		t.Fatalf("content = %q, want replacement", got)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	if _, err := store.Put(ctx, "k", []byte("x"), "text/plain", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	removed, err := store.Delete(ctx, "k")
	if err != nil || !removed {
		t.Fatalf("Delete existing = (%v, %v), want (true, nil)", removed, err)
	}
	removed, err = store.Delete(ctx, "k")
	if err != nil || removed {
		t.Fatalf("Delete absent = (%v, %v), want (false, nil)", removed, err)
	}
}

func TestListByPrefix(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	for _, key := range []string{"id/a", "id/b", "other/c"} {
		if _, err := store.Put(ctx, key, []byte("x"), "text/plain", nil); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	infos, err := store.List(ctx, "id")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("list length = %d, want 2", len(infos))
	}
	if infos[0].Key != "id/a" || infos[1].Key != "id/b" {
		t.Fatalf("list not ordered by key: %+v", infos)
	}

	empty, err := store.List(ctx, "missing")
	if err != nil {
		t.Fatalf("List empty prefix: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}
}

func TestStoredDataIsIsolated(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()

	data := []byte("mutable")
	if _, err := store.Put(ctx, "k", data, "text/plain", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data[0] = 'X'

	got, _, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "mutable" {
		t.Fatalf("stored data aliased caller slice: %q", got)
	}
}
