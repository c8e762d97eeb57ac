package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"attachments-backend/internal/shared/storage/blob"
)

type entry struct {
	data []byte
	info blob.Info
}

// Store is an in-memory implementation of blob.Store used in tests and
// for local development.
type Store struct {
	mu      sync.RWMutex
	objects map[string]entry
}

// New constructs an empty Store.
func New() *Store {
	return &Store{objects: make(map[string]entry)}
}

// Put stores data under key, replacing any previous object.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) (blob.Info, error) {
	if err := ctx.Err(); err != nil {
		return blob.Info{}, err
	}
	info := blob.Info{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
		Metadata:    copyMap(metadata),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = entry{data: append([]byte(nil), data...), info: info}
	return info, nil
}

// Get returns the object stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, blob.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, blob.Info{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.objects[key]
	if !ok {
		return nil, blob.Info{}, blob.ErrNotExist
	}
	return append([]byte(nil), e.data...), cloneInfo(e.info), nil
}

// Stat returns metadata for the object stored under key.
func (s *Store) Stat(ctx context.Context, key string) (blob.Info, error) {
	if err := ctx.Err(); err != nil {
		return blob.Info{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.objects[key]
	if !ok {
		return blob.Info{}, blob.ErrNotExist
	}
	return cloneInfo(e.info), nil
}

// Delete removes the object under key and reports whether one existed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return false, nil
	}
	delete(s.objects, key)
	return true, nil
}

// List returns info for every object whose key starts with prefix,
// ordered by key.
func (s *Store) List(ctx context.Context, prefix string) ([]blob.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []blob.Info{}
	for key, e := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, cloneInfo(e.info))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneInfo(info blob.Info) blob.Info {
	info.Metadata = copyMap(info.Metadata)
	return info
}

var _ blob.Store = (*Store)(nil)
