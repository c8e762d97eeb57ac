package blob

import (
	"context"
	"errors"
	"time"
)

// ErrNotExist indicates no object is stored under the requested key.
var ErrNotExist = errors.New("object does not exist")

// Info describes a stored object as reported by the backend.
type Info struct {
	Key         string
	Size        int64
	ContentType string
	CreatedAt   time.Time
	Metadata    map[string]string
}

// Store defines the contract for a key-addressed blob backend with
// string metadata and list-by-prefix semantics. A single Put or Delete
// on a given key is assumed atomic; no cross-key transactions exist.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) (Info, error)
	Get(ctx context.Context, key string) ([]byte, Info, error)
	Stat(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
}
