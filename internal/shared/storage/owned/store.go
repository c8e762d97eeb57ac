// Package owned decorates a blob store with per-object owner binding
// and content encryption. Ownership is not kept in any registry; it is
// re-derived on every access by decrypting the owner tag stored in
// object metadata.
package owned

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"attachments-backend/internal/shared/aead"
	"attachments-backend/internal/shared/storage/blob"
	"attachments-backend/internal/shared/telemetry"
)

// Store enforces ownership and confidentiality on every operation
// against the underlying blob store. It is stateless apart from its
// two references and safe for concurrent use.
type Store struct {
	Blobs  blob.Store
	Cipher aead.Cipher
}

// New constructs a Store over the given backend and cipher.
func New(blobs blob.Store, cipher aead.Cipher) *Store {
	return &Store{Blobs: blobs, Cipher: cipher}
}

// Write encrypts content with ownerID as associated data and persists
// it under key. The owner tag (ownerID encrypted with itself as
// associated data) is stored in the object metadata. Writing performs
// no ownership check: the writer establishes ownership.
func (s *Store) Write(ctx context.Context, key string, content []byte, ownerID string, attrs Attrs) (BlobInfo, error) {
	tag, err := s.Cipher.Encrypt([]byte(ownerID), []byte(ownerID))
	if err != nil {
		return BlobInfo{}, &StorageError{Op: "write", Err: fmt.Errorf("encrypt owner tag: %w", err)}
	}
	sealed, err := s.Cipher.Encrypt(content, []byte(ownerID))
	if err != nil {
		return BlobInfo{}, &StorageError{Op: "write", Err: fmt.Errorf("encrypt content: %w", err)}
	}

	metadata := make(map[string]string, len(attrs.Metadata)+3)
	for k, v := range attrs.Metadata {
		metadata[k] = v
	}
	metadata[OwnerTagKey] = base64.StdEncoding.EncodeToString(tag)
	metadata[originalNameKey] = attrs.OriginalName
	metadata[plaintextSizeKey] = strconv.Itoa(len(content))

	stored, err := s.Blobs.Put(ctx, key, sealed, attrs.ContentType, metadata)
	if err != nil {
		return BlobInfo{}, &StorageError{Op: "write", Err: err}
	}
	return infoFromBlob(stored), nil
}

// Read returns the object under key with its content decrypted,
// provided it belongs to ownerID. The content decryption uses ownerID
// as associated data, a second binding independent of the tag check.
func (s *Store) Read(ctx context.Context, key string, ownerID string) (BlobRecord, error) {
	info, err := s.gate(ctx, "read", key, ownerID)
	if err != nil {
		return BlobRecord{}, err
	}

	sealed, _, err := s.Blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return BlobRecord{}, &NotFoundError{Key: key}
		}
		return BlobRecord{}, &StorageError{Op: "read", Err: err}
	}
	content, err := s.Cipher.Decrypt(sealed, []byte(ownerID))
	if err != nil {
		// The tag matched, so a failure here means corrupted or
		// foreign-written content, not an authorization problem.
		return BlobRecord{}, &StorageError{Op: "read", Err: fmt.Errorf("decrypt content for key %q: %w", key, err)}
	}
	return BlobRecord{Content: content, Info: info}, nil
}

// Info returns metadata for the object under key without fetching or
// decrypting its content, provided it belongs to ownerID.
func (s *Store) Info(ctx context.Context, key string, ownerID string) (BlobInfo, error) {
	return s.gate(ctx, "info", key, ownerID)
}

// Delete removes the object under key, provided it belongs to ownerID,
// and reports whether an object was actually removed.
func (s *Store) Delete(ctx context.Context, key string, ownerID string) (bool, error) {
	if _, err := s.gate(ctx, "delete", key, ownerID); err != nil {
		return false, err
	}
	removed, err := s.Blobs.Delete(ctx, key)
	if err != nil {
		return false, &StorageError{Op: "delete", Err: err}
	}
	return removed, nil
}

// List returns every object under prefix owned by ownerID. Objects
// belonging to other owners are silently excluded; listing is a view,
// not an authorization check.
func (s *Store) List(ctx context.Context, prefix string, ownerID string) ([]BlobInfo, error) {
	infos, err := s.Blobs.List(ctx, prefix)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	out := []BlobInfo{}
	for _, bi := range infos {
		info := infoFromBlob(bi)
		if s.ownedBy(info, ownerID) {
			out = append(out, info)
		}
	}
	return out, nil
}

// gate resolves object metadata and verifies ownership. Absent objects
// yield NotFound; everything that prevents a positive ownership match,
// including decryption failures, yields NotOwner.
func (s *Store) gate(ctx context.Context, op, key, ownerID string) (BlobInfo, error) {
	bi, err := s.Blobs.Stat(ctx, key)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return BlobInfo{}, &NotFoundError{Key: key}
		}
		return BlobInfo{}, &StorageError{Op: op, Err: err}
	}
	info := infoFromBlob(bi)
	if info.OwnerTag == "" {
		// Objects written through this store always carry a tag.
		telemetry.Warn("object missing owner tag", map[string]any{"key": key, "op": op})
		return BlobInfo{}, &NotOwnerError{Key: key}
	}
	if !s.ownedBy(info, ownerID) {
		return BlobInfo{}, &NotOwnerError{Key: key}
	}
	return info, nil
}

func (s *Store) ownedBy(info BlobInfo, ownerID string) bool {
	if info.OwnerTag == "" {
		return false
	}
	tag, err := base64.StdEncoding.DecodeString(info.OwnerTag)
	if err != nil {
		return false
	}
	// The tag is self-authenticating: decrypting with the wrong owner
	// id as associated data fails. The plaintext comparison is kept as
	// an additional explicit check.
	plain, err := s.Cipher.Decrypt(tag, []byte(ownerID))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(plain, []byte(ownerID)) == 1
}
