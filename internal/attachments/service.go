// Package attachments holds the mediator for the intermediate
// attachment store: it derives storage keys, runs content validation
// and delegates persistence to the ownership-scoped store.
package attachments

import (
	"context"
	"path"

	"github.com/google/uuid"

	"attachments-backend/internal/shared/storage/owned"
	"attachments-backend/internal/shared/telemetry"
	"attachments-backend/internal/shared/util"
)

// Service is the single entry point used by the API layer. The caller
// must have resolved the owner identity already; this layer never sees
// tokens or headers.
type Service struct {
	Store      *owned.Store
	Validators []Validator
}

// Save validates content and persists it under a freshly generated key
// inside folderID. The supplied filename is sanitized and kept only as
// metadata, never in the key, so duplicate names and unsafe characters
// are harmless. Validation fully completes before anything is written.
func (s *Service) Save(ctx context.Context, folderID, filename string, content []byte, contentType, ownerID string) (owned.BlobInfo, error) {
	folder, err := util.SanitizeFolderID(folderID)
	if err != nil {
		return owned.BlobInfo{}, normalize("save", err)
	}
	name, err := util.SanitizeFileName(filename)
	if err != nil {
		return owned.BlobInfo{}, normalize("save", err)
	}

	if err := runValidators(ctx, s.Validators, name, content); err != nil {
		return owned.BlobInfo{}, normalize("save", err)
	}

	key := path.Join(folder, uuid.NewString())
	info, err := s.Store.Write(ctx, key, content, ownerID, owned.Attrs{
		OriginalName: name,
		ContentType:  contentType,
	})
	if err != nil {
		return owned.BlobInfo{}, normalize("save", err)
	}

	telemetry.Info("attachment stored", map[string]any{"key": key, "size": info.Size})
	return info, nil
}

// List returns every attachment in folderID owned by ownerID. An empty
// or absent folder yields an empty slice, never an error. The prefix is
// delimited at the folder boundary so folder "id" never picks up
// objects from folder "id2".
func (s *Service) List(ctx context.Context, folderID, ownerID string) ([]owned.BlobInfo, error) {
	folder, err := util.SanitizeFolderID(folderID)
	if err != nil {
		return nil, normalize("list", err)
	}
	infos, err := s.Store.List(ctx, folder+"/", ownerID)
	if err != nil {
		return nil, normalize("list", err)
	}
	return infos, nil
}

// Fetch returns the attachment under key with decrypted content.
func (s *Service) Fetch(ctx context.Context, key, ownerID string) (owned.BlobRecord, error) {
	record, err := s.Store.Read(ctx, key, ownerID)
	if err != nil {
		return owned.BlobRecord{}, normalize("fetch", err)
	}
	return record, nil
}

// Remove deletes the attachment under key. A delete that removed
// nothing is reported as NotFound so callers only ever see success or
// a typed failure.
func (s *Service) Remove(ctx context.Context, key, ownerID string) error {
	removed, err := s.Store.Delete(ctx, key, ownerID)
	if err != nil {
		return normalize("remove", err)
	}
	if !removed {
		return &owned.NotFoundError{Key: key}
	}
	return nil
}
