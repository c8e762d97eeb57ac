package attachments

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"attachments-backend/internal/shared/storage/owned"
)

// The storage-layer members of the error taxonomy are defined by the
// owned store; they pass through the mediator unchanged.
var (
	ErrNotFound = owned.ErrNotFound
	ErrNotOwner = owned.ErrNotOwner
	ErrStorage  = owned.ErrStorage

	// ErrInvalidContent indicates one or more validators rejected the
	// file.
	ErrInvalidContent = errors.New("invalid content")
)

// InvalidContentError aggregates every rejecting validator's category
// and reason, not just the first.
type InvalidContentError struct {
	Filename string
	Reasons  map[Category]string
}

func (e *InvalidContentError) Error() string {
	parts := make([]string, 0, len(e.Reasons))
	for category, reason := range e.Reasons {
		parts = append(parts, fmt.Sprintf("%s: %s", category, reason))
	}
	sort.Strings(parts)
	return fmt.Sprintf("file %q rejected: %s", e.Filename, strings.Join(parts, "; "))
}

func (e *InvalidContentError) Is(target error) bool { return target == ErrInvalidContent }

// normalize keeps the error taxonomy closed: domain errors pass
// through, anything else becomes a storage failure.
func normalize(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotOwner), errors.Is(err, ErrInvalidContent), errors.Is(err, ErrStorage):
		return err
	default:
		return &owned.StorageError{Op: op, Err: err}
	}
}
