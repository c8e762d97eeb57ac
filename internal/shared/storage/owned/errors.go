package owned

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no object exists under the requested key.
	ErrNotFound = errors.New("not found")

	// ErrNotOwner indicates the object exists but does not belong to
	// the caller. Decryption failures on the owner tag surface as this
	// error as well, never as a crypto error.
	ErrNotOwner = errors.New("not owner")

	// ErrStorage indicates an unclassified backend or crypto fault.
	ErrStorage = errors.New("storage failure")
)

// NotFoundError reports the key that had no object.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object %q: not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotOwnerError reports the key the caller does not own.
type NotOwnerError struct {
	Key string
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("object %q: not owner", e.Key)
}

func (e *NotOwnerError) Is(target error) bool { return target == ErrNotOwner }

// StorageError wraps an underlying backend or crypto fault.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
