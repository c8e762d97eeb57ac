package owned

import (
	"strconv"
	"time"

	"attachments-backend/internal/shared/storage/blob"
)

// Metadata keys written by the store. OwnerTagKey must be present on
// every object created through it; objects without it are treated as
// foreign and owned by nobody.
const (
	OwnerTagKey      = "eier"
	originalNameKey  = "original-name"
	plaintextSizeKey = "original-size"
)

// BlobInfo is the immutable metadata of a stored attachment.
type BlobInfo struct {
	Key          string
	OriginalName string
	Size         int64
	ContentType  string
	CreatedAt    time.Time
	OwnerTag     string
	Metadata     map[string]string
}

// BlobRecord is a stored attachment with its decrypted content.
type BlobRecord struct {
	Content []byte
	Info    BlobInfo
}

// Attrs carries caller-supplied attributes for a new object.
type Attrs struct {
	OriginalName string
	ContentType  string
	Metadata     map[string]string
}

func infoFromBlob(bi blob.Info) BlobInfo {
	info := BlobInfo{
		Key:         bi.Key,
		Size:        bi.Size,
		ContentType: bi.ContentType,
		CreatedAt:   bi.CreatedAt,
		Metadata:    bi.Metadata,
	}
	if bi.Metadata != nil {
		info.OriginalName = bi.Metadata[originalNameKey]
		info.OwnerTag = bi.Metadata[OwnerTagKey]
		if raw, ok := bi.Metadata[plaintextSizeKey]; ok {
			if size, err := strconv.ParseInt(raw, 10, 64); err == nil {
				info.Size = size
			}
		}
	}
	return info
}
