package util

import (
	"errors"
	"strings"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// SanitizeFolderID validates a folder identifier used as a storage key
// prefix. Sub-folders separated by single slashes are allowed; empty
// segments and traversal patterns are not.
func SanitizeFolderID(folderID string) (string, error) {
	s := strings.Trim(strings.TrimSpace(folderID), "/")
	if s == "" || strings.Contains(s, "..") || strings.Contains(s, "\\") {
		return "", errors.New("invalid folder id")
	}
	for _, segment := range strings.Split(s, "/") {
		if strings.TrimSpace(segment) == "" {
			return "", errors.New("invalid folder id")
		}
	}
	return s, nil
}
