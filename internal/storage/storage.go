package storage

import (
	"context"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// StoredObject describes a successfully uploaded file.
type StoredObject struct {
	URL string
	Key string
}

// ObjectInfo describes one stored file when listing a bucket or directory.
type ObjectInfo struct {
	Key        string
	URL        string
	Size       int64
	UploadedAt time.Time
}

// ObjectStore abstracts the blob backend so services and tests can swap
// implementations. Delete must treat an already-missing key as success.
type ObjectStore interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (StoredObject, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]ObjectInfo, error)
	// BaseURL is the public prefix stored URLs share; KeyFromURL pairs with it.
	BaseURL() string
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips path separators and other unsafe characters and
// bounds the length so user filenames can be embedded in object keys.
func SanitizeFilename(filename string) string {
	sanitized := filenameSanitizer.ReplaceAllString(filename, "_")
	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}
	return sanitized
}

// KeyFromURL derives the object key for a stored URL given the public base
// under which the store serves files. Returns an empty string when the URL
// does not belong to this store.
func KeyFromURL(fileURL, baseURL string) string {
	fileURL = strings.TrimSpace(fileURL)
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if fileURL == "" || baseURL == "" {
		return ""
	}

	if strings.HasPrefix(fileURL, baseURL+"/") {
		key := strings.TrimPrefix(fileURL, baseURL+"/")
		if unescaped, err := url.PathUnescape(key); err == nil {
			key = unescaped
		}
		return key
	}

	// Relative URLs from the local store carry the base path directly.
	if parsed, err := url.Parse(baseURL); err == nil && parsed.Path != "" {
		basePath := strings.TrimRight(parsed.Path, "/")
		if basePath != "" && strings.HasPrefix(fileURL, basePath+"/") {
			return strings.TrimPrefix(fileURL, basePath+"/")
		}
	}

	return ""
}
