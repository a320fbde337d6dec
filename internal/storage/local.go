package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStore keeps uploads on the local disk and serves them through the
// static file route. Used for development and tests.
type LocalStore struct {
	dir     string
	urlPath string
}

// NewLocalStore ensures the upload directory exists.
func NewLocalStore(dir, urlPath string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	if urlPath == "" {
		urlPath = "/static/uploads"
	}
	return &LocalStore{
		dir:     dir,
		urlPath: strings.TrimRight(urlPath, "/"),
	}, nil
}

// Upload writes the file under a date-prefixed unique name.
func (s *LocalStore) Upload(_ context.Context, r io.Reader, filename, _ string) (StoredObject, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)

	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return StoredObject{}, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return StoredObject{}, fmt.Errorf("write upload file: %w", err)
	}

	return StoredObject{
		URL: fmt.Sprintf("%s/%s", s.urlPath, key),
		Key: key,
	}, nil
}

// Delete removes the backing file; a missing file counts as success.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("object key is required")
	}
	// Keys never contain separators, but guard against traversal anyway.
	if strings.Contains(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid object key %q", key)
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file %s: %w", key, err)
	}
	return nil
}

// List walks the upload directory.
func (s *LocalStore) List(_ context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload directory: %w", err)
	}

	var infos []ObjectInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, ObjectInfo{
			Key:        entry.Name(),
			URL:        fmt.Sprintf("%s/%s", s.urlPath, entry.Name()),
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
		})
	}

	return infos, nil
}

// BaseURL reports the URL prefix files are served under.
func (s *LocalStore) BaseURL() string {
	return s.urlPath
}
