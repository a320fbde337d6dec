package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStore uploads files to a Google Cloud Storage bucket and serves them
// through the bucket's public URL.
type GCSStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
	prefix  string
}

// NewGCSStore connects to the bucket. credentialsFile may be empty, in which
// case application default credentials are used.
func NewGCSStore(ctx context.Context, bucket, baseURL, credentialsFile string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	if baseURL == "" {
		baseURL = fmt.Sprintf("https://storage.googleapis.com/%s", bucket)
	}

	return &GCSStore{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		prefix:  "uploads",
	}, nil
}

// Upload streams the file into the bucket under a unique key and makes the
// object publicly readable so the returned URL works without authentication.
func (s *GCSStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (StoredObject, error) {
	key := fmt.Sprintf("%s/%d_%s_%s", s.prefix, time.Now().Unix(), uuid.New().String()[:8], SanitizeFilename(filename))

	obj := s.client.Bucket(s.bucket).Object(key)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return StoredObject{}, fmt.Errorf("upload %s: %w", key, err)
	}
	if err := wc.Close(); err != nil {
		return StoredObject{}, fmt.Errorf("finalize upload %s: %w", key, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		log.Printf("warning: failed to set public ACL on %s: %v", key, err)
	}

	return StoredObject{
		URL: fmt.Sprintf("%s/%s", s.baseURL, key),
		Key: key,
	}, nil
}

// Delete removes the object. A key that no longer exists counts as success
// so repeated deletes stay safe.
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("object key is required")
	}

	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// List returns every stored object under the upload prefix.
func (s *GCSStore) List(ctx context.Context) ([]ObjectInfo, error) {
	var infos []ObjectInfo

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.prefix + "/"})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		infos = append(infos, ObjectInfo{
			Key:        attrs.Name,
			URL:        fmt.Sprintf("%s/%s", s.baseURL, attrs.Name),
			Size:       attrs.Size,
			UploadedAt: attrs.Created,
		})
	}

	return infos, nil
}

// BaseURL reports the public URL prefix objects are served under.
func (s *GCSStore) BaseURL() string {
	return s.baseURL
}
