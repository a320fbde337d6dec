package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/buildsite/internal/db"
	"github.com/buildsite/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// mockStore records operations instead of talking to a real backend.
type mockStore struct {
	mu        sync.Mutex
	baseURL   string
	deleted   []string
	deleteErr error
	uploads   int
}

func newMockStore() *mockStore {
	return &mockStore{baseURL: "https://cdn.example.com/media"}
}

func (m *mockStore) Upload(_ context.Context, r io.Reader, filename, _ string) (storage.StoredObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	io.Copy(io.Discard, r)
	m.uploads++
	key := fmt.Sprintf("uploads/%d_%s", m.uploads, storage.SanitizeFilename(filename))
	return storage.StoredObject{
		URL: m.baseURL + "/" + key,
		Key: key,
	}, nil
}

func (m *mockStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockStore) List(_ context.Context) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (m *mockStore) BaseURL() string {
	return m.baseURL
}

func (m *mockStore) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

func (m *mockStore) urlFor(key string) string {
	return m.baseURL + "/" + key
}

func newTestGalleryStack(t *testing.T, gdb *gorm.DB, caps map[GalleryKind]int) (*GalleryService, *StagingService, *mockStore) {
	t.Helper()
	store := newMockStore()
	staging := NewStagingService(store)
	refs := NewReferenceIndex(gdb)
	refs.Register(staging.ReferenceChecker())
	return NewGalleryService(gdb, store, refs, staging, caps), staging, store
}

func createTestProject(t *testing.T, gdb *gorm.DB, name string) *db.Project {
	t.Helper()
	project := &db.Project{Name: name, Slug: name}
	if err := gdb.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

func trackTestUpload(staging *StagingService, store *mockStore, key, sessionID string) string {
	url := store.urlFor(key)
	staging.Track(url, key, sessionID, key)
	return url
}

// backdatePending ages a session's entries so expiry sweeps can be tested
// without sleeping.
func backdatePending(staging *StagingService, sessionID string, age time.Duration) {
	staging.mu.Lock()
	defer staging.mu.Unlock()
	for url, entry := range staging.pending[sessionID] {
		entry.TrackedAt = time.Now().Add(-age)
		staging.pending[sessionID][url] = entry
	}
}
