package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/buildsite/internal/db"
	"github.com/buildsite/internal/service"
	"github.com/buildsite/internal/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockStore records operations instead of talking to a real backend.
type mockStore struct {
	mu      sync.Mutex
	baseURL string
	deleted []string
	uploads int
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
	return storage.StoredObject{URL: m.baseURL + "/" + key, Key: key}, nil
}

func (m *mockStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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

func setupTestAPI(t *testing.T) (*API, *mockStore, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	store := newMockStore()
	api := NewAPI(gdb, store, map[service.GalleryKind]int{service.GalleryKindProject: 5})

	return api, store, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func testContext(req *http.Request, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}
