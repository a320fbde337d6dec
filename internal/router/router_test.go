package router

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buildsite/internal/config"
	"github.com/buildsite/internal/db"
	"github.com/buildsite/internal/handler"
	"github.com/buildsite/internal/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type noopStore struct{}

func (noopStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (storage.StoredObject, error) {
	return storage.StoredObject{}, nil
}
func (noopStore) Delete(ctx context.Context, key string) error          { return nil }
func (noopStore) List(ctx context.Context) ([]storage.ObjectInfo, error) { return nil, nil }
func (noopStore) BaseURL() string                                        { return "/static/uploads" }

func setupTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	api := handler.NewAPI(gdb, noopStore{}, nil)
	return Setup(api, config.AppConfig{
		SessionSecret: "router-test",
		AdminOrigin:   "http://localhost:5173",
		UploadDir:     t.TempDir(),
		UploadURLPath: "/static/uploads",
		StagingMaxAge: time.Hour,
	}), gdb
}

func TestPing(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestPublicRoutesAreOpen(t *testing.T) {
	r, _ := setupTestRouter(t)

	for _, path := range []string{"/api/projects", "/api/services", "/api/blog", "/api/team", "/api/site"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected status 200, got %d", path, w.Code)
		}
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r, _ := setupTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/api/projects"},
		{http.MethodPost, "/admin/api/uploads"},
		{http.MethodGet, "/admin/api/gallery/project/parent/1"},
		{http.MethodDelete, "/admin/api/gallery/project/images/1"},
		{http.MethodPost, "/admin/api/uploads/sessions/abc/cleanup"},
	}
	for _, tc := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status 401, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestSessionCookieWorksOverPlainHTTP(t *testing.T) {
	r, gdb := setupTestRouter(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("let-me-in"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := gdb.Create(&db.User{Username: "admin", Password: string(hashed)}).Error; err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	body := bytes.NewReader([]byte(`{"username":"admin","password":"let-me-in"}`))
	loginReq := httptest.NewRequest(http.MethodPost, "http://buildsite.test/admin/api/login", body)
	loginReq.Header.Set("Content-Type", "application/json")
	loginRes := httptest.NewRecorder()
	r.ServeHTTP(loginRes, loginReq)
	if loginRes.Code != http.StatusOK {
		t.Fatalf("expected login to succeed, got %d: %s", loginRes.Code, loginRes.Body.String())
	}

	cookies := loginRes.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie on login")
	}
	for _, c := range cookies {
		if c.Name == "buildsite_session" && c.Secure {
			t.Fatal("expected session cookie usable over plain http, got Secure")
		}
	}

	req := httptest.NewRequest(http.MethodGet, "http://buildsite.test/admin/api/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected authenticated request to succeed, got %d", w.Code)
	}
}
