package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		name    string
		fileURL string
		baseURL string
		want    string
	}{
		{"absolute base", "https://storage.googleapis.com/bucket/uploads/a.jpg", "https://storage.googleapis.com/bucket", "uploads/a.jpg"},
		{"trailing slash on base", "https://cdn.example.com/media/pic.png", "https://cdn.example.com/media/", "pic.png"},
		{"relative local url", "/static/uploads/20250101-abc.jpg", "/static/uploads", "20250101-abc.jpg"},
		{"escaped key", "https://cdn.example.com/media/site%20plan.pdf", "https://cdn.example.com/media", "site plan.pdf"},
		{"foreign url", "https://elsewhere.example.com/pic.jpg", "https://cdn.example.com/media", ""},
		{"empty url", "", "https://cdn.example.com/media", ""},
		{"empty base", "/static/uploads/a.jpg", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeyFromURL(tc.fileURL, tc.baseURL); got != tc.want {
				t.Fatalf("KeyFromURL(%q, %q) = %q, want %q", tc.fileURL, tc.baseURL, got, tc.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename("../../etc/passwd"); strings.Contains(got, "/") {
		t.Fatalf("expected separators stripped, got %q", got)
	}
	if got := SanitizeFilename("site plan (final).jpg"); got != "site_plan__final_.jpg" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
	if got := SanitizeFilename(""); got != "file" {
		t.Fatalf("expected fallback name, got %q", got)
	}
	if got := SanitizeFilename(strings.Repeat("a", 200)); len(got) != 100 {
		t.Fatalf("expected length bounded to 100, got %d", len(got))
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/static/uploads")
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}

	obj, err := store.Upload(context.Background(), bytes.NewReader([]byte("image-bytes")), "foundation.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("failed to upload: %v", err)
	}
	if !strings.HasPrefix(obj.URL, "/static/uploads/") {
		t.Fatalf("unexpected URL %q", obj.URL)
	}
	if KeyFromURL(obj.URL, store.BaseURL()) != obj.Key {
		t.Fatalf("expected key derivable from URL, got %q vs %q", KeyFromURL(obj.URL, store.BaseURL()), obj.Key)
	}

	data, err := os.ReadFile(filepath.Join(dir, obj.Key))
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("unexpected file contents %q", data)
	}

	infos, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(infos) != 1 || infos[0].Key != obj.Key {
		t.Fatalf("expected the uploaded file listed, got %+v", infos)
	}

	if err := store.Delete(context.Background(), obj.Key); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, obj.Key)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err %v", err)
	}

	// Deleting again is fine; a missing file counts as success.
	if err := store.Delete(context.Background(), obj.Key); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestLocalStoreDeleteRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/static/uploads")
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}

	if err := store.Delete(context.Background(), "../outside.txt"); err == nil {
		t.Fatalf("expected traversal key rejected")
	}
	if err := store.Delete(context.Background(), ""); err == nil {
		t.Fatalf("expected empty key rejected")
	}
}
