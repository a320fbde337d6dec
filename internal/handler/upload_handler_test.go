package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, fieldname, filename, contentType string, data []byte, sessionID string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldname+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write multipart data: %v", err)
	}
	if sessionID != "" {
		if err := writer.WriteField("session_id", sessionID); err != nil {
			t.Fatalf("failed to write session field: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/api/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	api, store, cleanup := setupTestAPI(t)
	defer cleanup()

	req := multipartUpload(t, "image", "pour.png", "image/png", encodeTestPNG(t, 32, 24), "session-up")
	c, w := testContext(req)

	api.UploadImage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["width"].(float64) != 32 || body["height"].(float64) != 24 {
		t.Fatalf("expected probed dimensions 32x24, got %v x %v", body["width"], body["height"])
	}
	if store.uploads != 1 {
		t.Fatalf("expected 1 store upload, got %d", store.uploads)
	}

	// The upload is staged under its session until a save commits it.
	listReq := httptest.NewRequest(http.MethodGet, "/admin/api/uploads/sessions/session-up", nil)
	c, w = testContext(listReq, gin.Param{Key: "sessionId", Value: "session-up"})
	api.ListPendingUploads(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	items := decodeBody(t, w)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 pending upload, got %d", len(items))
	}
}

func TestUploadImageValidation(t *testing.T) {
	api, _, cleanup := setupTestAPI(t)
	defer cleanup()

	// Missing session id.
	req := multipartUpload(t, "image", "pour.png", "image/png", encodeTestPNG(t, 4, 4), "")
	c, w := testContext(req)
	api.UploadImage(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without session id, got %d", w.Code)
	}

	// Non-image content type.
	req = multipartUpload(t, "image", "notes.txt", "text/plain", []byte("hello"), "session-up")
	c, w = testContext(req)
	api.UploadImage(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for non-image, got %d", w.Code)
	}

	// Missing file field.
	req = httptest.NewRequest(http.MethodPost, "/admin/api/uploads", nil)
	c, w = testContext(req)
	api.UploadImage(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without file, got %d", w.Code)
	}
}

func TestCleanupUploadSession(t *testing.T) {
	api, store, cleanup := setupTestAPI(t)
	defer cleanup()

	req := multipartUpload(t, "image", "scrap.png", "image/png", encodeTestPNG(t, 4, 4), "session-gone")
	c, w := testContext(req)
	api.UploadImage(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected upload to succeed, got %d", w.Code)
	}
	uploadedURL := decodeBody(t, w)["url"].(string)

	cleanupReq := httptest.NewRequest(http.MethodPost, "/admin/api/uploads/sessions/session-gone/cleanup", nil)
	c, w = testContext(cleanupReq, gin.Param{Key: "sessionId", Value: "session-gone"})
	api.CleanupUploadSession(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	deleted := decodeBody(t, w)["deleted"].([]any)
	if len(deleted) != 1 || deleted[0].(string) != uploadedURL {
		t.Fatalf("expected uploaded file cleaned up, got %v", deleted)
	}
	if keys := store.deletedKeys(); len(keys) != 1 {
		t.Fatalf("expected 1 store delete, got %v", keys)
	}
}
