package handler

import (
	"image"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gin-gonic/gin"
)

// UploadImage stores one image in the object store and stages it under the
// caller's upload session. The file stays pending until a gallery save
// commits it; abandoned sessions are swept later.
func (a *API) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	sessionID := strings.TrimSpace(c.PostForm("session_id"))
	if sessionID == "" {
		respondError(c, http.StatusBadRequest, "upload session id is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer file.Close()

	// Probe dimensions from the header, then rewind for the real upload.
	var width, height int
	if config, _, err := image.DecodeConfig(file); err == nil {
		width, height = config.Width, config.Height
	}
	if _, err := file.Seek(0, 0); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to read upload")
		return
	}

	object, err := a.store.Upload(c.Request.Context(), file, fileHeader.Filename, contentType)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to store upload")
		return
	}

	a.staging.Track(object.URL, object.Key, sessionID, fileHeader.Filename)

	c.JSON(http.StatusOK, gin.H{
		"url":    object.URL,
		"key":    object.Key,
		"width":  width,
		"height": height,
	})
}

// ListPendingUploads returns what is still staged under a session so the
// admin UI can restore state on mount.
func (a *API) ListPendingUploads(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("sessionId"))
	if sessionID == "" {
		respondError(c, http.StatusBadRequest, "upload session id is required")
		return
	}

	entries := a.staging.Pending(sessionID)
	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, gin.H{
			"url":       entry.URL,
			"filename":  entry.Filename,
			"trackedAt": entry.TrackedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type cleanupPayload struct {
	URL string `json:"url"`
}

// CleanupUploadSession removes staged files for a session, preserving any
// file whose URL a persisted record already references. Called by the admin
// UI on cancel and unmount. An optional url narrows the sweep to one file.
func (a *API) CleanupUploadSession(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("sessionId"))
	if sessionID == "" {
		respondError(c, http.StatusBadRequest, "upload session id is required")
		return
	}

	var payload cleanupPayload
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &payload, "invalid request body") {
			return
		}
	}

	result, err := a.galleries.CleanupSession(c.Request.Context(), sessionID, strings.TrimSpace(payload.URL))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clean up upload session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted":   result.DeletedURLs,
		"failed":    result.FailedURLs,
		"preserved": result.PreservedURLs,
	})
}
