package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/buildsite/internal/db"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestCreateProjectCommitsUploadSession(t *testing.T) {
	api, store, cleanup := setupTestAPI(t)
	defer cleanup()

	coverURL := store.baseURL + "/uploads/cover.jpg"
	api.staging.Track(coverURL, "uploads/cover.jpg", "session-new", "cover.jpg")

	payload := map[string]any{
		"name":      "Northgate Warehouse",
		"category":  "industrial",
		"image":     coverURL,
		"sessionId": "session-new",
	}
	req := jsonRequest(t, http.MethodPost, "/admin/api/projects", payload)
	c, w := testContext(req)

	api.CreateProject(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if pending := api.staging.Pending("session-new"); len(pending) != 0 {
		t.Fatalf("expected cover committed out of staging, got %v", pending)
	}

	// Records serialize camelCase on the wire.
	item, ok := decodeBody(t, w)["item"].(map[string]any)
	if !ok {
		t.Fatalf("expected item in response, got %s", w.Body.String())
	}
	if _, ok := item["id"].(float64); !ok {
		t.Fatalf("expected camelCase id field, got %v", item)
	}
	if item["sortOrder"] == nil || item["createdAt"] == nil {
		t.Fatalf("expected camelCase sortOrder and createdAt fields, got %v", item)
	}
}

func TestUpdateProjectReleasesReplacedImage(t *testing.T) {
	api, store, cleanup := setupTestAPI(t)
	defer cleanup()

	oldURL := store.baseURL + "/uploads/old-cover.jpg"
	project := &db.Project{Name: "Southside Clinic", Slug: "southside-clinic", Image: oldURL}
	if err := api.DB().Create(project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	payload := map[string]any{
		"name":  "Southside Clinic",
		"slug":  "southside-clinic",
		"image": store.baseURL + "/uploads/new-cover.jpg",
	}
	req := jsonRequest(t, http.MethodPut, "/admin/api/projects/1", payload)
	c, w := testContext(req, gin.Param{Key: "id", Value: strconv.FormatUint(uint64(project.ID), 10)})

	api.UpdateProject(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if keys := store.deletedKeys(); len(keys) != 1 || keys[0] != "uploads/old-cover.jpg" {
		t.Fatalf("expected old cover released, got %v", keys)
	}
}

func TestDeleteProjectRemovesGalleryAndFiles(t *testing.T) {
	api, store, cleanup := setupTestAPI(t)
	defer cleanup()

	coverURL := store.baseURL + "/uploads/site-cover.jpg"
	project := &db.Project{Name: "Eastside Depot", Slug: "eastside-depot", Image: coverURL}
	if err := api.DB().Create(project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	rows := []db.ProjectGalleryImage{
		{ProjectID: project.ID, ImageURL: store.baseURL + "/uploads/g1.jpg", DisplayOrder: 1},
		{ProjectID: project.ID, ImageURL: store.baseURL + "/uploads/g2.jpg", DisplayOrder: 2},
	}
	for i := range rows {
		if err := api.DB().Create(&rows[i]).Error; err != nil {
			t.Fatalf("failed to seed gallery row: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodDelete, "/admin/api/projects/1", nil)
	c, w := testContext(req, gin.Param{Key: "id", Value: strconv.FormatUint(uint64(project.ID), 10)})

	api.DeleteProject(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var galleryCount int64
	api.DB().Model(&db.ProjectGalleryImage{}).Where("project_id = ?", project.ID).Count(&galleryCount)
	if galleryCount != 0 {
		t.Fatalf("expected gallery rows removed, got %d", galleryCount)
	}

	if err := api.DB().First(&db.Project{}, project.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected project soft-deleted, got %v", err)
	}

	deleted := map[string]bool{}
	for _, key := range store.deletedKeys() {
		deleted[key] = true
	}
	for _, key := range []string{"uploads/g1.jpg", "uploads/g2.jpg", "uploads/site-cover.jpg"} {
		if !deleted[key] {
			t.Fatalf("expected %s deleted, got %v", key, store.deletedKeys())
		}
	}
}

func TestDeleteProjectNotFound(t *testing.T) {
	api, _, cleanup := setupTestAPI(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodDelete, "/admin/api/projects/42", nil)
	c, w := testContext(req, gin.Param{Key: "id", Value: "42"})

	api.DeleteProject(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
