package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type projectPayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured"`
	SortOrder   int    `json:"sortOrder"`
	CompletedAt string `json:"completedAt"` // YYYY-MM-DD, empty clears
	SessionID   string `json:"sessionId"`
}

func (p projectPayload) toInput() (service.ProjectInput, error) {
	input := service.ProjectInput{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Location:    p.Location,
		Category:    p.Category,
		Image:       p.Image,
		Featured:    p.Featured,
		SortOrder:   p.SortOrder,
	}
	if raw := strings.TrimSpace(p.CompletedAt); raw != "" {
		completed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return input, err
		}
		input.CompletedAt = &completed
	}
	return input, nil
}

// ListProjects returns projects for the admin screen with filters.
func (a *API) ListProjects(c *gin.Context) {
	filter := service.ProjectFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:  parsePositiveInt(c.DefaultQuery("perPage", "12"), 12),
	}
	if featured := c.Query("featured"); featured != "" {
		value := featured == "true" || featured == "1"
		filter.Featured = &value
	}

	result, err := a.projects.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
	})
}

// GetProject returns one project with its gallery.
func (a *API) GetProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	item, err := a.projects.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load project")
		return
	}

	gallery, err := a.galleries.ListImages(service.GalleryKindProject, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load project gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "gallery": gallery})
}

// GetProjectBySlug serves the public project detail page.
func (a *API) GetProjectBySlug(c *gin.Context) {
	item, err := a.projects.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load project")
		return
	}

	gallery, err := a.galleries.ListImages(service.GalleryKindProject, item.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load project gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "gallery": gallery})
}

// CreateProject creates a new project and commits its upload session.
func (a *API) CreateProject(c *gin.Context) {
	var payload projectPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	input, err := payload.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid completion date")
		return
	}

	item, err := a.projects.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNameRequired):
			respondError(c, http.StatusBadRequest, "project name is required")
		case errors.Is(err, service.ErrProjectSlugTaken):
			respondError(c, http.StatusBadRequest, "project slug is already in use")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create project")
		}
		return
	}

	if sessionID := strings.TrimSpace(payload.SessionID); sessionID != "" && item.Image != "" {
		a.staging.Commit(sessionID, item.Image)
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateProject modifies a project. A replaced primary image releases the
// old file unless something else still references it.
func (a *API) UpdateProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	var payload projectPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	input, err := payload.toInput()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid completion date")
		return
	}

	item, previousImage, err := a.projects.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondError(c, http.StatusNotFound, "project not found")
		case errors.Is(err, service.ErrProjectNameRequired):
			respondError(c, http.StatusBadRequest, "project name is required")
		case errors.Is(err, service.ErrProjectSlugTaken):
			respondError(c, http.StatusBadRequest, "project slug is already in use")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update project")
		}
		return
	}

	if sessionID := strings.TrimSpace(payload.SessionID); sessionID != "" && item.Image != "" {
		a.staging.Commit(sessionID, item.Image)
	}
	if previousImage != "" && previousImage != item.Image {
		a.galleries.ReleaseFile(c.Request.Context(), previousImage, service.ReferenceExclusion{})
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteProject removes a project, its gallery rows, and any files no longer
// referenced anywhere.
func (a *API) DeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	item, err := a.projects.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load project")
		return
	}

	exclude := service.ReferenceExclusion{ParentKind: service.GalleryKindProject, ParentID: id}
	if _, err := a.galleries.DeleteAllForParent(c.Request.Context(), service.GalleryKindProject, id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete project gallery")
		return
	}

	if err := a.projects.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete project")
		return
	}

	a.galleries.ReleaseFile(c.Request.Context(), item.Image, exclude)

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
