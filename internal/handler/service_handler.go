package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type servicePayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sortOrder"`
	SessionID   string `json:"sessionId"`
}

func (p servicePayload) toInput() service.ServiceInput {
	return service.ServiceInput{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Icon:        p.Icon,
		Image:       p.Image,
		SortOrder:   p.SortOrder,
	}
}

// ListServices returns every service.
func (a *API) ListServices(c *gin.Context) {
	items, err := a.services.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetService returns one service with its gallery.
func (a *API) GetService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid service id")
		return
	}

	item, err := a.services.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, http.StatusNotFound, "service not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load service")
		return
	}

	gallery, err := a.galleries.ListImages(service.GalleryKindService, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load service gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "gallery": gallery})
}

// GetServiceBySlug serves the public service detail page.
func (a *API) GetServiceBySlug(c *gin.Context) {
	item, err := a.services.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, http.StatusNotFound, "service not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load service")
		return
	}

	gallery, err := a.galleries.ListImages(service.GalleryKindService, item.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load service gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "gallery": gallery})
}

// CreateService creates a new service and commits its upload session.
func (a *API) CreateService(c *gin.Context) {
	var payload servicePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.services.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrServiceNameRequired):
			respondError(c, http.StatusBadRequest, "service name is required")
		case errors.Is(err, service.ErrServiceSlugTaken):
			respondError(c, http.StatusBadRequest, "service slug is already in use")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create service")
		}
		return
	}

	if sessionID := strings.TrimSpace(payload.SessionID); sessionID != "" && item.Image != "" {
		a.staging.Commit(sessionID, item.Image)
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateService modifies a service, releasing a replaced primary image.
func (a *API) UpdateService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid service id")
		return
	}

	var payload servicePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, previousImage, err := a.services.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrServiceNotFound):
			respondError(c, http.StatusNotFound, "service not found")
		case errors.Is(err, service.ErrServiceNameRequired):
			respondError(c, http.StatusBadRequest, "service name is required")
		case errors.Is(err, service.ErrServiceSlugTaken):
			respondError(c, http.StatusBadRequest, "service slug is already in use")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update service")
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

// DeleteService removes a service, its gallery rows and unreferenced files.
func (a *API) DeleteService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid service id")
		return
	}

	item, err := a.services.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, http.StatusNotFound, "service not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load service")
		return
	}

	exclude := service.ReferenceExclusion{ParentKind: service.GalleryKindService, ParentID: id}
	if _, err := a.galleries.DeleteAllForParent(c.Request.Context(), service.GalleryKindService, id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete service gallery")
		return
	}

	if err := a.services.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete service")
		return
	}

	a.galleries.ReleaseFile(c.Request.Context(), item.Image, exclude)

	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
