package handler

import (
	"errors"
	"net/http"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type galleryImagePayload struct {
	ImageURL     string `json:"imageUrl"`
	Caption      string `json:"caption"`
	DisplayOrder int    `json:"displayOrder"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

type addGalleryPayload struct {
	Images    []galleryImagePayload `json:"images"`
	SessionID string                `json:"sessionId"`
}

type updateGalleryPayload struct {
	Caption      string `json:"caption"`
	DisplayOrder int    `json:"displayOrder"`
}

type reorderGalleryPayload struct {
	OrderedIDs []uint `json:"orderedIds"`
}

func galleryKindParam(c *gin.Context) (service.GalleryKind, bool) {
	kind, err := service.ParseGalleryKind(c.Param("kind"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "unknown gallery kind")
		return "", false
	}
	return kind, true
}

// ListGalleryImages returns a parent's gallery in display order.
func (a *API) ListGalleryImages(c *gin.Context) {
	kind, ok := galleryKindParam(c)
	if !ok {
		return
	}
	parentID, err := parseUintParam(c, "parentId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid parent id")
		return
	}

	items, err := a.galleries.ListImages(kind, parentID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load gallery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "max": a.galleries.MaxImages(kind)})
}

// AddGalleryImages attaches uploaded images to a parent. Images beyond the
// configured cap come back in the rejected count so the admin UI can retry
// or drop them.
func (a *API) AddGalleryImages(c *gin.Context) {
	kind, ok := galleryKindParam(c)
	if !ok {
		return
	}
	parentID, err := parseUintParam(c, "parentId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid parent id")
		return
	}

	var payload addGalleryPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	inputs := make([]service.GalleryImageInput, 0, len(payload.Images))
	for _, image := range payload.Images {
		inputs = append(inputs, service.GalleryImageInput{
			ImageURL:     image.ImageURL,
			Caption:      image.Caption,
			DisplayOrder: image.DisplayOrder,
			Width:        image.Width,
			Height:       image.Height,
		})
	}

	added, rejected, err := a.galleries.AddImages(kind, parentID, inputs, payload.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParentNotFound):
			respondError(c, http.StatusNotFound, "parent record not found")
		case errors.Is(err, service.ErrGalleryImageMissing):
			respondError(c, http.StatusBadRequest, "image url is required")
		default:
			// Partial failures still report what was saved so the admin can
			// retry the remainder.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "some images failed to save, please try again",
				"added":    added,
				"rejected": rejected,
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added, "rejected": rejected})
}

// UpdateGalleryImage changes caption or display order of one image.
func (a *API) UpdateGalleryImage(c *gin.Context) {
	kind, ok := galleryKindParam(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "imageId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid image id")
		return
	}

	var payload updateGalleryPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.galleries.UpdateImage(kind, id, payload.Caption, payload.DisplayOrder)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryImageNotFound):
			respondError(c, http.StatusNotFound, "gallery image not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update gallery image")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// ReorderGallery assigns a new display order to a parent's gallery.
func (a *API) ReorderGallery(c *gin.Context) {
	kind, ok := galleryKindParam(c)
	if !ok {
		return
	}
	parentID, err := parseUintParam(c, "parentId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid parent id")
		return
	}

	var payload reorderGalleryPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	if err := a.galleries.Reorder(kind, parentID, payload.OrderedIDs); err != nil {
		switch {
		case errors.Is(err, service.ErrReorderMismatch):
			respondError(c, http.StatusBadRequest, "ordered ids do not match the gallery")
		default:
			respondError(c, http.StatusInternalServerError, "failed to reorder gallery")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "gallery reordered"})
}

// DeleteGalleryImage removes one image. The backing file is only deleted
// when nothing else references its URL; deleting an image that is already
// gone succeeds.
func (a *API) DeleteGalleryImage(c *gin.Context) {
	kind, ok := galleryKindParam(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "imageId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid image id")
		return
	}

	if err := a.galleries.DeleteImage(c.Request.Context(), kind, id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete gallery image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "gallery image deleted"})
}

// SetFeatureImage marks one project gallery image as the cover. The project's
// primary image field follows it.
func (a *API) SetFeatureImage(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}
	imageID, err := parseUintParam(c, "imageId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid image id")
		return
	}

	item, err := a.galleries.SetFeature(projectID, imageID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryImageNotFound):
			respondError(c, http.StatusNotFound, "gallery image not found")
		case errors.Is(err, service.ErrParentNotFound):
			respondError(c, http.StatusNotFound, "project not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to set feature image")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}
