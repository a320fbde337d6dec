package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/buildsite/internal/service"
	"github.com/gin-gonic/gin"
)

type blogPayload struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	Status    string `json:"status"`
	SessionID string `json:"sessionId"`
}

func (p blogPayload) toInput() service.BlogInput {
	return service.BlogInput{
		Title:    p.Title,
		Slug:     p.Slug,
		Excerpt:  p.Excerpt,
		Content:  p.Content,
		Category: p.Category,
		Image:    p.Image,
		Status:   p.Status,
	}
}

// ListBlogPosts returns posts for the admin screen with filters.
func (a *API) ListBlogPosts(c *gin.Context) {
	filter := service.BlogFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:  parsePositiveInt(c.DefaultQuery("perPage", "10"), 10),
	}

	result, err := a.posts.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load blog posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
	})
}

// ListPublishedPosts serves the public blog index.
func (a *API) ListPublishedPosts(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	result, err := a.posts.ListPublished(page, 10)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load blog posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
	})
}

// GetBlogPost returns one post with its gallery for editing.
func (a *API) GetBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	item, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "blog post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load blog post")
		return
	}

	gallery, err := a.galleries.ListImages(service.GalleryKindBlog, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load post gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "gallery": gallery})
}

// GetPublishedPost serves the public article page with rendered content.
func (a *API) GetPublishedPost(c *gin.Context) {
	item, err := a.posts.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "blog post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load blog post")
		return
	}

	rendered, err := service.RenderContent(item.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render blog post")
		return
	}

	gallery, err := a.galleries.ListImages(service.GalleryKindBlog, item.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load post gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "html": rendered, "gallery": gallery})
}

// CreateBlogPost creates a post and commits its upload session.
func (a *API) CreateBlogPost(c *gin.Context) {
	var payload blogPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.posts.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostTitleRequired):
			respondError(c, http.StatusBadRequest, "post title is required")
		case errors.Is(err, service.ErrPostSlugTaken):
			respondError(c, http.StatusBadRequest, "post slug is already in use")
		case errors.Is(err, service.ErrPostStatusInvalid):
			respondError(c, http.StatusBadRequest, "post status is invalid")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create blog post")
		}
		return
	}

	if sessionID := strings.TrimSpace(payload.SessionID); sessionID != "" && item.Image != "" {
		a.staging.Commit(sessionID, item.Image)
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateBlogPost modifies a post, releasing a replaced primary image.
func (a *API) UpdateBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var payload blogPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, previousImage, err := a.posts.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "blog post not found")
		case errors.Is(err, service.ErrPostTitleRequired):
			respondError(c, http.StatusBadRequest, "post title is required")
		case errors.Is(err, service.ErrPostSlugTaken):
			respondError(c, http.StatusBadRequest, "post slug is already in use")
		case errors.Is(err, service.ErrPostStatusInvalid):
			respondError(c, http.StatusBadRequest, "post status is invalid")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update blog post")
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

// DeleteBlogPost removes a post, its gallery rows and unreferenced files.
func (a *API) DeleteBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	item, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "blog post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load blog post")
		return
	}

	exclude := service.ReferenceExclusion{ParentKind: service.GalleryKindBlog, ParentID: id}
	if _, err := a.galleries.DeleteAllForParent(c.Request.Context(), service.GalleryKindBlog, id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete post gallery")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete blog post")
		return
	}

	a.galleries.ReleaseFile(c.Request.Context(), item.Image, exclude)

	c.JSON(http.StatusOK, gin.H{"message": "blog post deleted"})
}
