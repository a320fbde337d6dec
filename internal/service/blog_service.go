package service

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/buildsite/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound      = errors.New("blog post not found")
	ErrPostTitleRequired = errors.New("blog post title is required")
	ErrPostSlugTaken     = errors.New("blog post slug is already in use")
	ErrPostStatusInvalid = errors.New("blog post status is invalid")
)

const (
	PostStatusPublished = "published"
	PostStatusDraft     = "draft"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// BlogService wraps blog post database operations and markdown rendering.
type BlogService struct {
	db *gorm.DB
}

// BlogFilter describes filters for listing blog posts.
type BlogFilter struct {
	Search   string
	Status   string
	Category string
	Page     int
	PerPage  int
}

// BlogListResult aggregates paginated blog results.
type BlogListResult struct {
	Items      []db.BlogPost
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// BlogInput represents fields accepted when creating or updating a post.
type BlogInput struct {
	Title    string
	Slug     string
	Excerpt  string
	Content  string
	Category string
	Image    string
	Status   string
}

// NewBlogService creates a BlogService instance.
func NewBlogService(gdb *gorm.DB) *BlogService {
	return &BlogService{db: gdb}
}

// RenderContent converts a post's markdown to sanitized HTML.
func RenderContent(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// List returns posts matching the filter, newest first.
func (s *BlogService) List(filter BlogFilter) (BlogListResult, error) {
	result := BlogListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 10),
	}

	query := s.db.Model(&db.BlogPost{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ?", like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// ListPublished returns published posts with pagination.
func (s *BlogService) ListPublished(page, perPage int) (BlogListResult, error) {
	return s.List(BlogFilter{
		Status:  PostStatusPublished,
		Page:    page,
		PerPage: perPage,
	})
}

// Get fetches a post by id.
func (s *BlogService) Get(id uint) (*db.BlogPost, error) {
	var item db.BlogPost
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetPublishedBySlug fetches a published post by slug for the public site.
func (s *BlogService) GetPublishedBySlug(slug string) (*db.BlogPost, error) {
	var item db.BlogPost
	err := s.db.Where("slug = ? AND status = ?", strings.TrimSpace(slug), PostStatusPublished).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new post. Publishing stamps PublishedAt.
func (s *BlogService) Create(input BlogInput) (*db.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPostTitleRequired
	}

	status, err := normalizePostStatus(input.Status)
	if err != nil {
		return nil, err
	}

	slug := normalizeSlug(input.Slug, title)
	taken, err := s.slugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPostSlugTaken
	}

	item := db.BlogPost{
		Title:    title,
		Slug:     slug,
		Excerpt:  strings.TrimSpace(input.Excerpt),
		Content:  input.Content,
		Category: strings.TrimSpace(input.Category),
		Image:    strings.TrimSpace(input.Image),
		Status:   status,
	}
	if status == PostStatusPublished {
		now := time.Now()
		item.PublishedAt = &now
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing post and reports the previous primary image
// URL so callers can release the old file when it changed.
func (s *BlogService) Update(id uint, input BlogInput) (*db.BlogPost, string, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, "", ErrPostTitleRequired
	}

	status, err := normalizePostStatus(input.Status)
	if err != nil {
		return nil, "", err
	}

	var item db.BlogPost
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrPostNotFound
		}
		return nil, "", err
	}

	slug := normalizeSlug(input.Slug, title)
	taken, err := s.slugTaken(slug, id)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrPostSlugTaken
	}

	previousImage := item.Image

	if status == PostStatusPublished && item.Status != PostStatusPublished {
		now := time.Now()
		item.PublishedAt = &now
	}

	item.Title = title
	item.Slug = slug
	item.Excerpt = strings.TrimSpace(input.Excerpt)
	item.Content = input.Content
	item.Category = strings.TrimSpace(input.Category)
	item.Image = strings.TrimSpace(input.Image)
	item.Status = status

	if err := s.db.Save(&item).Error; err != nil {
		return nil, "", err
	}
	return &item, previousImage, nil
}

// Delete removes a post. Gallery rows and files are handled separately by
// the gallery service before this is called.
func (s *BlogService) Delete(id uint) error {
	var item db.BlogPost
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}

func (s *BlogService) slugTaken(slug string, excludeID uint) (bool, error) {
	query := s.db.Model(&db.BlogPost{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func normalizePostStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return PostStatusDraft, nil
	}
	if status != PostStatusPublished && status != PostStatusDraft {
		return "", ErrPostStatusInvalid
	}
	return status, nil
}
