package service

import (
	"errors"
	"strings"
	"time"

	"github.com/buildsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectSlugTaken    = errors.New("project slug is already in use")
)

// ProjectService wraps project related database operations.
type ProjectService struct {
	db *gorm.DB
}

// ProjectFilter describes filters for listing projects.
type ProjectFilter struct {
	Search   string
	Category string
	Featured *bool
	Page     int
	PerPage  int
}

// ProjectListResult aggregates paginated project results.
type ProjectListResult struct {
	Items      []db.Project
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// ProjectInput represents fields accepted when creating or updating a project.
type ProjectInput struct {
	Name        string
	Slug        string
	Description string
	Location    string
	Category    string
	Image       string
	Featured    bool
	SortOrder   int
	CompletedAt *time.Time
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// List returns projects matching the filter.
func (s *ProjectService) List(filter ProjectFilter) (ProjectListResult, error) {
	result := ProjectListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 12),
	}

	query := s.db.Model(&db.Project{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR location LIKE ? OR description LIKE ?", like, like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("sort_order desc").Order("created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Get fetches a project by id.
func (s *ProjectService) Get(id uint) (*db.Project, error) {
	var item db.Project
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug fetches a project by its public slug.
func (s *ProjectService) GetBySlug(slug string) (*db.Project, error) {
	var item db.Project
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new project.
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	slug := normalizeSlug(input.Slug, name)
	taken, err := s.slugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrProjectSlugTaken
	}

	item := db.Project{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Category:    strings.TrimSpace(input.Category),
		Image:       strings.TrimSpace(input.Image),
		Featured:    input.Featured,
		SortOrder:   input.SortOrder,
		CompletedAt: input.CompletedAt,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing project and reports the previous primary image
// URL so callers can release the old file when it changed.
func (s *ProjectService) Update(id uint, input ProjectInput) (*db.Project, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", ErrProjectNameRequired
	}

	var item db.Project
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		return nil, "", err
	}

	slug := normalizeSlug(input.Slug, name)
	taken, err := s.slugTaken(slug, id)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrProjectSlugTaken
	}

	previousImage := item.Image

	item.Name = name
	item.Slug = slug
	item.Description = strings.TrimSpace(input.Description)
	item.Location = strings.TrimSpace(input.Location)
	item.Category = strings.TrimSpace(input.Category)
	item.Image = strings.TrimSpace(input.Image)
	item.Featured = input.Featured
	item.SortOrder = input.SortOrder
	item.CompletedAt = input.CompletedAt

	if err := s.db.Save(&item).Error; err != nil {
		return nil, "", err
	}
	return &item, previousImage, nil
}

// Delete removes a project. Gallery rows and files are handled separately by
// the gallery service before this is called.
func (s *ProjectService) Delete(id uint) error {
	var item db.Project
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}

func (s *ProjectService) slugTaken(slug string, excludeID uint) (bool, error) {
	query := s.db.Model(&db.Project{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
