package service

import (
	"errors"
	"strings"

	"github.com/buildsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrServiceNameRequired = errors.New("service name is required")
	ErrServiceSlugTaken    = errors.New("service slug is already in use")
)

// ServiceCatalog wraps database operations for the company's service pages.
type ServiceCatalog struct {
	db *gorm.DB
}

// ServiceInput represents fields accepted when creating or updating a service.
type ServiceInput struct {
	Name        string
	Slug        string
	Description string
	Icon        string
	Image       string
	SortOrder   int
}

// NewServiceCatalog creates a ServiceCatalog instance.
func NewServiceCatalog(gdb *gorm.DB) *ServiceCatalog {
	return &ServiceCatalog{db: gdb}
}

// ListAll returns every service ordered for presentation.
func (s *ServiceCatalog) ListAll() ([]db.Service, error) {
	var items []db.Service
	if err := s.db.Order("sort_order desc").Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a service by id.
func (s *ServiceCatalog) Get(id uint) (*db.Service, error) {
	var item db.Service
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug fetches a service by its public slug.
func (s *ServiceCatalog) GetBySlug(slug string) (*db.Service, error) {
	var item db.Service
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new service.
func (s *ServiceCatalog) Create(input ServiceInput) (*db.Service, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrServiceNameRequired
	}

	slug := normalizeSlug(input.Slug, name)
	taken, err := s.slugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrServiceSlugTaken
	}

	item := db.Service{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
		Image:       strings.TrimSpace(input.Image),
		SortOrder:   input.SortOrder,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing service and reports the previous primary image
// URL so callers can release the old file when it changed.
func (s *ServiceCatalog) Update(id uint, input ServiceInput) (*db.Service, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", ErrServiceNameRequired
	}

	var item db.Service
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrServiceNotFound
		}
		return nil, "", err
	}

	slug := normalizeSlug(input.Slug, name)
	taken, err := s.slugTaken(slug, id)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrServiceSlugTaken
	}

	previousImage := item.Image

	item.Name = name
	item.Slug = slug
	item.Description = strings.TrimSpace(input.Description)
	item.Icon = strings.TrimSpace(input.Icon)
	item.Image = strings.TrimSpace(input.Image)
	item.SortOrder = input.SortOrder

	if err := s.db.Save(&item).Error; err != nil {
		return nil, "", err
	}
	return &item, previousImage, nil
}

// Delete removes a service.
func (s *ServiceCatalog) Delete(id uint) error {
	var item db.Service
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}

func (s *ServiceCatalog) slugTaken(slug string, excludeID uint) (bool, error) {
	query := s.db.Model(&db.Service{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
