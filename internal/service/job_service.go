package service

import (
	"errors"
	"strings"

	"github.com/buildsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound      = errors.New("job posting not found")
	ErrJobTitleRequired = errors.New("job title is required")
)

// JobService wraps job posting database operations.
type JobService struct {
	db *gorm.DB
}

// JobInput represents fields accepted when creating or updating a posting.
type JobInput struct {
	Title          string
	Department     string
	Location       string
	EmploymentType string
	Description    string
	Requirements   string
	Active         bool
}

// NewJobService creates a JobService instance.
func NewJobService(gdb *gorm.DB) *JobService {
	return &JobService{db: gdb}
}

// ListAll returns every posting for the admin screen.
func (s *JobService) ListAll() ([]db.JobPosting, error) {
	var items []db.JobPosting
	if err := s.db.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListActive returns postings visible on the careers page.
func (s *JobService) ListActive() ([]db.JobPosting, error) {
	var items []db.JobPosting
	if err := s.db.Where("active = ?", true).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a posting by id.
func (s *JobService) Get(id uint) (*db.JobPosting, error) {
	var item db.JobPosting
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new posting.
func (s *JobService) Create(input JobInput) (*db.JobPosting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrJobTitleRequired
	}

	item := db.JobPosting{
		Title:          title,
		Department:     strings.TrimSpace(input.Department),
		Location:       strings.TrimSpace(input.Location),
		EmploymentType: strings.TrimSpace(input.EmploymentType),
		Description:    strings.TrimSpace(input.Description),
		Requirements:   strings.TrimSpace(input.Requirements),
		Active:         input.Active,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing posting.
func (s *JobService) Update(id uint, input JobInput) (*db.JobPosting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrJobTitleRequired
	}

	var item db.JobPosting
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	item.Title = title
	item.Department = strings.TrimSpace(input.Department)
	item.Location = strings.TrimSpace(input.Location)
	item.EmploymentType = strings.TrimSpace(input.EmploymentType)
	item.Description = strings.TrimSpace(input.Description)
	item.Requirements = strings.TrimSpace(input.Requirements)
	item.Active = input.Active

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a posting.
func (s *JobService) Delete(id uint) error {
	var item db.JobPosting
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}
