package service

import (
	"errors"
	"strings"

	"github.com/buildsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrTestimonialNotFound      = errors.New("testimonial not found")
	ErrTestimonialQuoteRequired = errors.New("testimonial quote is required")
	ErrTestimonialRatingInvalid = errors.New("testimonial rating must be between 1 and 5")
)

// TestimonialService wraps testimonial database operations.
type TestimonialService struct {
	db *gorm.DB
}

// TestimonialInput represents fields accepted when creating or updating a
// testimonial.
type TestimonialInput struct {
	ClientName string
	Company    string
	Quote      string
	Rating     int
	Approved   bool
	SortOrder  int
}

// NewTestimonialService creates a TestimonialService instance.
func NewTestimonialService(gdb *gorm.DB) *TestimonialService {
	return &TestimonialService{db: gdb}
}

// ListAll returns every testimonial for the admin screen.
func (s *TestimonialService) ListAll() ([]db.Testimonial, error) {
	var items []db.Testimonial
	if err := s.db.Order("sort_order desc").Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListApproved returns testimonials visible on the public site.
func (s *TestimonialService) ListApproved() ([]db.Testimonial, error) {
	var items []db.Testimonial
	err := s.db.Where("approved = ?", true).
		Order("sort_order desc").Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new testimonial.
func (s *TestimonialService) Create(input TestimonialInput) (*db.Testimonial, error) {
	if err := validateTestimonialInput(input); err != nil {
		return nil, err
	}

	item := db.Testimonial{
		ClientName: strings.TrimSpace(input.ClientName),
		Company:    strings.TrimSpace(input.Company),
		Quote:      strings.TrimSpace(input.Quote),
		Rating:     input.Rating,
		Approved:   input.Approved,
		SortOrder:  input.SortOrder,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing testimonial.
func (s *TestimonialService) Update(id uint, input TestimonialInput) (*db.Testimonial, error) {
	if err := validateTestimonialInput(input); err != nil {
		return nil, err
	}

	var item db.Testimonial
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}

	item.ClientName = strings.TrimSpace(input.ClientName)
	item.Company = strings.TrimSpace(input.Company)
	item.Quote = strings.TrimSpace(input.Quote)
	item.Rating = input.Rating
	item.Approved = input.Approved
	item.SortOrder = input.SortOrder

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a testimonial.
func (s *TestimonialService) Delete(id uint) error {
	var item db.Testimonial
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTestimonialNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}

func validateTestimonialInput(input TestimonialInput) error {
	if strings.TrimSpace(input.Quote) == "" {
		return ErrTestimonialQuoteRequired
	}
	if input.Rating < 1 || input.Rating > 5 {
		return ErrTestimonialRatingInvalid
	}
	return nil
}
