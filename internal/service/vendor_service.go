package service

import (
	"errors"
	"strings"

	"github.com/buildsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrVendorNotFound        = errors.New("vendor application not found")
	ErrVendorCompanyRequired = errors.New("vendor company name is required")
	ErrVendorEmailRequired   = errors.New("vendor email is required")
	ErrVendorStatusInvalid   = errors.New("vendor status is invalid")
)

const (
	VendorStatusPending  = "pending"
	VendorStatusApproved = "approved"
	VendorStatusRejected = "rejected"
)

// VendorService wraps vendor/subcontractor application operations.
type VendorService struct {
	db *gorm.DB
}

// VendorInput represents a submitted vendor application.
type VendorInput struct {
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	Trades      string
	Message     string
}

// NewVendorService creates a VendorService instance.
func NewVendorService(gdb *gorm.DB) *VendorService {
	return &VendorService{db: gdb}
}

// ListAll returns every application, newest first.
func (s *VendorService) ListAll() ([]db.VendorApplication, error) {
	var items []db.VendorApplication
	if err := s.db.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Submit stores a new application from the public form.
func (s *VendorService) Submit(input VendorInput) (*db.VendorApplication, error) {
	company := strings.TrimSpace(input.CompanyName)
	if company == "" {
		return nil, ErrVendorCompanyRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrVendorEmailRequired
	}

	item := db.VendorApplication{
		CompanyName: company,
		ContactName: strings.TrimSpace(input.ContactName),
		Email:       email,
		Phone:       strings.TrimSpace(input.Phone),
		Trades:      strings.TrimSpace(input.Trades),
		Message:     strings.TrimSpace(input.Message),
		Status:      VendorStatusPending,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SetStatus moves an application through the review pipeline.
func (s *VendorService) SetStatus(id uint, status string) (*db.VendorApplication, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != VendorStatusPending && status != VendorStatusApproved && status != VendorStatusRejected {
		return nil, ErrVendorStatusInvalid
	}

	var item db.VendorApplication
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	item.Status = status
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an application.
func (s *VendorService) Delete(id uint) error {
	var item db.VendorApplication
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendorNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}
