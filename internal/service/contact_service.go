package service

import (
	"errors"
	"strings"

	"github.com/buildsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrContactNotFound        = errors.New("contact message not found")
	ErrContactNameRequired    = errors.New("contact name is required")
	ErrContactEmailRequired   = errors.New("contact email is required")
	ErrContactMessageRequired = errors.New("contact message is required")
	ErrSubscriberEmailInvalid = errors.New("subscriber email is invalid")
)

// ContactService wraps the contact inbox and newsletter list.
type ContactService struct {
	db *gorm.DB
}

// ContactInput represents a submitted contact form.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// NewContactService creates a ContactService instance.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// ListMessages returns contact messages, unread first then newest.
func (s *ContactService) ListMessages() ([]db.ContactMessage, error) {
	var items []db.ContactMessage
	if err := s.db.Order("read asc").Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Submit stores a message from the public contact form.
func (s *ContactService) Submit(input ContactInput) (*db.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrContactNameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrContactEmailRequired
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrContactMessageRequired
	}

	item := db.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: message,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// MarkRead flags a message as handled.
func (s *ContactService) MarkRead(id uint) error {
	result := s.db.Model(&db.ContactMessage{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// DeleteMessage removes a message.
func (s *ContactService) DeleteMessage(id uint) error {
	var item db.ContactMessage
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return s.db.Delete(&item).Error
}

// Subscribe adds an email to the newsletter list. Re-subscribing an existing
// address reactivates it instead of failing on the unique index.
func (s *ContactService) Subscribe(email string) (*db.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrSubscriberEmailInvalid
	}

	var existing db.NewsletterSubscriber
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if !existing.Active {
			existing.Active = true
			if err := s.db.Save(&existing).Error; err != nil {
				return nil, err
			}
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := db.NewsletterSubscriber{Email: email, Active: true}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Unsubscribe deactivates an address, keeping the row for auditability.
func (s *ContactService) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.db.Model(&db.NewsletterSubscriber{}).
		Where("email = ?", email).
		Update("active", false).Error
}

// ListSubscribers returns active newsletter subscribers.
func (s *ContactService) ListSubscribers() ([]db.NewsletterSubscriber, error) {
	var items []db.NewsletterSubscriber
	if err := s.db.Where("active = ?", true).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
