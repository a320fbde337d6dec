package service

import (
	"errors"
	"strings"

	"github.com/buildsite/internal/db"
	"gorm.io/gorm"
)

var ErrSettingKeyRequired = errors.New("setting key is required")

// SiteSettingService stores editable site-wide content such as the company
// phone number, office address and social links.
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService creates a SiteSettingService instance.
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

// All returns every setting as a key/value map.
func (s *SiteSettingService) All() (map[string]string, error) {
	var items []db.SiteSetting
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(items))
	for _, item := range items {
		settings[item.Key] = item.Value
	}
	return settings, nil
}

// Set upserts one setting.
func (s *SiteSettingService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrSettingKeyRequired
	}

	var existing db.SiteSetting
	err := s.db.Where("key = ?", key).First(&existing).Error
	if err == nil {
		existing.Value = value
		return s.db.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.Create(&db.SiteSetting{Key: key, Value: value}).Error
}

// SetAll upserts a batch of settings.
func (s *SiteSettingService) SetAll(settings map[string]string) error {
	for key, value := range settings {
		if err := s.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}
