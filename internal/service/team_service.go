package service

import (
	"errors"
	"strings"

	"github.com/buildsite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrTeamMemberNotFound     = errors.New("team member not found")
	ErrTeamMemberNameRequired = errors.New("team member name is required")
)

// TeamService wraps team member database operations.
type TeamService struct {
	db *gorm.DB
}

// TeamMemberInput represents fields accepted when creating or updating a
// team member.
type TeamMemberInput struct {
	Name      string
	Role      string
	Bio       string
	PhotoURL  string
	Email     string
	SortOrder int
}

// NewTeamService creates a TeamService instance.
func NewTeamService(gdb *gorm.DB) *TeamService {
	return &TeamService{db: gdb}
}

// ListAll returns every team member ordered for presentation.
func (s *TeamService) ListAll() ([]db.TeamMember, error) {
	var items []db.TeamMember
	if err := s.db.Order("sort_order desc").Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a team member by id.
func (s *TeamService) Get(id uint) (*db.TeamMember, error) {
	var item db.TeamMember
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new team member.
func (s *TeamService) Create(input TeamMemberInput) (*db.TeamMember, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamMemberNameRequired
	}

	item := db.TeamMember{
		Name:      name,
		Role:      strings.TrimSpace(input.Role),
		Bio:       strings.TrimSpace(input.Bio),
		PhotoURL:  strings.TrimSpace(input.PhotoURL),
		Email:     strings.TrimSpace(input.Email),
		SortOrder: input.SortOrder,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing team member and reports the previous photo URL
// so callers can release the old file when it changed.
func (s *TeamService) Update(id uint, input TeamMemberInput) (*db.TeamMember, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", ErrTeamMemberNameRequired
	}

	var item db.TeamMember
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTeamMemberNotFound
		}
		return nil, "", err
	}

	previousPhoto := item.PhotoURL

	item.Name = name
	item.Role = strings.TrimSpace(input.Role)
	item.Bio = strings.TrimSpace(input.Bio)
	item.PhotoURL = strings.TrimSpace(input.PhotoURL)
	item.Email = strings.TrimSpace(input.Email)
	item.SortOrder = input.SortOrder

	if err := s.db.Save(&item).Error; err != nil {
		return nil, "", err
	}
	return &item, previousPhoto, nil
}

// Delete removes a team member and reports the photo URL that just lost its
// reference.
func (s *TeamService) Delete(id uint) (string, error) {
	var item db.TeamMember
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTeamMemberNotFound
		}
		return "", err
	}
	if err := s.db.Delete(&item).Error; err != nil {
		return "", err
	}
	return item.PhotoURL, nil
}
