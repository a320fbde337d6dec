package db

// Service is a construction service offered by the company.
type Service struct {
	Model
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"` // primary image URL
	SortOrder   int    `gorm:"default:0" json:"sortOrder"`
}
