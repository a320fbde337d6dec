package db

import "time"

// Project is a completed or in-progress construction project showcased on the site.
type Project struct {
	Model
	Name        string     `gorm:"not null" json:"name"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"` // residential, commercial, industrial
	Image       string     `json:"image"`    // primary/cover image URL, kept in sync with the feature gallery row
	Featured    bool       `gorm:"default:false" json:"featured"`
	SortOrder   int        `gorm:"default:0" json:"sortOrder"`
	CompletedAt *time.Time `json:"completedAt"`
}
