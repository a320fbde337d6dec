package db

import "time"

// BlogPost holds an article in markdown form. Rendering happens at read time.
type BlogPost struct {
	Model
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `gorm:"type:text" json:"content"`
	Category    string     `json:"category"`
	Image       string     `json:"image"` // primary image URL
	Status      string     `gorm:"default:draft" json:"status"` // published, draft
	PublishedAt *time.Time `json:"publishedAt"`
}
