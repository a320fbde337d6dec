package db

import "time"

// Gallery rows are hard-deleted on purpose: shared-file reference checks run
// after row deletion and must not see tombstones, so none of these models
// carry gorm's soft-delete column.

// ProjectGalleryImage is one image attached to a project gallery. At most one
// row per project has IsFeature set; its URL mirrors Project.Image.
type ProjectGalleryImage struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ProjectID    uint      `gorm:"index;not null" json:"projectId"`
	ImageURL     string    `json:"imageUrl"`
	Caption      string    `json:"caption"`
	DisplayOrder int       `gorm:"default:0" json:"displayOrder"`
	IsFeature    bool      `gorm:"default:false" json:"isFeature"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ServiceGalleryImage is one image attached to a service gallery.
type ServiceGalleryImage struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ServiceID    uint      `gorm:"index;not null" json:"serviceId"`
	ImageURL     string    `json:"imageUrl"`
	Caption      string    `json:"caption"`
	DisplayOrder int       `gorm:"default:0" json:"displayOrder"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BlogGalleryImage is one image attached to a blog post gallery.
type BlogGalleryImage struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	BlogPostID   uint      `gorm:"index;not null" json:"blogPostId"`
	ImageURL     string    `json:"imageUrl"`
	Caption      string    `json:"caption"`
	DisplayOrder int       `gorm:"default:0" json:"displayOrder"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"createdAt"`
}
