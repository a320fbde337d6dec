package db

// Testimonial is a client quote shown on the marketing site once approved.
type Testimonial struct {
	Model
	ClientName string `gorm:"not null" json:"clientName"`
	Company    string `json:"company"`
	Quote      string `gorm:"type:text" json:"quote"`
	Rating     int    `gorm:"default:5" json:"rating"`
	Approved   bool   `gorm:"default:false" json:"approved"`
	SortOrder  int    `gorm:"default:0" json:"sortOrder"`
}
