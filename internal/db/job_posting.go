package db

// JobPosting is an open position listed on the careers page.
type JobPosting struct {
	Model
	Title          string `gorm:"not null" json:"title"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"` // full-time, part-time, contract
	Description    string `gorm:"type:text" json:"description"`
	Requirements   string `gorm:"type:text" json:"requirements"`
	Active         bool   `gorm:"default:true" json:"active"`
}
