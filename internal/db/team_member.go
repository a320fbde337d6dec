package db

// TeamMember is a staff profile shown on the about page.
type TeamMember struct {
	Model
	Name      string `gorm:"not null" json:"name"`
	Role      string `json:"role"`
	Bio       string `gorm:"type:text" json:"bio"`
	PhotoURL  string `json:"photoUrl"`
	Email     string `json:"email"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}
