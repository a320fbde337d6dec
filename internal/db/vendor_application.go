package db

// VendorApplication is a subcontractor or supplier application submitted
// through the public vendor form.
type VendorApplication struct {
	Model
	CompanyName string `gorm:"not null" json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `gorm:"not null" json:"email"`
	Phone       string `json:"phone"`
	Trades      string `json:"trades"` // comma separated trade list as submitted
	Message     string `gorm:"type:text" json:"message"`
	Status      string `gorm:"default:pending" json:"status"` // pending, approved, rejected
}
