package db

// SiteSetting stores one editable key/value pair of site-wide content such as
// the company phone number or office address.
type SiteSetting struct {
	Model
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}
