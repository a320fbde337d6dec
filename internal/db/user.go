package db

// User is an admin account. Password stores a bcrypt hash and never
// serializes.
type User struct {
	Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}
