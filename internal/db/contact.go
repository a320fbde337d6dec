package db

// ContactMessage is an inquiry submitted through the public contact form.
type ContactMessage struct {
	Model
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `gorm:"type:text" json:"message"`
	Read    bool   `gorm:"default:false" json:"read"`
}

// NewsletterSubscriber is a single email opted into the newsletter.
type NewsletterSubscriber struct {
	Model
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Active bool   `gorm:"default:true" json:"active"`
}
