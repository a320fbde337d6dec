package db

import (
	"time"

	"gorm.io/gorm"
)

// Model mirrors gorm.Model with camelCase JSON names so records serialize
// consistently with the rest of the API surface.
type Model struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
