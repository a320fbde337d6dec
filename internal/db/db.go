package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the shared database handle used by scripts and legacy paths.
var DB *gorm.DB

// Init opens the sqlite database and runs auto migration for all models.
// An empty databasePath falls back to buildsite.db in the working directory.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "buildsite.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	return Migrate(DB)
}

// Migrate creates or updates tables for every model. Exposed separately so
// tests can run it against their own in-memory connections.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&User{},
		&Project{},
		&Service{},
		&BlogPost{},
		&ProjectGalleryImage{},
		&ServiceGalleryImage{},
		&BlogGalleryImage{},
		&Testimonial{},
		&JobPosting{},
		&TeamMember{},
		&VendorApplication{},
		&ContactMessage{},
		&NewsletterSubscriber{},
		&SiteSetting{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
