package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/buildsite/internal/config"
	"github.com/buildsite/internal/db"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Creates the initial admin account. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("admin user already exists, nothing to do")
		return
	}

	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if username == "" {
		username = "admin"
	}
	password := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := db.User{
		Username: username,
		Password: string(hashed),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	fmt.Printf("created admin user %q\n", username)
}
