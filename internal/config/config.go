package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig gathers everything the server needs from the environment.
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	AdminOrigin   string

	// SecureCookies marks the session cookie Secure; leave off for plain
	// HTTP development setups.
	SecureCookies bool

	// Object storage. When StorageBucket is set uploads go to GCS, otherwise
	// files land in UploadDir and are served under UploadURLPath.
	StorageBucket   string
	StorageBaseURL  string
	CredentialsFile string
	UploadDir       string
	UploadURLPath   string

	// Gallery caps per parent type.
	MaxProjectImages int
	MaxServiceImages int
	MaxBlogImages    int

	// Staged upload expiry.
	StagingMaxAge        time.Duration
	StagingSweepInterval time.Duration
}

// Load reads configuration from environment variables, providing safe
// defaults for anything missing.
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "buildsite.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "buildsite-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	adminOrigin := strings.TrimSpace(os.Getenv("ADMIN_ORIGIN"))
	if adminOrigin == "" {
		adminOrigin = "http://localhost:5173"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	storageBucket := strings.TrimSpace(os.Getenv("STORAGE_BUCKET"))

	storageBaseURL := strings.TrimSpace(os.Getenv("STORAGE_BASE_URL"))
	if storageBaseURL == "" && storageBucket != "" {
		storageBaseURL = fmt.Sprintf("https://storage.googleapis.com/%s", storageBucket)
	}

	credentialsFile := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))

	return AppConfig{
		ListenAddr:           listenAddr,
		Port:                 port,
		DatabasePath:         databasePath,
		SessionSecret:        sessionSecret,
		GinMode:              ginMode,
		AdminOrigin:          adminOrigin,
		SecureCookies:        envBool("SECURE_COOKIES", false),
		StorageBucket:        storageBucket,
		StorageBaseURL:       storageBaseURL,
		CredentialsFile:      credentialsFile,
		UploadDir:            uploadDir,
		UploadURLPath:        uploadURLPath,
		MaxProjectImages:     envInt("MAX_PROJECT_IMAGES", 10),
		MaxServiceImages:     envInt("MAX_SERVICE_IMAGES", 6),
		MaxBlogImages:        envInt("MAX_BLOG_IMAGES", 8),
		StagingMaxAge:        envDuration("STAGING_MAX_AGE", time.Hour),
		StagingSweepInterval: envDuration("STAGING_SWEEP_INTERVAL", 15*time.Minute),
	}
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
