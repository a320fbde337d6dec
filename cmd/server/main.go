package main

import (
	"context"
	"log"
	"time"

	"github.com/buildsite/internal/config"
	"github.com/buildsite/internal/db"
	"github.com/buildsite/internal/handler"
	"github.com/buildsite/internal/router"
	"github.com/buildsite/internal/service"
	"github.com/buildsite/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	api := handler.NewAPI(db.DB, store, map[service.GalleryKind]int{
		service.GalleryKindProject: cfg.MaxProjectImages,
		service.GalleryKindService: cfg.MaxServiceImages,
		service.GalleryKindBlog:    cfg.MaxBlogImages,
	})

	go sweepExpiredUploads(api.Galleries(), cfg.StagingMaxAge, cfg.StagingSweepInterval)

	r := router.Setup(api, cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func buildStore(cfg config.AppConfig) (storage.ObjectStore, error) {
	if cfg.StorageBucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		log.Printf("using GCS bucket %s for uploads", cfg.StorageBucket)
		return storage.NewGCSStore(ctx, cfg.StorageBucket, cfg.StorageBaseURL, cfg.CredentialsFile)
	}
	log.Printf("using local upload directory %s", cfg.UploadDir)
	return storage.NewLocalStore(cfg.UploadDir, cfg.UploadURLPath)
}

// sweepExpiredUploads periodically removes staged uploads that were never
// attached to a record.
func sweepExpiredUploads(galleries *service.GalleryService, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		deleted := galleries.SweepExpiredUploads(ctx, maxAge)
		cancel()
		if deleted > 0 {
			log.Printf("upload sweep removed %d expired file(s)", deleted)
		}
	}
}
