package handler

import (
	"github.com/buildsite/internal/service"
	"github.com/buildsite/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	store        storage.ObjectStore
	projects     *service.ProjectService
	services     *service.ServiceCatalog
	posts        *service.BlogService
	testimonials *service.TestimonialService
	jobs         *service.JobService
	team         *service.TeamService
	vendors      *service.VendorService
	contacts     *service.ContactService
	settings     *service.SiteSettingService
	galleries    *service.GalleryService
	staging      *service.StagingService
}

// NewAPI constructs a handler set with shared services. Gallery caps are
// keyed by kind; a missing kind means unlimited.
func NewAPI(gdb *gorm.DB, store storage.ObjectStore, caps map[service.GalleryKind]int) *API {
	staging := service.NewStagingService(store)
	refs := service.NewReferenceIndex(gdb)
	refs.Register(staging.ReferenceChecker())
	galleries := service.NewGalleryService(gdb, store, refs, staging, caps)

	return &API{
		db:           gdb,
		store:        store,
		projects:     service.NewProjectService(gdb),
		services:     service.NewServiceCatalog(gdb),
		posts:        service.NewBlogService(gdb),
		testimonials: service.NewTestimonialService(gdb),
		jobs:         service.NewJobService(gdb),
		team:         service.NewTeamService(gdb),
		vendors:      service.NewVendorService(gdb),
		contacts:     service.NewContactService(gdb),
		settings:     service.NewSiteSettingService(gdb),
		galleries:    galleries,
		staging:      staging,
	}
}

// DB exposes the underlying gorm instance for scripts and tests.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Galleries exposes the gallery service so main can run the upload sweeper.
func (a *API) Galleries() *service.GalleryService {
	return a.galleries
}
