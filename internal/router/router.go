package router

import (
	"net/http"

	"github.com/buildsite/internal/config"
	"github.com/buildsite/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Setup configures the gin engine and all routes.
func Setup(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	// The store defaults to Secure+SameSite=None, which drops the login
	// cookie over plain HTTP in development.
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("buildsite_session", store))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AdminOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Locally stored uploads; harmless no-op when GCS is the backend.
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public site API.
	public := r.Group("/api")
	{
		public.GET("/site", api.GetSiteSettings)

		public.GET("/projects", api.ListProjects)
		public.GET("/projects/:slug", api.GetProjectBySlug)

		public.GET("/services", api.ListServices)
		public.GET("/services/:slug", api.GetServiceBySlug)

		public.GET("/blog", api.ListPublishedPosts)
		public.GET("/blog/:slug", api.GetPublishedPost)

		public.GET("/testimonials", api.ListApprovedTestimonials)
		public.GET("/team", api.ListTeamMembers)
		public.GET("/careers", api.ListActiveJobs)

		public.POST("/contact", api.SubmitContactMessage)
		public.POST("/newsletter/subscribe", api.Subscribe)
		public.POST("/newsletter/unsubscribe", api.Unsubscribe)
		public.POST("/vendors/apply", api.SubmitVendorApplication)
	}

	// Admin API.
	admin := r.Group("/admin/api")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/me", api.Me)

			auth.GET("/projects", api.ListProjects)
			auth.GET("/projects/:id", api.GetProject)
			auth.POST("/projects", api.CreateProject)
			auth.PUT("/projects/:id", api.UpdateProject)
			auth.DELETE("/projects/:id", api.DeleteProject)
			auth.POST("/projects/:id/feature/:imageId", api.SetFeatureImage)

			auth.GET("/services", api.ListServices)
			auth.GET("/services/:id", api.GetService)
			auth.POST("/services", api.CreateService)
			auth.PUT("/services/:id", api.UpdateService)
			auth.DELETE("/services/:id", api.DeleteService)

			auth.GET("/blog", api.ListBlogPosts)
			auth.GET("/blog/:id", api.GetBlogPost)
			auth.POST("/blog", api.CreateBlogPost)
			auth.PUT("/blog/:id", api.UpdateBlogPost)
			auth.DELETE("/blog/:id", api.DeleteBlogPost)

			auth.GET("/gallery/:kind/parent/:parentId", api.ListGalleryImages)
			auth.POST("/gallery/:kind/parent/:parentId", api.AddGalleryImages)
			auth.PUT("/gallery/:kind/parent/:parentId/reorder", api.ReorderGallery)
			auth.PUT("/gallery/:kind/images/:imageId", api.UpdateGalleryImage)
			auth.DELETE("/gallery/:kind/images/:imageId", api.DeleteGalleryImage)

			auth.POST("/uploads", api.UploadImage)
			auth.GET("/uploads/sessions/:sessionId", api.ListPendingUploads)
			auth.POST("/uploads/sessions/:sessionId/cleanup", api.CleanupUploadSession)

			auth.GET("/testimonials", api.ListTestimonials)
			auth.POST("/testimonials", api.CreateTestimonial)
			auth.PUT("/testimonials/:id", api.UpdateTestimonial)
			auth.DELETE("/testimonials/:id", api.DeleteTestimonial)

			auth.GET("/careers", api.ListJobs)
			auth.GET("/careers/:id", api.GetJob)
			auth.POST("/careers", api.CreateJob)
			auth.PUT("/careers/:id", api.UpdateJob)
			auth.DELETE("/careers/:id", api.DeleteJob)

			auth.GET("/team", api.ListTeamMembers)
			auth.POST("/team", api.CreateTeamMember)
			auth.PUT("/team/:id", api.UpdateTeamMember)
			auth.DELETE("/team/:id", api.DeleteTeamMember)

			auth.GET("/vendors", api.ListVendorApplications)
			auth.PUT("/vendors/:id/status", api.SetVendorStatus)
			auth.DELETE("/vendors/:id", api.DeleteVendorApplication)

			auth.GET("/contact", api.ListContactMessages)
			auth.PUT("/contact/:id/read", api.MarkContactMessageRead)
			auth.DELETE("/contact/:id", api.DeleteContactMessage)
			auth.GET("/newsletter", api.ListSubscribers)

			auth.PUT("/site", api.UpdateSiteSettings)
		}
	}

	return r
}
