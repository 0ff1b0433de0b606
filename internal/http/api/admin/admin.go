package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/http/api"
	"github.com/kamaltrader/luxecraft/internal/http/api/admin/handlers"
)

// RegisterAdminRoutes registers the login route and the token-gated admin routes.
func RegisterAdminRoutes(r *gin.Engine, svc api.Services) {
	if r == nil || svc.Auth == nil {
		return
	}
	handlers.RegisterValidators()

	admin := r.Group("/api/admin")

	authHandler := handlers.NewAuthHandler(svc.Auth)
	admin.POST("/login", authHandler.Login)

	galleryHandler := handlers.NewGalleryHandler(svc.Media, svc.Products)
	admin.GET("/gallery-dimensions", galleryHandler.Dimensions)

	authed := admin.Group("")
	authed.Use(adminAuthMiddleware(svc))

	productHandler := handlers.NewProductHandler(svc.Products, svc.Categories, svc.Media, svc.Cache)
	authed.POST("/products", productHandler.Create)
	authed.PUT("/products/:id", productHandler.Update)
	authed.DELETE("/products/:id", productHandler.Delete)

	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Cache)
	authed.POST("/categories", categoryHandler.Create)
	authed.PUT("/categories/:id", categoryHandler.Update)
	authed.DELETE("/categories/:id", categoryHandler.Delete)

	authed.GET("/gallery-images", galleryHandler.List)
	authed.POST("/upload-image", galleryHandler.Upload)
	authed.POST("/crop-image", galleryHandler.Crop)
	authed.DELETE("/delete-image/:filename", galleryHandler.Delete)

	emailConfigHandler := handlers.NewEmailConfigHandler(svc.EmailConfig, svc.SMTPFallback)
	authed.GET("/email-config", emailConfigHandler.Get)
	authed.PUT("/email-config", emailConfigHandler.Update)

	contactHandler := handlers.NewContactDetailsHandler(svc.ContactDetails)
	authed.GET("/contact-details", contactHandler.Get)
	authed.PUT("/contact-details", contactHandler.Update)
}

// RegisterHealthRoutes registers the liveness and database health checks.
func RegisterHealthRoutes(r *gin.Engine, svc api.Services) {
	if r == nil || svc.DB == nil {
		return
	}
	healthHandler := handlers.NewHealthHandler(svc.DB)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Healthz)
}
