package front

import (
	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/http/api"
	"github.com/kamaltrader/luxecraft/internal/http/api/front/handlers"
)

// RegisterFrontRoutes registers the public storefront routes.
func RegisterFrontRoutes(r *gin.Engine, svc api.Services) {
	if r == nil {
		return
	}

	front := r.Group("/api")

	productHandler := handlers.NewProductHandler(svc.Products, svc.Cache)
	front.GET("/products", productHandler.List)
	front.GET("/products/category/:category", productHandler.ListByCategory)
	front.GET("/products/:id", productHandler.Get)

	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	front.GET("/categories", categoryHandler.List)

	galleryHandler := handlers.NewGalleryHandler(svc.Media)
	front.GET("/gallery-images", galleryHandler.List)

	contactHandler := handlers.NewContactDetailsHandler(svc.ContactDetails)
	front.GET("/contact-details", contactHandler.Get)

	formHandler := handlers.NewFormHandler(svc.Notifier)
	front.POST("/send-contact", formHandler.SendContact)
	front.POST("/send-bulk-order", formHandler.SendBulkOrder)
}
