package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/cache"
	"github.com/kamaltrader/luxecraft/internal/models"
	"github.com/kamaltrader/luxecraft/internal/store"
	log "github.com/sirupsen/logrus"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	products *store.ProductStore // Product rows.
	cache    cache.ProductCache  // Listing cache.
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products *store.ProductStore, productCache cache.ProductCache) *ProductHandler {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	return &ProductHandler{products: products, cache: productCache}
}

// List returns products newest first, optionally filtered by ?q= on the name.
func (h *ProductHandler) List(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	rows, errList := cache.Products(c.Request.Context(), h.cache, cache.ListKey(keyword, ""), func(ctx context.Context) ([]models.Product, error) {
		return h.products.List(ctx, keyword)
	})
	if errList != nil {
		log.WithError(errList).Error("list products failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListByCategory returns the products filed under the :category name.
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	category := strings.TrimSpace(c.Param("category"))
	rows, errList := cache.Products(c.Request.Context(), h.cache, cache.ListKey("", category), func(ctx context.Context) ([]models.Product, error) {
		return h.products.ListByCategory(ctx, category)
	})
	if errList != nil {
		log.WithError(errList).Error("list products by category failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get returns one product.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, errGet := h.products.Get(c.Request.Context(), id)
	if errGet != nil {
		if errors.Is(errGet, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.WithError(errGet).Error("get product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, row)
}
