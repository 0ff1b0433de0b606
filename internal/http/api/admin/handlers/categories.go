package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/cache"
	"github.com/kamaltrader/luxecraft/internal/store"
	log "github.com/sirupsen/logrus"
)

// CategoryHandler manages admin category CRUD endpoints.
type CategoryHandler struct {
	categories *store.CategoryStore // Category rows.
	cache      cache.ProductCache   // Cleared when products are renamed with a category.
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categories *store.CategoryStore, productCache cache.ProductCache) *CategoryHandler {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	return &CategoryHandler{categories: categories, cache: productCache}
}

// categoryRequest captures the payload for creating or renaming a category.
type categoryRequest struct {
	Name string `json:"name"`
}

// Create inserts a new category.
func (h *CategoryHandler) Create(c *gin.Context) {
	name, ok := bindCategoryName(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	row, errCreate := h.categories.Create(ctx, name)
	if errCreate != nil {
		if errors.Is(errCreate, store.ErrCategoryExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}
		log.WithError(errCreate).Error("create category failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	h.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"success": true, "category": row})
}

// Update renames a category and the products filed under it.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	name, ok := bindCategoryName(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	row, errRename := h.categories.Rename(ctx, id, name)
	if errRename != nil {
		switch {
		case errors.Is(errRename, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(errRename, store.ErrCategoryExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		default:
			log.WithError(errRename).Error("rename category failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		}
		return
	}

	h.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"success": true, "category": row})
}

// Delete removes a category that no product references.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if errDelete := h.categories.Delete(ctx, id); errDelete != nil {
		switch {
		case errors.Is(errDelete, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(errDelete, store.ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Category is used by existing products"})
		default:
			log.WithError(errDelete).Error("delete category failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		}
		return
	}

	h.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}

func bindCategoryName(c *gin.Context) (string, bool) {
	var body categoryRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return "", false
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return "", false
	}
	// Names travel as a single path segment on /products/category/:category.
	if strings.Contains(name, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name cannot contain /"})
		return "", false
	}
	return name, true
}
