package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/media"
	"github.com/kamaltrader/luxecraft/internal/store"
	log "github.com/sirupsen/logrus"
)

// CategoryHandler serves the public category list.
type CategoryHandler struct {
	categories *store.CategoryStore
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categories *store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List returns categories ordered by name.
func (h *CategoryHandler) List(c *gin.Context) {
	rows, errList := h.categories.List(c.Request.Context())
	if errList != nil {
		log.WithError(errList).Error("list categories failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GalleryHandler serves the public gallery listing.
type GalleryHandler struct {
	media *media.Store
}

// NewGalleryHandler constructs a GalleryHandler.
func NewGalleryHandler(mediaStore *media.Store) *GalleryHandler {
	return &GalleryHandler{media: mediaStore}
}

// List returns every stored image sorted by filename.
func (h *GalleryHandler) List(c *gin.Context) {
	images, errList := h.media.List()
	if errList != nil {
		log.WithError(errList).Error("list gallery images failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list images"})
		return
	}
	c.JSON(http.StatusOK, images)
}

// ContactDetailsHandler serves the public contact details.
type ContactDetailsHandler struct {
	details *store.ContactDetailsStore
}

// NewContactDetailsHandler constructs a ContactDetailsHandler.
func NewContactDetailsHandler(details *store.ContactDetailsStore) *ContactDetailsHandler {
	return &ContactDetailsHandler{details: details}
}

// Get returns the contact details.
func (h *ContactDetailsHandler) Get(c *gin.Context) {
	row, errGet := h.details.Get(c.Request.Context())
	if errGet != nil {
		if errors.Is(errGet, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact details not found"})
			return
		}
		log.WithError(errGet).Error("get contact details failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact details"})
		return
	}
	c.JSON(http.StatusOK, row)
}
