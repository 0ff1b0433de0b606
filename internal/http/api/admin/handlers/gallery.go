package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/media"
	"github.com/kamaltrader/luxecraft/internal/store"
	log "github.com/sirupsen/logrus"
)

// GalleryHandler manages the free-standing image gallery.
type GalleryHandler struct {
	media    *media.Store        // Image files.
	products *store.ProductStore // Guards images still used by products.
}

// NewGalleryHandler constructs a GalleryHandler.
func NewGalleryHandler(mediaStore *media.Store, products *store.ProductStore) *GalleryHandler {
	return &GalleryHandler{media: mediaStore, products: products}
}

// cropRect is the client-side crop selection sent with a crop request.
type cropRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
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

// Dimensions returns the advertised crop geometry.
func (h *GalleryHandler) Dimensions(c *gin.Context) {
	c.JSON(http.StatusOK, media.GalleryDimensions)
}

// Upload stores one image from the multipart "image" field.
func (h *GalleryHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadBytes+multipartOverhead)
	h.saveUpload(c, "Upload failed")
}

// Crop validates the crop selection and stores the submitted image bytes as sent.
func (h *GalleryHandler) Crop(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadBytes+multipartOverhead)

	form, errForm := c.MultipartForm()
	if errForm != nil {
		if isBodyTooLarge(errForm) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	var rect cropRect
	values := form.Value["cropData"]
	if len(values) == 0 || json.Unmarshal([]byte(strings.TrimSpace(values[0])), &rect) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop data"})
		return
	}
	if rect.X < 0 || rect.Y < 0 || rect.Width <= 0 || rect.Height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop data"})
		return
	}
	h.saveUpload(c, "Crop failed")
}

// Delete removes a gallery image that no product uses.
func (h *GalleryHandler) Delete(c *gin.Context) {
	filename := c.Param("filename")
	ctx := c.Request.Context()

	inUse, errRef := h.products.ReferencesImage(ctx, filename)
	if errRef != nil {
		log.WithError(errRef).Error("check image references failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}
	if inUse {
		c.JSON(http.StatusConflict, gin.H{"error": "Image is used by a product"})
		return
	}

	if errDelete := h.media.Delete(filename); errDelete != nil {
		switch {
		case errors.Is(errDelete, media.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		case errors.Is(errDelete, media.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "File not found"})
		default:
			log.WithError(errDelete).Error("delete gallery image failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}

// saveUpload expects the request body to be size limited already.
func (h *GalleryHandler) saveUpload(c *gin.Context, failure string) {
	fileHeader, errFile := c.FormFile("image")
	if errFile != nil {
		if isBodyTooLarge(errFile) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}
	if fileHeader.Size > media.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	file, errOpen := fileHeader.Open()
	if errOpen != nil {
		log.WithError(errOpen).Error("open gallery upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
		return
	}
	defer file.Close()

	img, errSave := h.media.Save(fileHeader.Filename, file)
	if errSave != nil {
		status, msg := uploadErrorResponse(errSave, failure)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"filename": img.Filename,
		"url":      img.URL,
		"width":    media.GalleryDimensions.Width,
		"height":   media.GalleryDimensions.Height,
	})
}
