package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/cache"
	"github.com/kamaltrader/luxecraft/internal/media"
	"github.com/kamaltrader/luxecraft/internal/store"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// multipartOverhead is the allowance for form fields on top of the image size limit.
const multipartOverhead = 1 << 20

// ProductHandler manages admin product mutations.
type ProductHandler struct {
	products   *store.ProductStore  // Product rows.
	categories *store.CategoryStore // Category lookup for validation.
	media      *media.Store         // Product images.
	cache      cache.ProductCache   // Public listing cache.
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products *store.ProductStore, categories *store.CategoryStore, mediaStore *media.Store, productCache cache.ProductCache) *ProductHandler {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	return &ProductHandler{products: products, categories: categories, media: mediaStore, cache: productCache}
}

// createProductForm captures the multipart fields of a new product.
type createProductForm struct {
	Name        string `form:"name" binding:"required"`         // Display name.
	Price       string `form:"price" binding:"required,price"`  // At most 99999999.99, two decimals.
	Category    string `form:"category" binding:"required"`     // Existing category name.
	Description string `form:"description"`                     // Optional description.
}

// updateProductRequest captures the JSON body of a product update.
type updateProductRequest struct {
	Name        string     `json:"name" binding:"required"`         // Display name.
	Price       priceValue `json:"price" binding:"required,price"`  // Number or numeric string.
	Category    string     `json:"category" binding:"required"`     // Existing category name.
	Description string     `json:"description"`                     // Optional description.
}

// Create stores the uploaded image and inserts the product row.
func (h *ProductHandler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadBytes+multipartOverhead)

	var form createProductForm
	if errBind := c.ShouldBind(&form); errBind != nil {
		if isBodyTooLarge(errBind) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(errBind, "Missing required fields")})
		return
	}
	fileHeader, errFile := c.FormFile("image")
	if errFile != nil {
		if isBodyTooLarge(errFile) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if fileHeader.Size > media.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	fields := store.ProductFields{
		Name:        strings.TrimSpace(form.Name),
		Price:       decimal.RequireFromString(strings.TrimSpace(form.Price)),
		Category:    strings.TrimSpace(form.Category),
		Description: form.Description,
	}
	ctx := c.Request.Context()
	exists, errExists := h.categories.Exists(ctx, fields.Category)
	if errExists != nil {
		log.WithError(errExists).Error("check product category failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	file, errOpen := fileHeader.Open()
	if errOpen != nil {
		log.WithError(errOpen).Error("open product upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process image"})
		return
	}
	defer file.Close()

	img, errSave := h.media.Save(fileHeader.Filename, file)
	if errSave != nil {
		status, msg := uploadErrorResponse(errSave, "Failed to process image")
		c.JSON(status, gin.H{"error": msg})
		return
	}

	product, errCreate := h.products.Create(ctx, fields, img.Filename)
	if errCreate != nil {
		h.discardImage(img.Filename)
		if errors.Is(errCreate, store.ErrUnknownCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		log.WithError(errCreate).Error("create product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// Update replaces the editable fields of a product. The image is kept.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body updateProductRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(errBind, "Missing required fields")})
		return
	}
	fields := store.ProductFields{
		Name:        strings.TrimSpace(body.Name),
		Price:       decimal.RequireFromString(string(body.Price)),
		Category:    strings.TrimSpace(body.Category),
		Description: body.Description,
	}

	ctx := c.Request.Context()
	product, errUpdate := h.products.Update(ctx, id, fields)
	if errUpdate != nil {
		switch {
		case errors.Is(errUpdate, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(errUpdate, store.ErrUnknownCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		default:
			log.WithError(errUpdate).Error("update product failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	h.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// Delete removes the product row and then its image file.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	product, errDelete := h.products.Delete(ctx, id)
	if errDelete != nil {
		if errors.Is(errDelete, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.WithError(errDelete).Error("delete product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	h.cache.Invalidate(ctx)

	// The row is gone; a failed file removal leaves an orphan and is only logged.
	if product.ImageFilename != "" {
		h.discardImage(product.ImageFilename)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

func (h *ProductHandler) discardImage(filename string) {
	if errDelete := h.media.Delete(filename); errDelete != nil && !errors.Is(errDelete, media.ErrNotFound) {
		log.WithError(errDelete).WithField("filename", filename).Warn("remove product image failed")
	}
}

// uploadErrorResponse maps a media store error to a status and message.
func uploadErrorResponse(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, media.ErrUnsupportedType):
		return http.StatusBadRequest, "Only image files are allowed"
	case errors.Is(err, media.ErrEmpty):
		return http.StatusBadRequest, "No image provided"
	case errors.Is(err, media.ErrTooLarge), isBodyTooLarge(err):
		return http.StatusRequestEntityTooLarge, "File too large"
	default:
		log.WithError(err).Error("store upload failed")
		return http.StatusInternalServerError, fallback
	}
}
