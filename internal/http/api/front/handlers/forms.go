package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/notify"
	log "github.com/sirupsen/logrus"
)

// FormHandler turns storefront form submissions into notification emails.
type FormHandler struct {
	notifier *notify.Notifier
}

// NewFormHandler constructs a FormHandler.
func NewFormHandler(notifier *notify.Notifier) *FormHandler {
	return &FormHandler{notifier: notifier}
}

// contactRequest is the body of the contact form.
type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// bulkOrderRequest is the body of the bulk order form.
type bulkOrderRequest struct {
	CompanyName     string     `json:"companyName" binding:"required"`
	ContactName     string     `json:"contactName" binding:"required"`
	Email           string     `json:"email" binding:"required,email"`
	Phone           string     `json:"phone"`
	ProductCategory string     `json:"productCategory" binding:"required"`
	Quantity        flexString `json:"quantity" binding:"required"`
	Specifications  string     `json:"specifications"`
}

// SendContact emails a contact form submission to the shop inbox.
func (h *FormHandler) SendContact(c *gin.Context) {
	var body contactRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formErrorMessage(errBind)})
		return
	}

	errSend := h.notifier.SendContact(c.Request.Context(), notify.ContactRequest{
		Name:    strings.TrimSpace(body.Name),
		Email:   strings.TrimSpace(body.Email),
		Message: body.Message,
	})
	if errSend != nil {
		log.WithError(errSend).Error("send contact email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent successfully"})
}

// SendBulkOrder emails a bulk order request to the shop inbox.
func (h *FormHandler) SendBulkOrder(c *gin.Context) {
	var body bulkOrderRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formErrorMessage(errBind)})
		return
	}

	errSend := h.notifier.SendBulkOrder(c.Request.Context(), notify.BulkOrderRequest{
		CompanyName:     strings.TrimSpace(body.CompanyName),
		ContactName:     strings.TrimSpace(body.ContactName),
		Email:           strings.TrimSpace(body.Email),
		Phone:           strings.TrimSpace(body.Phone),
		ProductCategory: strings.TrimSpace(body.ProductCategory),
		Quantity:        string(body.Quantity),
		Specifications:  body.Specifications,
	})
	if errSend != nil {
		log.WithError(errSend).Error("send bulk order email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent successfully"})
}
