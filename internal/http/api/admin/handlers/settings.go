package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/models"
	"github.com/kamaltrader/luxecraft/internal/settings"
	"github.com/kamaltrader/luxecraft/internal/store"
	log "github.com/sirupsen/logrus"
)

// EmailConfigHandler manages the SMTP settings singleton.
type EmailConfigHandler struct {
	configs  *store.EmailConfigStore // email_config row.
	fallback settings.Fallback       // Environment values for blank fields.
}

// NewEmailConfigHandler constructs an EmailConfigHandler.
func NewEmailConfigHandler(configs *store.EmailConfigStore, fallback settings.Fallback) *EmailConfigHandler {
	return &EmailConfigHandler{configs: configs, fallback: fallback}
}

// updateEmailConfigRequest captures a full replacement of the SMTP settings.
type updateEmailConfigRequest struct {
	EmailUser      string    `json:"email_user" binding:"required"`
	EmailPassword  string    `json:"email_password"`
	EmailHost      string    `json:"email_host" binding:"required"`
	EmailPort      portValue `json:"email_port" binding:"required,min=1,max=65535"`
	RecipientEmail string    `json:"recipient_email" binding:"required,email"`
}

// Get returns the SMTP settings without the password.
func (h *EmailConfigHandler) Get(c *gin.Context) {
	row, errGet := h.configs.Get(c.Request.Context())
	if errGet != nil {
		log.WithError(errGet).Error("get email config failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch email config"})
		return
	}
	c.JSON(http.StatusOK, emailConfigRow(row))
}

// Update overwrites the SMTP settings and refreshes the mailer snapshot.
// An empty email_password keeps the stored password.
func (h *EmailConfigHandler) Update(c *gin.Context) {
	var body updateEmailConfigRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(errBind, "Missing required fields")})
		return
	}

	row, errUpdate := h.configs.Update(c.Request.Context(), store.EmailConfigUpdate{
		User:      strings.TrimSpace(body.EmailUser),
		Password:  body.EmailPassword,
		Host:      strings.TrimSpace(body.EmailHost),
		Port:      int(body.EmailPort),
		Recipient: strings.TrimSpace(body.RecipientEmail),
	})
	if errUpdate != nil {
		log.WithError(errUpdate).Error("update email config failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update email config"})
		return
	}
	settings.StoreSMTP(settings.Merge(*row, h.fallback))

	c.JSON(http.StatusOK, gin.H{"success": true, "config": emailConfigRow(row)})
}

// emailConfigRow shapes the email_config row for responses. The password never leaves the server.
func emailConfigRow(row *models.EmailConfig) gin.H {
	return gin.H{
		"id":              row.ID,
		"email_user":      row.EmailUser,
		"email_host":      row.EmailHost,
		"email_port":      row.EmailPort,
		"recipient_email": row.RecipientEmail,
		"has_password":    row.EmailPassword != "",
		"updated_at":      row.UpdatedAt,
	}
}

// ContactDetailsHandler manages the contact details singleton.
type ContactDetailsHandler struct {
	details *store.ContactDetailsStore
}

// NewContactDetailsHandler constructs a ContactDetailsHandler.
func NewContactDetailsHandler(details *store.ContactDetailsStore) *ContactDetailsHandler {
	return &ContactDetailsHandler{details: details}
}

// updateContactDetailsRequest captures a full replacement of the contact details.
type updateContactDetailsRequest struct {
	Address   string `json:"address" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
	WhatsApp  string `json:"whatsapp"`
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

// Update overwrites the contact details. Omitted social links are cleared.
func (h *ContactDetailsHandler) Update(c *gin.Context) {
	var body updateContactDetailsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(errBind, "Missing required fields (address, phone, email)")})
		return
	}

	row, errUpdate := h.details.Update(c.Request.Context(), models.ContactDetails{
		Address:   strings.TrimSpace(body.Address),
		Phone:     strings.TrimSpace(body.Phone),
		Email:     strings.TrimSpace(body.Email),
		Facebook:  strings.TrimSpace(body.Facebook),
		Instagram: strings.TrimSpace(body.Instagram),
		Twitter:   strings.TrimSpace(body.Twitter),
		LinkedIn:  strings.TrimSpace(body.LinkedIn),
		WhatsApp:  strings.TrimSpace(body.WhatsApp),
	})
	if errUpdate != nil {
		log.WithError(errUpdate).Error("update contact details failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "details": row})
}
