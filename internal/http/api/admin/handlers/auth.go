package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/security"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	auth *security.Authenticator
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *security.Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// loginRequest defines the request body for admin login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the admin credentials and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username or password"})
		return
	}

	username := strings.TrimSpace(body.Username)
	if username == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username or password"})
		return
	}

	token, errAuth := h.auth.Authenticate(username, body.Password)
	if errAuth != nil {
		if errors.Is(errAuth, security.ErrInvalidCredentials) {
			log.WithField("username", username).Warn("admin login rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}
		log.WithError(errAuth).Error("admin login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}
