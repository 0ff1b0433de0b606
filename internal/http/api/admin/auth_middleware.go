package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/http/api"
	log "github.com/sirupsen/logrus"
)

// adminAuthMiddleware validates the admin bearer token and stores its username in the context.
func adminAuthMiddleware(svc api.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		claims, errVerify := svc.Auth.Verify(token)
		if errVerify != nil {
			log.WithError(errVerify).WithField("path", c.FullPath()).Debug("admin token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("adminUsername", claims.Username)
		c.Next()
	}
}
