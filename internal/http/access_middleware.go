package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamaltrader/luxecraft/internal/util"
	log "github.com/sirupsen/logrus"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware reuses a well-formed inbound request id or assigns a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if _, errParse := uuid.Parse(requestID); errParse != nil {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// AccessLogMiddleware logs one line per request with sensitive query values masked.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if raw := util.MaskSensitiveQuery(c.Request.URL.RawQuery); raw != "" {
			path += "?" + raw
		}
		fields := log.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString("requestID"),
		}
		entry := log.WithFields(fields)
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}

// RecoveryMiddleware converts panics into a generic 500 and logs the cause.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.WithField("request_id", c.GetString("requestID")).Errorf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

// CORSMiddleware allows the configured comma-separated origins.
func CORSMiddleware(origins string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range strings.Split(origins, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowOrigins = nil
			cfg.AllowCredentials = false
			return cors.New(cfg)
		}
		if trimmed != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, trimmed)
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"http://localhost:5173"}
	}
	return cors.New(cfg)
}

// Middlewares returns the shared middleware chain in order.
func Middlewares(corsOrigins string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		RequestIDMiddleware(),
		RecoveryMiddleware(),
		AccessLogMiddleware(),
		CORSMiddleware(corsOrigins),
	}
}
