package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func runRequestWithMiddlewares(t *testing.T, req *http.Request, handler gin.HandlerFunc, middlewares ...gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middlewares...)
	router.Any("/*path", handler)

	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, req)
	return responseRecorder
}

func noContent(c *gin.Context) { c.Status(http.StatusNoContent) }

func TestRequestIDMiddlewareAssignsAndReuses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := runRequestWithMiddlewares(t, req, noContent, RequestIDMiddleware())
	generated := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected generated uuid, got %q", generated)
	}

	inbound := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(RequestIDHeader, inbound)
	rec = runRequestWithMiddlewares(t, req, noContent, RequestIDMiddleware())
	if got := rec.Header().Get(RequestIDHeader); got != inbound {
		t.Fatalf("expected inbound id %q, got %q", inbound, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = runRequestWithMiddlewares(t, req, noContent, RequestIDMiddleware())
	if got := rec.Header().Get(RequestIDHeader); got == "<script>" {
		t.Fatalf("expected malformed id to be replaced")
	}
}

func TestAccessLogMiddlewareMasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := log.StandardLogger().Out
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	req := httptest.NewRequest(http.MethodGet, "/api/products?q=belt&token=abcdefghijkl", nil)
	rec := runRequestWithMiddlewares(t, req, noContent, RequestIDMiddleware(), AccessLogMiddleware())
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	line := buf.String()
	if strings.Contains(line, "abcdefghijkl") {
		t.Fatalf("token leaked into access log: %s", line)
	}
	if !strings.Contains(line, "abcd...ijkl") || !strings.Contains(line, "status=204") {
		t.Fatalf("unexpected access log line: %s", line)
	}
}

func TestRecoveryMiddlewareReturnsGenericError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := runRequestWithMiddlewares(t, req, func(c *gin.Context) { panic("disk on fire") }, RecoveryMiddleware())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "disk on fire") {
		t.Fatalf("panic cause leaked to client: %s", rec.Body.String())
	}
}

func TestCORSMiddlewareAllowsConfiguredOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/admin/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := runRequestWithMiddlewares(t, req, noContent, CORSMiddleware("http://localhost:5173, https://shop.example.com"))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = runRequestWithMiddlewares(t, req, noContent, CORSMiddleware("http://localhost:5173"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for foreign origin, got %d", rec.Code)
	}
}
