package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/http/api"
	"github.com/kamaltrader/luxecraft/internal/security"
)

func newMiddlewareRouter(issuer *security.TokenIssuer) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	svc := api.Services{Auth: security.NewAuthenticator(security.AdminCredentials{Username: "admin", Password: "admin123"}, issuer)}
	hits := 0
	r := gin.New()
	r.Use(adminAuthMiddleware(svc))
	r.POST("/mutate", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("adminUsername")})
	})
	return r, &hits
}

func TestAdminAuthMiddlewareRejectsWithoutMutation(t *testing.T) {
	issuer := security.NewTokenIssuer("secret", time.Hour)
	r, hits := newMiddlewareRouter(issuer)

	valid, _, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	foreign, _, err := security.NewTokenIssuer("other", time.Hour).Issue("admin")
	if err != nil {
		t.Fatalf("issue foreign: %v", err)
	}
	expired, _, err := security.NewTokenIssuer("secret", -time.Minute).Issue("admin")
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}

	cases := map[string]struct {
		header string
		body   string
	}{
		"missing":      {header: "", body: `{"error":"No token provided"}`},
		"no bearer":    {header: valid, body: `{"error":"No token provided"}`},
		"empty bearer": {header: "Bearer ", body: `{"error":"No token provided"}`},
		"tampered":     {header: "Bearer " + valid + "x", body: `{"error":"Invalid token"}`},
		"foreign":      {header: "Bearer " + foreign, body: `{"error":"Invalid token"}`},
		"expired":      {header: "Bearer " + expired, body: `{"error":"Invalid token"}`},
	}
	for name, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected status 401, got %d", name, rec.Code)
		}
		if rec.Body.String() != tc.body {
			t.Fatalf("%s: expected body %s, got %s", name, tc.body, rec.Body.String())
		}
	}
	if *hits != 0 {
		t.Fatalf("expected no handler calls, got %d", *hits)
	}

	req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"user":"admin"}` {
		t.Fatalf("expected admin passthrough, got %d %s", rec.Code, rec.Body.String())
	}
}
