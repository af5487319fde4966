package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fna-backend/internal/shared/auth"
)

func TestSessionAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(auth.NewSessions("test-secret", time.Hour)))
	router.OPTIONS("/api/v1/prospects", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/prospects", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestSessionRejectsMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(auth.NewSessions("test-secret", time.Hour)))
	router.GET("/api/v1/prospects", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prospects", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSessionAllowsPublicRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session(auth.NewSessions("test-secret", time.Hour)))
	router.POST("/api/v1/public/leads", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/leads", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestSessionStoresAgentIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := auth.NewSessions("test-secret", time.Hour)
	token, err := sessions.Issue(auth.Claims{AgentID: "agent-1", Email: "a@example.com", FirstName: "Ada", LastName: "Moore"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	router := gin.New()
	router.Use(Session(sessions))
	router.GET("/api/v1/prospects", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"agentId": AgentIDFromContext(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prospects", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); !strings.Contains(body, "agent-1") {
		t.Fatalf("expected agent id in response, got %s", body)
	}
}
