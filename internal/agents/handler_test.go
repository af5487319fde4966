package agents

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fna-backend/internal/shared/auth"
	"fna-backend/internal/shared/email"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewMemoryRepo())
	sessions := auth.NewSessions("test-secret", time.Hour)
	handler := NewHandler(svc, sessions, email.LogSender{}, "http://localhost:3000", false)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router, svc := newTestRouter(t)
	if _, err := svc.Register(context.Background(), RegisterParams{Email: "pat@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	body := `{"email":"pat@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatalf("expected %s cookie", auth.CookieName)
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
	if sessionCookie.Value == "" {
		t.Fatalf("session cookie must carry a token")
	}
}

func TestLoginBadCredentialsReturns401(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"email":"nobody@example.com","password":"whatever!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_credentials") {
		t.Fatalf("expected invalid_credentials code, got %s", rec.Body.String())
	}
}

func TestRegisterReturnsReferralCode(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"email":"new@example.com","password":"correct horse","firstName":"New","lastName":"Agent"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	code, _ := payload["referralCode"].(string)
	if len(code) != referralCodeLen {
		t.Fatalf("expected referral code in response, got %v", payload)
	}
	if _, ok := payload["passwordHash"]; ok {
		t.Fatalf("response must not leak the password hash")
	}
}

func TestForgotPasswordResponseDoesNotRevealExistence(t *testing.T) {
	router, svc := newTestRouter(t)
	if _, err := svc.Register(context.Background(), RegisterParams{Email: "pat@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	send := func(emailAddr string) string {
		body := `{"email":"` + emailAddr + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		return rec.Body.String()
	}

	known := send("pat@example.com")
	unknown := send("nobody@example.com")
	if known != unknown {
		t.Fatalf("responses must be identical for known and unknown emails:\n%s\n%s", known, unknown)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", sessionCookie)
	}
}
