package agents

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"fna-backend/internal/shared/auth"
	"fna-backend/internal/shared/email"
	"fna-backend/internal/shared/server/middleware"
	"fna-backend/internal/shared/server/respond"
	"fna-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc        *Service
	Sessions   *auth.Sessions
	Mail       email.Sender
	AppBaseURL string
	Secure     bool
}

func NewHandler(svc *Service, sessions *auth.Sessions, mail email.Sender, appBaseURL string, secure bool) *Handler {
	return &Handler{Svc: svc, Sessions: sessions, Mail: mail, AppBaseURL: appBaseURL, Secure: secure}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/logout", h.logout)
	rg.POST("/auth/forgot-password", h.forgotPassword)
	rg.POST("/auth/reset-password", h.resetPassword)
	rg.GET("/auth/me", h.me)
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterParams
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}

	agent, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", "email already registered", nil)
		case errors.Is(err, ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
		}
		return
	}

	telemetry.AuthEvent("REGISTER", map[string]interface{}{
		"agent_id": agent.ID,
		"ip":       c.ClientIP(),
	})
	h.startSession(c, agent)
	respond.JSON(c, http.StatusCreated, agentPayload(agent))
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}

	agent, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			telemetry.AuthEvent("LOGIN_FAILED", map[string]interface{}{
				"ip": c.ClientIP(),
			})
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}

	telemetry.AuthEvent("LOGIN_SUCCESS", map[string]interface{}{
		"agent_id": agent.ID,
		"ip":       c.ClientIP(),
	})
	h.startSession(c, agent)
	respond.JSON(c, http.StatusOK, agentPayload(agent))
}

func (h *Handler) logout(c *gin.Context) {
	if agentID := middleware.AgentIDFromContext(c); agentID != "" {
		telemetry.AuthEvent("LOGOUT", map[string]interface{}{
			"agent_id": agentID,
		})
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.Secure, true)
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}

	token, agent, err := h.Svc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not process request", nil)
		return
	}

	telemetry.AuthEvent("PASSWORD_RESET_REQUEST", map[string]interface{}{
		"ip": c.ClientIP(),
	})

	if token != "" && h.Mail != nil {
		resetURL := h.AppBaseURL + "/reset-password?token=" + url.QueryEscape(token)
		if err := h.Mail.SendPasswordReset(c.Request.Context(), agent.Email, resetURL); err != nil {
			telemetry.Error("password reset email failed", map[string]interface{}{
				"agent_id": agent.ID,
				"error":    err.Error(),
			})
		}
	}

	// Same response whether or not the email exists.
	respond.JSON(c, http.StatusOK, gin.H{
		"message": "If that email is registered, a reset link has been sent.",
	})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}

	err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidResetToken):
			respond.Error(c, http.StatusBadRequest, "invalid_token", "invalid or expired reset token", nil)
		case errors.Is(err, ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "could not reset password", nil)
		}
		return
	}

	telemetry.AuthEvent("PASSWORD_RESET_SUCCESS", map[string]interface{}{
		"ip": c.ClientIP(),
	})
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) me(c *gin.Context) {
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	agent, err := h.Svc.GetByID(c.Request.Context(), agentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "agent not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load agent", nil)
		return
	}
	respond.JSON(c, http.StatusOK, agentPayload(agent))
}

func (h *Handler) startSession(c *gin.Context, agent Agent) {
	token, err := h.Sessions.Issue(auth.Claims{
		AgentID:   agent.ID,
		Email:     agent.Email,
		FirstName: agent.FirstName,
		LastName:  agent.LastName,
	})
	if err != nil {
		telemetry.Error("session issue failed", map[string]interface{}{
			"agent_id": agent.ID,
			"error":    err.Error(),
		})
		return
	}
	maxAge := int(h.Sessions.TTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", h.Secure, true)
}

func agentPayload(agent Agent) gin.H {
	return gin.H{
		"id":           agent.ID,
		"email":        agent.Email,
		"firstName":    agent.FirstName,
		"lastName":     agent.LastName,
		"referralCode": agent.ReferralCode,
	}
}
