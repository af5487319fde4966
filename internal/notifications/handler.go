package notifications

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fna-backend/internal/shared/server/middleware"
	"fna-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.list)
	rg.POST("/notifications/:id/read", h.markRead)
	rg.POST("/notifications/read-all", h.markAllRead)
}

func (h *Handler) list(c *gin.Context) {
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	unreadOnly := c.Query("unread") == "true"
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil {
			limit = val
		}
	}

	list, err := h.Svc.List(c.Request.Context(), agentID, unreadOnly, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load notifications", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"notifications": list})
}

func (h *Handler) markRead(c *gin.Context) {
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	err := h.Svc.MarkRead(c.Request.Context(), agentID, c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			respond.Error(c, http.StatusNotFound, "not_found", "notification not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update notification", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) markAllRead(c *gin.Context) {
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	count, err := h.Svc.MarkAllRead(c.Request.Context(), agentID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update notifications", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"updated": count})
}
