package prospects

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
	rg.GET("/prospects", h.list)
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	ctx := c.Request.Context()
	personal, err := h.Svc.List(ctx, agentID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load prospects", nil)
		return
	}
	business, err := h.Svc.ListBusiness(ctx, agentID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load prospects", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"prospects":         personal,
		"businessProspects": business,
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
