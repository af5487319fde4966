package leads

import (
	"errors"
	"net/http"

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

// RegisterPublicRoutes mounts the unauthenticated capture endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.submit)
}

// RegisterRoutes mounts the agent-facing listing.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads", h.list)
}

func (h *Handler) submit(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}

	lead, err := h.Svc.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailRequired) {
			respond.Error(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to capture lead", nil)
		return
	}

	// The public form never learns whether the referral code matched.
	respond.JSON(c, http.StatusCreated, gin.H{"id": lead.ID})
}

func (h *Handler) list(c *gin.Context) {
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	list, err := h.Svc.ListByAgent(c.Request.Context(), agentID, 0)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load leads", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"leads": list})
}
