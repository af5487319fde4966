package intake

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fna-backend/internal/shared/server/middleware"
	"fna-backend/internal/shared/server/respond"
	"fna-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/balance-sheets", h.submit)
	rg.GET("/balance-sheets", h.list)
	rg.GET("/balance-sheets/:id", h.get)
}

func (h *Handler) submit(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}

	submission, err := h.Svc.Submit(c.Request.Context(), SubmitParams{
		AgentID:    agentID,
		AgentName:  middleware.AgentNameFromContext(c),
		AgentEmail: middleware.AgentEmailFromContext(c),
		Request:    req,
	})
	if err != nil {
		telemetry.Error("submission failed", map[string]interface{}{
			"agent_id": agentID,
			"error":    err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process submission", nil)
		return
	}

	c.Set("submissionId", submission.ID)
	if submission.ProspectID != "" {
		c.Set("prospectId", submission.ProspectID)
	}
	respond.JSON(c, http.StatusCreated, submission)
}

func (h *Handler) get(c *gin.Context) {
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	submission, err := h.Svc.Get(c.Request.Context(), agentID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "submission not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load submission", nil)
		return
	}
	respond.JSON(c, http.StatusOK, submission)
}

func (h *Handler) list(c *gin.Context) {
	agentID := middleware.AgentIDFromContext(c)
	if agentID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	limit := parseQueryInt(c, "limit")
	offset := parseQueryInt(c, "offset")

	list, err := h.Svc.List(c.Request.Context(), agentID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load submissions", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"submissions": list})
}

func parseQueryInt(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return val
}
