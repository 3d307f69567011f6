package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anishgrg/disaster-response-server/internal/models"
	"github.com/anishgrg/disaster-response-server/internal/realtime"
	"github.com/anishgrg/disaster-response-server/internal/repository"
)

type createDisasterRequest struct {
	Type        string     `json:"type" binding:"required"`
	Location    string     `json:"location" binding:"required"`
	Severity    string     `json:"severity"`
	Affected    *int64     `json:"affected" binding:"required"`
	Description string     `json:"description"`
	ReportedAt  *time.Time `json:"reportedAt"`
}

func (h *Handler) getDisasters(c *gin.Context) {
	disasters, err := h.store.ListDisasters(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	if disasters == nil {
		disasters = []models.Disaster{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(disasters),
		"data":    disasters,
	})
}

func (h *Handler) createDisaster(c *gin.Context) {
	var req createDisasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if *req.Affected < 0 {
		badRequest(c, "Affected count must not be negative")
		return
	}

	severity := models.SeverityMedium
	if req.Severity != "" {
		parsed, ok := models.ParseSeverity(req.Severity)
		if !ok {
			badRequest(c, "Invalid severity: "+req.Severity)
			return
		}
		severity = parsed
	}

	now := time.Now()
	reportedAt := now
	if req.ReportedAt != nil {
		reportedAt = *req.ReportedAt
	}

	disaster := &models.Disaster{
		ID:          uuid.NewString(),
		Type:        req.Type,
		Location:    req.Location,
		Severity:    severity,
		Affected:    *req.Affected,
		Description: req.Description,
		ReportedAt:  reportedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.AddDisaster(c.Request.Context(), disaster); err != nil {
		h.serverError(c, err)
		return
	}

	// Fire-and-forget; delivery never affects the response.
	h.hub.Publish(realtime.EventNewDisaster, disaster)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    disaster,
	})
}

func (h *Handler) getDisaster(c *gin.Context) {
	disaster, err := h.store.GetDisasterByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "Disaster not found")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    disaster,
	})
}
