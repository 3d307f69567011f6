package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anishgrg/disaster-response-server/internal/auth"
	"github.com/anishgrg/disaster-response-server/internal/models"
	"github.com/anishgrg/disaster-response-server/internal/realtime"
)

const recentAlertLimit = 10

type createAlertRequest struct {
	Type     string     `json:"type" binding:"required"`
	Location string     `json:"location" binding:"required"`
	Severity string     `json:"severity"`
	Status   string     `json:"status"`
	Affected *int64     `json:"affected" binding:"required"`
	Message  string     `json:"message"`
	IssuedAt *time.Time `json:"issuedAt"`
}

// recentAlert is the dashboard-facing shape with a relative-time string
// in place of raw timestamps.
type recentAlert struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Location string             `json:"location"`
	Time     string             `json:"time"`
	Severity models.Severity    `json:"severity"`
	Affected int64              `json:"affected"`
	Status   models.AlertStatus `json:"status"`
}

func (h *Handler) getAlerts(c *gin.Context) {
	alerts, err := h.store.ListAlerts(c.Request.Context(), 0)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(alerts),
		"data":    alerts,
	})
}

func (h *Handler) createAlert(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		unauthorized(c, "User not authenticated")
		return
	}

	var req createAlertRequest
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

	status := models.AlertStatusActive
	if req.Status != "" {
		parsed, ok := models.ParseAlertStatus(req.Status)
		if !ok {
			badRequest(c, "Invalid status: "+req.Status)
			return
		}
		status = parsed
	}

	now := time.Now()
	issuedAt := now
	if req.IssuedAt != nil {
		issuedAt = *req.IssuedAt
	}

	// createdBy always comes from the authenticated identity; any value
	// in the request body is ignored.
	alert := &models.Alert{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Location:  req.Location,
		Severity:  severity,
		Status:    status,
		Affected:  *req.Affected,
		Message:   req.Message,
		IssuedAt:  issuedAt,
		CreatedBy: user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.AddAlert(c.Request.Context(), alert); err != nil {
		h.serverError(c, err)
		return
	}

	h.hub.Publish(realtime.EventNewAlert, alert)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    alert,
	})
}

func (h *Handler) getRecentAlerts(c *gin.Context) {
	alerts, err := h.store.ListAlerts(c.Request.Context(), recentAlertLimit)
	if err != nil {
		h.serverError(c, err)
		return
	}

	now := time.Now()
	recent := make([]recentAlert, 0, len(alerts))
	for _, a := range alerts {
		recent = append(recent, recentAlert{
			ID:       a.ID,
			Type:     a.Type,
			Location: a.Location,
			Time:     timeAgo(a.CreatedAt, now),
			Severity: a.Severity,
			Affected: a.Affected,
			Status:   a.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recent,
	})
}
