package api

import (
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/anishgrg/disaster-response-server/internal/models"
	"github.com/anishgrg/disaster-response-server/internal/repository"
)

type statCard struct {
	Value       string `json:"value"`
	Change      string `json:"change"`
	Description string `json:"description"`
}

type dashboardStats struct {
	ActiveDisasters statCard `json:"activeDisasters"`
	PeopleAffected  statCard `json:"peopleAffected"`
	ResponseTeams   statCard `json:"responseTeams"`
	AvgResponseTime statCard `json:"avgResponseTime"`
}

func (h *Handler) getDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	activeDisasters, err := h.store.CountDisastersBySeverity(ctx,
		models.SeverityCritical, models.SeverityHigh, models.SeverityMedium)
	if err != nil {
		h.serverError(c, err)
		return
	}

	peopleAffected, err := h.store.TotalAffected(ctx)
	if err != nil {
		h.serverError(c, err)
		return
	}

	responseTeams, err := h.store.CountActiveUsersByRole(ctx, models.RoleResponder)
	if err != nil {
		h.serverError(c, err)
		return
	}

	stats := dashboardStats{
		ActiveDisasters: statCard{
			Value:       strconv.FormatInt(activeDisasters, 10),
			Change:      "+3",
			Description: "Currently monitored events",
		},
		PeopleAffected: statCard{
			Value:       humanize.Comma(peopleAffected),
			Change:      "+1,234",
			Description: "Requiring assistance",
		},
		ResponseTeams: statCard{
			Value:       strconv.FormatInt(responseTeams, 10),
			Change:      "+5",
			Description: "Deployed in field",
		},
		// Response time is not tracked yet; fixed placeholder value.
		AvgResponseTime: statCard{
			Value:       "14 min",
			Change:      "-2 min",
			Description: "Emergency response",
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

func (h *Handler) getDisastersByType(c *gin.Context) {
	stats, err := h.store.DisastersByType(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	if stats == nil {
		stats = []repository.TypeStats{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
