package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anishgrg/disaster-response-server/internal/auth"
	"github.com/anishgrg/disaster-response-server/internal/realtime"
	"github.com/anishgrg/disaster-response-server/internal/repository"
)

type Handler struct {
	store       repository.Store
	hub         *realtime.Hub
	tokens      *auth.TokenService
	bcryptCost  int
	environment string
	debug       bool
	started     time.Time
}

type Options struct {
	Store       repository.Store
	Hub         *realtime.Hub
	Tokens      *auth.TokenService
	BcryptCost  int
	Environment string
	Debug       bool
}

func NewHandler(opts Options) *Handler {
	return &Handler{
		store:       opts.Store,
		hub:         opts.Hub,
		tokens:      opts.Tokens,
		bcryptCost:  opts.BcryptCost,
		environment: opts.Environment,
		debug:       opts.Debug,
		started:     time.Now(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	authRoutes := r.Group("/api/auth")
	authRoutes.POST("/register", h.register)
	authRoutes.POST("/login", h.login)

	guard := auth.Middleware(h.tokens, h.store)
	authRoutes.GET("/me", guard, h.me)

	protected := r.Group("/api", guard)
	protected.GET("/disasters", h.getDisasters)
	protected.POST("/disasters", h.createDisaster)
	protected.GET("/disasters/:id", h.getDisaster)
	protected.GET("/alerts", h.getAlerts)
	protected.POST("/alerts", h.createAlert)
	protected.GET("/alerts/recent", h.getRecentAlerts)
	protected.GET("/stats/dashboard", h.getDashboardStats)
	protected.GET("/stats/disasters-by-type", h.getDisastersByType)
	protected.GET("/users", h.getUsers)
	protected.GET("/users/:id", h.getUser)
	protected.GET("/realtime/monitor", realtime.StreamHandler(h.hub))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "API endpoint not found",
			"path":    c.Request.URL.Path,
		})
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.started).Seconds(),
		"environment": h.environment,
	})
}
