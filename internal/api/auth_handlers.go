package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anishgrg/disaster-response-server/internal/auth"
	"github.com/anishgrg/disaster-response-server/internal/models"
	"github.com/anishgrg/disaster-response-server/internal/repository"
)

type registerRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	role := models.RoleViewer
	if req.Role != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok {
			badRequest(c, "Invalid role: "+req.Role)
			return
		}
		role = parsed
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Best-effort pre-check; the unique index is the authority under
	// concurrent registrations.
	exists, err := h.store.EmailExists(c.Request.Context(), email)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if exists {
		badRequest(c, "User already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyPassword) {
			badRequest(c, "Password is required")
			return
		}
		h.serverError(c, err)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Organization: req.Organization,
		Phone:        req.Phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			badRequest(c, "User already exists")
			return
		}
		h.serverError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.store.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			unauthorized(c, "Invalid credentials")
			return
		}
		h.serverError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		unauthorized(c, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

func (h *Handler) me(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		unauthorized(c, "User not authenticated")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
