package repository

import (
	"context"
	"errors"

	"github.com/anishgrg/disaster-response-server/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// TypeStats is one row of the disasters-by-type aggregation.
type TypeStats struct {
	Type          string `json:"type"`
	Count         int64  `json:"count"`
	TotalAffected int64  `json:"totalAffected"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUserByEmail is the only read that includes the password hash;
	// it exists for credential verification at login.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountActiveUsersByRole(ctx context.Context, role models.Role) (int64, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
}

type DisasterRepository interface {
	AddDisaster(ctx context.Context, d *models.Disaster) error
	GetDisasterByID(ctx context.Context, id string) (*models.Disaster, error)
	ListDisasters(ctx context.Context) ([]models.Disaster, error)
	CountDisastersBySeverity(ctx context.Context, severities ...models.Severity) (int64, error)
	TotalAffected(ctx context.Context) (int64, error)
	DisastersByType(ctx context.Context) ([]TypeStats, error)
}

type AlertRepository interface {
	AddAlert(ctx context.Context, a *models.Alert) error
	// ListAlerts returns alerts newest-first with the creator reference
	// populated; limit <= 0 means no limit.
	ListAlerts(ctx context.Context, limit int) ([]models.Alert, error)
}

// Store is the full persistence surface handed to the handlers.
type Store interface {
	UserRepository
	DisasterRepository
	AlertRepository
	Close() error
}
