package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/anishgrg/disaster-response-server/internal/auth"
	"github.com/anishgrg/disaster-response-server/internal/config"
	"github.com/anishgrg/disaster-response-server/internal/logging"
	"github.com/anishgrg/disaster-response-server/internal/models"
	"github.com/anishgrg/disaster-response-server/internal/repository"
)

type seedUser struct {
	name         string
	email        string
	password     string
	role         models.Role
	organization string
	phone        string
}

var sampleUsers = []seedUser{
	{"Admin User", "admin@nepaldisaster.gov.np", "admin123", models.RoleAdmin, "Department of Disaster Management", "+977-1-1234567"},
	{"Emergency Coordinator", "coordinator@redcross.org.np", "coord123", models.RoleCoordinator, "Nepal Red Cross Society", "+977-1-2345678"},
	{"Field Responder", "responder@army.mil.np", "responder123", models.RoleResponder, "Nepal Army", "+977-1-3456789"},
	{"Observer", "observer@undp.org", "observer123", models.RoleViewer, "UNDP Nepal", "+977-1-4567890"},
}

var sampleDisasters = []models.Disaster{
	{
		Type:        "Flood",
		Location:    "Kathmandu Valley",
		Severity:    models.SeverityHigh,
		Affected:    15000,
		Description: "Heavy monsoon rains cause flooding in Kathmandu Valley affecting multiple districts.",
		ReportedAt:  time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		Type:        "Landslide",
		Location:    "Pokhara Region",
		Severity:    models.SeverityMedium,
		Affected:    3500,
		Description: "Landslide blocks major highway, isolating several villages.",
		ReportedAt:  time.Date(2024, 7, 20, 14, 15, 0, 0, time.UTC),
	},
	{
		Type:        "Earthquake",
		Location:    "Chitwan District",
		Severity:    models.SeverityCritical,
		Affected:    25000,
		Description: "Magnitude 6.2 earthquake strikes Chitwan, damaging infrastructure.",
		ReportedAt:  time.Date(2024, 7, 25, 8, 45, 0, 0, time.UTC),
	},
	{
		Type:        "Drought",
		Location:    "Far Western Region",
		Severity:    models.SeverityMedium,
		Affected:    8000,
		Description: "Prolonged dry spell affects agricultural communities.",
		ReportedAt:  time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	},
	{
		Type:        "Forest Fire",
		Location:    "Makalu Barun National Park",
		Severity:    models.SeverityHigh,
		Affected:    1200,
		Description: "Wildfire threatens biodiversity and local communities.",
		ReportedAt:  time.Date(2024, 3, 18, 16, 20, 0, 0, time.UTC),
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	slog.Info("clearing existing data")
	if err := db.Reset(ctx); err != nil {
		logging.Fatalf("Failed to reset database: %v", err)
	}

	slog.Info("creating sample users")
	users := make([]*models.User, 0, len(sampleUsers))
	for _, su := range sampleUsers {
		hash, err := auth.HashPassword(su.password, cfg.Auth.BcryptCost)
		if err != nil {
			logging.Fatalf("Failed to hash password for %s: %v", su.email, err)
		}

		now := time.Now()
		user := &models.User{
			ID:           uuid.NewString(),
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
			Organization: su.organization,
			Phone:        su.phone,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.CreateUser(ctx, user); err != nil {
			logging.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		users = append(users, user)
		slog.Info("created user", "name", user.Name, "email", user.Email, "role", user.Role)
	}

	slog.Info("creating sample disasters")
	for i := range sampleDisasters {
		d := sampleDisasters[i]
		d.ID = uuid.NewString()
		now := time.Now()
		d.CreatedAt = now
		d.UpdatedAt = now
		if err := db.AddDisaster(ctx, &d); err != nil {
			logging.Fatalf("Failed to create disaster %s: %v", d.Type, err)
		}
		slog.Info("created disaster", "type", d.Type, "location", d.Location)
	}

	coordinator := users[1]
	sampleAlerts := []models.Alert{
		{
			Type:     "Flood Warning",
			Location: "Bagmati River Basin",
			Severity: models.SeverityHigh,
			Status:   models.AlertStatusActive,
			Affected: 12000,
			Message:  "River levels rising, evacuation recommended for low-lying areas.",
		},
		{
			Type:     "Landslide Watch",
			Location: "Pokhara-Baglung Highway",
			Severity: models.SeverityMedium,
			Status:   models.AlertStatusMonitoring,
			Affected: 2000,
			Message:  "Continued rainfall raising landslide risk along highway corridor.",
		},
		{
			Type:     "Heat Advisory",
			Location: "Terai Region",
			Severity: models.SeverityLow,
			Status:   models.AlertStatusAdvisory,
			Affected: 500,
			Message:  "High temperatures expected through the weekend.",
		},
	}

	slog.Info("creating sample alerts")
	for i := range sampleAlerts {
		a := sampleAlerts[i]
		a.ID = uuid.NewString()
		now := time.Now()
		a.IssuedAt = now
		a.CreatedBy = coordinator.ID
		a.CreatedAt = now
		a.UpdatedAt = now
		if err := db.AddAlert(ctx, &a); err != nil {
			logging.Fatalf("Failed to create alert %s: %v", a.Type, err)
		}
		slog.Info("created alert", "type", a.Type, "status", a.Status)
	}

	slog.Info("seed complete", "users", len(users), "disasters", len(sampleDisasters), "alerts", len(sampleAlerts))
}
