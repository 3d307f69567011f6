package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anishgrg/disaster-response-server/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	return db
}

func testUser(email string, role models.Role, active bool, createdAt time.Time) *models.User {
	return &models.User{
		ID:           "user_" + email,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		Role:         role,
		Organization: "Test Org",
		Phone:        "+977-1-0000000",
		IsActive:     active,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestSQLiteDB_CreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	u := testUser("admin@example.com", models.RoleAdmin, true, time.Now())

	if err := db.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := db.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if got.Email != "admin@example.com" {
		t.Errorf("expected email admin@example.com, got %s", got.Email)
	}
	if got.PasswordHash != "" {
		t.Error("GetUserByID must not return the password hash")
	}

	byEmail, err := db.GetUserByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.PasswordHash == "" {
		t.Error("GetUserByEmail must return the password hash for credential checks")
	}
}

func TestSQLiteDB_GetUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetUserByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteDB_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	first := testUser("dup@example.com", models.RoleViewer, true, time.Now())
	if err := db.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	second := testUser("dup@example.com", models.RoleViewer, true, time.Now())
	second.ID = "user_other"
	err := db.CreateUser(ctx, second)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	exists, err := db.EmailExists(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if !exists {
		t.Error("expected EmailExists true")
	}
}

func TestSQLiteDB_CountActiveUsersByRole(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	db.CreateUser(ctx, testUser("r1@example.com", models.RoleResponder, true, time.Now()))
	db.CreateUser(ctx, testUser("r2@example.com", models.RoleResponder, true, time.Now()))
	db.CreateUser(ctx, testUser("r3@example.com", models.RoleResponder, false, time.Now()))
	db.CreateUser(ctx, testUser("v1@example.com", models.RoleViewer, true, time.Now()))

	n, err := db.CountActiveUsersByRole(ctx, models.RoleResponder)
	if err != nil {
		t.Fatalf("CountActiveUsersByRole failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 active responders, got %d", n)
	}
}

func TestSQLiteDB_UpdateUserPassword(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	u := testUser("pw@example.com", models.RoleViewer, true, time.Now())
	if err := db.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := db.UpdateUserPassword(ctx, u.ID, "$2a$10$newhash"); err != nil {
		t.Fatalf("UpdateUserPassword failed: %v", err)
	}

	got, err := db.GetUserByEmail(ctx, "pw@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.PasswordHash != "$2a$10$newhash" {
		t.Errorf("expected updated hash, got %s", got.PasswordHash)
	}

	if err := db.UpdateUserPassword(ctx, "ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestSQLiteDB_AddAndGetDisaster(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	d := &models.Disaster{
		ID:          "dis_1",
		Type:        "Flood",
		Location:    "Kathmandu Valley",
		Severity:    models.SeverityHigh,
		Affected:    15000,
		Description: "Monsoon flooding",
		ReportedAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := db.AddDisaster(ctx, d); err != nil {
		t.Fatalf("AddDisaster failed: %v", err)
	}

	got, err := db.GetDisasterByID(ctx, "dis_1")
	if err != nil {
		t.Fatalf("GetDisasterByID failed: %v", err)
	}
	if got.Location != "Kathmandu Valley" {
		t.Errorf("expected location 'Kathmandu Valley', got %s", got.Location)
	}
	if got.Severity != models.SeverityHigh {
		t.Errorf("expected severity High, got %s", got.Severity)
	}

	_, err = db.GetDisasterByID(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteDB_ListDisastersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		db.AddDisaster(ctx, &models.Disaster{
			ID:         fmt.Sprintf("dis_%d", i),
			Type:       "Flood",
			Location:   "Test",
			Severity:   models.SeverityLow,
			Affected:   int64(i),
			ReportedAt: ts,
			CreatedAt:  ts,
			UpdatedAt:  ts,
		})
	}

	disasters, err := db.ListDisasters(ctx)
	if err != nil {
		t.Fatalf("ListDisasters failed: %v", err)
	}
	if len(disasters) != 3 {
		t.Fatalf("expected 3 disasters, got %d", len(disasters))
	}
	if disasters[0].ID != "dis_2" {
		t.Errorf("expected newest first, got %s", disasters[0].ID)
	}
}

func TestSQLiteDB_StatsOnEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	total, err := db.TotalAffected(ctx)
	if err != nil {
		t.Fatalf("TotalAffected failed: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0 total affected on empty store, got %d", total)
	}

	count, err := db.CountDisastersBySeverity(ctx, models.SeverityCritical, models.SeverityHigh, models.SeverityMedium)
	if err != nil {
		t.Fatalf("CountDisastersBySeverity failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 active disasters on empty store, got %d", count)
	}

	stats, err := db.DisastersByType(ctx)
	if err != nil {
		t.Fatalf("DisastersByType failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("expected no type stats on empty store, got %d", len(stats))
	}
}

func TestSQLiteDB_DisastersByTypeOrdering(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	add := func(id, typ string, affected int64) {
		db.AddDisaster(ctx, &models.Disaster{
			ID: id, Type: typ, Location: "x", Severity: models.SeverityLow,
			Affected: affected, ReportedAt: now, CreatedAt: now, UpdatedAt: now,
		})
	}
	add("d1", "Flood", 100)
	add("d2", "Flood", 200)
	add("d3", "Flood", 50)
	add("d4", "Earthquake", 1000)
	add("d5", "Earthquake", 500)
	add("d6", "Drought", 10)

	stats, err := db.DisastersByType(ctx)
	if err != nil {
		t.Fatalf("DisastersByType failed: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 types, got %d", len(stats))
	}
	if stats[0].Type != "Flood" || stats[0].Count != 3 || stats[0].TotalAffected != 350 {
		t.Errorf("unexpected first row: %+v", stats[0])
	}
	if stats[1].Type != "Earthquake" || stats[1].TotalAffected != 1500 {
		t.Errorf("unexpected second row: %+v", stats[1])
	}

	total, err := db.TotalAffected(ctx)
	if err != nil {
		t.Fatalf("TotalAffected failed: %v", err)
	}
	if total != 1860 {
		t.Errorf("expected total affected 1860, got %d", total)
	}
}

func TestSQLiteDB_ListAlertsLimitOrderAndCreator(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	creator := testUser("coord@example.com", models.RoleCoordinator, true, time.Now())
	if err := db.CreateUser(ctx, creator); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	base := time.Now()
	for i := 0; i < 12; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		err := db.AddAlert(ctx, &models.Alert{
			ID:        fmt.Sprintf("alert_%d", i),
			Type:      "Flood Warning",
			Location:  "Test",
			Severity:  models.SeverityHigh,
			Status:    models.AlertStatusActive,
			Affected:  int64(i),
			Message:   "test",
			IssuedAt:  ts,
			CreatedBy: creator.ID,
			CreatedAt: ts,
			UpdatedAt: ts,
		})
		if err != nil {
			t.Fatalf("AddAlert failed: %v", err)
		}
	}

	alerts, err := db.ListAlerts(ctx, 10)
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(alerts) != 10 {
		t.Fatalf("expected 10 alerts, got %d", len(alerts))
	}
	if alerts[0].ID != "alert_11" {
		t.Errorf("expected newest alert first, got %s", alerts[0].ID)
	}
	if alerts[0].Creator == nil || alerts[0].Creator.Email != "coord@example.com" {
		t.Errorf("expected creator reference populated, got %+v", alerts[0].Creator)
	}

	all, err := db.ListAlerts(ctx, 0)
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(all) != 12 {
		t.Errorf("expected 12 alerts without limit, got %d", len(all))
	}
}
