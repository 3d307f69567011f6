package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anishgrg/disaster-response-server/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			organization TEXT,
			phone TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS disasters (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			location TEXT NOT NULL,
			severity TEXT NOT NULL,
			affected INTEGER NOT NULL,
			description TEXT,
			reported_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			location TEXT NOT NULL,
			severity TEXT NOT NULL,
			status TEXT NOT NULL,
			affected INTEGER NOT NULL,
			message TEXT,
			issued_at INTEGER NOT NULL,
			resolved_at INTEGER,
			created_by TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			FOREIGN KEY (created_by) REFERENCES users(id)
		);

		CREATE INDEX IF NOT EXISTS idx_disasters_created_at ON disasters(created_at);
		CREATE INDEX IF NOT EXISTS idx_disasters_type ON disasters(type);
		CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
		CREATE INDEX IF NOT EXISTS idx_alerts_created_by ON alerts(created_by);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Reset wipes all tables. Used by the seed command.
func (s *SQLiteDB) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM alerts; DELETE FROM disasters; DELETE FROM users;`)
	return err
}

func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

// Timestamps are stored as unix nanoseconds.

func (s *SQLiteDB) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, organization, phone, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.Organization, u.Phone,
		boolToInt(u.IsActive), u.CreatedAt.UnixNano(), u.UpdatedAt.UnixNano(),
	)
	if isUniqueViolation(err, "users.email") {
		return ErrDuplicateEmail
	}
	return err
}

const userColumns = `id, name, email, role, organization, phone, is_active, created_at, updated_at`

func (s *SQLiteDB) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	var active int
	var createdAt, updatedAt int64

	err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Organization, &u.Phone, &active, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Role = models.Role(role)
	u.IsActive = active != 0
	u.CreatedAt = time.Unix(0, createdAt)
	u.UpdatedAt = time.Unix(0, updatedAt)
	return &u, nil
}

func (s *SQLiteDB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return s.scanUser(row)
}

func (s *SQLiteDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, organization, phone, is_active, created_at, updated_at
		FROM users WHERE email = ?`, email)

	var u models.User
	var role string
	var active int
	var createdAt, updatedAt int64

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Organization, &u.Phone, &active, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Role = models.Role(role)
	u.IsActive = active != 0
	u.CreatedAt = time.Unix(0, createdAt)
	u.UpdatedAt = time.Unix(0, updatedAt)
	return &u, nil
}

func (s *SQLiteDB) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}

func (s *SQLiteDB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var role string
		var active int
		var createdAt, updatedAt int64

		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Organization, &u.Phone, &active, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		u.Role = models.Role(role)
		u.IsActive = active != 0
		u.CreatedAt = time.Unix(0, createdAt)
		u.UpdatedAt = time.Unix(0, updatedAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteDB) CountActiveUsersByRole(ctx context.Context, role models.Role) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE role = ? AND is_active = 1`, string(role)).Scan(&n)
	return n, err
}

func (s *SQLiteDB) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now().UnixNano(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteDB) AddDisaster(ctx context.Context, d *models.Disaster) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO disasters (id, type, location, severity, affected, description, reported_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Type, d.Location, string(d.Severity), d.Affected, d.Description,
		d.ReportedAt.UnixNano(), d.CreatedAt.UnixNano(), d.UpdatedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteDB) GetDisasterByID(ctx context.Context, id string) (*models.Disaster, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, location, severity, affected, description, reported_at, created_at, updated_at
		FROM disasters WHERE id = ?`, id)

	var d models.Disaster
	var severity string
	var reportedAt, createdAt, updatedAt int64

	err := row.Scan(&d.ID, &d.Type, &d.Location, &severity, &d.Affected, &d.Description, &reportedAt, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	d.Severity = models.Severity(severity)
	d.ReportedAt = time.Unix(0, reportedAt)
	d.CreatedAt = time.Unix(0, createdAt)
	d.UpdatedAt = time.Unix(0, updatedAt)
	return &d, nil
}

func (s *SQLiteDB) ListDisasters(ctx context.Context) ([]models.Disaster, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, location, severity, affected, description, reported_at, created_at, updated_at
		FROM disasters ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disasters []models.Disaster
	for rows.Next() {
		var d models.Disaster
		var severity string
		var reportedAt, createdAt, updatedAt int64

		if err := rows.Scan(&d.ID, &d.Type, &d.Location, &severity, &d.Affected, &d.Description, &reportedAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		d.Severity = models.Severity(severity)
		d.ReportedAt = time.Unix(0, reportedAt)
		d.CreatedAt = time.Unix(0, createdAt)
		d.UpdatedAt = time.Unix(0, updatedAt)
		disasters = append(disasters, d)
	}
	return disasters, rows.Err()
}

func (s *SQLiteDB) CountDisastersBySeverity(ctx context.Context, severities ...models.Severity) (int64, error) {
	if len(severities) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(severities))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(severities))
	for i, sev := range severities {
		args[i] = string(sev)
	}

	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM disasters WHERE severity IN (`+placeholders+`)`, args...).Scan(&n)
	return n, err
}

func (s *SQLiteDB) TotalAffected(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(affected), 0) FROM disasters`).Scan(&total)
	return total, err
}

func (s *SQLiteDB) DisastersByType(ctx context.Context) ([]TypeStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COUNT(1), COALESCE(SUM(affected), 0)
		FROM disasters GROUP BY type ORDER BY COUNT(1) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []TypeStats
	for rows.Next() {
		var ts TypeStats
		if err := rows.Scan(&ts.Type, &ts.Count, &ts.TotalAffected); err != nil {
			return nil, err
		}
		stats = append(stats, ts)
	}
	return stats, rows.Err()
}

func (s *SQLiteDB) AddAlert(ctx context.Context, a *models.Alert) error {
	var resolvedAt sql.NullInt64
	if a.ResolvedAt != nil {
		resolvedAt = sql.NullInt64{Int64: a.ResolvedAt.UnixNano(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, type, location, severity, status, affected, message, issued_at, resolved_at, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Type, a.Location, string(a.Severity), string(a.Status), a.Affected, a.Message,
		a.IssuedAt.UnixNano(), resolvedAt, a.CreatedBy, a.CreatedAt.UnixNano(), a.UpdatedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteDB) ListAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	query := `
		SELECT a.id, a.type, a.location, a.severity, a.status, a.affected, a.message,
		       a.issued_at, a.resolved_at, a.created_by, a.created_at, a.updated_at,
		       u.name, u.email
		FROM alerts a
		LEFT JOIN users u ON u.id = a.created_by
		ORDER BY a.created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var severity, status string
		var issuedAt, createdAt, updatedAt int64
		var resolvedAt sql.NullInt64
		var creatorName, creatorEmail sql.NullString

		if err := rows.Scan(&a.ID, &a.Type, &a.Location, &severity, &status, &a.Affected, &a.Message,
			&issuedAt, &resolvedAt, &a.CreatedBy, &createdAt, &updatedAt,
			&creatorName, &creatorEmail); err != nil {
			return nil, err
		}

		a.Severity = models.Severity(severity)
		a.Status = models.AlertStatus(status)
		a.IssuedAt = time.Unix(0, issuedAt)
		a.CreatedAt = time.Unix(0, createdAt)
		a.UpdatedAt = time.Unix(0, updatedAt)
		if resolvedAt.Valid {
			t := time.Unix(0, resolvedAt.Int64)
			a.ResolvedAt = &t
		}
		if creatorName.Valid {
			a.Creator = &models.UserRef{ID: a.CreatedBy, Name: creatorName.String, Email: creatorEmail.String}
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
