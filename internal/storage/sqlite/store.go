package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/storage"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so stored timestamps order lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store is an embedded SQLite implementation of storage.Store for local
// development and tests.
type Store struct {
	conn *sql.DB
	now  func() time.Time
}

// NewStore opens dsn and runs migrations. dsn is a file path, a file: URI,
// ":memory:" or any of those prefixed with "sqlite:".
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite", withForeignKeys(strings.TrimPrefix(dsn, "sqlite:")))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}

	s := &Store{conn: conn, now: func() time.Time { return time.Now().UTC() }}
	if err := s.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// withForeignKeys asks the driver to enable foreign keys on every connection it opens.
func withForeignKeys(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Close releases the database handle.
func (s *Store) Close() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			external_id TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			display_name TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT,
			reminder_date TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT 'medium',
			reminder_type TEXT NOT NULL DEFAULT 'reminder',
			is_completed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS reminders_user_date_idx ON reminders (user_id, reminder_date)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT,
			priority TEXT NOT NULL DEFAULT 'medium',
			due_date TEXT,
			is_completed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS todos_user_idx ON todos (user_id)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			amount TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'Other',
			expense_date TEXT NOT NULL,
			description TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS expenses_user_date_idx ON expenses (user_id, expense_date)`,
		`CREATE TABLE IF NOT EXISTS budget_settings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			monthly_budget TEXT NOT NULL DEFAULT '0.00',
			budget_month TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (user_id, budget_month)
		)`,
	}

	for _, m := range migrations {
		if _, err := s.conn.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(timeLayout)
}

// FindUserByExternalID fetches a user by identity-provider subject.
func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (models.User, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, external_id, email, display_name, created_at, updated_at
		FROM users WHERE external_id = ?`, externalID)
	return scanUser(row)
}

// UpsertUser inserts the user or refreshes its profile fields.
func (s *Store) UpsertUser(ctx context.Context, user models.User) (models.User, error) {
	now := s.stamp()
	row := s.conn.QueryRowContext(ctx, `
		INSERT INTO users (external_id, email, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (external_id) DO UPDATE
		SET email = excluded.email, display_name = excluded.display_name, updated_at = excluded.updated_at
		RETURNING id, external_id, email, display_name, created_at, updated_at`,
		user.ExternalID, user.Email, user.DisplayName, now, now)
	return scanUser(row)
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var created, updated string
	if err := row.Scan(&user.ID, &user.ExternalID, &user.Email, &user.DisplayName, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	var err error
	if user.CreatedAt, err = parseTime(created); err != nil {
		return models.User{}, err
	}
	if user.UpdatedAt, err = parseTime(updated); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseDate(s string) (models.Date, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return models.Date{}, fmt.Errorf("parse stored date %q: %w", s, err)
	}
	return models.Date{Time: t}, nil
}
