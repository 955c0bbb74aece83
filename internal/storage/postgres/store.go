package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for every HomeFlow resource.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to databaseURL and applies pending migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// FindUserByExternalID fetches a user by identity-provider subject.
func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (models.User, error) {
	const query = `
	SELECT id, external_id, email, display_name, created_at, updated_at
	FROM users
	WHERE external_id = $1;
	`
	row := s.pool.QueryRow(ctx, query, externalID)
	return scanUser(row)
}

// UpsertUser inserts the user or refreshes its profile fields.
func (s *Store) UpsertUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (external_id, email, display_name)
	VALUES ($1, $2, $3)
	ON CONFLICT (external_id) DO UPDATE
	SET email = EXCLUDED.email, display_name = EXCLUDED.display_name, updated_at = NOW()
	RETURNING id, external_id, email, display_name, created_at, updated_at;
	`
	row := s.pool.QueryRow(ctx, query, user.ExternalID, user.Email, user.DisplayName)
	return scanUser(row)
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.ExternalID, &user.Email, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
