package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Options selects the tables and whether to create them on startup.
type Options struct {
	ProfilesTable string
	EventsTable   string
	AutoMigrate   bool
}

// Store provides Postgres-backed persistence for profiles and events, talking
// to the project database directly instead of through PostgREST.
type Store struct {
	pool     *pgxpool.Pool
	profiles string
	events   string
}

// NewStore connects to databaseURL and optionally runs migrations.
func NewStore(ctx context.Context, databaseURL string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{
		pool:     pool,
		profiles: pgx.Identifier{opts.ProfilesTable}.Sanitize(),
		events:   pgx.Identifier{opts.EventsTable}.Sanitize(),
	}
	if opts.AutoMigrate {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + s.profiles + ` (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS ` + s.events + ` (
			id BIGSERIAL PRIMARY KEY,
			data TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			status TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// InsertProfile inserts a profile row.
func (s *Store) InsertProfile(ctx context.Context, profile models.UserProfile) error {
	query := `INSERT INTO ` + s.profiles + ` (id, email, name, phone, role) VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.pool.Exec(ctx, query, profile.ID, profile.Email, profile.Name, profile.Phone, profile.Role); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetProfile fetches one profile by id.
func (s *Store) GetProfile(ctx context.Context, id string) (models.UserProfile, error) {
	query := `SELECT id, email, name, phone, role FROM ` + s.profiles + ` WHERE id = $1`
	var p models.UserProfile
	err := s.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Email, &p.Name, &p.Phone, &p.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.UserProfile{}, storage.ErrNotFound
		}
		return models.UserProfile{}, fmt.Errorf("select profile: %w", err)
	}
	return p, nil
}

// UpdateProfile patches the non-nil columns of the row with id. Matching no
// row is not an error.
func (s *Store) UpdateProfile(ctx context.Context, id string, changes models.ProfileChanges) error {
	query := `UPDATE ` + s.profiles + ` SET name = COALESCE($2, name), phone = COALESCE($3, phone), role = COALESCE($4, role) WHERE id = $1`
	if _, err := s.pool.Exec(ctx, query, id, changes.Name, changes.Phone, changes.Role); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// DeleteProfile deletes the row with id.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM `+s.profiles+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// ListEvents returns one window of events, newest first, plus the total
// number matching the filter.
func (s *Store) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	const where = ` WHERE ($1 = '' OR status = $1)`

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM `+s.events+where, filter.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := `SELECT * FROM ` + s.events + where + ` ORDER BY data DESC LIMIT $2 OFFSET $3`
	rows, err := s.pool.Query(ctx, query, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select events: %w", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, 0, fmt.Errorf("scan events: %w", err)
	}

	events := make([]models.Event, 0, len(maps))
	for _, m := range maps {
		events = append(events, models.Event(m))
	}
	return events, total, nil
}

// GetEvent fetches one event by id.
func (s *Store) GetEvent(ctx context.Context, id string) (models.Event, error) {
	rows, err := s.pool.Query(ctx, `SELECT * FROM `+s.events+` WHERE id::text = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("select event: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return models.Event(m), nil
}

// DeleteEvent deletes the event with id.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM `+s.events+` WHERE id::text = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
