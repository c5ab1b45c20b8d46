// Package rest stores rows through the Supabase PostgREST API.
package rest

import (
	"context"
	"fmt"

	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/storage"
	"github.com/hongminglow/eventos-be/internal/supabase"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides PostgREST-backed persistence for profiles and events.
type Store struct {
	client        *supabase.Client
	profilesTable string
	eventsTable   string
}

// NewStore creates a store issuing requests through client.
func NewStore(client *supabase.Client, profilesTable, eventsTable string) *Store {
	return &Store{client: client, profilesTable: profilesTable, eventsTable: eventsTable}
}

// Close is a no-op; the HTTP client holds no dedicated resources.
func (s *Store) Close() {}

// InsertProfile inserts a profile row.
func (s *Store) InsertProfile(ctx context.Context, profile models.UserProfile) error {
	if err := s.client.Insert(ctx, s.profilesTable, []models.UserProfile{profile}); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetProfile fetches one profile by id.
func (s *Store) GetProfile(ctx context.Context, id string) (models.UserProfile, error) {
	var rows []models.UserProfile
	_, err := s.client.Select(ctx, s.profilesTable, supabase.SelectQuery{
		Filter: supabase.Eq("id", id),
		Limit:  1,
	}, &rows)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("select profile: %w", err)
	}
	if len(rows) == 0 {
		return models.UserProfile{}, storage.ErrNotFound
	}
	return rows[0], nil
}

// UpdateProfile patches the non-nil columns of the row with id.
func (s *Store) UpdateProfile(ctx context.Context, id string, changes models.ProfileChanges) error {
	if err := s.client.Update(ctx, s.profilesTable, supabase.Eq("id", id), changes); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// DeleteProfile deletes the row with id.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, s.profilesTable, supabase.Eq("id", id)); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// ListEvents returns one window of events plus the total number matching the filter.
func (s *Store) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	q := supabase.SelectQuery{
		Order:  "data.desc",
		Offset: filter.Offset,
		Limit:  filter.Limit,
		Count:  true,
	}
	if filter.Status != "" {
		q.Filter = supabase.Eq("status", filter.Status)
	}

	events := []models.Event{}
	total, err := s.client.Select(ctx, s.eventsTable, q, &events)
	if err != nil {
		return nil, 0, fmt.Errorf("select events: %w", err)
	}
	return events, total, nil
}

// GetEvent fetches one event by id.
func (s *Store) GetEvent(ctx context.Context, id string) (models.Event, error) {
	var rows []models.Event
	_, err := s.client.Select(ctx, s.eventsTable, supabase.SelectQuery{
		Filter: supabase.Eq("id", id),
		Limit:  1,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("select event: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return rows[0], nil
}

// DeleteEvent deletes the event with id.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, s.eventsTable, supabase.Eq("id", id)); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
