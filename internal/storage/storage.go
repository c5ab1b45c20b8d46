package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/eventos-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ProfileStore persists the supplementary attributes of an identity.
type ProfileStore interface {
	InsertProfile(ctx context.Context, profile models.UserProfile) error
	GetProfile(ctx context.Context, id string) (models.UserProfile, error)
	UpdateProfile(ctx context.Context, id string, changes models.ProfileChanges) error
	// DeleteProfile succeeds when no row matches.
	DeleteProfile(ctx context.Context, id string) error
}

// EventStore reads and deletes rows of the events collection. Listing is
// ordered by the "data" column, newest first.
type EventStore interface {
	ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)
	// DeleteEvent succeeds when no row matches.
	DeleteEvent(ctx context.Context, id string) error
}

// Store is the full persistence surface used by the services.
type Store interface {
	ProfileStore
	EventStore
	Close()
}
