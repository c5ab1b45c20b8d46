package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/hongminglow/eventos-be/internal/apperr"
	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/storage"
)

// StatusAll is the status value that disables the status filter.
const StatusAll = "todos"

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListQuery is the raw listing query as received from the client.
type ListQuery struct {
	Status string
	Page   string
	Limit  string
}

// EventService reads and deletes events.
type EventService struct {
	events storage.EventStore
}

// NewEventService creates the service.
func NewEventService(events storage.EventStore) *EventService {
	return &EventService{events: events}
}

// List returns one page of events, newest first. Unparseable page or limit
// values fall back to the defaults; values below 1 are rejected.
func (s *EventService) List(ctx context.Context, q ListQuery) (models.EventPage, error) {
	page := parseWindow(q.Page, defaultPage)
	limit := parseWindow(q.Limit, defaultLimit)
	if page < 1 || limit < 1 {
		return models.EventPage{}, apperr.Validation("page and limit must be positive integers")
	}

	status := strings.TrimSpace(q.Status)
	if status == StatusAll {
		status = ""
	}

	events, total, err := s.events.ListEvents(ctx, models.EventFilter{
		Status: status,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return models.EventPage{}, apperr.Query("failed to fetch events", err)
	}
	if events == nil {
		events = []models.Event{}
	}

	return models.EventPage{
		Events:     events,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id string) (models.Event, error) {
	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, apperr.Query("failed to fetch event", err)
	}
	return event, nil
}

// Delete removes an event. Deleting a missing id succeeds.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.events.DeleteEvent(ctx, id); err != nil {
		return apperr.Delete(providerMessage(err), err)
	}
	return nil
}

func parseWindow(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
