package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/eventos-be/internal/apperr"
	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/storage"
)

func TestList_Window(t *testing.T) {
	var got models.EventFilter
	events := &mockEvents{listFunc: func(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
		got = filter
		rows := make([]models.Event, 0, filter.Limit)
		for i := 0; i < filter.Limit; i++ {
			rows = append(rows, models.Event{"id": filter.Offset + i + 1})
		}
		return rows, 25, nil
	}}

	page, err := NewEventService(events).List(context.Background(), ListQuery{Page: "2", Limit: "10"})
	require.NoError(t, err)

	assert.Equal(t, models.EventFilter{Offset: 10, Limit: 10}, got)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Events, 10)
	assert.Equal(t, 11, page.Events[0]["id"])
	assert.Equal(t, 20, page.Events[9]["id"])
}

func TestList_DefaultsAndStatus(t *testing.T) {
	var got models.EventFilter
	events := &mockEvents{listFunc: func(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
		got = filter
		return nil, 0, nil
	}}
	svc := NewEventService(events)

	page, err := svc.List(context.Background(), ListQuery{Status: StatusAll, Page: "abc"})
	require.NoError(t, err)
	assert.Equal(t, models.EventFilter{Offset: 0, Limit: 10}, got)
	assert.NotNil(t, page.Events)
	assert.Equal(t, 0, page.TotalPages)

	_, err = svc.List(context.Background(), ListQuery{Status: "aberto", Page: "3", Limit: "5"})
	require.NoError(t, err)
	assert.Equal(t, models.EventFilter{Status: "aberto", Offset: 10, Limit: 5}, got)
}

func TestList_RejectsNonPositiveWindow(t *testing.T) {
	events := &mockEvents{listFunc: func(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
		t.Fatal("store must not be called")
		return nil, 0, nil
	}}
	svc := NewEventService(events)

	for _, q := range []ListQuery{{Page: "0"}, {Limit: "0"}, {Page: "-1", Limit: "10"}} {
		_, err := svc.List(context.Background(), q)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation), "query %+v", q)
	}
}

func TestList_StoreFailure(t *testing.T) {
	events := &mockEvents{listFunc: func(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
		return nil, 0, errors.New("timeout")
	}}

	_, err := NewEventService(events).List(context.Background(), ListQuery{})

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeQuery, appErr.Code)
	assert.Equal(t, "failed to fetch events", appErr.Message)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestGetAndDelete(t *testing.T) {
	events := &mockEvents{
		getFunc: func(ctx context.Context, id string) (models.Event, error) {
			if id == "1" {
				return models.Event{"id": 1}, nil
			}
			return nil, storage.ErrNotFound
		},
		deleteFunc: func(ctx context.Context, id string) error {
			if id == "boom" {
				return errors.New("permission denied for table eventos")
			}
			return nil
		},
	}
	svc := NewEventService(events)

	ev, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 1, ev["id"])

	_, err = svc.Get(context.Background(), "2")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	require.NoError(t, svc.Delete(context.Background(), "missing"))

	err = svc.Delete(context.Background(), "boom")
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeDelete, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}
