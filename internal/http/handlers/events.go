package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/eventos-be/internal/http/respond"
	"github.com/hongminglow/eventos-be/internal/service"
)

// EventsHandler serves the event listing under /api/eventos.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs the handler.
func NewEventsHandler(events *service.EventService) *EventsHandler {
	return &EventsHandler{events: events}
}

// Register mounts the events routes once at /api/eventos.
func (h *EventsHandler) Register(r chi.Router) {
	r.Route("/api/eventos", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.events.List(r.Context(), service.ListQuery{
		Status: q.Get("status"),
		Page:   q.Get("page"),
		Limit:  q.Get("limit"),
	})
	if err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

func (h *EventsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, event)
}

func (h *EventsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "event deleted successfully")
}
