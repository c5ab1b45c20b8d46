package models

// Event is an opaque row of the events collection. Only "id", "data" and
// "status" carry meaning here.
type Event map[string]any

// EventFilter selects a window of events.
type EventFilter struct {
	// Status is empty when no status filter applies.
	Status string
	Offset int
	Limit  int
}

// EventPage is one page of the event listing.
type EventPage struct {
	Events     []Event `json:"eventos"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPaginas"`
}
