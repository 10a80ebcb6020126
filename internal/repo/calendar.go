package repo

import (
	"context"
	"time"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// CalendarEvents is the repository for household calendar entries.
type CalendarEvents struct {
	store *store.Store
	now   func() time.Time
}

// NewCalendarEvents creates a calendar events repository.
func NewCalendarEvents(st *store.Store) *CalendarEvents {
	return &CalendarEvents{store: st, now: time.Now}
}

// NewCalendarEvent holds the caller-supplied fields for Create.
type NewCalendarEvent struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Type        string // defaults to "event"
	CreatedBy   string
	Attendees   []string
	Location    string
}

// CalendarEventPatch is a partial update; nil fields are left unchanged.
type CalendarEventPatch struct {
	Title       *string
	Description *string
	StartDate   *string
	EndDate     *string
	Type        *string
	Attendees   *[]string
	Location    *string
}

// List returns all calendar events.
func (r *CalendarEvents) List(ctx context.Context) ([]model.CalendarEvent, error) {
	return listAll[model.CalendarEvent](ctx, r.store, store.CollectionCalendarEvents)
}

// Get returns one event by id.
func (r *CalendarEvents) Get(ctx context.Context, id string) (model.CalendarEvent, error) {
	return getOne[model.CalendarEvent](ctx, r.store, store.CollectionCalendarEvents, id)
}

// Create stamps an id and creation timestamp and persists the event.
func (r *CalendarEvents) Create(ctx context.Context, e NewCalendarEvent) (model.CalendarEvent, error) {
	eventType := e.Type
	if eventType == "" {
		eventType = "event"
	}

	event := model.CalendarEvent{
		ID:          store.NewRecordID(),
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Type:        eventType,
		CreatedBy:   e.CreatedBy,
		Attendees:   e.Attendees,
		Location:    e.Location,
		CreatedAt:   r.now(),
	}
	if err := addOne(ctx, r.store, store.CollectionCalendarEvents, event.ID, event); err != nil {
		return model.CalendarEvent{}, err
	}
	return event, nil
}

// Update merges a patch onto the existing event. Fails with NOT_FOUND if
// the id does not exist.
func (r *CalendarEvents) Update(ctx context.Context, id string, patch CalendarEventPatch) (model.CalendarEvent, error) {
	event, err := r.Get(ctx, id)
	if err != nil {
		return model.CalendarEvent{}, err
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.StartDate != nil {
		event.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		event.EndDate = *patch.EndDate
	}
	if patch.Type != nil {
		event.Type = *patch.Type
	}
	if patch.Attendees != nil {
		event.Attendees = *patch.Attendees
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}

	if err := putOne(ctx, r.store, store.CollectionCalendarEvents, id, event); err != nil {
		return model.CalendarEvent{}, err
	}
	return event, nil
}

// Delete removes an event. Idempotent.
func (r *CalendarEvents) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.CollectionCalendarEvents, id)
}
