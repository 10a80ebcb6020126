// Package model defines the record types persisted by the Hearth store and
// the snapshot document exchanged by the backup services.
//
// Records serialize to JSON with snake_case field names; this is the exact
// shape stored in collection rows and embedded in snapshot files, so changes
// here are format changes.
package model

import (
	"encoding/json"
	"time"
)

// Reaction is one author's reaction to a note. A note holds at most one
// reaction per (emoji, author) pair; re-reacting replaces the timestamp.
type Reaction struct {
	Author    string    `json:"author"`
	ReactedAt time.Time `json:"reacted_at"`
}

// Note is a shared household note. Never auto-expires.
type Note struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Author    string                `json:"author"`
	Timestamp time.Time             `json:"timestamp"`
	Type      string                `json:"type"`
	Pinned    bool                  `json:"pinned"`
	Reactions map[string][]Reaction `json:"reactions,omitempty"` // emoji -> reactions
}

// Photo carries its binary payload inline as base64 so a snapshot of the
// store is self-contained. Likes is a toggle set keyed by author: an author
// appears at most once, presence/absence rather than a counter.
type Photo struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Payload    string    `json:"payload"` // base64-encoded image bytes
	Caption    string    `json:"caption"`
	UploadedBy string    `json:"uploaded_by"`
	Timestamp  time.Time `json:"timestamp"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags,omitempty"`
	Likes      []string  `json:"likes,omitempty"`
}

// Chore statuses. CompletedAt is stamped exactly once, on the first
// transition into StatusCompleted, and cleared only if status reverts.
const (
	ChoreStatusPending    = "pending"
	ChoreStatusInProgress = "in_progress"
	ChoreStatusCompleted  = "completed"
)

// Chore is a household task.
type Chore struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	AssignedTo        string     `json:"assigned_to"`
	DueDate           string     `json:"due_date,omitempty"` // YYYY-MM-DD
	Status            string     `json:"status"`
	CreatedBy         string     `json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Recurring         bool       `json:"recurring"`
	RecurringInterval string     `json:"recurring_interval,omitempty"`
}

// Expense is a shared cost. Amounts are integer cents; the store never
// does float arithmetic on money.
type Expense struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	AmountCents  int64    `json:"amount_cents"`
	Category     string   `json:"category"`
	PaidBy       string   `json:"paid_by"`
	SplitBetween []string `json:"split_between"`
	Date         string   `json:"date"` // YYYY-MM-DD
	Description  string   `json:"description,omitempty"`
	Settled      bool     `json:"settled"`
}

// CheckIn is one member's weekly mood entry. Append-only through the store's
// public contract: created, never updated or deleted.
type CheckIn struct {
	ID           string    `json:"id"`
	WeekOf       string    `json:"week_of"` // YYYY-MM-DD, Monday of the week
	Author       string    `json:"author"`
	Mood         int       `json:"mood"`
	StressLevel  int       `json:"stress_level"`
	Satisfaction int       `json:"satisfaction"`
	Highlights   string    `json:"highlights,omitempty"`
	Concerns     string    `json:"concerns,omitempty"`
	Suggestions  string    `json:"suggestions,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// CalendarEvent is a household calendar entry. Start/end are ISO-8601
// strings as supplied by the calendar layer; the store does not reinterpret
// them.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date,omitempty"`
	Type        string    `json:"type"`
	CreatedBy   string    `json:"created_by"`
	Attendees   []string  `json:"attendees,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthStatusID is the well-known id of the singleton AuthStatus record.
const AuthStatusID = "calendar-integration"

// AuthStatus records whether the external calendar integration is currently
// authorized. Exactly one logical instance exists; it is overwritten in
// place, never multiplied.
type AuthStatus struct {
	ID         string    `json:"id"`
	Provider   string    `json:"provider"`
	Authorized bool      `json:"authorized"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Document is an arbitrary named JSON blob in the generic keyed store, for
// features that want document-style persistence without a dedicated
// repository. The wrapper exists so every stored record, documents
// included, carries an id field in its serialized form.
type Document struct {
	ID    string          `json:"id"` // the caller-chosen key
	Value json.RawMessage `json:"value"`
}

// HouseRule is an agreed household rule.
type HouseRule struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	Active      bool      `json:"active"`
}
