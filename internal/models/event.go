package models

import "time"

// EventKind names what a seeding tool just committed.
type EventKind string

const (
	EventUserRegistered EventKind = "user.registered"
	EventEntryAdded     EventKind = "catalog.entry_added"
)

// SeedEvent is the payload placed on the seed topic after a commit.
// User events carry the username only.
type SeedEvent struct {
	Kind       EventKind     `json:"kind"`
	Username   string        `json:"username,omitempty"`
	Entry      *CatalogEntry `json:"entry,omitempty"`
	CapturedAt time.Time     `json:"captured_at"`
}

// NewUserEvent builds a registration event without the password.
func NewUserEvent(u User, capturedAt time.Time) SeedEvent {
	return SeedEvent{
		Kind:       EventUserRegistered,
		Username:   u.Username,
		CapturedAt: capturedAt,
	}
}

func NewEntryEvent(e CatalogEntry, capturedAt time.Time) SeedEvent {
	return SeedEvent{
		Kind:       EventEntryAdded,
		Entry:      &e,
		CapturedAt: capturedAt,
	}
}
