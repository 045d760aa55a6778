// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Event records one accepted action. Events are the sole channel by which
// external observers, including other actors' perception logic, learn what
// happened in the world.
type Event struct {
	ID        ulid.ULID         `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Actor     string            `json:"actor"`
	Action    string            `json:"action"`
	Args      map[string]string `json:"args,omitempty"`

	// Action-specific fields.
	NewLocation     string   `json:"new_location,omitempty"`     // continue-move
	MapInfo         *MapInfo `json:"map_info,omitempty"`         // view-map
	TargetOverride  string   `json:"target_override,omitempty"`  // dialogue actions
	PropID          string   `json:"prop_id,omitempty"`          // interact-with-prop
	PropDescription string   `json:"prop_description,omitempty"` // interact-with-prop
}

// Log is the append-only chronological record of accepted actions.
// Events appear in exactly the order they were accepted and are never
// mutated or removed. Like the rest of the model, the log relies on the
// caller's turn serialization rather than internal locking. Consumers that
// scan incrementally track their own read cursor via Since.
type Log struct {
	events []Event
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append stamps the event with an ID and timestamp (when unset) and
// appends it. Returns the stored event.
func (l *Log) Append(e Event) Event {
	if e.ID.IsZero() {
		e.ID = ulid.Make()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	l.events = append(l.events, e)
	return e
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	return len(l.events)
}

// Events returns a copy of the full log.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Since returns a copy of the events recorded at or after the given
// cursor position. A cursor equal to Len() yields an empty slice; callers
// advance their cursor to Len() after each scan.
func (l *Log) Since(cursor int) []Event {
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(l.events) {
		return nil
	}
	out := make([]Event, len(l.events)-cursor)
	copy(out, l.events[cursor:])
	return out
}
