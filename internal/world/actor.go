// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package world

// ActivityStatus is an actor's coarse interaction sub-state.
// It gates which actions are legal independent of location.
type ActivityStatus string

// Activity statuses.
const (
	StatusIdle    ActivityStatus = "IDLE"
	StatusTalking ActivityStatus = "TALKING"
	StatusMoving  ActivityStatus = "MOVING"
)

// String returns the string representation of the status.
func (s ActivityStatus) String() string {
	return string(s)
}

// Validate checks that the status is one of the known values.
func (s ActivityStatus) Validate() error {
	switch s {
	case StatusIdle, StatusTalking, StatusMoving:
		return nil
	default:
		return &ValidationError{Field: "activity_status", Message: "unknown status " + string(s)}
	}
}

// Activity data keys used by the action executor.
const (
	ActivityTarget          = "target"
	ActivityLastDestination = "last_destination"
)

// MemoryEntry is a persisted memory fragment attached to an actor at load
// time. The engine never writes these back; they exist so perception can
// surface them to external decision-making collaborators.
type MemoryEntry struct {
	Time    string `json:"time" yaml:"time"`
	Content string `json:"content" yaml:"content"`
}

// Actor is a mutable participant in the simulation. Its identity fields
// are fixed at load time; Location, Status, and Activity are mutated only
// by the action executor while the actor is active.
type Actor struct {
	ID         string
	Name       string
	Location   string // location name; empty only before placement
	Status     ActivityStatus
	Activity   map[string]string
	Background string
	Memory     []MemoryEntry
}

// NewActor creates a validated actor starting idle at the given location.
// location may be empty for an actor placed later.
func NewActor(id, name, location string) (*Actor, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Actor{
		ID:       id,
		Name:     name,
		Location: location,
		Status:   StatusIdle,
		Activity: map[string]string{},
	}, nil
}

// MoveTo updates the actor's physical position.
func (a *Actor) MoveTo(location string) {
	a.Location = location
}

// BeginActivity enters a busy status with fresh activity data.
func (a *Actor) BeginActivity(status ActivityStatus, data map[string]string) {
	a.Status = status
	a.Activity = map[string]string{}
	for k, v := range data {
		a.Activity[k] = v
	}
}

// EndActivity returns the actor to idle and clears activity data.
func (a *Actor) EndActivity() {
	a.Status = StatusIdle
	a.Activity = map[string]string{}
}

// ActivityValue reads a single activity data entry.
func (a *Actor) ActivityValue(key string) (string, bool) {
	v, ok := a.Activity[key]
	return v, ok
}

// SetActivityValue records a single activity data entry, allocating the
// map if the actor has none yet.
func (a *Actor) SetActivityValue(key, value string) {
	if a.Activity == nil {
		a.Activity = map[string]string{}
	}
	a.Activity[key] = value
}
