// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package world

import (
	"sort"

	"github.com/samber/oops"
)

// Model holds the static and mutable registries of the simulation: the
// location grid, the actor roster, the prop inventory, and the event log.
//
// The model performs no internal locking. Callers must serialize access as
// described by the engine's turn contract: one actor's full
// read-resolve-apply sequence completes before the next actor's begins.
type Model struct {
	initialized bool
	locations   map[string]*Location
	byCoord     map[Coord]string
	actors      []*Actor
	actorByID   map[string]*Actor
	actorByName map[string]*Actor
	props       []*Prop
	log         *Log
}

// NewModel creates an empty, uninitialized model.
func NewModel() *Model {
	return &Model{
		locations:   map[string]*Location{},
		byCoord:     map[Coord]string{},
		actorByID:   map[string]*Actor{},
		actorByName: map[string]*Actor{},
		log:         NewLog(),
	}
}

// RegisterLocations registers the location grid from an already-parsed
// mapping of name to coordinates. Duplicate coordinates are a configuration
// error the loader must reject before registration; the model does not
// defend against them beyond last-write-wins in the coordinate index.
func (m *Model) RegisterLocations(coords map[string]Coord) error {
	for name, coord := range coords {
		loc, err := NewLocation(name, coord)
		if err != nil {
			return oops.Code(CodeValidation).With("location", name).Wrap(err)
		}
		m.locations[name] = loc
		m.byCoord[coord] = name
	}
	return nil
}

// Initialize marks the location set as loaded. Lookups fail with
// NOT_INITIALIZED before this is called.
func (m *Model) Initialize() error {
	if len(m.locations) == 0 {
		return oops.Code(CodeConfigInvalid).Errorf("cannot initialize world with no locations")
	}
	m.initialized = true
	return nil
}

// Initialized reports whether the location set has been loaded.
func (m *Model) Initialized() bool {
	return m.initialized
}

// RegisterActors adds actors to the roster. Actor ids and names must be
// unique; an actor's initial location, if set, must exist.
func (m *Model) RegisterActors(actors ...*Actor) error {
	for _, a := range actors {
		if _, exists := m.actorByID[a.ID]; exists {
			return oops.Code(CodeConfigInvalid).With("id", a.ID).Errorf("duplicate actor id: %s", a.ID)
		}
		if _, exists := m.actorByName[a.Name]; exists {
			return oops.Code(CodeConfigInvalid).With("name", a.Name).Errorf("duplicate actor name: %s", a.Name)
		}
		if a.Location != "" {
			if _, ok := m.locations[a.Location]; !ok {
				return ErrLocationNotFound(a.Location)
			}
		}
		m.actors = append(m.actors, a)
		m.actorByID[a.ID] = a
		m.actorByName[a.Name] = a
	}
	return nil
}

// RegisterProps adds props to the inventory. A prop's location must exist.
func (m *Model) RegisterProps(props ...*Prop) error {
	for _, p := range props {
		if _, ok := m.locations[p.Location]; !ok {
			return ErrLocationNotFound(p.Location)
		}
		m.props = append(m.props, p)
	}
	return nil
}

// Locations returns all location names in sorted order.
func (m *Model) Locations() ([]string, error) {
	if !m.initialized {
		return nil, ErrNotInitialized("locations")
	}
	names := make([]string, 0, len(m.locations))
	for name := range m.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Coordinates returns the grid coordinates of a location.
func (m *Model) Coordinates(name string) (Coord, error) {
	if !m.initialized {
		return Coord{}, ErrNotInitialized("coordinates")
	}
	loc, ok := m.locations[name]
	if !ok {
		return Coord{}, ErrLocationNotFound(name)
	}
	return loc.Coord, nil
}

// LocationAt returns the location name occupying the given coordinates.
// ok is false when the cell is empty.
func (m *Model) LocationAt(coord Coord) (name string, ok bool, err error) {
	if !m.initialized {
		return "", false, ErrNotInitialized("location_at")
	}
	name, ok = m.byCoord[coord]
	return name, ok, nil
}

// Actors returns a copy of the actor roster in registration order.
func (m *Model) Actors() ([]*Actor, error) {
	if !m.initialized {
		return nil, ErrNotInitialized("actors")
	}
	out := make([]*Actor, len(m.actors))
	copy(out, m.actors)
	return out, nil
}

// ActorByID looks up an actor by id.
func (m *Model) ActorByID(id string) (*Actor, error) {
	if !m.initialized {
		return nil, ErrNotInitialized("actor_by_id")
	}
	a, ok := m.actorByID[id]
	if !ok {
		return nil, ErrActorNotFound(id)
	}
	return a, nil
}

// ActorByName looks up an actor by its external addressing key.
func (m *Model) ActorByName(name string) (*Actor, error) {
	if !m.initialized {
		return nil, ErrNotInitialized("actor_by_name")
	}
	a, ok := m.actorByName[name]
	if !ok {
		return nil, ErrActorNotFound(name)
	}
	return a, nil
}

// PropsAt returns the props present at a location, in registration order.
func (m *Model) PropsAt(location string) ([]*Prop, error) {
	if !m.initialized {
		return nil, ErrNotInitialized("props_at")
	}
	var out []*Prop
	for _, p := range m.props {
		if p.Location == location {
			out = append(out, p)
		}
	}
	return out, nil
}

// MapInfo is the full location listing embedded in view-map events.
type MapInfo struct {
	Locations      map[string]Coord `json:"locations"`
	TotalLocations int              `json:"total_locations"`
}

// MapInfo returns the full location-to-coordinates listing.
func (m *Model) MapInfo() (MapInfo, error) {
	if !m.initialized {
		return MapInfo{}, ErrNotInitialized("map_info")
	}
	locs := make(map[string]Coord, len(m.locations))
	for name, loc := range m.locations {
		locs[name] = loc.Coord
	}
	return MapInfo{Locations: locs, TotalLocations: len(locs)}, nil
}

// Log returns the model's event log.
func (m *Model) Log() *Log {
	return m.log
}
