// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package world

// Location is a named cell in the world grid.
// Locations are immutable once registered; the set of locations is fixed
// for the lifetime of a session.
type Location struct {
	Name  string
	Coord Coord
}

// NewLocation creates a validated location.
func NewLocation(name string, coord Coord) (*Location, error) {
	loc := &Location{Name: name, Coord: coord}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}

// Validate checks that the location has a usable name.
func (l *Location) Validate() error {
	return ValidateName(l.Name)
}
