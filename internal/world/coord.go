// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

// Package world contains the world model domain types and logic.
package world

import "fmt"

// Coord is a 2-D integer grid position.
type Coord struct {
	X int
	Y int
}

// String returns the coordinate in "(x, y)" form.
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Direction identifies one of the four cardinal grid directions.
type Direction string

// Cardinal directions.
const (
	DirectionNorth Direction = "north"
	DirectionSouth Direction = "south"
	DirectionWest  Direction = "west"
	DirectionEast  Direction = "east"
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// Vector returns the unit grid vector for the direction.
// North is +Y, south is -Y, west is -X, east is +X.
// ok is false for an unrecognized direction.
func (d Direction) Vector() (delta Coord, ok bool) {
	switch d {
	case DirectionNorth:
		return Coord{X: 0, Y: 1}, true
	case DirectionSouth:
		return Coord{X: 0, Y: -1}, true
	case DirectionWest:
		return Coord{X: -1, Y: 0}, true
	case DirectionEast:
		return Coord{X: 1, Y: 0}, true
	default:
		return Coord{}, false
	}
}

// Shift returns the coordinate one step in the given direction.
func (c Coord) Shift(d Direction) (Coord, bool) {
	delta, ok := d.Vector()
	if !ok {
		return Coord{}, false
	}
	return Coord{X: c.X + delta.X, Y: c.Y + delta.Y}, true
}

// Directions returns the cardinal directions in stable probe order.
func Directions() []Direction {
	return []Direction{DirectionNorth, DirectionSouth, DirectionWest, DirectionEast}
}
