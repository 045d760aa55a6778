// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

// Package perception assembles what an actor can observe: a snapshot of
// its immediate surroundings and an incremental view of the event log.
// External decision-making collaborators consume both; the engine itself
// never reads back what perception produces.
package perception

import (
	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/world"
)

// PropView is the observable surface of a prop. Descriptions are only
// revealed through interaction, so the view carries the name alone.
type PropView struct {
	Name string `json:"name"`
}

// Report is a point-in-time observation snapshot for one actor.
type Report struct {
	Actor      string               `json:"actor"`
	Location   string               `json:"location"`
	Coord      world.Coord          `json:"coord"`
	Status     world.ActivityStatus `json:"status"`
	Others     []string             `json:"others,omitempty"`
	Props      []PropView           `json:"props,omitempty"`
	Actions    []engine.Action      `json:"actions"`
	Directions []world.Direction    `json:"directions,omitempty"`
	Background string               `json:"background,omitempty"`
	Memory     []world.MemoryEntry  `json:"memory,omitempty"`
}

// Observe builds a report for the currently active actor. It is a pure
// read: the model, the actor, and the log are left untouched.
func Observe(s *engine.State) (Report, error) {
	actor, err := s.Active()
	if err != nil {
		return Report{}, err
	}
	coord, err := s.Model().Coordinates(actor.Location)
	if err != nil {
		return Report{}, err
	}
	others, err := s.ActorOptions()
	if err != nil {
		return Report{}, err
	}
	propNames, err := s.PropOptions()
	if err != nil {
		return Report{}, err
	}
	actions, err := s.ActionOptions()
	if err != nil {
		return Report{}, err
	}
	directions, err := s.DirectionOptions()
	if err != nil {
		return Report{}, err
	}

	props := make([]PropView, 0, len(propNames))
	for _, name := range propNames {
		props = append(props, PropView{Name: name})
	}

	return Report{
		Actor:      actor.Name,
		Location:   actor.Location,
		Coord:      coord,
		Status:     actor.Status,
		Others:     others,
		Props:      props,
		Actions:    actions,
		Directions: directions,
		Background: actor.Background,
		Memory:     actor.Memory,
	}, nil
}
