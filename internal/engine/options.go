// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package engine

import (
	"github.com/waystone/waystone/internal/world"
)

// ActionOptions computes the set of legally invokable actions for the
// active actor. Busy statuses override the per-location table entirely;
// idle actors get the table's base actions with the generic dialogue and
// movement entries remapped to their explicit start-variants, so starting
// an interaction is always distinct from continuing one.
//
// The computation is side-effect free: calling it twice on unchanged actor
// state yields identical lists.
func (s *State) ActionOptions() ([]Action, error) {
	actor, err := s.Active()
	if err != nil {
		return nil, err
	}
	if actor.Location == "" {
		return nil, ErrActorUnplaced(actor.Name)
	}

	props, err := s.model.PropsAt(actor.Location)
	if err != nil {
		return nil, err
	}

	var options []Action
	switch actor.Status {
	case world.StatusTalking:
		options = []Action{ActionContinueDialogue, ActionEndDialogue, ActionViewMap}
	case world.StatusMoving:
		options = []Action{ActionContinueMove, ActionEndMove, ActionViewMap}
	default:
		for _, a := range s.rules.ActionsAt(actor.Location) {
			switch a {
			case ActionSpeak:
				options = append(options, ActionStartDialogue)
			case ActionMove:
				options = append(options, ActionStartMove)
			default:
				options = append(options, a)
			}
		}
	}

	if len(props) > 0 {
		options = append(options, ActionInteractProp)
	}
	return options, nil
}

// ActorOptions returns the names of every other actor sharing the active
// actor's location, the active actor excluded. These are the valid
// dialogue and transaction targets.
func (s *State) ActorOptions() ([]string, error) {
	actor, err := s.Active()
	if err != nil {
		return nil, err
	}
	if actor.Location == "" {
		return nil, ErrActorUnplaced(actor.Name)
	}

	all, err := s.model.Actors()
	if err != nil {
		return nil, err
	}
	var options []string
	for _, other := range all {
		if other.ID == actor.ID {
			continue
		}
		if other.Location == actor.Location {
			options = append(options, other.Name)
		}
	}
	return options, nil
}

// DestinationOptions returns every location except the active actor's
// current one. This is the coarse "can travel there eventually" list, not
// constrained by adjacency.
func (s *State) DestinationOptions() ([]string, error) {
	actor, err := s.Active()
	if err != nil {
		return nil, err
	}
	if actor.Location == "" {
		return nil, ErrActorUnplaced(actor.Name)
	}

	locations, err := s.model.Locations()
	if err != nil {
		return nil, err
	}
	var options []string
	for _, loc := range locations {
		if loc != actor.Location {
			options = append(options, loc)
		}
	}
	return options, nil
}

// DirectionOptions returns the cardinal directions in which an adjacent
// grid cell holds a registered location.
func (s *State) DirectionOptions() ([]world.Direction, error) {
	actor, err := s.Active()
	if err != nil {
		return nil, err
	}
	if actor.Location == "" {
		return nil, ErrActorUnplaced(actor.Name)
	}

	coord, err := s.model.Coordinates(actor.Location)
	if err != nil {
		return nil, err
	}

	var options []world.Direction
	for _, d := range world.Directions() {
		next, _ := coord.Shift(d)
		if _, ok, err := s.model.LocationAt(next); err != nil {
			return nil, err
		} else if ok {
			options = append(options, d)
		}
	}
	return options, nil
}

// PropOptions returns the names of props present at the active actor's
// location.
func (s *State) PropOptions() ([]string, error) {
	actor, err := s.Active()
	if err != nil {
		return nil, err
	}
	if actor.Location == "" {
		return nil, ErrActorUnplaced(actor.Name)
	}

	props, err := s.model.PropsAt(actor.Location)
	if err != nil {
		return nil, err
	}
	var options []string
	for _, p := range props {
		options = append(options, p.Name)
	}
	return options, nil
}
