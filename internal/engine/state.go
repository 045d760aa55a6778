// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package engine

import (
	"github.com/waystone/waystone/internal/world"
)

// State is the interaction surface over a world model: it carries the
// active-actor binding and answers resolver queries and action requests
// for whoever is bound.
//
// The binding is a single mutable cursor. Callers orchestrating multiple
// actors must rebind before each actor's turn and must never have two
// actors active concurrently on the same model; the engine performs no
// internal locking.
type State struct {
	model  *world.Model
	rules  *Rules
	active string // actor name; empty until SetActive
}

// NewState creates a State over the given model. A nil rules table means
// every location uses the default base actions.
func NewState(model *world.Model, rules *Rules) *State {
	if rules == nil {
		rules = DefaultRules()
	}
	return &State{model: model, rules: rules}
}

// Model returns the underlying world model.
func (s *State) Model() *world.Model {
	return s.model
}

// SetActive binds the context cursor to the named actor. The name is
// resolved through the world model; unknown names fail with NOT_FOUND and
// leave the previous binding intact.
func (s *State) SetActive(name string) error {
	if _, err := s.model.ActorByName(name); err != nil {
		return err
	}
	s.active = name
	return nil
}

// Active returns the bound actor, or NO_ACTIVE_ACTOR if the cursor was
// never set.
func (s *State) Active() (*world.Actor, error) {
	if s.active == "" {
		return nil, ErrNoActiveActor()
	}
	return s.model.ActorByName(s.active)
}
