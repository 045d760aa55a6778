// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package engine

import (
	"github.com/samber/oops"

	"github.com/waystone/waystone/internal/world"
)

// ErrNoActiveActor creates an error for an operation attempted with no
// bound context. This is a caller error.
func ErrNoActiveActor() error {
	return oops.Code(world.CodeNoActiveActor).
		Errorf("no active actor has been set")
}

// ErrActorUnplaced creates an error for an actor with no current location.
func ErrActorUnplaced(actor string) error {
	return oops.Code(world.CodeValidation).
		With("actor", actor).
		Errorf("actor %s has no valid location", actor)
}

// ErrRuleViolation creates an error for an action outside the legal set.
// Callers are expected to re-query legal actions rather than retry blindly.
func ErrRuleViolation(actor string, action Action) error {
	return oops.Code(world.CodeRuleViolation).
		With("actor", actor).
		With("action", action.String()).
		Errorf("action %q is not permitted for %s right now", action, actor)
}

// ErrTarget creates an error for a named target not present or eligible.
func ErrTarget(target string) error {
	return oops.Code(world.CodeTarget).
		With("target", target).
		Errorf("%s is not present at this location", target)
}

// ErrItem creates an error for a prop name not present at the actor's
// location.
func ErrItem(name string) error {
	return oops.Code(world.CodeItem).
		With("prop", name).
		Errorf("there is no %s here", name)
}

// ErrMissingArg creates an error for a required argument absent from the
// request.
func ErrMissingArg(action Action, key string) error {
	return oops.Code(world.CodeValidation).
		With("action", action.String()).
		With("arg", key).
		Errorf("action %q requires argument %q", action, key)
}

// ErrBadDirection creates an error for a direction outside the adjacent
// set.
func ErrBadDirection(direction string) error {
	return oops.Code(world.CodeValidation).
		With("direction", direction).
		Errorf("cannot move %q from here", direction)
}

// ErrDestinationMissing creates an error for an adjacency-table entry with
// no location behind it. The adjacency check makes this unreachable unless
// the direction table and the map drift apart, so it signals engine-level
// corruption rather than caller error.
func ErrDestinationMissing(direction string, coord world.Coord) error {
	return oops.Code(world.CodeEngine).
		With("direction", direction).
		With("coord", coord.String()).
		Errorf("destination %s of move %q does not exist in the world map", coord, direction)
}

// ErrUnknownAction creates an error for an action that resolved as legal
// but has no executor branch. This is a configuration defect, not a user
// input error, and must not be silently swallowed.
func ErrUnknownAction(action Action) error {
	return oops.Code(world.CodeUnknownAction).
		With("action", action.String()).
		Errorf("action handler for %q is not implemented", action)
}
