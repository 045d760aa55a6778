// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

// Package engine provides the per-actor context cursor, the legal-action
// resolver, and the action-application state machine.
package engine

// Action names an invokable action.
type Action string

// Actions understood by the executor.
const (
	ActionStartDialogue    Action = "start-dialogue"
	ActionContinueDialogue Action = "continue-dialogue"
	ActionEndDialogue      Action = "end-dialogue"
	ActionStartMove        Action = "start-move"
	ActionContinueMove     Action = "continue-move"
	ActionEndMove          Action = "end-move"
	ActionTransact         Action = "transact"
	ActionViewMap          Action = "view-map"
	ActionInteractProp     Action = "interact-with-prop"
	ActionStaySilent       Action = "stay-silent"
	ActionRest             Action = "rest"

	// Generic entry-point names used in per-location rule tables. The
	// resolver advertises their explicit start-variants; the executor
	// additionally accepts them through legacyActionRemap.
	ActionSpeak Action = "speak"
	ActionMove  Action = "move"
)

// String returns the string representation of the action.
func (a Action) String() string {
	return string(a)
}

// Request is the executor's input contract: an action name plus a
// string-keyed argument mapping.
type Request struct {
	Action Action            `json:"action"`
	Args   map[string]string `json:"args,omitempty"`
}

// Argument keys used by the executor.
const (
	ArgTarget    = "target"
	ArgContent   = "content"
	ArgDirection = "direction"
)

// legacyActionRemap maps the generic dialogue/movement entry actions to
// their explicit start-variants. This is a compatibility shim applied once
// at the executor boundary: callers replaying old transcripts may still
// submit "speak" or "move" while idle, and those must mean "start" rather
// than "continue". The resolver never advertises the generic names.
func legacyActionRemap(a Action) Action {
	switch a {
	case ActionSpeak:
		return ActionStartDialogue
	case ActionMove:
		return ActionStartMove
	default:
		return a
	}
}

// KnownAction reports whether the name is one the executor understands,
// the legacy generic names included.
func KnownAction(a Action) bool {
	switch a {
	case ActionStartDialogue, ActionContinueDialogue, ActionEndDialogue,
		ActionStartMove, ActionContinueMove, ActionEndMove,
		ActionTransact, ActionViewMap, ActionInteractProp,
		ActionStaySilent, ActionRest,
		ActionSpeak, ActionMove:
		return true
	default:
		return false
	}
}

// defaultBaseActions is the base action list for locations without an
// explicit rule entry.
var defaultBaseActions = []Action{ActionSpeak, ActionMove, ActionStaySilent, ActionViewMap}

// Rules holds the static per-location action table consulted when the
// active actor is idle. Busy statuses (TALKING, MOVING) override the table
// entirely.
type Rules struct {
	byLocation map[string][]Action
}

// NewRules creates a rule table from an already-parsed mapping of location
// name to base action names.
func NewRules(byLocation map[string][]Action) *Rules {
	r := &Rules{byLocation: map[string][]Action{}}
	for loc, actions := range byLocation {
		r.byLocation[loc] = append([]Action(nil), actions...)
	}
	return r
}

// DefaultRules creates a rule table where every location falls back to the
// default base actions.
func DefaultRules() *Rules {
	return NewRules(nil)
}

// ActionsAt returns a copy of the base action list for a location,
// falling back to the defaults for locations without an entry.
func (r *Rules) ActionsAt(location string) []Action {
	base, ok := r.byLocation[location]
	if !ok {
		base = defaultBaseActions
	}
	return append([]Action(nil), base...)
}
