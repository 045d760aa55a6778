// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/waystone/waystone/internal/world"
)

var tracer = otel.Tracer("waystone/engine")

// Apply validates a submitted action against the legal set for the active
// actor, performs the associated state transition, appends exactly one
// event to the world log, and returns human-readable feedback.
//
// Validation happens before any mutation: a failed call leaves the model,
// the actor, and the log unchanged. continue-dialogue is the only branch
// whose feedback is intentionally empty.
func (s *State) Apply(ctx context.Context, req Request) (feedback string, err error) {
	actor, err := s.Active()
	if err != nil {
		return "", err
	}

	ctx, span := tracer.Start(ctx, "engine.apply",
		trace.WithAttributes(
			attribute.String("action.name", req.Action.String()),
			attribute.String("actor.name", actor.Name),
		),
	)
	start := time.Now()
	defer func() {
		status := StatusAccepted
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			status = world.ErrorCode(err)
			if status == "" {
				status = StatusError
			}
		}
		RecordActionApplication(req.Action.String(), status)
		RecordActionDuration(req.Action.String(), time.Since(start))
		span.End()
	}()

	allowed, err := s.ActionOptions()
	if err != nil {
		return "", err
	}

	action := req.Action
	if !slices.Contains(allowed, action) {
		// One-time compatibility shim, see legacyActionRemap.
		action = legacyActionRemap(action)
		if !slices.Contains(allowed, action) {
			return "", ErrRuleViolation(actor.Name, req.Action)
		}
	}

	// Work on a copy so injected context never leaks back into the
	// caller's argument map.
	args := make(map[string]string, len(req.Args))
	for k, v := range req.Args {
		args[k] = v
	}

	switch action {
	case ActionStartDialogue:
		return s.applyStartDialogue(actor, args)
	case ActionContinueDialogue:
		return s.applyContinueDialogue(actor, args)
	case ActionEndDialogue:
		return s.applyEndDialogue(actor, args)
	case ActionStartMove:
		return s.applyStartMove(actor, args)
	case ActionContinueMove:
		return s.applyContinueMove(actor, args)
	case ActionEndMove:
		return s.applyEndMove(actor, args)
	case ActionTransact:
		return s.applyTransact(actor, args)
	case ActionViewMap:
		return s.applyViewMap(actor, args)
	case ActionInteractProp:
		return s.applyInteractProp(actor, args)
	case ActionStaySilent, ActionRest:
		return s.applyIdleAction(actor, action, args)
	default:
		// An action the resolver advertises but the executor cannot
		// perform is a configuration defect, not a user input error.
		slog.ErrorContext(ctx, "action resolved as legal but has no handler",
			"action", action.String(),
			"actor", actor.Name,
		)
		return "", ErrUnknownAction(action)
	}
}

func (s *State) applyStartDialogue(actor *world.Actor, args map[string]string) (string, error) {
	target, ok := args[ArgTarget]
	if !ok || target == "" {
		return "", ErrMissingArg(ActionStartDialogue, ArgTarget)
	}
	others, err := s.ActorOptions()
	if err != nil {
		return "", err
	}
	if !slices.Contains(others, target) {
		return "", ErrTarget(target)
	}

	actor.BeginActivity(world.StatusTalking, map[string]string{world.ActivityTarget: target})
	s.model.Log().Append(world.Event{
		Actor:  actor.Name,
		Action: ActionStartDialogue.String(),
		Args:   args,
	})
	return fmt.Sprintf("You are now in dialogue with %s. Use continue-dialogue to speak and end-dialogue when you are done.", target), nil
}

func (s *State) applyContinueDialogue(actor *world.Actor, args map[string]string) (string, error) {
	// The dialogue partner comes from activity data so perception logic
	// can find it even when the caller's args omit the target.
	target, _ := actor.ActivityValue(world.ActivityTarget)
	if target != "" {
		if _, present := args[ArgTarget]; !present {
			args[ArgTarget] = target
		}
	}
	s.model.Log().Append(world.Event{
		Actor:          actor.Name,
		Action:         ActionContinueDialogue.String(),
		Args:           args,
		TargetOverride: target,
	})
	// Transparent action: no system-authored response.
	return "", nil
}

func (s *State) applyEndDialogue(actor *world.Actor, args map[string]string) (string, error) {
	target, _ := actor.ActivityValue(world.ActivityTarget)
	if target != "" {
		if _, present := args[ArgTarget]; !present {
			args[ArgTarget] = target
		}
	}
	actor.EndActivity()
	s.model.Log().Append(world.Event{
		Actor:          actor.Name,
		Action:         ActionEndDialogue.String(),
		Args:           args,
		TargetOverride: target,
	})
	if target == "" {
		return "You ended the dialogue.", nil
	}
	return fmt.Sprintf("You ended the dialogue with %s.", target), nil
}

func (s *State) applyStartMove(actor *world.Actor, args map[string]string) (string, error) {
	actor.BeginActivity(world.StatusMoving, nil)
	s.model.Log().Append(world.Event{
		Actor:  actor.Name,
		Action: ActionStartMove.String(),
		Args:   args,
	})
	return "You are now in movement mode. Pick a direction (north/south/west/east) with continue-move.", nil
}

func (s *State) applyContinueMove(actor *world.Actor, args map[string]string) (string, error) {
	raw, ok := args[ArgDirection]
	if !ok || raw == "" {
		return "", ErrMissingArg(ActionContinueMove, ArgDirection)
	}
	direction := world.Direction(raw)

	available, err := s.DirectionOptions()
	if err != nil {
		return "", err
	}
	if !slices.Contains(available, direction) {
		return "", ErrBadDirection(raw)
	}

	coord, err := s.model.Coordinates(actor.Location)
	if err != nil {
		return "", err
	}
	next, _ := coord.Shift(direction)
	dest, found, err := s.model.LocationAt(next)
	if err != nil {
		return "", err
	}
	if !found {
		// Unreachable while the direction table and the map agree, but
		// never trust them to stay consistent.
		return "", ErrDestinationMissing(raw, next)
	}

	actor.MoveTo(dest)
	actor.SetActivityValue(world.ActivityLastDestination, dest)
	s.model.Log().Append(world.Event{
		Actor:       actor.Name,
		Action:      ActionContinueMove.String(),
		Args:        args,
		NewLocation: dest,
	})
	return fmt.Sprintf("You moved %s and arrived at %s.", direction, dest), nil
}

func (s *State) applyEndMove(actor *world.Actor, args map[string]string) (string, error) {
	final, ok := actor.ActivityValue(world.ActivityLastDestination)
	if !ok {
		final = actor.Location
	}
	actor.EndActivity()
	s.model.Log().Append(world.Event{
		Actor:  actor.Name,
		Action: ActionEndMove.String(),
		Args:   args,
	})
	return fmt.Sprintf("You stopped moving. You are now at %s.", final), nil
}

func (s *State) applyTransact(actor *world.Actor, args map[string]string) (string, error) {
	target, ok := args[ArgTarget]
	if !ok || target == "" {
		return "", ErrMissingArg(ActionTransact, ArgTarget)
	}
	others, err := s.ActorOptions()
	if err != nil {
		return "", err
	}
	if !slices.Contains(others, target) {
		return "", ErrTarget(target)
	}

	s.model.Log().Append(world.Event{
		Actor:  actor.Name,
		Action: ActionTransact.String(),
		Args:   args,
	})
	return fmt.Sprintf("You opened a transaction with %s.", target), nil
}

func (s *State) applyViewMap(actor *world.Actor, args map[string]string) (string, error) {
	info, err := s.model.MapInfo()
	if err != nil {
		return "", err
	}

	s.model.Log().Append(world.Event{
		Actor:   actor.Name,
		Action:  ActionViewMap.String(),
		Args:    args,
		MapInfo: &info,
	})

	names := make([]string, 0, len(info.Locations))
	for name := range info.Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, info.Locations[name]))
	}
	return "Known locations: " + strings.Join(parts, ", "), nil
}

func (s *State) applyInteractProp(actor *world.Actor, args map[string]string) (string, error) {
	name, ok := args[ArgTarget]
	if !ok || name == "" {
		return "", ErrMissingArg(ActionInteractProp, ArgTarget)
	}
	props, err := s.model.PropsAt(actor.Location)
	if err != nil {
		return "", err
	}
	var prop *world.Prop
	for _, p := range props {
		if p.Name == name {
			prop = p
			break
		}
	}
	if prop == nil {
		return "", ErrItem(name)
	}

	s.model.Log().Append(world.Event{
		Actor:           actor.Name,
		Action:          ActionInteractProp.String(),
		Args:            args,
		PropID:          prop.ID,
		PropDescription: prop.Description,
	})
	return prop.Description, nil
}

func (s *State) applyIdleAction(actor *world.Actor, action Action, args map[string]string) (string, error) {
	s.model.Log().Append(world.Event{
		Actor:  actor.Name,
		Action: action.String(),
		Args:   args,
	})
	switch action {
	case ActionRest:
		return "You rest for a while.", nil
	default:
		return "You quietly observe your surroundings.", nil
	}
}
