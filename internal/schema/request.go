// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

// Package schema publishes machine-readable contracts for action
// requests. External decision-making collaborators that produce
// structured output use these to constrain what they emit to whatever is
// actually legal for the active actor right now.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/waystone/waystone/internal/engine"
)

// RequestSchemaID is the $id of the generated request schema.
const RequestSchemaID = "https://waystone.dev/schemas/request.schema.json"

// Generate produces the static JSON Schema for an action request, with
// no per-state constraints applied.
func Generate() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	s := r.Reflect(&engine.Request{})
	s.ID = jsonschema.ID(RequestSchemaID)
	s.Title = "Waystone Action Request"
	s.Description = "Schema for action requests submitted to the executor"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// ForState produces the request schema narrowed to the active actor's
// current situation: the action enum holds only the legal actions, and
// known argument keys get enums drawn from the live resolver (dialogue
// targets, open directions, prop names).
//
// The narrowing is a snapshot. Once the world advances, a previously
// generated schema may admit requests the executor will reject.
func ForState(s *engine.State) ([]byte, error) {
	base, err := Generate()
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(base, &doc); err != nil {
		return nil, fmt.Errorf("failed to reparse schema: %w", err)
	}

	actions, err := s.ActionOptions()
	if err != nil {
		return nil, err
	}
	targets, err := s.ActorOptions()
	if err != nil {
		return nil, err
	}
	directions, err := s.DirectionOptions()
	if err != nil {
		return nil, err
	}
	props, err := s.PropOptions()
	if err != nil {
		return nil, err
	}

	properties, ok := doc["properties"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("generated schema has no properties object")
	}
	actionProp, ok := properties["action"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("generated schema has no action property")
	}

	enum := make([]any, 0, len(actions))
	for _, a := range actions {
		enum = append(enum, a.String())
	}
	actionProp["enum"] = enum

	argProps := map[string]any{
		engine.ArgContent: map[string]any{"type": "string"},
	}
	if len(targets) > 0 || len(props) > 0 {
		// Dialogue partners and props share the target key.
		targetEnum := make([]any, 0, len(targets)+len(props))
		for _, t := range targets {
			targetEnum = append(targetEnum, t)
		}
		for _, p := range props {
			targetEnum = append(targetEnum, p)
		}
		argProps[engine.ArgTarget] = map[string]any{"type": "string", "enum": targetEnum}
	}
	if len(directions) > 0 {
		dirEnum := make([]any, 0, len(directions))
		for _, d := range directions {
			dirEnum = append(dirEnum, d.String())
		}
		argProps[engine.ArgDirection] = map[string]any{"type": "string", "enum": dirEnum}
	}
	properties["args"] = map[string]any{
		"type":                 "object",
		"properties":           argProps,
		"additionalProperties": map[string]any{"type": "string"},
	}

	return json.MarshalIndent(doc, "", "  ")
}
