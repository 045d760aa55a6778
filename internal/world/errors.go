// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package world

import (
	"github.com/samber/oops"
)

// Error codes shared across the engine. Callers branch on the code rather
// than on error message text.
const (
	CodeNotInitialized = "NOT_INITIALIZED"
	CodeNotFound       = "NOT_FOUND"
	CodeNoActiveActor  = "NO_ACTIVE_ACTOR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeRuleViolation  = "RULE_VIOLATION"
	CodeTarget         = "TARGET_ERROR"
	CodeItem           = "ITEM_ERROR"
	CodeUnknownAction  = "UNKNOWN_ACTION"
	CodeEngine         = "ENGINE_ERROR"
	CodeConfigInvalid  = "CONFIG_INVALID"
)

// ErrNotInitialized creates an error for querying the model before load.
// This is fatal at the boundary and never recovered internally.
func ErrNotInitialized(operation string) error {
	return oops.Code(CodeNotInitialized).
		With("operation", operation).
		Errorf("world model is not initialized")
}

// ErrLocationNotFound creates an error for an unknown location name.
func ErrLocationNotFound(name string) error {
	return oops.Code(CodeNotFound).
		With("kind", "location").
		With("name", name).
		Errorf("location not found: %s", name)
}

// ErrActorNotFound creates an error for an unknown actor id or name.
func ErrActorNotFound(key string) error {
	return oops.Code(CodeNotFound).
		With("kind", "actor").
		With("key", key).
		Errorf("actor not found: %s", key)
}

// ErrorCode extracts the error code from an oops error.
// Returns the empty string for nil errors, non-oops errors, and oops
// errors carrying no code or a non-string code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}
