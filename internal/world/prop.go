// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package world

// Prop is a static, location-bound interactable object distinct from
// actors. Props are read-only to the engine for the whole session.
type Prop struct {
	ID          string
	Name        string
	Description string
	Location    string // location name
}

// NewProp creates a validated prop.
func NewProp(id, name, description, location string) (*Prop, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	return &Prop{ID: id, Name: name, Description: description, Location: location}, nil
}
