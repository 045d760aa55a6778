// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/script"
)

const sampleScript = `
scenario "market-morning";

// Alice greets Bob, then wanders north.
as "Alice" {
	start-dialogue target="Bob";
	continue-dialogue content="Good morning.";
	end-dialogue;
}

as "Bob" {
	rest;
}

as "Alice" {
	start-move;
	continue-move direction="north";
	end-move;
}
`

func TestParse(t *testing.T) {
	s, err := script.Parse(sampleScript)
	require.NoError(t, err)

	assert.Equal(t, "market-morning", s.Name)
	require.Len(t, s.Turns, 3)

	first := s.Turns[0]
	assert.Equal(t, "Alice", first.Actor)
	require.Len(t, first.Steps, 3)
	assert.Equal(t, "start-dialogue", first.Steps[0].Action)
	require.Len(t, first.Steps[0].Args, 1)
	assert.Equal(t, "target", first.Steps[0].Args[0].Key)
	assert.Equal(t, "Bob", first.Steps[0].Args[0].Value)

	assert.Equal(t, "Bob", s.Turns[1].Actor)
	assert.Equal(t, "rest", s.Turns[1].Steps[0].Action)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"missing scenario header", `as "Alice" { rest; }`},
		{"unterminated block", `scenario "x"; as "Alice" { rest;`},
		{"missing semicolon on step", `scenario "x"; as "Alice" { rest }`},
		{"unknown action", `scenario "x"; as "Alice" { teleport; }`},
		{"duplicate argument", `scenario "x"; as "Alice" { start-dialogue target="Bob" target="Cara"; }`},
		{"empty scenario name", `scenario ""; as "Alice" { rest; }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := script.Parse(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestStep_Request(t *testing.T) {
	s, err := script.Parse(sampleScript)
	require.NoError(t, err)

	req := s.Turns[0].Steps[0].Request()
	assert.Equal(t, engine.ActionStartDialogue, req.Action)
	assert.Equal(t, map[string]string{"target": "Bob"}, req.Args)

	bare := s.Turns[1].Steps[0].Request()
	assert.Equal(t, engine.ActionRest, bare.Action)
	assert.Nil(t, bare.Args)
}

func TestParse_LegacyNamesAccepted(t *testing.T) {
	s, err := script.Parse(`scenario "old"; as "Alice" { speak target="Bob"; }`)
	require.NoError(t, err)
	assert.Equal(t, "speak", s.Turns[0].Steps[0].Action)
}
