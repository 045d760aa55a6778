// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/schema"
	"github.com/waystone/waystone/internal/world"
)

func newSchemaState(t *testing.T) *engine.State {
	t.Helper()

	m := world.NewModel()
	require.NoError(t, m.RegisterLocations(map[string]world.Coord{
		"tavern": {X: 0, Y: 0},
		"square": {X: 0, Y: 1},
	}))
	require.NoError(t, m.Initialize())

	alice, err := world.NewActor("a1", "Alice", "tavern")
	require.NoError(t, err)
	bob, err := world.NewActor("a2", "Bob", "tavern")
	require.NoError(t, err)
	require.NoError(t, m.RegisterActors(alice, bob))

	return engine.NewState(m, nil)
}

func TestGenerate(t *testing.T) {
	data, err := schema.Generate()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, schema.RequestSchemaID, doc["$id"])
}

func TestForState(t *testing.T) {
	s := newSchemaState(t)
	require.NoError(t, s.SetActive("Alice"))

	data, err := schema.ForState(s)
	require.NoError(t, err)

	var doc struct {
		Properties struct {
			Action struct {
				Enum []string `json:"enum"`
			} `json:"action"`
			Args struct {
				Properties map[string]struct {
					Enum []string `json:"enum"`
				} `json:"properties"`
			} `json:"args"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Contains(t, doc.Properties.Action.Enum, "start-dialogue")
	assert.Contains(t, doc.Properties.Action.Enum, "start-move")
	assert.NotContains(t, doc.Properties.Action.Enum, "continue-dialogue")

	assert.Equal(t, []string{"Bob"}, doc.Properties.Args.Properties["target"].Enum)
	assert.Equal(t, []string{"north"}, doc.Properties.Args.Properties["direction"].Enum)
}

func TestForState_NarrowsWhileBusy(t *testing.T) {
	s := newSchemaState(t)
	require.NoError(t, s.SetActive("Alice"))
	actor, err := s.Active()
	require.NoError(t, err)
	actor.BeginActivity(world.StatusTalking, map[string]string{world.ActivityTarget: "Bob"})

	data, err := schema.ForState(s)
	require.NoError(t, err)

	var doc struct {
		Properties struct {
			Action struct {
				Enum []string `json:"enum"`
			} `json:"action"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.ElementsMatch(t, []string{"continue-dialogue", "end-dialogue", "view-map"}, doc.Properties.Action.Enum)
}

func TestForState_RequiresActiveActor(t *testing.T) {
	s := newSchemaState(t)

	_, err := schema.ForState(s)
	assert.Equal(t, world.CodeNoActiveActor, world.ErrorCode(err))
}
