// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	subcommands := []string{"run", "validate", "schema"}
	for _, sub := range subcommands {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.Version = "test-version"
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "test-version", "Version output missing version info: %s", output)
}

func TestRootCommand_NoArgs(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	// Root command with no args should show help (no error)
	require.NoError(t, cmd.Execute())
}

const testWorld = `
format_version: "1.0.0"
locations:
  tavern: {x: 0, y: 0}
  square: {x: 0, y: 1}
actors:
  - id: a1
    name: Alice
    location: tavern
  - id: a2
    name: Bob
    location: tavern
`

const testScenario = `
scenario "smoke";
as "Alice" {
	start-dialogue target="Bob";
	end-dialogue;
}
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid world and script", func(t *testing.T) {
		worldPath := writeTestFile(t, "world.yaml", testWorld)
		scriptPath := writeTestFile(t, "scenario.ws", testScenario)

		cmd := NewRootCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"validate", "--world", worldPath, "--script", scriptPath})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "world definition valid")
		assert.Contains(t, buf.String(), `scenario "smoke" valid`)
	})

	t.Run("missing world flag", func(t *testing.T) {
		cmd := NewRootCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"validate"})

		assert.Error(t, cmd.Execute())
	})

	t.Run("schema-invalid world", func(t *testing.T) {
		worldPath := writeTestFile(t, "world.yaml", "locations: {}\n")

		cmd := NewRootCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"validate", "--world", worldPath})

		assert.Error(t, cmd.Execute())
	})
}

func TestRunCommand(t *testing.T) {
	worldPath := writeTestFile(t, "world.yaml", testWorld)
	scriptPath := writeTestFile(t, "scenario.ws", testScenario)

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"run", "--world", worldPath, "--script", scriptPath, "--log-format", "text"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "[Alice]")
	assert.Contains(t, output, "Bob")
	assert.Contains(t, output, "2 events logged")
}

func TestRunCommand_InvalidConfig(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"run"})

	assert.Error(t, cmd.Execute())
}

func TestSchemaCommand(t *testing.T) {
	t.Run("world schema", func(t *testing.T) {
		cmd := NewRootCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"schema", "--type", "world"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "Waystone World Definition")
	})

	t.Run("request schema", func(t *testing.T) {
		cmd := NewRootCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"schema", "--type", "request"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "Waystone Action Request")
	})

	t.Run("unknown type", func(t *testing.T) {
		cmd := NewRootCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"schema", "--type", "bogus"})

		assert.Error(t, cmd.Execute())
	})
}
