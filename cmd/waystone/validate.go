// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waystone/waystone/internal/loader"
	"github.com/waystone/waystone/internal/script"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	var worldFile, scriptFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a world definition and optional scenario script",
		Long: `Validates a world definition against the JSON Schema and builds it
fully, reporting structural defects (duplicate coordinates, unknown
locations, bad action names) without running anything.
Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines to catch definition errors early:
  waystone validate --world world.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, worldFile, scriptFile)
		},
	}

	cmd.Flags().StringVar(&worldFile, "world", "", "world definition file (YAML)")
	cmd.Flags().StringVar(&scriptFile, "script", "", "scenario script file (optional)")

	return cmd
}

func runValidate(cmd *cobra.Command, worldFile, scriptFile string) error {
	if worldFile == "" {
		return fmt.Errorf("world is required")
	}

	raw, err := os.ReadFile(worldFile)
	if err != nil {
		return fmt.Errorf("cannot read world definition: %w", err)
	}
	if err := loader.ValidateSchema(raw); err != nil {
		return fmt.Errorf("schema validation failed: %s", loader.FormatSchemaError(err))
	}

	cfg, err := loader.Load(worldFile, nil)
	if err != nil {
		return err
	}
	if _, _, err := loader.Build(cfg); err != nil {
		return err
	}
	cmd.Printf("world definition valid: %d locations, %d actors, %d props\n",
		len(cfg.Locations), len(cfg.Actors), len(cfg.Props))

	if scriptFile != "" {
		text, err := os.ReadFile(scriptFile)
		if err != nil {
			return fmt.Errorf("cannot read scenario script: %w", err)
		}
		scenario, err := script.Parse(string(text))
		if err != nil {
			return err
		}
		cmd.Printf("scenario %q valid: %d turn blocks\n", scenario.Name, len(scenario.Turns))
	}

	return nil
}
