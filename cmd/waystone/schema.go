// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waystone/waystone/internal/loader"
	"github.com/waystone/waystone/internal/schema"
)

// NewSchemaCmd creates the schema subcommand.
func NewSchemaCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print a JSON Schema to stdout",
		Long: `Print one of the generated JSON Schemas:

  world    schema for world definition files
  request  schema for action requests`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var data []byte
			var err error
			switch kind {
			case "world":
				data, err = loader.GenerateSchema()
			case "request":
				data, err = schema.Generate()
			default:
				return fmt.Errorf("type must be 'world' or 'request', got %q", kind)
			}
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", "world", "which schema to print (world or request)")

	return cmd
}
