package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the Waystone CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waystone",
		Short: "Waystone - a turn-based world simulation engine",
		Long: `Waystone runs small multi-actor simulations on a grid of named
locations: actors observe their surroundings, submit actions through a
rule-checked executor, and every accepted action lands in an append-only
event log.`,
	}

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}
