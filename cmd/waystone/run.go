// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/loader"
	"github.com/waystone/waystone/internal/logging"
	"github.com/waystone/waystone/internal/observability"
	"github.com/waystone/waystone/internal/script"
	"github.com/waystone/waystone/internal/sim"
	"github.com/waystone/waystone/pkg/errutil"
)

// runConfig holds configuration for the run command.
type runConfig struct {
	worldFile   string
	scriptFile  string
	metricsAddr string
	logFormat   string
}

// Validate checks that the configuration is valid.
func (cfg *runConfig) Validate() error {
	if cfg.worldFile == "" {
		return fmt.Errorf("world is required")
	}
	if cfg.scriptFile == "" {
		return fmt.Errorf("script is required")
	}
	if cfg.logFormat != "json" && cfg.logFormat != "text" {
		return fmt.Errorf("log-format must be 'json' or 'text', got %q", cfg.logFormat)
	}
	return nil
}

// Default values for run command flags.
const (
	defaultLogFormat = "json"
)

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	cfg := &runConfig{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario script against a world definition",
		Long: `Load a world definition, replay a scenario script against it turn
by turn, and print each actor's feedback. Every accepted action is
recorded in the event log; the final log length is reported at the end.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScenario(cmd.Context(), cfg, cmd)
		},
	}

	cmd.Flags().StringVar(&cfg.worldFile, "world", "", "world definition file (YAML)")
	cmd.Flags().StringVar(&cfg.scriptFile, "script", "", "scenario script file")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().StringVar(&cfg.logFormat, "log-format", defaultLogFormat, "log format (json or text)")

	return cmd
}

func runScenario(ctx context.Context, cfg *runConfig, cmd *cobra.Command) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.SetDefault("waystone", version, cfg.logFormat)

	state, err := loadWorld(cfg.worldFile, cmd)
	if err != nil {
		errutil.LogError(slog.Default(), "world load failed", err)
		return err
	}

	scriptText, err := os.ReadFile(cfg.scriptFile)
	if err != nil {
		return fmt.Errorf("cannot read scenario script: %w", err)
	}
	scenario, err := script.Parse(string(scriptText))
	if err != nil {
		errutil.LogError(slog.Default(), "scenario parse failed", err)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start observability server if configured
	var obsServer *observability.Server
	if cfg.metricsAddr != "" {
		obsServer = observability.NewServer(cfg.metricsAddr, func() bool { return true })
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if stopErr := obsServer.Stop(shutdownCtx); stopErr != nil {
				slog.Warn("error stopping observability server", "error", stopErr)
			}
		}()
	}

	slog.Info("running scenario",
		"scenario", scenario.Name,
		"world", cfg.worldFile,
		"turns", len(scenario.Turns),
	)

	runner := sim.NewRunner(state)
	results, err := runner.RunScript(ctx, scenario)
	for _, res := range results {
		if obsServer != nil {
			obsServer.Metrics().TurnsTotal.WithLabelValues(res.Actor, "accepted").Inc()
			for _, woken := range res.Woken {
				obsServer.Metrics().WokenTotal.WithLabelValues(woken).Inc()
			}
		}
		if res.Feedback != "" {
			cmd.Printf("[%s] %s\n", res.Actor, res.Feedback)
		}
	}
	if err != nil {
		errutil.LogError(slog.Default(), "scenario failed", err)
		return err
	}

	cmd.Printf("Scenario %q complete: %d actions, %d events logged\n",
		scenario.Name, len(results), state.Model().Log().Len())
	return nil
}

// loadWorld reads, schema-checks, and builds a world definition into a
// ready engine state.
func loadWorld(path string, cmd *cobra.Command) (*engine.State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read world definition: %w", err)
	}
	if err := loader.ValidateSchema(raw); err != nil {
		return nil, fmt.Errorf("world definition rejected: %s", loader.FormatSchemaError(err))
	}

	cfg, err := loader.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	model, rules, err := loader.Build(cfg)
	if err != nil {
		return nil, err
	}
	return engine.NewState(model, rules), nil
}

// monitorServerErrors monitors a server's error channel and cancels the context on error.
// It exits when either an error is received, the channel is closed, or the context is cancelled.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			// Channel closed, server stopped gracefully
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
		// Context cancelled, exit monitoring
	}
}
