// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

// Package sim orchestrates multi-actor rounds over a world: for each
// actor it binds the cursor, gathers perception, asks a decider for the
// next action, and applies it. The engine stays single-threaded; the
// runner is the one place turn order is decided.
package sim

import (
	"context"

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/perception"
	"github.com/waystone/waystone/internal/policy"
)

// Decider chooses an actor's next action from its current perception.
// Implementations may be scripted, policy-driven, or backed by an
// external collaborator; failures are reported, never hidden behind a
// default action.
type Decider interface {
	Decide(ctx context.Context, report perception.Report) (engine.Request, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, report perception.Report) (engine.Request, error)

// Decide implements Decider.
func (f DeciderFunc) Decide(ctx context.Context, report perception.Report) (engine.Request, error) {
	return f(ctx, report)
}

// PolicyDecider adapts a Lua policy to the Decider interface.
func PolicyDecider(p *policy.Policy) Decider {
	return DeciderFunc(func(_ context.Context, report perception.Report) (engine.Request, error) {
		return p.Decide(report)
	})
}

// StaticDecider always submits the same request. Useful for tests and
// for placeholder actors.
func StaticDecider(req engine.Request) Decider {
	return DeciderFunc(func(context.Context, perception.Report) (engine.Request, error) {
		return req, nil
	})
}
