// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package sim

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/logging"
	"github.com/waystone/waystone/internal/perception"
	"github.com/waystone/waystone/internal/script"
	"github.com/waystone/waystone/internal/world"
)

// TurnResult records what one actor's turn produced.
type TurnResult struct {
	Actor    string         `json:"actor"`
	Request  engine.Request `json:"request"`
	Feedback string         `json:"feedback,omitempty"`
	Woken    []string       `json:"woken,omitempty"`
}

// Runner drives turns over a single engine state. It is not safe for
// concurrent use; the whole point is that turns are serial.
type Runner struct {
	state    *engine.State
	deciders map[string]Decider
	watchers map[string]*perception.Watcher
	logger   *slog.Logger

	maxAttempts uint64
	backoff     time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithRetry sets how many decide attempts a turn gets before failing and
// the constant backoff between them. Attempts below 1 are treated as 1.
func WithRetry(attempts uint64, backoff time.Duration) RunnerOption {
	return func(r *Runner) {
		if attempts < 1 {
			attempts = 1
		}
		r.maxAttempts = attempts
		r.backoff = backoff
	}
}

// NewRunner creates a runner over the given state.
func NewRunner(state *engine.State, opts ...RunnerOption) *Runner {
	r := &Runner{
		state:       state,
		deciders:    map[string]Decider{},
		watchers:    map[string]*perception.Watcher{},
		logger:      slog.Default(),
		maxAttempts: 3,
		backoff:     100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bind attaches a decider to an actor and starts watching the log on its
// behalf. Rebinding replaces the decider but keeps the watcher cursor.
func (r *Runner) Bind(actor string, d Decider) error {
	if _, err := r.state.Model().ActorByName(actor); err != nil {
		return err
	}
	r.deciders[actor] = d
	if _, ok := r.watchers[actor]; !ok {
		w, err := perception.NewWatcher(actor, r.state.Model().Log())
		if err != nil {
			return err
		}
		r.watchers[actor] = w
	}
	return nil
}

// RunTurn executes one turn for the named actor: bind, observe, decide,
// apply. Decide-and-apply is retried as a unit when the decider errors
// or picks an action the executor rejects for correctable reasons; world
// corruption and caller errors fail the turn immediately.
func (r *Runner) RunTurn(ctx context.Context, actor string) (TurnResult, error) {
	d, ok := r.deciders[actor]
	if !ok {
		return TurnResult{}, oops.Code(world.CodeNotFound).
			With("actor", actor).
			Errorf("no decider bound for actor %s", actor)
	}
	if err := r.state.SetActive(actor); err != nil {
		return TurnResult{}, err
	}
	ctx = logging.WithActor(ctx, actor)

	var result TurnResult
	backoff := retry.WithMaxRetries(r.maxAttempts-1, retry.NewConstant(r.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		report, err := perception.Observe(r.state)
		if err != nil {
			return err
		}
		req, err := d.Decide(ctx, report)
		if err != nil {
			// External collaborators are allowed to be flaky.
			return retry.RetryableError(err)
		}

		feedback, err := r.state.Apply(ctx, req)
		if err != nil {
			if correctable(err) {
				r.logger.WarnContext(ctx, "decider picked a rejected action",
					"actor", actor,
					"action", req.Action.String(),
					"code", world.ErrorCode(err),
				)
				return retry.RetryableError(err)
			}
			return err
		}
		result = TurnResult{Actor: actor, Request: req, Feedback: feedback}
		return nil
	})
	if err != nil {
		return TurnResult{}, oops.With("actor", actor).Wrapf(err, "turn failed")
	}

	result.Woken = r.collectWoken(actor)
	return result, nil
}

// RunRound gives every bound actor one turn in the given order.
func (r *Runner) RunRound(ctx context.Context, order []string) ([]TurnResult, error) {
	results := make([]TurnResult, 0, len(order))
	for _, actor := range order {
		res, err := r.RunTurn(ctx, actor)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunScript replays a parsed scenario: each turn block binds its actor
// and submits its steps verbatim, no decider involved. Watchers for
// bound actors still accumulate wake notifications.
func (r *Runner) RunScript(ctx context.Context, s *script.Script) ([]TurnResult, error) {
	var results []TurnResult
	for _, turn := range s.Turns {
		if err := r.state.SetActive(turn.Actor); err != nil {
			return results, err
		}
		turnCtx := logging.WithActor(ctx, turn.Actor)
		for _, step := range turn.Steps {
			req := step.Request()
			feedback, err := r.state.Apply(turnCtx, req)
			if err != nil {
				return results, oops.
					With("scenario", s.Name).
					With("actor", turn.Actor).
					With("action", step.Action).
					Wrapf(err, "scripted step failed")
			}
			results = append(results, TurnResult{
				Actor:    turn.Actor,
				Request:  req,
				Feedback: feedback,
				Woken:    r.collectWoken(turn.Actor),
			})
		}
	}
	return results, nil
}

// collectWoken scans every other bound actor's watcher and returns the
// names of those addressed by fresh events. Cursors advance either way,
// so an actor is only woken once per addressing event.
func (r *Runner) collectWoken(current string) []string {
	var woken []string
	for actor, w := range r.watchers {
		if actor == current {
			continue
		}
		if len(w.PollAddressed()) > 0 {
			woken = append(woken, actor)
		}
	}
	sort.Strings(woken)
	return woken
}

// correctable reports whether an apply failure can be fixed by deciding
// again: the action was illegal, its target wrong, or its arguments bad.
func correctable(err error) bool {
	switch world.ErrorCode(err) {
	case world.CodeRuleViolation, world.CodeTarget, world.CodeItem, world.CodeValidation:
		return true
	default:
		return false
	}
}
