// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package perception

import (
	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/world"
)

// dialogueActions are the action names that can address another actor.
var dialogueActions = map[string]bool{
	engine.ActionStartDialogue.String():    true,
	engine.ActionContinueDialogue.String(): true,
	engine.ActionEndDialogue.String():      true,
	engine.ActionTransact.String():         true,
}

// Watcher is a per-consumer incremental view over the event log. Each
// watcher owns its read cursor, so multiple observers scan the same log
// independently without coordination.
//
// Like the log itself, a watcher is not safe for concurrent use.
type Watcher struct {
	name    string
	log     *world.Log
	cursor  int
	pattern glob.Glob
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher) error

// WithActionFilter restricts Poll output to events whose action name
// matches the glob pattern, e.g. "continue-*" or "*-dialogue".
func WithActionFilter(pattern string) WatcherOption {
	return func(w *Watcher) error {
		g, err := glob.Compile(pattern)
		if err != nil {
			return oops.Code(world.CodeValidation).
				With("pattern", pattern).
				Wrapf(err, "invalid action filter")
		}
		w.pattern = g
		return nil
	}
}

// NewWatcher creates a watcher for the named actor starting at the
// current end of the log: only events recorded after creation are seen.
func NewWatcher(name string, log *world.Log, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{name: name, log: log, cursor: log.Len()}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Poll returns the events recorded since the previous call, applying the
// action filter if one is set, and advances the cursor past everything
// scanned. Skipped events are consumed, not deferred.
func (w *Watcher) Poll() []world.Event {
	fresh := w.log.Since(w.cursor)
	w.cursor = w.log.Len()
	if w.pattern == nil {
		return fresh
	}
	var out []world.Event
	for _, e := range fresh {
		if w.pattern.Match(e.Action) {
			out = append(out, e)
		}
	}
	return out
}

// Addressed reports whether the event is directed at this watcher's
// actor: a dialogue or transaction action naming the actor as target,
// either explicitly in the arguments or through the executor's injected
// target. Actors asleep or otherwise unattended wake when this fires.
func (w *Watcher) Addressed(e world.Event) bool {
	if !dialogueActions[e.Action] {
		return false
	}
	if e.TargetOverride == w.name {
		return true
	}
	return e.Args[engine.ArgTarget] == w.name
}

// PollAddressed returns only the fresh events directed at this watcher's
// actor. The cursor advances past everything scanned either way.
func (w *Watcher) PollAddressed() []world.Event {
	var out []world.Event
	for _, e := range w.Poll() {
		if w.Addressed(e) {
			out = append(out, e)
		}
	}
	return out
}
