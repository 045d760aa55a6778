// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package script

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"

	"github.com/waystone/waystone/internal/engine"
)

// parser is the singleton participle parser instance.
var parser *participle.Parser[Script]

func init() {
	var err error
	parser, err = NewParser()
	if err != nil {
		panic(fmt.Sprintf("failed to build scenario parser: %v", err))
	}
}

// Parse parses a scenario script into an AST.
// Returns a descriptive error with position info on failure.
func Parse(text string) (*Script, error) {
	s, err := parser.ParseString("", text)
	if err != nil {
		return nil, oops.Wrapf(err, "parsing scenario script")
	}

	if err := validateScript(s); err != nil {
		return nil, err
	}

	return s, nil
}

// validateScript performs post-parse validation checks.
func validateScript(s *Script) error {
	if s.Name == "" {
		return fmt.Errorf("scenario name cannot be empty")
	}
	for _, turn := range s.Turns {
		if turn.Actor == "" {
			return fmt.Errorf("%s: turn block has no actor name", turn.Pos)
		}
		for _, step := range turn.Steps {
			if !engine.KnownAction(engine.Action(step.Action)) {
				return fmt.Errorf("%s: unknown action %q", step.Pos, step.Action)
			}
			seen := map[string]bool{}
			for _, arg := range step.Args {
				if seen[arg.Key] {
					return fmt.Errorf("%s: duplicate argument %q", arg.Pos, arg.Key)
				}
				seen[arg.Key] = true
			}
		}
	}
	return nil
}

// Request converts a step into an executor request.
func (s *Step) Request() engine.Request {
	req := engine.Request{Action: engine.Action(s.Action)}
	if len(s.Args) > 0 {
		req.Args = make(map[string]string, len(s.Args))
		for _, arg := range s.Args {
			req.Args[arg.Key] = arg.Value
		}
	}
	return req
}
