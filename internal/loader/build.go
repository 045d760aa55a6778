// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package loader

import (
	"github.com/samber/oops"

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/world"
)

// Build assembles an initialized world model and rule table from a parsed
// definition. All structural defects (duplicate coordinates, unknown
// locations, invalid names) are reported here rather than surfacing later
// during play.
func Build(cfg *Config) (*world.Model, *engine.Rules, error) {
	coords := make(map[string]world.Coord, len(cfg.Locations))
	occupied := make(map[world.Coord]string, len(cfg.Locations))
	for name, c := range cfg.Locations {
		coord := world.Coord{X: c.X, Y: c.Y}
		if prev, taken := occupied[coord]; taken {
			// Map iteration order is random; stabilize the error detail.
			first, second := prev, name
			if second < first {
				first, second = second, first
			}
			return nil, nil, oops.Code(world.CodeConfigInvalid).
				With("coord", coord.String()).
				With("locations", []string{first, second}).
				Errorf("locations %s and %s share coordinates %s", first, second, coord)
		}
		occupied[coord] = name
		coords[name] = coord
	}

	m := world.NewModel()
	if err := m.RegisterLocations(coords); err != nil {
		return nil, nil, err
	}
	if err := m.Initialize(); err != nil {
		return nil, nil, err
	}

	for _, ac := range cfg.Actors {
		actor, err := world.NewActor(ac.ID, ac.Name, ac.Location)
		if err != nil {
			return nil, nil, oops.Code(world.CodeConfigInvalid).
				With("actor", ac.ID).
				Wrap(err)
		}
		actor.Background = ac.Background
		actor.Memory = append([]world.MemoryEntry(nil), ac.Memory...)
		if err := m.RegisterActors(actor); err != nil {
			return nil, nil, err
		}
	}

	for _, pc := range cfg.Props {
		prop, err := world.NewProp(pc.ID, pc.Name, pc.Description, pc.Location)
		if err != nil {
			return nil, nil, oops.Code(world.CodeConfigInvalid).
				With("prop", pc.ID).
				Wrap(err)
		}
		if err := m.RegisterProps(prop); err != nil {
			return nil, nil, err
		}
	}

	rules, err := buildRules(cfg, coords)
	if err != nil {
		return nil, nil, err
	}
	return m, rules, nil
}

// buildRules converts the per-location action-name lists into a rule
// table, rejecting entries for locations the map does not contain and
// action names the executor does not understand.
func buildRules(cfg *Config, coords map[string]world.Coord) (*engine.Rules, error) {
	if len(cfg.Rules) == 0 {
		return engine.DefaultRules(), nil
	}
	byLocation := make(map[string][]engine.Action, len(cfg.Rules))
	for loc, names := range cfg.Rules {
		if _, ok := coords[loc]; !ok {
			return nil, oops.Code(world.CodeConfigInvalid).
				With("location", loc).
				Errorf("rules reference unknown location %s", loc)
		}
		actions := make([]engine.Action, 0, len(names))
		for _, name := range names {
			a := engine.Action(name)
			if !engine.KnownAction(a) {
				return nil, oops.Code(world.CodeConfigInvalid).
					With("location", loc).
					With("action", name).
					Errorf("rules for %s reference unknown action %q", loc, name)
			}
			actions = append(actions, a)
		}
		byLocation[loc] = actions
	}
	return engine.NewRules(byLocation), nil
}
