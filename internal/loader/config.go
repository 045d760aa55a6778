// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

// Package loader reads world definition files and assembles the runtime
// model from them. Definitions are YAML; merged flag overrides and a
// format-version gate keep old files from being silently misread.
package loader

import (
	"github.com/Masterminds/semver/v3"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/waystone/waystone/internal/world"
)

// formatConstraint is the range of world-file format versions this build
// understands. Bump the major only for incompatible layout changes.
var formatConstraint = semver.MustParse("2.0.0")

const minFormatVersion = "1.0.0"

// CoordConfig is a grid position in a world definition file.
type CoordConfig struct {
	X int `koanf:"x" json:"x" yaml:"x"`
	Y int `koanf:"y" json:"y" yaml:"y"`
}

// ActorConfig declares one actor in a world definition file.
type ActorConfig struct {
	ID         string              `koanf:"id" json:"id" yaml:"id" jsonschema:"required"`
	Name       string              `koanf:"name" json:"name" yaml:"name" jsonschema:"required"`
	Location   string              `koanf:"location" json:"location" yaml:"location"`
	Background string              `koanf:"background" json:"background,omitempty" yaml:"background,omitempty"`
	Memory     []world.MemoryEntry `koanf:"memory" json:"memory,omitempty" yaml:"memory,omitempty"`
}

// PropConfig declares one prop in a world definition file.
type PropConfig struct {
	ID          string `koanf:"id" json:"id" yaml:"id" jsonschema:"required"`
	Name        string `koanf:"name" json:"name" yaml:"name" jsonschema:"required"`
	Description string `koanf:"description" json:"description" yaml:"description"`
	Location    string `koanf:"location" json:"location" yaml:"location" jsonschema:"required"`
}

// Config is the full parsed world definition.
type Config struct {
	FormatVersion string                 `koanf:"format_version" json:"format_version" yaml:"format_version" jsonschema:"required"`
	Locations     map[string]CoordConfig `koanf:"locations" json:"locations" yaml:"locations" jsonschema:"required"`
	Rules         map[string][]string    `koanf:"rules" json:"rules,omitempty" yaml:"rules,omitempty"`
	Actors        []ActorConfig          `koanf:"actors" json:"actors,omitempty" yaml:"actors,omitempty"`
	Props         []PropConfig           `koanf:"props" json:"props,omitempty" yaml:"props,omitempty"`
}

// Load reads and parses a world definition file. A nil flag set skips
// flag merging; otherwise changed flags override file values under the
// same keys.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, oops.Code(world.CodeConfigInvalid).
			With("path", path).
			Wrapf(err, "cannot read world definition")
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code(world.CodeConfigInvalid).
				Wrapf(err, "cannot merge flag overrides")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code(world.CodeConfigInvalid).
			With("path", path).
			Wrapf(err, "malformed world definition")
	}

	if err := checkFormatVersion(cfg.FormatVersion); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// checkFormatVersion rejects definitions written for another format
// generation.
func checkFormatVersion(version string) error {
	if version == "" {
		return oops.Code(world.CodeConfigInvalid).
			Errorf("world definition is missing format_version")
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return oops.Code(world.CodeConfigInvalid).
			With("format_version", version).
			Wrapf(err, "format_version is not a semantic version")
	}
	min := semver.MustParse(minFormatVersion)
	if v.LessThan(min) || !v.LessThan(formatConstraint) {
		return oops.Code(world.CodeConfigInvalid).
			With("format_version", version).
			With("supported", ">= "+minFormatVersion+", < "+formatConstraint.String()).
			Errorf("unsupported world definition format version %s", version)
	}
	return nil
}
