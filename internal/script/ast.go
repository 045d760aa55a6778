// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

// Package script defines the AST for the scenario script DSL and
// provides a parser built with participle. A script is a named sequence
// of actor turn blocks, each holding the action steps that actor submits
// on its turns.
package script

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// scriptLexer defines the token types for scenario scripts. Action names
// contain hyphens, so the default text/scanner lexer cannot tokenize
// them.
var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*`},
	{Name: "Punct", Pattern: `[{}=;]`},
	{Name: "comment", Pattern: `//[^\n]*`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Script is a parsed scenario.
//
// Grammar: "scenario" name ";" turn_block*
type Script struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'scenario' @String ';'" json:"name"`
	Turns []*TurnBlock   `parser:"@@*" json:"turns"`
}

// TurnBlock holds the steps one actor performs before the script moves
// on. Blocks for the same actor may repeat.
//
// Grammar: "as" actor "{" step* "}"
type TurnBlock struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Actor string         `parser:"'as' @String '{'" json:"actor"`
	Steps []*Step        `parser:"@@* '}'" json:"steps"`
}

// Step is a single action submission.
//
// Grammar: action_name (key "=" value)* ";"
type Step struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Action string         `parser:"@Ident" json:"action"`
	Args   []*Arg         `parser:"@@* ';'" json:"args,omitempty"`
}

// Arg is one key=value argument on a step.
type Arg struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident '='" json:"key"`
	Value string         `parser:"@String" json:"value"`
}

// NewParser builds the participle parser for scenario scripts.
func NewParser() (*participle.Parser[Script], error) {
	return participle.Build[Script](
		participle.Lexer(scriptLexer),
		participle.Unquote("String"),
	)
}
