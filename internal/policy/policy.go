// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package policy

import (
	"context"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/perception"
	"github.com/waystone/waystone/internal/world"
)

// decideFunction is the global a policy script must define.
const decideFunction = "decide"

// Policy is a compiled Lua decision script. Each policy owns one Lua
// state, so a policy must not be shared across goroutines.
type Policy struct {
	name string
	ls   *lua.LState
}

// Load compiles a policy script in a fresh sandboxed state and checks
// that it defines the decide function.
func Load(ctx context.Context, name, source string) (*Policy, error) {
	factory := NewStateFactory()
	ls, err := factory.NewState(ctx)
	if err != nil {
		return nil, oops.Code(world.CodeConfigInvalid).
			With("policy", name).
			Wrap(err)
	}
	if err := ls.DoString(source); err != nil {
		ls.Close()
		return nil, oops.Code(world.CodeConfigInvalid).
			With("policy", name).
			Wrapf(err, "policy script failed to load")
	}
	if _, ok := ls.GetGlobal(decideFunction).(*lua.LFunction); !ok {
		ls.Close()
		return nil, oops.Code(world.CodeConfigInvalid).
			With("policy", name).
			Errorf("policy script does not define %s()", decideFunction)
	}
	return &Policy{name: name, ls: ls}, nil
}

// Name returns the policy name given at load time.
func (p *Policy) Name() string {
	return p.name
}

// Close releases the policy's Lua state.
func (p *Policy) Close() {
	p.ls.Close()
}

// Decide calls the script's decide function with a view of the report
// and converts its result into an action request. The script returns a
// table with an "action" string and an optional "args" string table.
func (p *Policy) Decide(report perception.Report) (engine.Request, error) {
	view := p.reportToTable(report)

	if err := p.ls.CallByParam(lua.P{
		Fn:      p.ls.GetGlobal(decideFunction),
		NRet:    1,
		Protect: true,
	}, view); err != nil {
		return engine.Request{}, oops.Code(world.CodeEngine).
			With("policy", p.name).
			Wrapf(err, "policy decide() failed")
	}

	ret := p.ls.Get(-1)
	p.ls.Pop(1)

	result, ok := ret.(*lua.LTable)
	if !ok {
		return engine.Request{}, oops.Code(world.CodeEngine).
			With("policy", p.name).
			Errorf("policy decide() returned %s, want table", ret.Type())
	}

	action, ok := result.RawGetString("action").(lua.LString)
	if !ok || action == "" {
		return engine.Request{}, oops.Code(world.CodeEngine).
			With("policy", p.name).
			Errorf("policy decide() result has no action field")
	}

	req := engine.Request{Action: engine.Action(action)}
	if args, ok := result.RawGetString("args").(*lua.LTable); ok {
		req.Args = map[string]string{}
		args.ForEach(func(k, v lua.LValue) {
			req.Args[k.String()] = v.String()
		})
	}
	return req, nil
}

// reportToTable exposes a read-copy of the report to the script. Scripts
// mutating the view change nothing in the world.
func (p *Policy) reportToTable(report perception.Report) *lua.LTable {
	t := p.ls.NewTable()
	t.RawSetString("actor", lua.LString(report.Actor))
	t.RawSetString("location", lua.LString(report.Location))
	t.RawSetString("x", lua.LNumber(report.Coord.X))
	t.RawSetString("y", lua.LNumber(report.Coord.Y))
	t.RawSetString("status", lua.LString(report.Status))
	t.RawSetString("background", lua.LString(report.Background))

	others := p.ls.NewTable()
	for i, name := range report.Others {
		others.RawSetInt(i+1, lua.LString(name))
	}
	t.RawSetString("others", others)

	props := p.ls.NewTable()
	for i, prop := range report.Props {
		props.RawSetInt(i+1, lua.LString(prop.Name))
	}
	t.RawSetString("props", props)

	actions := p.ls.NewTable()
	for i, a := range report.Actions {
		actions.RawSetInt(i+1, lua.LString(a))
	}
	t.RawSetString("actions", actions)

	directions := p.ls.NewTable()
	for i, d := range report.Directions {
		directions.RawSetInt(i+1, lua.LString(d))
	}
	t.RawSetString("directions", directions)

	memory := p.ls.NewTable()
	for i, entry := range report.Memory {
		m := p.ls.NewTable()
		m.RawSetString("time", lua.LString(entry.Time))
		m.RawSetString("content", lua.LString(entry.Content))
		memory.RawSetInt(i+1, m)
	}
	t.RawSetString("memory", memory)

	return t
}
