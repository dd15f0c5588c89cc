// Package luamenu lets Lua scripts take over context menu assembly.
//
// A script defines a global function:
//
//	function context_menu(row, col)
//	  return {
//	    { label = "Run Test", action = "test.runAtCursor" },
//	    { separator = true },
//	    { label = "Copy", action = "editor.copy" },
//	  }
//	end
//
// Returning nil declines the menu for that click. Rows and columns are
// 1-based on the Lua side.
package luamenu

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/kestrel-editor/kestrel/internal/display"
	"github.com/kestrel-editor/kestrel/internal/editor"
	"github.com/kestrel-editor/kestrel/internal/event"
	"github.com/kestrel-editor/kestrel/internal/input"
	"github.com/kestrel-editor/kestrel/internal/menu"
)

// builderFunc is the global the script must define.
const builderFunc = "context_menu"

// Provider owns a sandboxed Lua state with a loaded menu script.
// The state is not goroutine safe, so calls are serialized.
type Provider struct {
	mu sync.Mutex
	L  *lua.LState
}

// LoadFile loads a menu script from disk.
func LoadFile(path string) (*Provider, error) {
	L := newState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading menu script %s: %w", path, err)
	}
	return verify(L)
}

// LoadString loads a menu script from source text.
func LoadString(script string) (*Provider, error) {
	L := newState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading menu script: %w", err)
	}
	return verify(L)
}

func verify(L *lua.LState) (*Provider, error) {
	if _, ok := L.GetGlobal(builderFunc).(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("menu script does not define %s()", builderFunc)
	}
	return &Provider{L: L}, nil
}

// newState creates a Lua state with the dangerous globals removed.
// Scripts get the computational stdlib but no way to touch the disk,
// spawn processes, or load code at runtime.
func newState() *lua.LState {
	L := lua.NewState()
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "os", "io"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// Close releases the Lua state.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.L.Close()
}

// ContextMenuBuilder adapts the script into an editor menu builder.
// Script errors and malformed return values decline the menu.
func (p *Provider) ContextMenuBuilder(bus *event.Bus) editor.ContextMenuBuilder {
	return func(ed *editor.Editor, point display.Point) *menu.ContextMenu {
		entries := p.call(point)
		if len(entries) == 0 {
			return nil
		}
		return menu.Build(bus, func(b *menu.Builder) {
			for _, e := range entries {
				if e.separator {
					b.Separator()
					continue
				}
				b.Action(e.label, input.Action{Name: e.action})
			}
			if focused := ed.FocusHandle(); focused != nil {
				b.Context(focused)
			}
		})
	}
}

type scriptEntry struct {
	label     string
	action    string
	separator bool
}

// call invokes context_menu(row, col) and decodes the result.
func (p *Provider) call(point display.Point) []scriptEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn, ok := p.L.GetGlobal(builderFunc).(*lua.LFunction)
	if !ok {
		return nil
	}

	err := p.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(point.Row+1), lua.LNumber(point.Col+1))
	if err != nil {
		return nil
	}

	ret := p.L.Get(-1)
	p.L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil
	}
	return decodeEntries(tbl)
}

// decodeEntries reads the array part of the returned table. Entries
// missing a label or action are dropped; a bad table yields nothing.
func decodeEntries(tbl *lua.LTable) []scriptEntry {
	var entries []scriptEntry
	for i := 1; ; i++ {
		v := tbl.RawGetInt(i)
		if v == lua.LNil {
			break
		}
		et, ok := v.(*lua.LTable)
		if !ok {
			continue
		}
		if lua.LVAsBool(et.RawGetString("separator")) {
			entries = append(entries, scriptEntry{separator: true})
			continue
		}
		label, lok := et.RawGetString("label").(lua.LString)
		action, aok := et.RawGetString("action").(lua.LString)
		if !lok || !aok || label == "" || action == "" {
			continue
		}
		entries = append(entries, scriptEntry{
			label:  string(label),
			action: string(action),
		})
	}
	return entries
}
