package luamenu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel-editor/kestrel/internal/display"
	"github.com/kestrel-editor/kestrel/internal/editor"
	"github.com/kestrel-editor/kestrel/internal/event"
	"github.com/kestrel-editor/kestrel/internal/focus"
)

func newScriptEditor(t *testing.T) (*editor.Editor, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	ed := editor.New(focus.NewManager(), bus, display.NewTextSnapshot("line one", "line two"))
	return ed, bus
}

func TestLoadStringBuildsMenu(t *testing.T) {
	p, err := LoadString(`
function context_menu(row, col)
  return {
    { label = "Run Test", action = "test.runAtCursor" },
    { separator = true },
    { label = "Line " .. row, action = "editor.copyFileLine" },
  }
end
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	defer p.Close()

	ed, bus := newScriptEditor(t)
	m := p.ContextMenuBuilder(bus)(ed, display.Point{Row: 1, Col: 3})
	if m == nil {
		t.Fatal("script should produce a menu")
	}

	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("entry count = %d, want 3", len(entries))
	}
	if entries[0].Label != "Run Test" || entries[0].Action.Name != "test.runAtCursor" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if !entries[1].Separator {
		t.Error("entry 1 should be a separator")
	}
	// Rows are 1-based on the Lua side.
	if entries[2].Label != "Line 2" {
		t.Errorf("entry 2 label = %q, want \"Line 2\"", entries[2].Label)
	}
	if m.Context() != ed.FocusHandle() {
		t.Error("menu context should be the editor's focus handle")
	}
}

func TestScriptDeclines(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"returns nil", `function context_menu(row, col) return nil end`},
		{"returns empty table", `function context_menu(row, col) return {} end`},
		{"returns non-table", `function context_menu(row, col) return 42 end`},
		{"raises error", `function context_menu(row, col) error("nope") end`},
		{"all entries malformed", `function context_menu(row, col)
  return { { label = "no action" }, { action = "no.label" } }
end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LoadString(tt.script)
			if err != nil {
				t.Fatalf("LoadString: %v", err)
			}
			defer p.Close()

			ed, bus := newScriptEditor(t)
			if m := p.ContextMenuBuilder(bus)(ed, display.Point{}); m != nil {
				t.Errorf("menu = %v, want decline", m.Entries())
			}
		})
	}
}

func TestMalformedEntriesAreDropped(t *testing.T) {
	p, err := LoadString(`
function context_menu(row, col)
  return {
    "not a table",
    { label = "Valid", action = "a.b" },
    { label = "" , action = "c.d" },
  }
end
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	defer p.Close()

	ed, bus := newScriptEditor(t)
	m := p.ContextMenuBuilder(bus)(ed, display.Point{})
	if m == nil {
		t.Fatal("one valid entry should still produce a menu")
	}
	if entries := m.Entries(); len(entries) != 1 || entries[0].Label != "Valid" {
		t.Errorf("entries = %v", entries)
	}
}

func TestLoadRejectsMissingFunction(t *testing.T) {
	if _, err := LoadString(`x = 1`); err == nil {
		t.Error("script without context_menu() should fail to load")
	}
}

func TestLoadRejectsBrokenScript(t *testing.T) {
	if _, err := LoadString(`function (`); err == nil {
		t.Error("syntactically broken script should fail to load")
	}
}

func TestSandboxRemovesDangerousGlobals(t *testing.T) {
	p, err := LoadString(`
function context_menu(row, col)
  if os ~= nil or io ~= nil or dofile ~= nil or loadstring ~= nil then
    return { { label = "Escaped", action = "bad" } }
  end
  return nil
end
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	defer p.Close()

	ed, bus := newScriptEditor(t)
	if m := p.ContextMenuBuilder(bus)(ed, display.Point{}); m != nil {
		t.Error("sandboxed globals leaked into the script")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.lua")
	script := `
function context_menu(row, col)
  return { { label = "From File", action = "x.y" } }
end
`
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	defer p.Close()

	ed, bus := newScriptEditor(t)
	m := p.ContextMenuBuilder(bus)(ed, display.Point{})
	if m == nil || m.Entries()[0].Label != "From File" {
		t.Error("file-loaded script should build the menu")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Error("missing script file should fail to load")
	}
}
