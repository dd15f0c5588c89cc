// Package editor implements the editing surface: selection state,
// focus, mode, and the single mouse context menu the surface may own.
package editor

import (
	"github.com/google/uuid"

	"github.com/kestrel-editor/kestrel/internal/display"
	"github.com/kestrel-editor/kestrel/internal/event"
	"github.com/kestrel-editor/kestrel/internal/focus"
	"github.com/kestrel-editor/kestrel/internal/menu"
	"github.com/kestrel-editor/kestrel/internal/selection"
	"github.com/kestrel-editor/kestrel/internal/workspace"
)

// ContextMenuBuilder is a caller-supplied override for the default
// context menu. It receives the resolved display point of the click and
// returns a built menu, or nil for "no menu".
type ContextMenuBuilder func(ed *Editor, point display.Point) *menu.ContextMenu

// Editor is a single editing surface. All methods must be called from
// the UI thread; the surface has no internal locking by design.
type Editor struct {
	id       string
	mode     Mode
	filePath string

	focusHandle *focus.Handle
	focusMgr    *focus.Manager
	bus         *event.Bus

	snapshot   display.Snapshot
	selections *selection.Set
	workspace  *workspace.Workspace

	// customContextMenu, when set, replaces the default menu assembly.
	// It is moved out for the duration of its own invocation.
	customContextMenu ContextMenuBuilder

	// mouseContextMenu is the single active context menu, or nil.
	mouseContextMenu *MouseContextMenu
}

// New creates a surface in full mode with an empty selection set.
func New(fm *focus.Manager, bus *event.Bus, snap display.Snapshot) *Editor {
	return &Editor{
		id:          uuid.NewString(),
		mode:        ModeFull,
		focusHandle: focus.NewHandle("editor"),
		focusMgr:    fm,
		bus:         bus,
		snapshot:    snap,
		selections:  selection.NewSet(),
	}
}

// ID returns the surface identifier.
func (ed *Editor) ID() string {
	return ed.id
}

// Mode returns the surface mode.
func (ed *Editor) Mode() Mode {
	return ed.mode
}

// SetMode changes the surface mode.
func (ed *Editor) SetMode(m Mode) {
	ed.mode = m
}

// FilePath returns the path of the open file, or "".
func (ed *Editor) FilePath() string {
	return ed.filePath
}

// SetFilePath records the path of the open file.
func (ed *Editor) SetFilePath(path string) {
	ed.filePath = path
}

// FocusHandle returns the surface's focus handle.
func (ed *Editor) FocusHandle() *focus.Handle {
	return ed.focusHandle
}

// IsFocused reports whether the surface itself holds focus.
func (ed *Editor) IsFocused() bool {
	return ed.focusMgr.IsFocused(ed.focusHandle)
}

// Focus moves input focus to the surface.
func (ed *Editor) Focus() {
	ed.focusMgr.Focus(ed.focusHandle)
}

// Snapshot returns the current document snapshot.
func (ed *Editor) Snapshot() display.Snapshot {
	return ed.snapshot
}

// SetSnapshot replaces the document snapshot.
func (ed *Editor) SetSnapshot(snap display.Snapshot) {
	ed.snapshot = snap
}

// Selections returns the surface's selection state.
func (ed *Editor) Selections() *selection.Set {
	return ed.selections
}

// Workspace returns the attached workspace, or nil.
func (ed *Editor) Workspace() *workspace.Workspace {
	return ed.workspace
}

// SetWorkspace attaches (or detaches, with nil) a workspace.
func (ed *Editor) SetWorkspace(ws *workspace.Workspace) {
	ed.workspace = ws
}

// SetCustomContextMenu installs an override builder for the context
// menu. Pass nil to restore the default menu.
func (ed *Editor) SetCustomContextMenu(builder ContextMenuBuilder) {
	ed.customContextMenu = builder
}

// HasCustomContextMenu reports whether an override builder is
// installed.
func (ed *Editor) HasCustomContextMenu() bool {
	return ed.customContextMenu != nil
}

// MouseContextMenu returns the active context menu instance, or nil.
func (ed *Editor) MouseContextMenu() *MouseContextMenu {
	return ed.mouseContextMenu
}

// requestRedraw signals the host that the surface needs re-rendering.
func (ed *Editor) requestRedraw() {
	ed.bus.Publish(event.TopicEditorRedraw, event.EditorRedraw{EditorID: ed.id})
}
