package editor

import (
	"github.com/kestrel-editor/kestrel/internal/display"
	"github.com/kestrel-editor/kestrel/internal/event"
	"github.com/kestrel-editor/kestrel/internal/input"
	"github.com/kestrel-editor/kestrel/internal/input/mouse"
	"github.com/kestrel-editor/kestrel/internal/menu"
	"github.com/kestrel-editor/kestrel/internal/platform"
	"github.com/kestrel-editor/kestrel/internal/selection"
)

// MouseContextMenu is the single active context menu of a surface. It
// owns the menu handle and the dismissal subscription; both drop
// together when the instance is torn down.
type MouseContextMenu struct {
	position     mouse.Position
	menu         *menu.ContextMenu
	subscription *event.Subscription
}

// Position returns the screen position the menu was invoked at.
func (m *MouseContextMenu) Position() mouse.Position {
	return m.position
}

// Menu returns the owned menu handle.
func (m *MouseContextMenu) Menu() *menu.ContextMenu {
	return m.menu
}

// newMouseContextMenu wraps a built menu: focus moves to the menu so
// keyboard navigation works, and a dismissal handler is registered
// which clears the surface's slot and conditionally restores focus.
func newMouseContextMenu(ed *Editor, position mouse.Position, m *menu.ContextMenu) *MouseContextMenu {
	menuFocus := m.FocusHandle()
	ed.focusMgr.Focus(menuFocus)

	mcm := &MouseContextMenu{position: position, menu: m}
	mcm.subscription = m.OnDismiss(func() {
		ed.mouseContextMenu = nil
		// The instance is done; drop its bus registration with it.
		mcm.teardown()
		// Only reclaim focus if it never left the menu. If an action
		// moved focus elsewhere (another panel, a modal), leave it.
		if ed.focusMgr.ContainsFocused(menuFocus) {
			ed.Focus()
		}
		ed.requestRedraw()
	})
	return mcm
}

// teardown cancels the dismissal subscription, making any later
// dismissal of the wrapped menu a no-op.
func (m *MouseContextMenu) teardown() {
	m.subscription.Cancel()
}

// DeployMenu decides whether and how to open a context menu for one
// secondary-click interaction at the given screen position and resolved
// display point. Every disqualifying condition is a silent no-op: a
// right-click in an ineligible context simply does nothing.
func (ed *Editor) DeployMenu(position mouse.Position, point display.Point) {
	// Actions dispatched from the menu must target this surface.
	if !ed.IsFocused() {
		ed.Focus()
	}

	// No context menu for inline editors.
	if ed.mode != ModeFull {
		return
	}

	var m *menu.ContextMenu
	if custom := ed.customContextMenu; custom != nil {
		// Move the builder out for the duration of the call so the
		// slot stays exclusively owned, then put it back.
		ed.customContextMenu = nil
		m = custom(ed, point)
		ed.customContextMenu = custom
		if m == nil {
			return
		}
	} else {
		// No project context means no actionable commands.
		if ed.workspace == nil {
			return
		}
		m = ed.buildDefaultMenu(point)
	}

	ed.setMouseContextMenu(newMouseContextMenu(ed, position, m))
	ed.requestRedraw()
}

// buildDefaultMenu adjusts the selection for the click and assembles
// the canonical entry list.
func (ed *Editor) buildDefaultMenu(point display.Point) *menu.ContextMenu {
	// Move the cursor to the clicked location unless the click landed
	// inside an existing selection, so dispatched actions make sense.
	if !ed.displayRangesContain(point) {
		anchor := display.ToBufferPosition(ed.snapshot, point)
		ed.selections.ClearDisjoint()
		ed.selections.SetPendingAnchorRange(
			selection.Range{Start: anchor, End: anchor},
			selection.ModeCharacter,
		)
	}

	focused := ed.focusMgr.Focused()
	return menu.Build(ed.bus, func(b *menu.Builder) {
		b.Action("Rename Symbol", input.Action{Name: ActionRenameSymbol}).
			Action("Go to Definition", input.Action{Name: ActionGoToDefinition}).
			Action("Go to Type Definition", input.Action{Name: ActionGoToTypeDefinition}).
			Action("Go to Implementation", input.Action{Name: ActionGoToImplementation}).
			Action("Find All References", input.Action{Name: ActionFindAllReferences}).
			Action("Code Actions", input.Action{Name: ActionCodeActions}).
			Separator().
			Action("Cut", input.Action{Name: ActionCut}).
			Action("Copy", input.Action{Name: ActionCopy}).
			Action("Paste", input.Action{Name: ActionPaste}).
			Separator().
			Action(platform.RevealLabel(), input.Action{Name: ActionRevealInFileManager}).
			Action("Open in Terminal", input.Action{Name: ActionOpenInTerminal}).
			Action("Copy Permalink", input.Action{Name: ActionCopyPermalink}).
			Action("Copy File:Line", input.Action{Name: ActionCopyFileLine})
		if focused != nil {
			b.Context(focused)
		}
	})
}

// displayRangesContain reports whether the point falls within any
// current selection range, disjoint or pending, in display space.
func (ed *Editor) displayRangesContain(point display.Point) bool {
	for _, r := range selection.DisplayRanges(ed.snapshot, ed.selections) {
		if r.Contains(point) {
			return true
		}
	}
	return false
}

// setMouseContextMenu stores a new instance, tearing down the prior
// one first so its dismissal subscription can never fire again.
func (ed *Editor) setMouseContextMenu(mcm *MouseContextMenu) {
	if ed.mouseContextMenu != nil {
		ed.mouseContextMenu.teardown()
	}
	ed.mouseContextMenu = mcm
}
