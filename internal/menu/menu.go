// Package menu provides the context menu widget.
//
// A ContextMenu is built once with the Builder API, navigated with the
// keyboard while it holds focus, and torn down through a dismissal
// event published on the bus. The widget knows nothing about why it was
// opened; deployment policy lives with the editing surface.
package menu

import (
	"github.com/google/uuid"

	"github.com/kestrel-editor/kestrel/internal/event"
	"github.com/kestrel-editor/kestrel/internal/focus"
	"github.com/kestrel-editor/kestrel/internal/input"
	"github.com/kestrel-editor/kestrel/internal/input/key"
)

// Entry is a single menu row: either a labeled action or a separator.
type Entry struct {
	// Label is the display text. Empty for separators.
	Label string

	// Action is the command dispatched when the entry is confirmed.
	Action input.Action

	// Separator marks a visual divider row.
	Separator bool
}

// ContextMenu is an open menu instance.
type ContextMenu struct {
	id          string
	entries     []Entry
	focusHandle *focus.Handle
	context     *focus.Handle
	bus         *event.Bus
	dismissed   bool

	// selected is the index of the highlighted entry, or -1.
	selected int
}

// Builder assembles a ContextMenu entry by entry.
type Builder struct {
	menu *ContextMenu
}

// Build constructs a menu by running fn against a fresh Builder.
// The menu's focus handle is created as its own root; deployment
// decides whether to focus it.
func Build(bus *event.Bus, fn func(*Builder)) *ContextMenu {
	m := &ContextMenu{
		id:          uuid.NewString(),
		focusHandle: focus.NewHandle("context-menu"),
		bus:         bus,
		selected:    -1,
	}
	b := &Builder{menu: m}
	if fn != nil {
		fn(b)
	}
	m.selected = m.nextSelectable(-1, 1)
	return m
}

// Action appends a labeled entry bound to the given action.
func (b *Builder) Action(label string, action input.Action) *Builder {
	action.Source = input.SourceMenu
	b.menu.entries = append(b.menu.entries, Entry{Label: label, Action: action})
	return b
}

// Separator appends a visual divider.
func (b *Builder) Separator() *Builder {
	b.menu.entries = append(b.menu.entries, Entry{Separator: true})
	return b
}

// When runs fn against the builder only if cond is true.
func (b *Builder) When(cond bool, fn func(*Builder)) *Builder {
	if cond {
		fn(b)
	}
	return b
}

// Context binds the focus handle whose key-binding scope the menu's
// actions should be dispatched under. Nil is allowed and means no
// particular scope.
func (b *Builder) Context(h *focus.Handle) *Builder {
	b.menu.context = h
	return b
}

// ID returns the unique menu identifier.
func (m *ContextMenu) ID() string {
	return m.id
}

// Entries returns the menu entries in display order. The returned slice
// must not be mutated.
func (m *ContextMenu) Entries() []Entry {
	return m.entries
}

// IsEmpty reports whether the menu has no entries.
func (m *ContextMenu) IsEmpty() bool {
	return len(m.entries) == 0
}

// FocusHandle returns the menu's focus handle.
func (m *ContextMenu) FocusHandle() *focus.Handle {
	return m.focusHandle
}

// Context returns the bound contextual focus scope, or nil.
func (m *ContextMenu) Context() *focus.Handle {
	return m.context
}

// Selected returns the index of the highlighted entry, or -1 when the
// menu has no selectable entries.
func (m *ContextMenu) Selected() int {
	return m.selected
}

// SelectNext moves the highlight down, skipping separators and
// wrapping at the bottom.
func (m *ContextMenu) SelectNext() {
	if next := m.nextSelectable(m.selected, 1); next >= 0 {
		m.selected = next
	}
}

// SelectPrev moves the highlight up, skipping separators and wrapping
// at the top.
func (m *ContextMenu) SelectPrev() {
	if prev := m.nextSelectable(m.selected, -1); prev >= 0 {
		m.selected = prev
	}
}

// nextSelectable returns the index of the next non-separator entry in
// the given direction, wrapping around, or -1 if none exists.
func (m *ContextMenu) nextSelectable(from, dir int) int {
	n := len(m.entries)
	if n == 0 {
		return -1
	}
	i := from
	for step := 0; step < n; step++ {
		i += dir
		if i < 0 {
			i = n - 1
		} else if i >= n {
			i = 0
		}
		if !m.entries[i].Separator {
			return i
		}
	}
	return -1
}

// Confirm returns the highlighted entry's action and dismisses the
// menu. Returns nil if nothing is selected.
func (m *ContextMenu) Confirm() *input.Action {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return nil
	}
	action := m.entries[m.selected].Action
	m.Dismiss()
	return &action
}

// Dismiss fires the menu's dismissal event. Idempotent; the second and
// later calls do nothing.
func (m *ContextMenu) Dismiss() {
	if m.dismissed {
		return
	}
	m.dismissed = true
	m.bus.Publish(event.TopicMenuDismissed, event.MenuDismissed{MenuID: m.id})
}

// IsDismissed reports whether Dismiss has fired.
func (m *ContextMenu) IsDismissed() bool {
	return m.dismissed
}

// OnDismiss registers fn to run when this menu (and only this menu) is
// dismissed. The returned subscription must be cancelled by whoever
// owns the menu's lifetime.
func (m *ContextMenu) OnDismiss(fn func()) *event.Subscription {
	id := m.id
	return m.bus.Subscribe(event.TopicMenuDismissed, func(payload any) {
		if ev, ok := payload.(event.MenuDismissed); ok && ev.MenuID == id {
			fn()
		}
	})
}

// HandleKey processes a keyboard event while the menu has focus.
// Enter confirms and returns the selected action; Escape dismisses.
// Returns nil when the event only moved the highlight or was ignored.
func (m *ContextMenu) HandleKey(ev key.Event) *input.Action {
	switch ev.Key {
	case key.KeyDown:
		m.SelectNext()
	case key.KeyUp:
		m.SelectPrev()
	case key.KeyEnter:
		return m.Confirm()
	case key.KeyEscape:
		m.Dismiss()
	}
	return nil
}
