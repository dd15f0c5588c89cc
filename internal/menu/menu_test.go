package menu

import (
	"testing"

	"github.com/kestrel-editor/kestrel/internal/event"
	"github.com/kestrel-editor/kestrel/internal/focus"
	"github.com/kestrel-editor/kestrel/internal/input"
	"github.com/kestrel-editor/kestrel/internal/input/key"
)

func buildTestMenu(bus *event.Bus) *ContextMenu {
	return Build(bus, func(b *Builder) {
		b.Action("Cut", input.Action{Name: "editor.cut"}).
			Action("Copy", input.Action{Name: "editor.copy"}).
			Separator().
			Action("Paste", input.Action{Name: "editor.paste"})
	})
}

func TestBuildEntries(t *testing.T) {
	m := buildTestMenu(event.NewBus())

	entries := m.Entries()
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	if entries[0].Label != "Cut" || entries[0].Action.Name != "editor.cut" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if !entries[2].Separator {
		t.Error("third entry should be a separator")
	}
	if entries[0].Action.Source != input.SourceMenu {
		t.Error("entry actions should carry the menu source")
	}
	if m.IsEmpty() {
		t.Error("menu should not be empty")
	}
}

func TestBuildWhen(t *testing.T) {
	m := Build(event.NewBus(), func(b *Builder) {
		b.When(true, func(b *Builder) {
			b.Action("Shown", input.Action{Name: "a"})
		}).When(false, func(b *Builder) {
			b.Action("Hidden", input.Action{Name: "b"})
		})
	})

	if len(m.Entries()) != 1 {
		t.Fatalf("entries = %d, want 1", len(m.Entries()))
	}
	if m.Entries()[0].Label != "Shown" {
		t.Errorf("entry = %q, want Shown", m.Entries()[0].Label)
	}
}

func TestBuildContext(t *testing.T) {
	scope := focus.NewHandle("panel")
	m := Build(event.NewBus(), func(b *Builder) {
		b.Action("Cut", input.Action{Name: "editor.cut"}).Context(scope)
	})
	if m.Context() != scope {
		t.Error("context scope not bound")
	}
}

func TestNavigationSkipsSeparators(t *testing.T) {
	m := buildTestMenu(event.NewBus())

	if m.Selected() != 0 {
		t.Fatalf("initial selection = %d, want 0", m.Selected())
	}

	m.SelectNext()
	if m.Selected() != 1 {
		t.Errorf("after next = %d, want 1", m.Selected())
	}
	m.SelectNext() // skips the separator
	if m.Selected() != 3 {
		t.Errorf("after next = %d, want 3", m.Selected())
	}
	m.SelectNext() // wraps to top
	if m.Selected() != 0 {
		t.Errorf("after wrap = %d, want 0", m.Selected())
	}
	m.SelectPrev() // wraps back to bottom
	if m.Selected() != 3 {
		t.Errorf("after prev wrap = %d, want 3", m.Selected())
	}
}

func TestConfirmDispatchesAndDismisses(t *testing.T) {
	bus := event.NewBus()
	m := buildTestMenu(bus)

	dismissed := false
	sub := m.OnDismiss(func() { dismissed = true })
	defer sub.Cancel()

	m.SelectNext()
	action := m.Confirm()
	if action == nil || action.Name != "editor.copy" {
		t.Fatalf("Confirm() = %v, want editor.copy", action)
	}
	if !dismissed {
		t.Error("confirm should dismiss the menu")
	}
	if !m.IsDismissed() {
		t.Error("menu should report dismissed")
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	bus := event.NewBus()
	m := buildTestMenu(bus)

	count := 0
	sub := m.OnDismiss(func() { count++ })
	defer sub.Cancel()

	m.Dismiss()
	m.Dismiss()
	if count != 1 {
		t.Errorf("dismiss handler ran %d times, want 1", count)
	}
}

func TestOnDismissIgnoresOtherMenus(t *testing.T) {
	bus := event.NewBus()
	first := buildTestMenu(bus)
	second := buildTestMenu(bus)

	firstDismissed := false
	sub := first.OnDismiss(func() { firstDismissed = true })
	defer sub.Cancel()

	second.Dismiss()
	if firstDismissed {
		t.Error("dismissing one menu fired another menu's handler")
	}
}

func TestHandleKey(t *testing.T) {
	bus := event.NewBus()
	m := buildTestMenu(bus)

	if a := m.HandleKey(key.Event{Key: key.KeyDown}); a != nil {
		t.Errorf("down returned action %v", a)
	}
	if m.Selected() != 1 {
		t.Errorf("selection = %d, want 1", m.Selected())
	}

	if a := m.HandleKey(key.Event{Key: key.KeyUp}); a != nil {
		t.Errorf("up returned action %v", a)
	}

	action := m.HandleKey(key.Event{Key: key.KeyEnter})
	if action == nil || action.Name != "editor.cut" {
		t.Errorf("enter = %v, want editor.cut", action)
	}
}

func TestHandleKeyEscapeDismisses(t *testing.T) {
	bus := event.NewBus()
	m := buildTestMenu(bus)

	if a := m.HandleKey(key.Event{Key: key.KeyEscape}); a != nil {
		t.Errorf("escape returned action %v", a)
	}
	if !m.IsDismissed() {
		t.Error("escape should dismiss")
	}
}

func TestEmptyMenuNavigation(t *testing.T) {
	m := Build(event.NewBus(), nil)
	if !m.IsEmpty() {
		t.Fatal("menu should be empty")
	}
	if m.Selected() != -1 {
		t.Errorf("selection = %d, want -1", m.Selected())
	}
	m.SelectNext()
	if m.Confirm() != nil {
		t.Error("confirm on empty menu should return nil")
	}
}
