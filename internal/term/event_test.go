package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kestrel-editor/kestrel/internal/input/key"
	"github.com/kestrel-editor/kestrel/internal/input/mouse"
)

func mouseEvent(x, y int, buttons tcell.ButtonMask, mods tcell.ModMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, mods)
}

func TestTranslateRightClickSequence(t *testing.T) {
	var tr Translator

	ev := tr.Translate(mouseEvent(12, 4, tcell.ButtonSecondary, 0))
	if ev.Type != EventMouse {
		t.Fatalf("type = %v, want EventMouse", ev.Type)
	}
	if ev.Mouse.Button != mouse.ButtonRight || ev.Mouse.Action != mouse.ActionPress {
		t.Errorf("press = %v %v", ev.Mouse.Button, ev.Mouse.Action)
	}
	if ev.Mouse.Position != (mouse.Position{X: 12, Y: 4}) {
		t.Errorf("position = %v", ev.Mouse.Position)
	}

	ev = tr.Translate(mouseEvent(12, 4, tcell.ButtonNone, 0))
	if ev.Mouse.Button != mouse.ButtonRight || ev.Mouse.Action != mouse.ActionRelease {
		t.Errorf("release = %v %v", ev.Mouse.Button, ev.Mouse.Action)
	}
}

func TestTranslateDragSequence(t *testing.T) {
	var tr Translator

	tr.Translate(mouseEvent(1, 1, tcell.ButtonPrimary, 0))

	// Motion with the button still held is a drag.
	ev := tr.Translate(mouseEvent(5, 1, tcell.ButtonPrimary, 0))
	if ev.Mouse.Action != mouse.ActionDrag || ev.Mouse.Button != mouse.ButtonLeft {
		t.Errorf("drag = %v %v", ev.Mouse.Button, ev.Mouse.Action)
	}

	tr.Translate(mouseEvent(5, 1, tcell.ButtonNone, 0))

	// Motion with nothing held is a plain move.
	ev = tr.Translate(mouseEvent(6, 2, tcell.ButtonNone, 0))
	if ev.Mouse.Action != mouse.ActionMove || ev.Mouse.Button != mouse.ButtonNone {
		t.Errorf("move = %v %v", ev.Mouse.Button, ev.Mouse.Action)
	}
}

func TestTranslateWheel(t *testing.T) {
	var tr Translator

	ev := tr.Translate(mouseEvent(0, 0, tcell.WheelUp, 0))
	if ev.Mouse.Button != mouse.ButtonScrollUp || ev.Mouse.Action != mouse.ActionPress {
		t.Errorf("wheel up = %v %v", ev.Mouse.Button, ev.Mouse.Action)
	}

	// A wheel tick must not register as a held button.
	ev = tr.Translate(mouseEvent(0, 1, tcell.ButtonNone, 0))
	if ev.Mouse.Action != mouse.ActionMove {
		t.Errorf("after wheel, action = %v, want move", ev.Mouse.Action)
	}
}

func TestTranslateModifiers(t *testing.T) {
	var tr Translator

	ev := tr.Translate(mouseEvent(0, 0, tcell.ButtonPrimary, tcell.ModCtrl|tcell.ModShift))
	if !ev.Mouse.Modifiers.HasCtrl() || !ev.Mouse.Modifiers.HasShift() {
		t.Errorf("modifiers = %v", ev.Mouse.Modifiers)
	}
	if ev.Mouse.Modifiers.HasAlt() || ev.Mouse.Modifiers.HasMeta() {
		t.Errorf("unexpected modifiers: %v", ev.Mouse.Modifiers)
	}
}

func TestTranslateKeys(t *testing.T) {
	var tr Translator

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', 0), key.Event{Rune: 'x'}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, 0), key.Event{Key: key.KeyEscape}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), key.Event{Key: key.KeyEnter}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, 0), key.Event{Key: key.KeyDown}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), key.Event{Key: key.KeyBackspace}},
		{"shift up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), key.Event{Key: key.KeyUp, Modifiers: key.ModShift}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Translate(tt.ev)
			if got.Type != EventKey {
				t.Fatalf("type = %v, want EventKey", got.Type)
			}
			if got.Key != tt.want {
				t.Errorf("key = %+v, want %+v", got.Key, tt.want)
			}
		})
	}
}

func TestTranslateResize(t *testing.T) {
	var tr Translator

	ev := tr.Translate(tcell.NewEventResize(120, 40))
	if ev.Type != EventResize || ev.Width != 120 || ev.Height != 40 {
		t.Errorf("resize = %+v", ev)
	}
}

func TestTranslateUnknownEvent(t *testing.T) {
	var tr Translator

	ev := tr.Translate(tcell.NewEventInterrupt(time.Now()))
	if ev.Type != EventNone {
		t.Errorf("type = %v, want EventNone", ev.Type)
	}
}
