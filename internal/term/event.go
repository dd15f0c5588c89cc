package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kestrel-editor/kestrel/internal/input/key"
	"github.com/kestrel-editor/kestrel/internal/input/mouse"
)

// EventType discriminates translated terminal events.
type EventType uint8

const (
	// EventNone is an event the editor does not consume.
	EventNone EventType = iota
	// EventKey is a keyboard event.
	EventKey
	// EventMouse is a pointer event.
	EventMouse
	// EventResize is a terminal size change.
	EventResize
)

// Event is a terminal event translated into editor input types.
type Event struct {
	Type  EventType
	Key   key.Event
	Mouse mouse.Event

	// Width and Height are valid for EventResize.
	Width  int
	Height int
}

// Translator converts tcell events into editor events. tcell reports
// mouse state as button-mask snapshots; the translator keeps the
// previous mask so it can derive press, release, move, and drag
// transitions.
type Translator struct {
	buttons tcell.ButtonMask
}

// Translate converts one tcell event.
func (tr *Translator) Translate(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: translateKey(e)}
	case *tcell.EventMouse:
		return tr.translateMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	default:
		return Event{Type: EventNone}
	}
}

func (tr *Translator) translateMouse(e *tcell.EventMouse) Event {
	x, y := e.Position()
	mev := mouse.Event{
		Position:  mouse.Position{X: x, Y: y},
		Modifiers: translateMod(e.Modifiers()),
		Timestamp: time.Now(),
	}

	cur := e.Buttons()
	prev := tr.buttons

	// Wheel bits are momentary, not part of the held-button state.
	switch {
	case cur&tcell.WheelUp != 0:
		mev.Button = mouse.ButtonScrollUp
		mev.Action = mouse.ActionPress
		return Event{Type: EventMouse, Mouse: mev}
	case cur&tcell.WheelDown != 0:
		mev.Button = mouse.ButtonScrollDown
		mev.Action = mouse.ActionPress
		return Event{Type: EventMouse, Mouse: mev}
	}

	tr.buttons = cur

	if pressed := cur &^ prev; pressed != 0 {
		mev.Button = translateButton(pressed)
		mev.Action = mouse.ActionPress
		return Event{Type: EventMouse, Mouse: mev}
	}
	if released := prev &^ cur; released != 0 {
		mev.Button = translateButton(released)
		mev.Action = mouse.ActionRelease
		return Event{Type: EventMouse, Mouse: mev}
	}

	// No transition: a motion event, dragging if a button is held.
	if cur != 0 {
		mev.Button = translateButton(cur)
		mev.Action = mouse.ActionDrag
	} else {
		mev.Button = mouse.ButtonNone
		mev.Action = mouse.ActionMove
	}
	return Event{Type: EventMouse, Mouse: mev}
}

func translateButton(mask tcell.ButtonMask) mouse.Button {
	switch {
	case mask&tcell.ButtonPrimary != 0:
		return mouse.ButtonLeft
	case mask&tcell.ButtonSecondary != 0:
		return mouse.ButtonRight
	case mask&tcell.ButtonMiddle != 0:
		return mouse.ButtonMiddle
	default:
		return mouse.ButtonNone
	}
}

func translateKey(e *tcell.EventKey) key.Event {
	kev := key.Event{Modifiers: translateMod(e.Modifiers())}
	switch e.Key() {
	case tcell.KeyRune:
		kev.Rune = e.Rune()
	case tcell.KeyUp:
		kev.Key = key.KeyUp
	case tcell.KeyDown:
		kev.Key = key.KeyDown
	case tcell.KeyLeft:
		kev.Key = key.KeyLeft
	case tcell.KeyRight:
		kev.Key = key.KeyRight
	case tcell.KeyEnter:
		kev.Key = key.KeyEnter
	case tcell.KeyEscape:
		kev.Key = key.KeyEscape
	case tcell.KeyTab:
		kev.Key = key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		kev.Key = key.KeyBackspace
	default:
		// Control chords arrive as dedicated key codes. Report them
		// as the base rune with the ctrl modifier set.
		if k := e.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			kev.Rune = rune('a' + (k - tcell.KeyCtrlA))
			kev.Modifiers = kev.Modifiers.With(key.ModCtrl)
		}
	}
	return kev
}

func translateMod(m tcell.ModMask) key.Modifier {
	var mod key.Modifier
	if m&tcell.ModShift != 0 {
		mod = mod.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mod = mod.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mod = mod.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mod = mod.With(key.ModMeta)
	}
	return mod
}
