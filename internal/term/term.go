// Package term wraps the tcell terminal screen and translates its raw
// events into editor input types.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal owns the tcell screen for the life of the process.
type Terminal struct {
	mu         sync.Mutex
	screen     tcell.Screen
	translator Translator
}

// New creates a terminal on the real tty.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewWithScreen wraps an existing screen. Used with tcell's
// simulation screen in tests.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init puts the terminal into raw mode with mouse reporting on.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	return nil
}

// Fini restores the terminal.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Screen exposes the underlying tcell screen for drawing.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the terminal dimensions in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// Clear erases the screen buffer.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

// PollEvent blocks for the next translated event. Returns an
// EventNone event when the screen is finalized.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return t.translator.Translate(ev)
}

// Interrupt wakes a blocked PollEvent.
func (t *Terminal) Interrupt() {
	t.screen.PostEventWait(tcell.NewEventInterrupt(nil))
}

// Suspend releases the terminal, for shelling out.
func (t *Terminal) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Suspend()
}

// Resume reclaims the terminal after Suspend.
func (t *Terminal) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Resume()
}
