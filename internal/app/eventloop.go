package app

import (
	"errors"

	"github.com/kestrel-editor/kestrel/internal/dispatcher"
	"github.com/kestrel-editor/kestrel/internal/input"
	"github.com/kestrel-editor/kestrel/internal/input/key"
	"github.com/kestrel-editor/kestrel/internal/input/mouse"
	"github.com/kestrel-editor/kestrel/internal/term"
)

// Run takes over the terminal and processes events until quit.
func (app *Application) Run(t *term.Terminal) error {
	app.terminal = t
	if err := t.Init(); err != nil {
		return err
	}
	defer t.Fini()

	app.draw()
	for !app.quit {
		ev := t.PollEvent()
		app.handleEvent(ev)
		if app.dirty {
			app.draw()
		}
	}
	return nil
}

// Quit stops the event loop after the current iteration.
func (app *Application) Quit() {
	app.quit = true
	if app.terminal != nil {
		app.terminal.Interrupt()
	}
}

func (app *Application) handleEvent(ev term.Event) {
	switch ev.Type {
	case term.EventResize:
		app.dirty = true
	case term.EventKey:
		app.handleKey(ev.Key)
	case term.EventMouse:
		app.handleMouse(ev.Mouse)
	}
}

// handleKey routes keyboard input. An open context menu captures all
// keys first.
func (app *Application) handleKey(kev key.Event) {
	if mcm := app.editor.MouseContextMenu(); mcm != nil {
		if action := mcm.Menu().HandleKey(kev); action != nil {
			app.dispatch(*action)
		}
		app.dirty = true
		return
	}

	if kev.Rune == 'q' && kev.Modifiers.HasCtrl() {
		app.quit = true
	}
}

// handleMouse routes pointer input. An open context menu takes hover,
// click, and dismissal before the mouse handler sees anything.
func (app *Application) handleMouse(mev mouse.Event) {
	if mcm := app.editor.MouseContextMenu(); mcm != nil {
		m := mcm.Menu()

		switch mev.Action {
		case mouse.ActionMove, mouse.ActionDrag:
			if idx := m.HitTest(app.menuBounds, mev.Position.X, mev.Position.Y); idx >= 0 {
				m.Select(idx)
				app.dirty = true
			}
			return

		case mouse.ActionPress:
			if mev.Button.IsScroll() {
				break
			}
			if app.menuBounds.Contains(mev.Position.X, mev.Position.Y) {
				if mev.Button == mouse.ButtonLeft {
					if idx := m.HitTest(app.menuBounds, mev.Position.X, mev.Position.Y); idx >= 0 {
						m.Select(idx)
						if action := m.Confirm(); action != nil {
							app.dispatch(*action)
						}
					}
					app.dirty = true
				}
				return
			}

			// A press outside closes the menu. A secondary press
			// falls through so a fresh menu deploys at the new spot.
			m.Dismiss()
			app.dirty = true
			if mev.Button != mouse.ButtonRight {
				return
			}
		}
	}

	if action := app.mouse.Handle(mev); action != nil {
		app.dispatch(*action)
	}
}

func (app *Application) dispatch(action input.Action) {
	res := app.disp.Dispatch(action)
	switch {
	case errors.Is(res.Err, dispatcher.ErrNoHandler):
		app.log.Debug("unhandled action: %s", action.Name)
	case res.Err != nil:
		app.log.Warn("action %s failed: %v", action.Name, res.Err)
	}
	if res.Redraw {
		app.dirty = true
	}
}
