// Package app wires kestrel's components together and runs the main
// event loop.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kestrel-editor/kestrel/internal/config"
	"github.com/kestrel-editor/kestrel/internal/dispatcher"
	"github.com/kestrel-editor/kestrel/internal/display"
	"github.com/kestrel-editor/kestrel/internal/editor"
	"github.com/kestrel-editor/kestrel/internal/event"
	"github.com/kestrel-editor/kestrel/internal/focus"
	"github.com/kestrel-editor/kestrel/internal/input/mouse"
	"github.com/kestrel-editor/kestrel/internal/menu"
	"github.com/kestrel-editor/kestrel/internal/plugin/luamenu"
	"github.com/kestrel-editor/kestrel/internal/term"
	"github.com/kestrel-editor/kestrel/internal/workspace"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the default
	// location; a missing file uses built-in defaults.
	ConfigPath string

	// WorkspacePath is the project directory. Empty leaves the editor
	// without a workspace.
	WorkspacePath string

	// File is the file to open.
	File string

	// MenuScript is an optional Lua script that takes over context
	// menu assembly.
	MenuScript string

	// LogLevel sets logging verbosity.
	LogLevel string

	// LogOutput is where log lines go. Nil means stderr.
	LogOutput io.Writer

	// WatchConfig enables live reload of the config file.
	WatchConfig bool
}

// Application coordinates the editor, terminal, and dispatcher.
type Application struct {
	opts Options
	log  *Logger

	cfg atomic.Pointer[config.Config]

	bus      *event.Bus
	focusMgr *focus.Manager
	disp     *dispatcher.Dispatcher
	editor   *editor.Editor
	mouse    *mouse.Handler
	terminal *term.Terminal

	menuProvider *luamenu.Provider
	watcher      *config.Watcher

	theme menu.Theme

	// menuBounds is where the open menu was last drawn, for hit
	// testing. Zero when no menu is open.
	menuBounds menu.Rect

	// scroll is the topmost visible document line.
	scroll int

	clipboard string
	dirty     bool
	quit      bool
}

// New builds an application from options. The terminal is not touched
// until Run.
func New(opts Options) (*Application, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	app := &Application{
		opts:     opts,
		log:      NewLogger(ParseLogLevel(opts.LogLevel), opts.LogOutput),
		bus:      event.NewBus(),
		focusMgr: focus.NewManager(),
	}
	app.cfg.Store(cfg)

	snap, err := loadSnapshot(opts.File, cfg.Editor.TabWidth)
	if err != nil {
		return nil, err
	}

	app.editor = editor.New(app.focusMgr, app.bus, snap)
	app.editor.SetFilePath(opts.File)
	app.editor.Focus()

	if opts.WorkspacePath != "" {
		ws, err := workspace.NewFromPath(opts.WorkspacePath)
		if err != nil {
			return nil, fmt.Errorf("opening workspace: %w", err)
		}
		app.editor.SetWorkspace(ws)
	}

	app.mouse = mouse.NewHandler(mouseConfig(cfg.Mouse))

	app.theme, err = menu.ParseTheme(menuColors(cfg.Menu.Colors))
	if err != nil {
		return nil, err
	}

	if opts.MenuScript != "" {
		provider, err := luamenu.LoadFile(opts.MenuScript)
		if err != nil {
			return nil, err
		}
		app.menuProvider = provider
		app.editor.SetCustomContextMenu(provider.ContextMenuBuilder(app.bus))
		app.log.Info("menu script loaded: %s", opts.MenuScript)
	}

	app.disp = dispatcher.New()
	app.registerHandlers()
	app.subscribe()

	if opts.WatchConfig {
		app.watcher, err = config.Watch(path, app.applyConfig, func(err error) {
			app.log.Warn("config reload failed: %v", err)
		})
		if err != nil {
			return nil, fmt.Errorf("watching config: %w", err)
		}
	}

	return app, nil
}

// Editor returns the editing surface.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.disp
}

// Config returns the current configuration.
func (app *Application) Config() *config.Config {
	return app.cfg.Load()
}

// Clipboard returns the internal clipboard contents.
func (app *Application) Clipboard() string {
	return app.clipboard
}

// Close releases resources held outside the terminal.
func (app *Application) Close() {
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	if app.menuProvider != nil {
		app.menuProvider.Close()
	}
}

// applyConfig installs a freshly reloaded configuration. Called from
// the watcher goroutine; only atomically swapped state and the
// lock-guarded mouse handler are touched here.
func (app *Application) applyConfig(cfg *config.Config) {
	app.cfg.Store(cfg)
	app.mouse.SetConfig(mouseConfig(cfg.Mouse))
	app.log.Info("config reloaded")
}

// subscribe wires bus topics into the application.
func (app *Application) subscribe() {
	app.bus.Subscribe(event.TopicEditorRedraw, func(any) {
		app.dirty = true
	})
}

// loadSnapshot reads a file into a text snapshot. No file yields an
// empty buffer.
func loadSnapshot(path string, tabWidth int) (*display.TextSnapshot, error) {
	snap := display.NewTextSnapshot("")
	snap.Tabs = tabWidth
	if path == "" {
		return snap, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return snap, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	snap.Lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	return snap, nil
}

func mouseConfig(m config.Mouse) mouse.Config {
	return mouse.Config{
		DoubleClickTime:     m.DoubleClickTime(),
		DoubleClickDistance: m.DoubleClickDistance,
		ScrollLines:         m.ScrollLines,
		EnableDragSelection: m.DragSelection,
		EnableContextMenu:   m.ContextMenu,
	}
}

func menuColors(c config.MenuColors) menu.ThemeColors {
	return menu.ThemeColors{
		Background:  c.Background,
		Foreground:  c.Foreground,
		SelectionBg: c.SelectedBackground,
		SelectionFg: c.SelectedForeground,
		SeparatorFg: c.Separator,
		BorderFg:    c.Border,
	}
}
