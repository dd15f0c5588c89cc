// Package config loads kestrel's TOML configuration and validates the
// sections the editor consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Mouse configures pointer input handling.
type Mouse struct {
	// DoubleClickMillis is the maximum gap between clicks of a
	// multi-click sequence.
	DoubleClickMillis int `toml:"double_click_ms"`

	// DoubleClickDistance is the maximum cell distance between clicks
	// of a multi-click sequence.
	DoubleClickDistance int `toml:"double_click_distance"`

	// ScrollLines is the number of lines per wheel tick.
	ScrollLines int `toml:"scroll_lines"`

	// DragSelection enables selection by dragging.
	DragSelection bool `toml:"drag_selection"`

	// ContextMenu enables the secondary-click context menu.
	ContextMenu bool `toml:"context_menu"`
}

// DoubleClickTime returns the multi-click window as a duration.
func (m Mouse) DoubleClickTime() time.Duration {
	return time.Duration(m.DoubleClickMillis) * time.Millisecond
}

// Menu configures context menu appearance.
type Menu struct {
	// MaxWidth caps menu width in cells. Zero means screen-limited.
	MaxWidth int `toml:"max_width"`

	// Colors overrides the default theme. Empty fields keep defaults.
	Colors MenuColors `toml:"colors"`
}

// MenuColors holds hex color overrides for the menu theme.
type MenuColors struct {
	Background         string `toml:"background"`
	Foreground         string `toml:"foreground"`
	SelectedBackground string `toml:"selected_background"`
	SelectedForeground string `toml:"selected_foreground"`
	Border             string `toml:"border"`
	Separator          string `toml:"separator"`
}

// Editor configures the editing surface.
type Editor struct {
	// TabWidth is the display width of a tab stop.
	TabWidth int `toml:"tab_width"`
}

// Config is the root of kestrel's configuration file.
type Config struct {
	Editor Editor `toml:"editor"`
	Mouse  Mouse  `toml:"mouse"`
	Menu   Menu   `toml:"menu"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: Editor{
			TabWidth: 4,
		},
		Mouse: Mouse{
			DoubleClickMillis:   500,
			DoubleClickDistance: 2,
			ScrollLines:         3,
			DragSelection:       true,
			ContextMenu:         true,
		},
		Menu: Menu{
			MaxWidth: 60,
		},
	}
}

// Load reads the configuration file at path on top of the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks section values for out-of-range settings.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width %d out of range [1,16]", c.Editor.TabWidth)
	}
	if c.Mouse.DoubleClickMillis < 0 {
		return fmt.Errorf("mouse.double_click_ms must not be negative")
	}
	if c.Mouse.ScrollLines < 1 {
		return fmt.Errorf("mouse.scroll_lines must be at least 1")
	}
	if c.Menu.MaxWidth < 0 {
		return fmt.Errorf("menu.max_width must not be negative")
	}
	return nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "kestrel", "config.toml")
	}
	return "kestrel.toml"
}
