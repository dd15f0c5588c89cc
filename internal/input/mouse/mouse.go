// Package mouse decodes pointer events into editor actions.
package mouse

import (
	"sync"
	"time"

	"github.com/kestrel-editor/kestrel/internal/input"
	"github.com/kestrel-editor/kestrel/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two
// positions. Good enough for click proximity detection.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event represents a mouse input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action is the type of mouse action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Config configures mouse handler behavior.
type Config struct {
	// DoubleClickTime is the maximum time between clicks for a double-click.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum distance between clicks for a double-click.
	DoubleClickDistance int

	// ScrollLines is the number of lines to scroll per wheel tick.
	ScrollLines int

	// EnableDragSelection enables selection via drag.
	EnableDragSelection bool

	// EnableContextMenu enables right-click context menu deployment.
	EnableContextMenu bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 4,
		ScrollLines:         3,
		EnableDragSelection: true,
		EnableContextMenu:   true,
	}
}

// Handler processes mouse events and generates editor actions.
type Handler struct {
	mu     sync.Mutex
	config Config

	click *clickTracker
	drag  *dragTracker
}

// NewHandler creates a new mouse handler with the given configuration.
func NewHandler(config Config) *Handler {
	return &Handler{
		config: config,
		click:  newClickTracker(config.DoubleClickTime, config.DoubleClickDistance),
		drag:   newDragTracker(),
	}
}

// SetConfig replaces the handler configuration.
func (h *Handler) SetConfig(config Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config = config
	h.click.maxTime = config.DoubleClickTime
	h.click.maxDistance = config.DoubleClickDistance
}

// Handle processes a mouse event and returns an action (or nil).
func (h *Handler) Handle(event Event) *input.Action {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Action {
	case ActionPress:
		return h.handlePress(event)
	case ActionRelease:
		return h.handleRelease(event)
	case ActionDrag:
		return h.handleDrag(event)
	}

	return nil
}

func (h *Handler) handlePress(event Event) *input.Action {
	if event.Button.IsScroll() {
		return h.handleScroll(event)
	}

	switch event.Button {
	case ButtonLeft:
		return h.handleLeftPress(event)

	case ButtonRight:
		if h.config.EnableContextMenu {
			return positionAction("contextmenu.deploy", event.Position)
		}
	}

	return nil
}

func (h *Handler) handleLeftPress(event Event) *input.Action {
	clickCount := h.click.recordClick(event.Position, event.Timestamp)
	h.drag.start(event.Position, event.Button)

	switch clickCount {
	case 1:
		if event.Modifiers.HasShift() {
			return positionAction("selection.extendTo", event.Position)
		}
		if event.Modifiers.HasCtrl() || event.Modifiers.HasMeta() {
			return positionAction("cursor.add", event.Position)
		}
		return positionAction("cursor.setPosition", event.Position)
	case 2:
		return positionAction("selection.word", event.Position)
	case 3:
		return positionAction("selection.line", event.Position)
	}

	return nil
}

// handleRelease cleans up drag state. Actions are generated on press,
// not release.
func (h *Handler) handleRelease(_ Event) *input.Action {
	h.drag.end()
	return nil
}

func (h *Handler) handleDrag(event Event) *input.Action {
	if !h.config.EnableDragSelection {
		return nil
	}
	if h.drag.button != ButtonLeft {
		return nil
	}

	if !h.drag.selecting {
		h.drag.selecting = true
		return positionAction("selection.start", h.drag.startPos)
	}

	h.drag.update(event.Position)
	return positionAction("selection.extendTo", event.Position)
}

func (h *Handler) handleScroll(event Event) *input.Action {
	name := "scroll.up"
	if event.Button == ButtonScrollDown {
		name = "scroll.down"
	}
	return &input.Action{
		Name:   name,
		Source: input.SourceMouse,
		Count:  h.config.ScrollLines,
	}
}

// Reset clears all handler state.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.click.reset()
	h.drag.end()
}

// IsDragging returns true if a drag operation is in progress.
func (h *Handler) IsDragging() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.active
}

// positionAction builds an action carrying screen coordinates.
func positionAction(name string, pos Position) *input.Action {
	return &input.Action{
		Name:   name,
		Source: input.SourceMouse,
		Args: input.ActionArgs{
			Extra: map[string]interface{}{
				"x": pos.X,
				"y": pos.Y,
			},
		},
	}
}
