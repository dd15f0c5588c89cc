package mouse

import (
	"testing"
	"time"

	"github.com/kestrel-editor/kestrel/internal/input/key"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
		{ButtonScrollUp, "scroll-up"},
		{ButtonScrollDown, "scroll-down"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPositionDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Position
		expected int
	}{
		{"same", Position{3, 4}, Position{3, 4}, 0},
		{"horizontal", Position{0, 0}, Position{5, 0}, 5},
		{"diagonal", Position{1, 1}, Position{4, 5}, 7},
		{"negative", Position{5, 5}, Position{2, 1}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); got != tt.expected {
				t.Errorf("Distance() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestRightClickEmitsContextMenuDeploy(t *testing.T) {
	h := NewHandler(DefaultConfig())

	action := h.Handle(Event{
		Position:  Position{X: 12, Y: 7},
		Button:    ButtonRight,
		Action:    ActionPress,
		Timestamp: time.Now(),
	})

	if action == nil {
		t.Fatal("right press should produce an action")
	}
	if action.Name != "contextmenu.deploy" {
		t.Errorf("action = %q, want contextmenu.deploy", action.Name)
	}
	if x := action.Args.GetInt("x"); x != 12 {
		t.Errorf("x = %d, want 12", x)
	}
	if y := action.Args.GetInt("y"); y != 7 {
		t.Errorf("y = %d, want 7", y)
	}
}

func TestRightClickDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableContextMenu = false
	h := NewHandler(cfg)

	action := h.Handle(Event{
		Button:    ButtonRight,
		Action:    ActionPress,
		Timestamp: time.Now(),
	})
	if action != nil {
		t.Errorf("disabled context menu produced action %q", action.Name)
	}
}

func TestLeftClickSequence(t *testing.T) {
	h := NewHandler(DefaultConfig())
	now := time.Now()

	press := func(at time.Time) string {
		a := h.Handle(Event{
			Position:  Position{X: 1, Y: 1},
			Button:    ButtonLeft,
			Action:    ActionPress,
			Timestamp: at,
		})
		if a == nil {
			return ""
		}
		return a.Name
	}

	if got := press(now); got != "cursor.setPosition" {
		t.Errorf("first click = %q, want cursor.setPosition", got)
	}
	if got := press(now.Add(100 * time.Millisecond)); got != "selection.word" {
		t.Errorf("second click = %q, want selection.word", got)
	}
	if got := press(now.Add(200 * time.Millisecond)); got != "selection.line" {
		t.Errorf("third click = %q, want selection.line", got)
	}
	// A slow fourth click starts a new sequence.
	if got := press(now.Add(2 * time.Second)); got != "cursor.setPosition" {
		t.Errorf("slow click = %q, want cursor.setPosition", got)
	}
}

func TestShiftClickExtendsSelection(t *testing.T) {
	h := NewHandler(DefaultConfig())

	a := h.Handle(Event{
		Position:  Position{X: 3, Y: 3},
		Button:    ButtonLeft,
		Modifiers: key.ModShift,
		Action:    ActionPress,
		Timestamp: time.Now(),
	})
	if a == nil || a.Name != "selection.extendTo" {
		t.Errorf("shift-click = %v, want selection.extendTo", a)
	}
}

func TestDragSelection(t *testing.T) {
	h := NewHandler(DefaultConfig())
	now := time.Now()

	h.Handle(Event{Position: Position{X: 2, Y: 2}, Button: ButtonLeft, Action: ActionPress, Timestamp: now})

	first := h.Handle(Event{Position: Position{X: 5, Y: 2}, Button: ButtonLeft, Action: ActionDrag, Timestamp: now})
	if first == nil || first.Name != "selection.start" {
		t.Fatalf("first drag = %v, want selection.start", first)
	}
	// Selection starts at the press position, not the drag position.
	if x := first.Args.GetInt("x"); x != 2 {
		t.Errorf("selection.start x = %d, want 2", x)
	}

	second := h.Handle(Event{Position: Position{X: 8, Y: 3}, Button: ButtonLeft, Action: ActionDrag, Timestamp: now})
	if second == nil || second.Name != "selection.extendTo" {
		t.Fatalf("second drag = %v, want selection.extendTo", second)
	}
	if !h.IsDragging() {
		t.Error("handler should report dragging")
	}

	h.Handle(Event{Position: Position{X: 8, Y: 3}, Button: ButtonLeft, Action: ActionRelease, Timestamp: now})
	if h.IsDragging() {
		t.Error("drag should end on release")
	}
}

func TestScroll(t *testing.T) {
	h := NewHandler(DefaultConfig())

	a := h.Handle(Event{Button: ButtonScrollDown, Action: ActionPress, Timestamp: time.Now()})
	if a == nil || a.Name != "scroll.down" {
		t.Fatalf("scroll = %v, want scroll.down", a)
	}
	if a.Count != DefaultConfig().ScrollLines {
		t.Errorf("scroll count = %d, want %d", a.Count, DefaultConfig().ScrollLines)
	}
}
