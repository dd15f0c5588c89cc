package mouse

// dragTracker tracks mouse drag state.
type dragTracker struct {
	// active indicates a drag is in progress.
	active bool

	// selecting indicates the drag is creating a selection.
	selecting bool

	// button is the mouse button being held.
	button Button

	// startPos is where the drag started.
	startPos Position

	// currentPos is the current drag position.
	currentPos Position
}

func newDragTracker() *dragTracker {
	return &dragTracker{}
}

func (t *dragTracker) start(pos Position, button Button) {
	t.active = true
	t.selecting = false
	t.button = button
	t.startPos = pos
	t.currentPos = pos
}

func (t *dragTracker) update(pos Position) {
	if t.active {
		t.currentPos = pos
	}
}

func (t *dragTracker) end() {
	t.active = false
	t.selecting = false
	t.button = ButtonNone
	t.startPos = Position{}
	t.currentPos = Position{}
}
