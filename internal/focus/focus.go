// Package focus tracks which UI element currently holds input focus.
//
// Focus is modeled as a tree of handles. Each widget that can receive
// input owns a Handle; container widgets parent the handles of their
// children. The Manager records the single focused handle and answers
// subtree queries, which is what dismissal logic needs to decide whether
// focus ever left a widget.
package focus

import (
	"sync"

	"github.com/google/uuid"
)

// Handle identifies a focusable UI element.
// Handles are immutable after creation; the tree shape is fixed by
// parenting at construction time.
type Handle struct {
	id     string
	name   string
	parent *Handle
}

// NewHandle creates a root focus handle with a descriptive name.
func NewHandle(name string) *Handle {
	return &Handle{
		id:   uuid.NewString(),
		name: name,
	}
}

// Child creates a handle parented under h.
func (h *Handle) Child(name string) *Handle {
	return &Handle{
		id:     uuid.NewString(),
		name:   name,
		parent: h,
	}
}

// ID returns the unique handle identifier.
func (h *Handle) ID() string {
	return h.id
}

// Name returns the descriptive name given at creation.
func (h *Handle) Name() string {
	return h.name
}

// Parent returns the parent handle, or nil for a root.
func (h *Handle) Parent() *Handle {
	return h.parent
}

// Contains reports whether other is h or a descendant of h.
func (h *Handle) Contains(other *Handle) bool {
	for node := other; node != nil; node = node.parent {
		if node == h {
			return true
		}
	}
	return false
}

// Manager tracks the currently focused handle.
type Manager struct {
	mu      sync.RWMutex
	focused *Handle

	// callbacks are notified after every focus change.
	callbacks []func(from, to *Handle)
}

// NewManager creates a focus manager with nothing focused.
func NewManager() *Manager {
	return &Manager{}
}

// Focused returns the currently focused handle, or nil.
func (m *Manager) Focused() *Handle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focused
}

// Focus moves focus to the given handle. Passing nil clears focus.
// Focusing the already-focused handle is a no-op.
func (m *Manager) Focus(h *Handle) {
	m.mu.Lock()
	if m.focused == h {
		m.mu.Unlock()
		return
	}
	from := m.focused
	m.focused = h
	callbacks := m.callbacks
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(from, h)
	}
}

// IsFocused reports whether h is exactly the focused handle.
func (m *Manager) IsFocused(h *Handle) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focused != nil && m.focused == h
}

// ContainsFocused reports whether the focused handle is within h's
// subtree (including h itself).
func (m *Manager) ContainsFocused(h *Handle) bool {
	if h == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.focused == nil {
		return false
	}
	return h.Contains(m.focused)
}

// OnChange registers a callback invoked after each focus change.
func (m *Manager) OnChange(cb func(from, to *Handle)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}
