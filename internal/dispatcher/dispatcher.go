// Package dispatcher routes input actions to their handlers using
// namespace prefixes, so "contextmenu.deploy" finds whatever handler
// registered the "contextmenu" namespace.
package dispatcher

import (
	"fmt"

	"github.com/kestrel-editor/kestrel/internal/input"
)

// Result is the outcome of dispatching a single action.
type Result struct {
	// Handled reports whether a handler accepted the action.
	Handled bool

	// Err is the handler error, if any.
	Err error

	// Redraw requests a screen repaint after the action.
	Redraw bool
}

// Handler processes all actions within one namespace.
type Handler interface {
	// Namespace returns the action prefix this handler owns.
	Namespace() string

	// CanHandle reports whether the handler accepts the full action name.
	CanHandle(name string) bool

	// Handle executes the action.
	Handle(action input.Action) Result
}

// Dispatcher routes actions to registered namespace handlers.
type Dispatcher struct {
	router *Router
}

// New creates a dispatcher with an empty routing table.
func New() *Dispatcher {
	return &Dispatcher{router: NewRouter()}
}

// Register adds a handler under its own namespace.
func (d *Dispatcher) Register(h Handler) {
	d.router.RegisterNamespace(h.Namespace(), h)
}

// Unregister removes the handler for a namespace.
func (d *Dispatcher) Unregister(namespace string) {
	d.router.UnregisterNamespace(namespace)
}

// Router returns the underlying router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Dispatch routes a single action to its handler. A panicking handler
// is recovered and reported as a Result error rather than taking the
// event loop down.
func (d *Dispatcher) Dispatch(action input.Action) (result Result) {
	if action.Name == "" {
		return Result{Err: ErrInvalidAction}
	}

	h := d.router.Route(action.Name)
	if h == nil {
		return Result{Err: ErrNoHandler}
	}

	defer func() {
		if r := recover(); r != nil {
			result = Result{Err: fmt.Errorf("%w: %q: %v", ErrPanic, action.Name, r)}
		}
	}()

	return h.Handle(action)
}

// CanDispatch reports whether any handler would accept the action.
func (d *Dispatcher) CanDispatch(name string) bool {
	return d.router.CanRoute(name)
}
