package dispatcher

import (
	"sort"
	"strings"
	"sync"
)

// Router maps namespace prefixes to handlers. Lookup is O(1) on the
// prefix before the first dot.
type Router struct {
	mu         sync.RWMutex
	namespaces map[string]Handler
	fallback   Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]Handler),
	}
}

// RegisterNamespace registers a handler for all actions in a namespace.
func (r *Router) RegisterNamespace(namespace string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// SetFallback sets the handler for actions no namespace claims.
func (r *Router) SetFallback(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route finds the handler for an action name, or nil.
func (r *Router) Route(name string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ns := extractNamespace(name); ns != "" {
		if h, ok := r.namespaces[ns]; ok && h.CanHandle(name) {
			return h
		}
	}
	return r.fallback
}

// CanRoute reports whether the router can handle the action.
func (r *Router) CanRoute(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ns := extractNamespace(name); ns != "" {
		if h, ok := r.namespaces[ns]; ok {
			return h.CanHandle(name)
		}
	}
	return r.fallback != nil
}

// HasNamespace reports whether a handler owns the namespace.
func (r *Router) HasNamespace(namespace string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.namespaces[namespace]
	return ok
}

// Namespaces returns all registered namespace names, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractNamespace returns the prefix before the first dot, or "".
func extractNamespace(name string) string {
	idx := strings.Index(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// ExtractActionName strips the namespace from a full action name.
func ExtractActionName(fullName string) string {
	idx := strings.Index(fullName, ".")
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}
