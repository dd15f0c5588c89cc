package dispatcher

import (
	"errors"
	"testing"

	"github.com/kestrel-editor/kestrel/internal/input"
)

type stubHandler struct {
	namespace string
	accept    func(string) bool
	handle    func(input.Action) Result
	calls     []string
}

func (h *stubHandler) Namespace() string { return h.namespace }

func (h *stubHandler) CanHandle(name string) bool {
	if h.accept != nil {
		return h.accept(name)
	}
	return true
}

func (h *stubHandler) Handle(action input.Action) Result {
	h.calls = append(h.calls, action.Name)
	if h.handle != nil {
		return h.handle(action)
	}
	return Result{Handled: true}
}

func TestDispatchRoutesByNamespace(t *testing.T) {
	d := New()
	cm := &stubHandler{namespace: "contextmenu"}
	mn := &stubHandler{namespace: "menu"}
	d.Register(cm)
	d.Register(mn)

	res := d.Dispatch(input.Action{Name: "contextmenu.deploy"})
	if !res.Handled || res.Err != nil {
		t.Fatalf("result = %+v", res)
	}
	if len(cm.calls) != 1 || cm.calls[0] != "contextmenu.deploy" {
		t.Errorf("contextmenu calls = %v", cm.calls)
	}
	if len(mn.calls) != 0 {
		t.Errorf("menu handler should not be called, got %v", mn.calls)
	}
}

func TestDispatchErrors(t *testing.T) {
	d := New()

	tests := []struct {
		name   string
		action input.Action
		want   error
	}{
		{"empty name", input.Action{}, ErrInvalidAction},
		{"unknown namespace", input.Action{Name: "nope.op"}, ErrNoHandler},
		{"no namespace", input.Action{Name: "bare"}, ErrNoHandler},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Dispatch(tt.action)
			if !errors.Is(res.Err, tt.want) {
				t.Errorf("err = %v, want %v", res.Err, tt.want)
			}
		})
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	d := New()
	d.Register(&stubHandler{
		namespace: "boom",
		handle:    func(input.Action) Result { panic("exploded") },
	})

	res := d.Dispatch(input.Action{Name: "boom.now"})
	if !errors.Is(res.Err, ErrPanic) {
		t.Errorf("err = %v, want ErrPanic", res.Err)
	}
}

func TestDispatchSelectiveHandler(t *testing.T) {
	d := New()
	d.Register(&stubHandler{
		namespace: "menu",
		accept:    func(name string) bool { return name == "menu.dismiss" },
	})

	if !d.CanDispatch("menu.dismiss") {
		t.Error("menu.dismiss should be dispatchable")
	}
	if d.CanDispatch("menu.unknown") {
		t.Error("menu.unknown should not be dispatchable")
	}
	if res := d.Dispatch(input.Action{Name: "menu.unknown"}); !errors.Is(res.Err, ErrNoHandler) {
		t.Errorf("err = %v, want ErrNoHandler", res.Err)
	}
}

func TestRouterFallback(t *testing.T) {
	r := NewRouter()
	fb := &stubHandler{namespace: ""}
	r.SetFallback(fb)

	if got := r.Route("anything.at.all"); got != fb {
		t.Error("unclaimed action should hit the fallback")
	}
	if got := r.Route("bare"); got != fb {
		t.Error("namespace-free action should hit the fallback")
	}
}

func TestExtractActionName(t *testing.T) {
	tests := []struct {
		full, want string
	}{
		{"contextmenu.deploy", "deploy"},
		{"a.b.c", "b.c"},
		{"bare", "bare"},
	}
	for _, tt := range tests {
		if got := ExtractActionName(tt.full); got != tt.want {
			t.Errorf("ExtractActionName(%q) = %q, want %q", tt.full, got, tt.want)
		}
	}
}
