package key

import "testing"

func TestModifierHas(t *testing.T) {
	m := ModCtrl.With(ModShift)

	if !m.HasCtrl() {
		t.Error("HasCtrl() = false")
	}
	if !m.HasShift() {
		t.Error("HasShift() = false")
	}
	if m.HasAlt() {
		t.Error("HasAlt() = true")
	}
	if m.HasMeta() {
		t.Error("HasMeta() = true")
	}
	if m.IsEmpty() {
		t.Error("IsEmpty() = true")
	}
	if !ModNone.IsEmpty() {
		t.Error("ModNone.IsEmpty() = false")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod      Modifier
		expected string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl.With(ModAlt), "Ctrl+Alt"},
		{ModShift.With(ModMeta), "Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.expected {
			t.Errorf("Modifier.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestEventIsRune(t *testing.T) {
	if !(Event{Rune: 'a'}).IsRune() {
		t.Error("rune event should report IsRune")
	}
	if (Event{Key: KeyEnter}).IsRune() {
		t.Error("enter event should not report IsRune")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{KeyUp, "up"},
		{KeyDown, "down"},
		{KeyEnter, "enter"},
		{KeyEscape, "escape"},
		{KeyNone, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.key.String(); got != tt.expected {
				t.Errorf("Key.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
