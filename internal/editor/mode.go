package editor

// Mode is the configuration an editing surface runs in. Only ModeFull
// supports the complete feature set; the others are restricted inline
// contexts (single-line inputs, embedded auto-sizing fields).
type Mode uint8

const (
	// ModeFull is the primary editing mode with the complete feature set.
	ModeFull Mode = iota
	// ModeSingleLine is a one-line input field.
	ModeSingleLine
	// ModeAutoHeight is an embedded field that grows with its content.
	ModeAutoHeight
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSingleLine:
		return "single-line"
	case ModeAutoHeight:
		return "auto-height"
	default:
		return "unknown"
	}
}
