// Package display maps buffer positions to display coordinates.
//
// Display coordinates are the visual row/column space used for
// hit-testing: tabs are expanded to tab stops and wide graphemes occupy
// their terminal cell width. They are distinct from buffer positions,
// which count runes within the raw line text.
package display

import (
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the tab stop interval used when a snapshot does
// not specify one.
const DefaultTabWidth = 4

// Point is a position in display coordinates.
type Point struct {
	Row uint32
	Col uint32
}

// Before reports whether p orders strictly before other.
func (p Point) Before(other Point) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Compare returns -1, 0, or 1 ordering p against other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Before(other):
		return -1
	case other.Before(p):
		return 1
	default:
		return 0
	}
}

// Range is a half-open span of display points.
type Range struct {
	Start Point
	End   Point
}

// IsEmpty reports whether the range spans nothing.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether the point falls within [Start, End).
// An empty range contains nothing, so a bare cursor never captures a
// click at its own position.
func (r Range) Contains(p Point) bool {
	return r.Start.Compare(p) <= 0 && p.Before(r.End)
}

// Snapshot is a read-only view of the document sufficient for
// coordinate mapping. Implementations are owned by the text engine.
type Snapshot interface {
	// LineCount returns the number of lines in the document.
	LineCount() uint32

	// LineText returns the raw text of a line, without the trailing
	// newline. Out-of-range lines return "".
	LineText(line uint32) string

	// TabWidth returns the tab stop interval.
	TabWidth() int
}

// Position is a buffer position: line and rune column within the line.
type Position struct {
	Line uint32
	Col  uint32
}

// ToDisplayPoint converts a buffer position to display coordinates,
// expanding tabs and accounting for grapheme display width.
func ToDisplayPoint(snap Snapshot, pos Position) Point {
	text := snap.LineText(pos.Line)
	tabWidth := snap.TabWidth()
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}

	col := 0
	runeIdx := uint32(0)
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		if runeIdx >= pos.Col {
			break
		}
		if len(runes) == 1 && runes[0] == '\t' {
			col += tabWidth - (col % tabWidth)
		} else {
			col += gr.Width()
		}
		runeIdx += uint32(len(runes))
	}
	return Point{Row: pos.Line, Col: uint32(col)}
}

// ToBufferPosition converts a display point back to the nearest buffer
// position on the same line. Points past the end of the line clamp to
// the line's last rune boundary.
func ToBufferPosition(snap Snapshot, p Point) Position {
	text := snap.LineText(p.Row)
	tabWidth := snap.TabWidth()
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}

	col := 0
	runeIdx := uint32(0)
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		var width int
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			width = tabWidth - (col % tabWidth)
		} else {
			width = gr.Width()
		}
		if uint32(col+width) > p.Col {
			return Position{Line: p.Row, Col: runeIdx}
		}
		col += width
		runeIdx += uint32(len(runes))
	}
	return Position{Line: p.Row, Col: runeIdx}
}

// LineWidth returns the display width of a full line.
func LineWidth(snap Snapshot, line uint32) uint32 {
	text := snap.LineText(line)
	end := ToDisplayPoint(snap, Position{Line: line, Col: uint32(len([]rune(text)))})
	return end.Col
}

// TextSnapshot is a Snapshot over an in-memory slice of lines. The app
// shell and tests use it; a rope-backed engine would provide its own.
type TextSnapshot struct {
	Lines []string
	Tabs  int
}

// NewTextSnapshot creates a snapshot with the default tab width.
func NewTextSnapshot(lines ...string) *TextSnapshot {
	return &TextSnapshot{Lines: lines, Tabs: DefaultTabWidth}
}

// LineCount implements Snapshot.
func (s *TextSnapshot) LineCount() uint32 {
	return uint32(len(s.Lines))
}

// LineText implements Snapshot.
func (s *TextSnapshot) LineText(line uint32) string {
	if line >= uint32(len(s.Lines)) {
		return ""
	}
	return s.Lines[line]
}

// TabWidth implements Snapshot.
func (s *TextSnapshot) TabWidth() int {
	if s.Tabs < 1 {
		return DefaultTabWidth
	}
	return s.Tabs
}
