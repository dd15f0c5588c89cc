// Package selection holds the selection state of an editing surface.
//
// A surface carries a set of committed, non-overlapping ranges (the
// disjoint set, supporting multi-cursor editing) plus at most one
// pending range representing a selection not yet committed, such as an
// in-progress drag or a freshly placed cursor.
package selection

import (
	"sort"

	"github.com/kestrel-editor/kestrel/internal/display"
)

// Mode is the granularity a pending selection grows by.
type Mode uint8

const (
	// ModeCharacter extends by single characters.
	ModeCharacter Mode = iota
	// ModeWord extends by whole words.
	ModeWord
	// ModeLine extends by whole lines.
	ModeLine
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCharacter:
		return "character"
	case ModeWord:
		return "word"
	case ModeLine:
		return "line"
	default:
		return "unknown"
	}
}

// Range is a selection span in buffer positions. Start and End are in
// document order; a cursor is a range with Start == End.
type Range struct {
	Start display.Position
	End   display.Position
}

// IsEmpty reports whether the range is a bare cursor.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Pending is an uncommitted selection.
type Pending struct {
	Range Range
	Mode  Mode
}

// Set is the selection state of one editing surface.
// Not safe for concurrent use; the surface owns it on the UI thread.
type Set struct {
	disjoint []Range
	pending  *Pending
}

// NewSet creates an empty selection set.
func NewSet() *Set {
	return &Set{}
}

// Disjoint returns the committed ranges. The returned slice must not be
// mutated by the caller.
func (s *Set) Disjoint() []Range {
	return s.disjoint
}

// Pending returns the pending selection, or nil.
func (s *Set) Pending() *Pending {
	return s.pending
}

// SetDisjoint replaces the committed ranges, keeping them sorted by
// start position.
func (s *Set) SetDisjoint(ranges []Range) {
	s.disjoint = make([]Range, len(ranges))
	copy(s.disjoint, ranges)
	sort.Slice(s.disjoint, func(i, j int) bool {
		a, b := s.disjoint[i].Start, s.disjoint[j].Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}

// ClearDisjoint drops all committed ranges.
func (s *Set) ClearDisjoint() {
	s.disjoint = nil
}

// SetPendingAnchorRange installs a pending selection anchored at the
// given range with the given growth mode, replacing any prior pending.
func (s *Set) SetPendingAnchorRange(r Range, mode Mode) {
	s.pending = &Pending{Range: r, Mode: mode}
}

// ClearPending drops the pending selection.
func (s *Set) ClearPending() {
	s.pending = nil
}

// All returns the disjoint ranges followed by the pending range, if
// present.
func (s *Set) All() []Range {
	all := make([]Range, 0, len(s.disjoint)+1)
	all = append(all, s.disjoint...)
	if s.pending != nil {
		all = append(all, s.pending.Range)
	}
	return all
}

// Count returns the number of ranges including the pending one.
func (s *Set) Count() int {
	n := len(s.disjoint)
	if s.pending != nil {
		n++
	}
	return n
}

// DisplayRanges projects every range, disjoint then pending, into
// display coordinates against the given snapshot.
func DisplayRanges(snap display.Snapshot, s *Set) []display.Range {
	ranges := make([]display.Range, 0, s.Count())
	for _, r := range s.All() {
		ranges = append(ranges, display.Range{
			Start: display.ToDisplayPoint(snap, r.Start),
			End:   display.ToDisplayPoint(snap, r.End),
		})
	}
	return ranges
}
