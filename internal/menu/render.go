package menu

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen is the drawing surface a menu paints onto. *tcell.Screen
// implementations satisfy it.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Rect is a screen-space rectangle, half-open on Right and Bottom.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width returns the rectangle width in cells.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the rectangle height in cells.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Contains reports whether the cell at (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

const entryPadding = 2 // one cell margin each side of the label

// Layout computes where the menu would be drawn when anchored at the
// given screen position, clamped so the whole menu stays on screen.
func (m *ContextMenu) Layout(screenW, screenH, anchorX, anchorY, maxWidth int) Rect {
	width := 0
	for _, e := range m.entries {
		if e.Separator {
			continue
		}
		if w := uniseg.StringWidth(e.Label) + entryPadding*2; w > width {
			width = w
		}
	}
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	if width > screenW {
		width = screenW
	}

	height := len(m.entries)
	if height > screenH {
		height = screenH
	}

	left := anchorX
	if left+width > screenW {
		left = screenW - width
	}
	if left < 0 {
		left = 0
	}
	top := anchorY + 1 // open below the pointer row
	if top+height > screenH {
		top = anchorY - height
	}
	if top < 0 {
		top = 0
	}

	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Render paints the menu into the given bounds.
func (m *ContextMenu) Render(s Screen, bounds Rect, theme Theme) {
	base := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	selected := tcell.StyleDefault.Background(theme.SelectionBg).Foreground(theme.SelectionFg)
	separator := tcell.StyleDefault.Background(theme.Background).Foreground(theme.SeparatorFg)

	for row := 0; row < bounds.Height(); row++ {
		if row >= len(m.entries) {
			break
		}
		entry := m.entries[row]
		y := bounds.Top + row

		switch {
		case entry.Separator:
			for x := bounds.Left; x < bounds.Right; x++ {
				s.SetContent(x, y, '─', nil, separator)
			}
		default:
			style := base
			if row == m.selected {
				style = selected
			}
			fillRow(s, bounds, y, style)
			drawText(s, bounds.Left+entryPadding, y, bounds.Right, entry.Label, style)
		}
	}
}

// HitTest maps a screen cell to the index of the entry under it.
// Returns -1 for separators and positions outside the bounds.
func (m *ContextMenu) HitTest(bounds Rect, x, y int) int {
	if !bounds.Contains(x, y) {
		return -1
	}
	row := y - bounds.Top
	if row >= len(m.entries) || m.entries[row].Separator {
		return -1
	}
	return row
}

// Select moves the highlight to the given entry index if it is
// selectable.
func (m *ContextMenu) Select(index int) {
	if index >= 0 && index < len(m.entries) && !m.entries[index].Separator {
		m.selected = index
	}
}

func fillRow(s Screen, bounds Rect, y int, style tcell.Style) {
	for x := bounds.Left; x < bounds.Right; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// drawText draws a string left to right, stopping at the right edge.
// Wide graphemes advance by their display width.
func drawText(s Screen, x, y, right int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		width := gr.Width()
		if x+width > right {
			break
		}
		runes := gr.Runes()
		var combining []rune
		if len(runes) > 1 {
			combining = runes[1:]
		}
		s.SetContent(x, y, runes[0], combining, style)
		x += width
	}
}
