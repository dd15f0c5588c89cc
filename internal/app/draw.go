package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/kestrel-editor/kestrel/internal/display"
	"github.com/kestrel-editor/kestrel/internal/menu"
	"github.com/kestrel-editor/kestrel/internal/selection"
)

// draw repaints the document, selections, cursor, and any open menu.
func (app *Application) draw() {
	app.dirty = false

	s := app.terminal.Screen()
	s.Clear()
	width, height := s.Size()

	snap := app.editor.Snapshot()
	ranges := selection.DisplayRanges(snap, app.editor.Selections())

	base := tcell.StyleDefault
	selected := base.Reverse(true)

	for row := 0; row < height; row++ {
		line := row + app.scroll
		if line >= int(snap.LineCount()) {
			break
		}
		drawLine(s, snap, uint32(line), row, width, ranges, base, selected)
	}

	app.drawCursor(snap)
	app.drawMenu(s, width, height)
	s.Show()
}

// drawLine paints one document line with tab expansion, highlighting
// cells covered by a selection.
func drawLine(s tcell.Screen, snap display.Snapshot, line uint32, row, width int, ranges []display.Range, base, selected tcell.Style) {
	tabWidth := snap.TabWidth()
	if tabWidth < 1 {
		tabWidth = display.DefaultTabWidth
	}

	col := 0
	gr := uniseg.NewGraphemes(snap.LineText(line))
	for gr.Next() && col < width {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			stop := col + tabWidth - (col % tabWidth)
			for ; col < stop && col < width; col++ {
				s.SetContent(col, row, ' ', nil, styleAt(line, col, ranges, base, selected))
			}
			continue
		}

		style := styleAt(line, col, ranges, base, selected)
		s.SetContent(col, row, runes[0], runes[1:], style)
		col += gr.Width()
	}
}

func styleAt(line uint32, col int, ranges []display.Range, base, selected tcell.Style) tcell.Style {
	p := display.Point{Row: line, Col: uint32(col)}
	for _, r := range ranges {
		if r.Contains(p) {
			return selected
		}
	}
	return base
}

// drawCursor places the terminal cursor at the primary cursor.
func (app *Application) drawCursor(snap display.Snapshot) {
	s := app.terminal.Screen()

	p := app.editor.Selections().Pending()
	if p == nil {
		s.HideCursor()
		return
	}
	point := display.ToDisplayPoint(snap, p.Range.End)
	row := int(point.Row) - app.scroll
	if row < 0 {
		s.HideCursor()
		return
	}
	s.ShowCursor(int(point.Col), row)
}

// drawMenu paints the context menu overlay and records its bounds for
// hit testing.
func (app *Application) drawMenu(s tcell.Screen, width, height int) {
	mcm := app.editor.MouseContextMenu()
	if mcm == nil {
		app.menuBounds = menu.Rect{}
		return
	}

	m := mcm.Menu()
	pos := mcm.Position()
	app.menuBounds = m.Layout(width, height, pos.X, pos.Y, app.Config().Menu.MaxWidth)
	m.Render(s, app.menuBounds, app.theme)
}
