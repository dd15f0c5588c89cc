package app

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kestrel-editor/kestrel/internal/dispatcher"
	"github.com/kestrel-editor/kestrel/internal/display"
	"github.com/kestrel-editor/kestrel/internal/editor"
	"github.com/kestrel-editor/kestrel/internal/input"
	"github.com/kestrel-editor/kestrel/internal/input/mouse"
	"github.com/kestrel-editor/kestrel/internal/selection"
)

// registerHandlers installs the action namespaces the application
// understands.
func (app *Application) registerHandlers() {
	app.disp.Register(&contextMenuHandler{app: app})
	app.disp.Register(&cursorHandler{app: app})
	app.disp.Register(&selectionHandler{app: app})
	app.disp.Register(&scrollHandler{app: app})
	app.disp.Register(&editorHandler{app: app})
}

// pointForScreen maps terminal cell coordinates to a display point,
// accounting for vertical scroll. Rows past the document clamp to the
// last line.
func (app *Application) pointForScreen(x, y int) display.Point {
	row := y + app.scroll
	if row < 0 {
		row = 0
	}
	snap := app.editor.Snapshot()
	if last := int(snap.LineCount()) - 1; row > last {
		row = last
	}
	if x < 0 {
		x = 0
	}
	return display.Point{Row: uint32(row), Col: uint32(x)}
}

// actionPoint extracts the screen coordinates a mouse action carries.
func (app *Application) actionPoint(action input.Action) display.Point {
	return app.pointForScreen(action.Args.GetInt("x"), action.Args.GetInt("y"))
}

// contextMenuHandler deploys the secondary-click menu.
type contextMenuHandler struct {
	app *Application
}

func (h *contextMenuHandler) Namespace() string { return "contextmenu" }

func (h *contextMenuHandler) CanHandle(name string) bool {
	return name == "contextmenu.deploy"
}

func (h *contextMenuHandler) Handle(action input.Action) dispatcher.Result {
	pos := mouse.Position{
		X: action.Args.GetInt("x"),
		Y: action.Args.GetInt("y"),
	}
	h.app.editor.DeployMenu(pos, h.app.actionPoint(action))
	return dispatcher.Result{Handled: true, Redraw: true}
}

// cursorHandler moves and adds cursors.
type cursorHandler struct {
	app *Application
}

func (h *cursorHandler) Namespace() string { return "cursor" }

func (h *cursorHandler) CanHandle(name string) bool {
	switch name {
	case "cursor.setPosition", "cursor.add":
		return true
	}
	return false
}

func (h *cursorHandler) Handle(action input.Action) dispatcher.Result {
	ed := h.app.editor
	pos := display.ToBufferPosition(ed.Snapshot(), h.app.actionPoint(action))
	cursor := selection.Range{Start: pos, End: pos}

	switch action.Name {
	case "cursor.setPosition":
		ed.Selections().ClearDisjoint()
		ed.Selections().SetPendingAnchorRange(cursor, selection.ModeCharacter)
	case "cursor.add":
		existing := ed.Selections().Disjoint()
		ranges := make([]selection.Range, 0, len(existing)+2)
		ranges = append(ranges, existing...)
		ranges = append(ranges, cursor)
		if p := ed.Selections().Pending(); p != nil {
			ranges = append(ranges, p.Range)
			ed.Selections().ClearPending()
		}
		ed.Selections().SetDisjoint(ranges)
	}
	return dispatcher.Result{Handled: true, Redraw: true}
}

// selectionHandler grows selections from clicks and drags.
type selectionHandler struct {
	app *Application
}

func (h *selectionHandler) Namespace() string { return "selection" }

func (h *selectionHandler) CanHandle(name string) bool {
	switch name {
	case "selection.start", "selection.extendTo", "selection.word", "selection.line":
		return true
	}
	return false
}

func (h *selectionHandler) Handle(action input.Action) dispatcher.Result {
	ed := h.app.editor
	snap := ed.Snapshot()
	pos := display.ToBufferPosition(snap, h.app.actionPoint(action))
	sels := ed.Selections()

	switch action.Name {
	case "selection.start":
		sels.ClearDisjoint()
		sels.SetPendingAnchorRange(selection.Range{Start: pos, End: pos}, selection.ModeCharacter)

	case "selection.extendTo":
		p := sels.Pending()
		if p == nil {
			sels.SetPendingAnchorRange(selection.Range{Start: pos, End: pos}, selection.ModeCharacter)
			break
		}
		sels.SetPendingAnchorRange(selection.Range{Start: p.Range.Start, End: pos}, p.Mode)

	case "selection.word":
		start, end := wordBounds(snap.LineText(pos.Line), pos.Col)
		sels.ClearDisjoint()
		sels.SetPendingAnchorRange(selection.Range{
			Start: display.Position{Line: pos.Line, Col: start},
			End:   display.Position{Line: pos.Line, Col: end},
		}, selection.ModeWord)

	case "selection.line":
		end := uint32(len([]rune(snap.LineText(pos.Line))))
		sels.ClearDisjoint()
		sels.SetPendingAnchorRange(selection.Range{
			Start: display.Position{Line: pos.Line, Col: 0},
			End:   display.Position{Line: pos.Line, Col: end},
		}, selection.ModeLine)
	}
	return dispatcher.Result{Handled: true, Redraw: true}
}

// wordBounds returns the rune bounds of the word around col. A click
// on whitespace selects the whitespace run.
func wordBounds(text string, col uint32) (uint32, uint32) {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0, 0
	}
	i := int(col)
	if i >= len(runes) {
		i = len(runes) - 1
	}

	class := runeClass(runes[i])
	start := i
	for start > 0 && runeClass(runes[start-1]) == class {
		start--
	}
	end := i + 1
	for end < len(runes) && runeClass(runes[end]) == class {
		end++
	}
	return uint32(start), uint32(end)
}

func runeClass(r rune) int {
	switch {
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return 0
	case unicode.IsSpace(r):
		return 1
	default:
		return 2
	}
}

// scrollHandler moves the viewport.
type scrollHandler struct {
	app *Application
}

func (h *scrollHandler) Namespace() string { return "scroll" }

func (h *scrollHandler) CanHandle(name string) bool {
	return name == "scroll.up" || name == "scroll.down"
}

func (h *scrollHandler) Handle(action input.Action) dispatcher.Result {
	lines := action.Count
	if lines < 1 {
		lines = 1
	}
	if action.Name == "scroll.up" {
		lines = -lines
	}

	app := h.app
	app.scroll += lines
	if last := int(app.editor.Snapshot().LineCount()) - 1; app.scroll > last {
		app.scroll = last
	}
	if app.scroll < 0 {
		app.scroll = 0
	}
	return dispatcher.Result{Handled: true, Redraw: true}
}

// editorHandler implements the clipboard actions the context menu
// offers. The navigation and refactoring entries dispatch to language
// tooling that is wired in separately.
type editorHandler struct {
	app *Application
}

func (h *editorHandler) Namespace() string { return "editor" }

func (h *editorHandler) CanHandle(name string) bool {
	switch name {
	case editor.ActionCut, editor.ActionCopy, editor.ActionPaste, editor.ActionCopyFileLine:
		return true
	}
	return false
}

func (h *editorHandler) Handle(action input.Action) dispatcher.Result {
	app := h.app
	ed := app.editor

	switch action.Name {
	case editor.ActionCopy:
		if text := selectedText(ed); text != "" {
			app.clipboard = text
		}
		return dispatcher.Result{Handled: true}

	case editor.ActionCut:
		text := selectedText(ed)
		if text == "" {
			return dispatcher.Result{Handled: true}
		}
		app.clipboard = text
		deleteSelections(ed)
		return dispatcher.Result{Handled: true, Redraw: true}

	case editor.ActionPaste:
		if app.clipboard == "" {
			return dispatcher.Result{Handled: true}
		}
		insertAtCursor(ed, app.clipboard)
		return dispatcher.Result{Handled: true, Redraw: true}

	case editor.ActionCopyFileLine:
		app.clipboard = fileLineReference(ed)
		return dispatcher.Result{Handled: true}
	}
	return dispatcher.Result{}
}

// selectedText joins the text under all selections, in order, one
// selection per line.
func selectedText(ed *editor.Editor) string {
	snap := ed.Snapshot()
	var parts []string
	for _, r := range ed.Selections().All() {
		if t := rangeText(snap, r); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// rangeText extracts the buffer text a selection covers.
func rangeText(snap display.Snapshot, r selection.Range) string {
	start, end := r.Start, r.End
	if end.Line < start.Line || (end.Line == start.Line && end.Col < start.Col) {
		start, end = end, start
	}

	if start.Line == end.Line {
		return sliceLine(snap.LineText(start.Line), start.Col, end.Col)
	}

	var b strings.Builder
	first := snap.LineText(start.Line)
	b.WriteString(sliceLine(first, start.Col, uint32(len([]rune(first)))))
	for line := start.Line + 1; line < end.Line; line++ {
		b.WriteByte('\n')
		b.WriteString(snap.LineText(line))
	}
	b.WriteByte('\n')
	b.WriteString(sliceLine(snap.LineText(end.Line), 0, end.Col))
	return b.String()
}

func sliceLine(text string, from, to uint32) string {
	runes := []rune(text)
	if from > uint32(len(runes)) {
		from = uint32(len(runes))
	}
	if to > uint32(len(runes)) {
		to = uint32(len(runes))
	}
	if from >= to {
		return ""
	}
	return string(runes[from:to])
}

// deleteSelections removes the selected text and collapses each
// selection to a cursor. Ranges are deleted last-first so earlier
// positions stay valid.
func deleteSelections(ed *editor.Editor) {
	snap, ok := ed.Snapshot().(*display.TextSnapshot)
	if !ok {
		return
	}

	ranges := ed.Selections().All()
	for i := len(ranges) - 1; i >= 0; i-- {
		deleteRange(snap, ranges[i])
	}

	ed.Selections().ClearDisjoint()
	if len(ranges) > 0 {
		first := normalized(ranges[0])
		ed.Selections().SetPendingAnchorRange(
			selection.Range{Start: first.Start, End: first.Start},
			selection.ModeCharacter,
		)
	}
}

func normalized(r selection.Range) selection.Range {
	if r.End.Line < r.Start.Line || (r.End.Line == r.Start.Line && r.End.Col < r.Start.Col) {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

func deleteRange(snap *display.TextSnapshot, r selection.Range) {
	r = normalized(r)
	if int(r.Start.Line) >= len(snap.Lines) {
		return
	}
	startRunes := []rune(snap.Lines[r.Start.Line])
	from := r.Start.Col
	if from > uint32(len(startRunes)) {
		from = uint32(len(startRunes))
	}

	endLine := r.End.Line
	if int(endLine) >= len(snap.Lines) {
		endLine = uint32(len(snap.Lines) - 1)
	}
	endRunes := []rune(snap.Lines[endLine])
	to := r.End.Col
	if to > uint32(len(endRunes)) {
		to = uint32(len(endRunes))
	}

	merged := string(startRunes[:from]) + string(endRunes[to:])
	snap.Lines[r.Start.Line] = merged
	if endLine > r.Start.Line {
		snap.Lines = append(snap.Lines[:r.Start.Line+1], snap.Lines[endLine+1:]...)
	}
}

// insertAtCursor inserts text at the primary cursor position.
func insertAtCursor(ed *editor.Editor, text string) {
	snap, ok := ed.Snapshot().(*display.TextSnapshot)
	if !ok {
		return
	}

	pos := cursorPosition(ed)
	if int(pos.Line) >= len(snap.Lines) {
		return
	}

	runes := []rune(snap.Lines[pos.Line])
	col := pos.Col
	if col > uint32(len(runes)) {
		col = uint32(len(runes))
	}

	inserted := strings.Split(text, "\n")
	head := string(runes[:col])
	tail := string(runes[col:])

	if len(inserted) == 1 {
		snap.Lines[pos.Line] = head + inserted[0] + tail
	} else {
		lines := make([]string, 0, len(snap.Lines)+len(inserted)-1)
		lines = append(lines, snap.Lines[:pos.Line]...)
		lines = append(lines, head+inserted[0])
		lines = append(lines, inserted[1:len(inserted)-1]...)
		lines = append(lines, inserted[len(inserted)-1]+tail)
		lines = append(lines, snap.Lines[pos.Line+1:]...)
		snap.Lines = lines
	}
}

// cursorPosition returns the primary cursor's buffer position.
func cursorPosition(ed *editor.Editor) display.Position {
	if p := ed.Selections().Pending(); p != nil {
		return normalized(p.Range).End
	}
	if ranges := ed.Selections().Disjoint(); len(ranges) > 0 {
		return normalized(ranges[0]).End
	}
	return display.Position{}
}

// fileLineReference formats "path:line" for the primary cursor.
func fileLineReference(ed *editor.Editor) string {
	pos := cursorPosition(ed)
	path := ed.FilePath()
	if path == "" {
		path = "untitled"
	}
	return path + ":" + strconv.Itoa(int(pos.Line)+1)
}
