package diagram

import (
	"errors"
	"fmt"
	"log/slog"
)

type gesture int

const (
	gestureNone gesture = iota
	gestureMove
	gestureDrawShape
	gestureDrawArrow
)

// Editor is the interactive state machine over one document. It owns the
// document, its history and the selection; nothing is shared between
// editors.
type Editor struct {
	doc      Document
	history  *History
	selected int

	mode      Mode
	shapeKind ShapeKind
	arrowKind ArrowKind

	gesture        gesture
	startX, startY float64
	curX, curY     float64
	anchorX        float64
	anchorY        float64
	moveFromX      float64
	moveFromY      float64

	status string
	log    *slog.Logger
}

// NewEditor returns an editor holding an empty document. The empty
// document is the first history snapshot, so every later edit can be
// undone back to it.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		doc:       NewDocument(),
		history:   NewHistory(),
		selected:  -1,
		mode:      ModeSelect,
		shapeKind: Rectangle,
		arrowKind: Straight,
		log:       newNopLogger(),
		status:    "Ready - pick a shape and drag on the canvas",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.snapshot()
	return e
}

// Document returns a copy of the live document.
func (e *Editor) Document() Document { return e.doc.Clone() }

func (e *Editor) History() *History { return e.history }

func (e *Editor) Mode() Mode           { return e.mode }
func (e *Editor) ShapeKind() ShapeKind { return e.shapeKind }
func (e *Editor) ArrowKind() ArrowKind { return e.arrowKind }
func (e *Editor) Status() string       { return e.status }

// Gesturing reports whether a press has not yet been released.
func (e *Editor) Gesturing() bool { return e.gesture != gestureNone }

func (e *Editor) setStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
}

// Selected returns the index of the selected shape.
func (e *Editor) Selected() (int, bool) {
	if e.selected < 0 || e.selected >= len(e.doc.Shapes) {
		return -1, false
	}
	return e.selected, true
}

// SetMode switches gesture interpretation. Entering select mode keeps the
// current kinds for the next time a draw mode is entered.
func (e *Editor) SetMode(m Mode) {
	e.mode = m
	e.gesture = gestureNone
	switch m {
	case ModeSelect:
		e.setStatus("Select mode - click shapes to select, drag to move")
	case ModeDrawShape:
		e.setStatus("Draw mode - drag to create %s", e.shapeKind)
	case ModeDrawArrow:
		e.setStatus("Connector mode - drag to create %s", e.arrowKind)
	}
}

// SetShapeKind picks the kind of shape to draw and enters draw-shape mode.
func (e *Editor) SetShapeKind(k ShapeKind) {
	e.shapeKind = k
	e.SetMode(ModeDrawShape)
}

// SetArrowKind picks the kind of connector to draw and enters draw-arrow
// mode.
func (e *Editor) SetArrowKind(k ArrowKind) {
	e.arrowKind = k
	e.SetMode(ModeDrawArrow)
}

// HitTest returns the index of the topmost shape under (x, y).
func (e *Editor) HitTest(x, y float64) (int, bool) {
	return e.doc.ShapeAt(x, y)
}

// Select marks shape i as selected. An out of range index clears the
// selection.
func (e *Editor) Select(i int) {
	if i < 0 || i >= len(e.doc.Shapes) {
		e.selected = -1
		return
	}
	e.selected = i
}

func (e *Editor) Deselect() { e.selected = -1 }

// Press begins a gesture at (x, y).
func (e *Editor) Press(x, y float64) {
	e.startX, e.startY = x, y
	e.curX, e.curY = x, y

	switch e.mode {
	case ModeSelect:
		i, ok := e.HitTest(x, y)
		if !ok {
			e.Deselect()
			e.gesture = gestureNone
			return
		}
		e.selected = i
		s := e.doc.Shapes[i]
		e.anchorX, e.anchorY = x-s.X, y-s.Y
		e.moveFromX, e.moveFromY = s.X, s.Y
		e.gesture = gestureMove
	case ModeDrawShape:
		e.gesture = gestureDrawShape
	case ModeDrawArrow:
		e.gesture = gestureDrawArrow
	}
}

// Drag continues the active gesture to (x, y). Moves are not snapped or
// clamped to any bounds.
func (e *Editor) Drag(x, y float64) {
	e.curX, e.curY = x, y
	if e.gesture != gestureMove {
		return
	}
	if i, ok := e.Selected(); ok {
		e.doc.Shapes[i].X = x - e.anchorX
		e.doc.Shapes[i].Y = y - e.anchorY
	}
}

// Release finishes the active gesture at (x, y) and commits its result.
func (e *Editor) Release(x, y float64) {
	g := e.gesture
	e.gesture = gestureNone
	e.curX, e.curY = x, y

	switch g {
	case gestureMove:
		i, ok := e.Selected()
		if !ok {
			return
		}
		s := e.doc.Shapes[i]
		if s.X == e.moveFromX && s.Y == e.moveFromY {
			return
		}
		e.setStatus("%s moved", s.Kind)
		e.snapshot()
	case gestureDrawShape:
		e.createShape(e.startX, e.startY, x, y)
	case gestureDrawArrow:
		e.createArrow(e.startX, e.startY, x, y)
	}
}

func (e *Editor) createShape(x1, y1, x2, y2 float64) {
	box := CommitBox(x1, y1, x2, y2)
	e.doc.AddShape(Shape{
		Kind:   e.shapeKind,
		X:      box.X,
		Y:      box.Y,
		Width:  box.W,
		Height: box.H,
	})
	e.log.Debug("shape created", "kind", e.shapeKind, "x", box.X, "y", box.Y, "w", box.W, "h", box.H)
	e.setStatus("%s created", e.shapeKind)
	e.snapshot()
}

func (e *Editor) createArrow(x1, y1, x2, y2 float64) {
	if !ArrowDragAccepted(x1, y1, x2, y2) {
		return
	}
	e.doc.AddArrow(Arrow{Kind: e.arrowKind, StartX: x1, StartY: y1, EndX: x2, EndY: y2})
	e.log.Debug("arrow created", "kind", e.arrowKind, "from", Point{x1, y1}, "to", Point{x2, y2})
	e.setStatus("%s arrow created", e.arrowKind)
	e.snapshot()
}

// Activate handles a double activation at (x, y): the shape under the
// pointer gets its text edited.
func (e *Editor) Activate(x, y float64, p TextPrompter) error {
	i, ok := e.HitTest(x, y)
	if !ok {
		return nil
	}
	return e.EditText(i, p)
}

// EditSelectedText edits the text of the selected shape.
func (e *Editor) EditSelectedText(p TextPrompter) error {
	i, ok := e.Selected()
	if !ok {
		e.setStatus("No selection - select a shape first")
		return ErrNoSelection
	}
	return e.EditText(i, p)
}

// EditText prompts for the replacement text of shape i. Cancelling leaves
// the text as it was; an empty answer clears it.
func (e *Editor) EditText(i int, p TextPrompter) error {
	if i < 0 || i >= len(e.doc.Shapes) {
		return ErrNoSelection
	}
	text, ok := p.AskString("Enter text for shape:", e.doc.Shapes[i].Text)
	if !ok {
		return nil
	}
	return e.SetText(i, text)
}

// SetText replaces the text of shape i and records the change.
func (e *Editor) SetText(i int, text string) error {
	if i < 0 || i >= len(e.doc.Shapes) {
		return ErrNoSelection
	}
	e.doc.Shapes[i].Text = text
	e.setStatus("Text updated")
	e.snapshot()
	return nil
}

// DeleteSelected removes the selected shape. Connectors drawn near it stay
// where they are.
func (e *Editor) DeleteSelected() error {
	i, ok := e.Selected()
	if !ok {
		e.setStatus("No selection - select a shape first")
		return ErrNoSelection
	}
	e.doc.RemoveShape(i)
	e.selected = -1
	e.gesture = gestureNone
	e.setStatus("Shape deleted")
	e.snapshot()
	return nil
}

// Clear empties the document. The confirmer is asked first unless it is
// nil or there is nothing to clear; declining leaves everything as is.
func (e *Editor) Clear(c Confirmer) bool {
	if c != nil && !e.doc.Empty() && !c.AskYesNo("Are you sure you want to clear everything?") {
		return false
	}
	e.doc.Clear()
	e.selected = -1
	e.gesture = gestureNone
	e.setStatus("Canvas cleared")
	e.snapshot()
	return true
}

func (e *Editor) Undo() error {
	doc, err := e.history.Undo()
	if err != nil {
		if errors.Is(err, ErrNothingToUndo) {
			e.setStatus("Nothing to undo")
		}
		return err
	}
	e.restore(doc)
	e.setStatus("Undone")
	return nil
}

func (e *Editor) Redo() error {
	doc, err := e.history.Redo()
	if err != nil {
		if errors.Is(err, ErrNothingToRedo) {
			e.setStatus("Nothing to redo")
		}
		return err
	}
	e.restore(doc)
	e.setStatus("Redone")
	return nil
}

// restore swaps in a snapshot wholesale and drops the selection.
func (e *Editor) restore(doc Document) {
	e.doc = doc.Clone()
	e.selected = -1
	e.gesture = gestureNone
}

// snapshot is called exactly once after every mutation of persisted state.
func (e *Editor) snapshot() {
	if err := e.history.Snapshot(e.doc); err != nil {
		e.log.Warn("snapshot failed", "err", err)
		return
	}
	e.log.Debug("snapshot", "index", e.history.Index(), "len", e.history.Len())
}

// Save writes the document to filename.
func (e *Editor) Save(filename string) error {
	if err := SaveFile(filename, e.doc); err != nil {
		e.setStatus("Failed to save file: %v", err)
		e.log.Warn("save failed", "file", filename, "err", err)
		return err
	}
	e.setStatus("Saved to %s", filename)
	return nil
}

// Load replaces the document with the one stored in filename. On failure
// the current document is untouched.
func (e *Editor) Load(filename string) error {
	doc, err := LoadFile(filename)
	if err != nil {
		e.setStatus("Failed to load file: %v", err)
		e.log.Warn("load failed", "file", filename, "err", err)
		return err
	}
	e.Replace(doc)
	e.setStatus("Loaded from %s", filename)
	return nil
}

// Replace swaps in doc wholesale and records it, so a loaded diagram can
// itself be undone.
func (e *Editor) Replace(doc Document) {
	e.doc = doc.Clone()
	e.selected = -1
	e.gesture = gestureNone
	e.snapshot()
}

// SaveAs asks for a destination and saves there. A cancelled prompt is not
// an error.
func (e *Editor) SaveAs(p PathPrompter) (string, error) {
	path, ok := p.AskSavePath()
	if !ok {
		return "", nil
	}
	return path, e.Save(path)
}

// Open asks for a file and loads it. A cancelled prompt is not an error.
func (e *Editor) Open(p PathPrompter) (string, error) {
	path, ok := p.AskOpenPath()
	if !ok {
		return "", nil
	}
	return path, e.Load(path)
}

// Scene returns the full list of draw commands for the current state,
// including the provisional outline of a gesture in progress.
func (e *Editor) Scene() []DrawCommand {
	sel, _ := e.Selected()
	cmds := DocumentCommands(e.doc, sel)

	switch e.gesture {
	case gestureDrawShape:
		box := ProvisionalBox(e.startX, e.startY, e.curX, e.curY)
		s := Shape{Kind: e.shapeKind, X: box.X, Y: box.Y, Width: box.W, Height: box.H}
		cmds = append(cmds, ShapeCommands(s, provisionalShape)...)
	case gestureDrawArrow:
		a := Arrow{Kind: e.arrowKind, StartX: e.startX, StartY: e.startY, EndX: e.curX, EndY: e.curY}
		cmds = append(cmds, ArrowCommands(a, provisionalArrow)...)
	}
	return cmds
}
