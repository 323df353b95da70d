package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowdraw/pkg/diagram"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m := initialModel(config, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return update(m, tea.WindowSizeMsg{Width: 80, Height: 30})
}

func update(m model, msg tea.Msg) model {
	next, _ := m.Update(msg)
	return next.(model)
}

var specialKeys = map[string]tea.KeyType{
	"esc":       tea.KeyEscape,
	"enter":     tea.KeyEnter,
	"backspace": tea.KeyBackspace,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+z":    tea.KeyCtrlZ,
	"ctrl+y":    tea.KeyCtrlY,
	"left":      tea.KeyLeft,
}

func key(s string) tea.KeyMsg {
	if k, ok := specialKeys[s]; ok {
		return tea.KeyMsg{Type: k}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m model, s string) model {
	for _, r := range s {
		m = update(m, key(string(r)))
	}
	return m
}

func clearPrompt(m model) model {
	for range m.prompt.text {
		m = update(m, key("backspace"))
	}
	return m
}

// mouse sends a left button event at a terminal cell. Row 0 is the toolbar.
func mouse(m model, action tea.MouseAction, col, row int) model {
	return update(m, tea.MouseMsg{X: col, Y: row + 1, Action: action, Button: tea.MouseButtonLeft})
}

func mouseDrag(m model, c1, r1, c2, r2 int) model {
	m = mouse(m, tea.MouseActionPress, c1, r1)
	m = mouse(m, tea.MouseActionMotion, c2, r2)
	return mouse(m, tea.MouseActionRelease, c2, r2)
}

// drawRect leaves a rectangle at (20,40) sized 80x48 with 8x16 cells.
func drawRect(m model) model {
	m = update(m, key("1"))
	return mouseDrag(m, 2, 2, 12, 5)
}

func TestKindKeysEnterDrawModes(t *testing.T) {
	m := newTestModel(t)

	m = update(m, key("4"))
	assert.Equal(t, diagram.ModeDrawShape, m.editor.Mode())
	assert.Equal(t, diagram.Triangle, m.editor.ShapeKind())

	m = update(m, key("@"))
	assert.Equal(t, diagram.ModeDrawArrow, m.editor.Mode())
	assert.Equal(t, diagram.Curved, m.editor.ArrowKind())

	m = update(m, key("esc"))
	assert.Equal(t, diagram.ModeSelect, m.editor.Mode())
}

func TestMouseDrawsShape(t *testing.T) {
	m := drawRect(newTestModel(t))

	doc := m.editor.Document()
	require.Len(t, doc.Shapes, 1)
	s := doc.Shapes[0]
	assert.Equal(t, diagram.Rectangle, s.Kind)
	assert.Equal(t, 20.0, s.X)
	assert.Equal(t, 40.0, s.Y)
	assert.Equal(t, 80.0, s.Width)
	assert.Equal(t, 48.0, s.Height)
	assert.True(t, m.dirty())
}

func TestMouseDrawsArrow(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key("#"))
	m = mouseDrag(m, 2, 2, 20, 2)

	doc := m.editor.Document()
	require.Len(t, doc.Arrows, 1)
	assert.Equal(t, diagram.Dashed, doc.Arrows[0].Kind)
	assert.Equal(t, 20.0, doc.Arrows[0].StartX)
	assert.Equal(t, 164.0, doc.Arrows[0].EndX)
}

func TestMouseMovesSelectedShape(t *testing.T) {
	m := drawRect(newTestModel(t))
	m = update(m, key("s"))
	m = mouseDrag(m, 5, 3, 10, 3)

	doc := m.editor.Document()
	assert.Equal(t, 60.0, doc.Shapes[0].X)
	assert.Equal(t, 40.0, doc.Shapes[0].Y)
	i, ok := m.editor.Selected()
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 3, m.editor.History().Len())
}

func TestWheelPans(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, float64(panStep)*16, m.panY)
	assert.False(t, m.mouseDown)
}

func TestDoubleClickEditsText(t *testing.T) {
	m := drawRect(newTestModel(t))
	m = update(m, key("s"))
	m = mouse(m, tea.MouseActionPress, 5, 3)
	m = mouse(m, tea.MouseActionRelease, 5, 3)
	m = mouse(m, tea.MouseActionPress, 5, 3)
	require.Equal(t, ModePrompt, m.mode)
	assert.Equal(t, PromptEditText, m.prompt.action)

	m = typeText(m, "Start")
	m = update(m, key("enter"))
	m = typeText(m, "here")
	m = update(m, key("ctrl+s"))

	assert.Equal(t, ModeCanvas, m.mode)
	assert.Equal(t, "Start\nhere", m.editor.Document().Shapes[0].Text)
}

func TestDoubleClickEditsTextInDrawMode(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key("3"))
	m = mouse(m, tea.MouseActionPress, 5, 3)
	m = mouse(m, tea.MouseActionRelease, 5, 3)
	require.Len(t, m.editor.Document().Shapes, 1, "the first click commits a minimum size shape")

	m = mouse(m, tea.MouseActionPress, 5, 3)
	require.Equal(t, ModePrompt, m.mode)
	m = typeText(m, "ok?")
	m = update(m, key("ctrl+s"))

	doc := m.editor.Document()
	require.Len(t, doc.Shapes, 1)
	assert.Equal(t, diagram.Diamond, doc.Shapes[0].Kind)
	assert.Equal(t, "ok?", doc.Shapes[0].Text)
}

func TestEditTextCancel(t *testing.T) {
	m := drawRect(newTestModel(t))
	m.editor.SetText(0, "keep")
	m.editor.Select(0)

	m = update(m, key("e"))
	require.Equal(t, ModePrompt, m.mode)
	assert.Equal(t, "keep", m.prompt.value())
	m = typeText(m, " me")
	m = update(m, key("esc"))

	assert.Equal(t, ModeCanvas, m.mode)
	assert.Equal(t, "keep", m.editor.Document().Shapes[0].Text)
}

func TestEditWithoutSelection(t *testing.T) {
	m := drawRect(newTestModel(t))
	m.editor.Deselect()

	m = update(m, key("e"))
	assert.Equal(t, ModeCanvas, m.mode)
	assert.Equal(t, "No selection - select a shape first", m.errorMessage)

	m = update(m, key("x"))
	assert.NotEmpty(t, m.errorMessage)
	assert.Len(t, m.editor.Document().Shapes, 1)
}

func TestDeleteAndUndoKeys(t *testing.T) {
	m := drawRect(newTestModel(t))
	m.editor.Select(0)

	m = update(m, key("x"))
	assert.Empty(t, m.editor.Document().Shapes)

	m = update(m, key("u"))
	assert.Len(t, m.editor.Document().Shapes, 1)

	m = update(m, key("ctrl+z"))
	assert.True(t, m.editor.Document().Empty())

	m = update(m, key("ctrl+y"))
	assert.Len(t, m.editor.Document().Shapes, 1)
}

func TestPromptEditing(t *testing.T) {
	p := newPrompt(PromptSavePath, "Save as: ", "abc")
	assert.Equal(t, 3, p.cursor)

	p.left()
	p.insert("X")
	assert.Equal(t, "abXc", p.value())
	p.backspace()
	assert.Equal(t, "abc", p.value())
	p.deleteForward()
	assert.Equal(t, "ab", p.value())
	p.right()
	assert.Equal(t, 2, p.cursor)

	p.cursor = 0
	p.backspace()
	assert.Equal(t, "ab", p.value())
}

func TestSavePromptWritesFile(t *testing.T) {
	m := drawRect(newTestModel(t))

	m = update(m, key("ctrl+s"))
	require.Equal(t, ModePrompt, m.mode)
	assert.Equal(t, "flowchart.json", m.prompt.value())
	m = update(m, key("enter"))

	path := filepath.Join(m.config.SaveDirectory, "flowchart.json")
	assert.Equal(t, path, m.filename)
	assert.FileExists(t, path)
	assert.False(t, m.dirty())
	assert.Empty(t, m.errorMessage)

	// a named document saves in place
	m.editor.SetText(0, "changed")
	assert.True(t, m.dirty())
	m = update(m, key("ctrl+s"))
	assert.Equal(t, ModeCanvas, m.mode)
	assert.False(t, m.dirty())

	doc, err := diagram.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "changed", doc.Shapes[0].Text)
}

func TestSaveAsConfirmsOverwrite(t *testing.T) {
	m := drawRect(newTestModel(t))
	existing := filepath.Join(m.config.SaveDirectory, "other.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0644))

	m = update(m, key("S"))
	m = clearPrompt(m)
	m = typeText(m, "other.json")
	m = update(m, key("enter"))
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmOverwriteFile, m.confirmAction)

	m = update(m, key("n"))
	assert.Equal(t, ModeCanvas, m.mode)
	assert.Empty(t, m.filename)
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	m = update(m, key("S"))
	m = clearPrompt(m)
	m = typeText(m, "other.json")
	m = update(m, key("enter"))
	m = update(m, key("y"))
	assert.Equal(t, existing, m.filename)

	doc, err := diagram.LoadFile(existing)
	require.NoError(t, err)
	assert.Len(t, doc.Shapes, 1)
}

func TestOpenPrompt(t *testing.T) {
	m := newTestModel(t)
	doc := diagram.NewDocument()
	doc.AddShape(diagram.Shape{Kind: diagram.Star, X: 1, Y: 2, Width: 60, Height: 60})
	path := filepath.Join(m.config.SaveDirectory, "chart.json")
	require.NoError(t, diagram.SaveFile(path, doc))

	m = update(m, key("o"))
	m = typeText(m, "chart.json")
	m = update(m, key("enter"))

	assert.Equal(t, path, m.filename)
	assert.True(t, m.editor.Document().Equal(doc))
	assert.False(t, m.dirty())
	assert.NotEmpty(t, m.successMessage)
}

func TestOpenPromptBadFile(t *testing.T) {
	m := drawRect(newTestModel(t))
	path := filepath.Join(m.config.SaveDirectory, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	m = update(m, key("o"))
	m = typeText(m, "bad.json")
	m = update(m, key("enter"))

	assert.Contains(t, m.errorMessage, "Failed to load file")
	assert.Len(t, m.editor.Document().Shapes, 1)
	assert.Empty(t, m.filename)
}

func TestOpenAtStart(t *testing.T) {
	m := newTestModel(t)
	m.openAtStart(filepath.Join(t.TempDir(), "missing.json"))
	assert.NotEmpty(t, m.errorMessage)
	assert.Empty(t, m.filename)

	path := filepath.Join(t.TempDir(), "start.json")
	doc := diagram.NewDocument()
	doc.AddArrow(diagram.Arrow{Kind: diagram.Thick, StartX: 0, StartY: 0, EndX: 50, EndY: 0})
	require.NoError(t, diagram.SaveFile(path, doc))

	m = newTestModel(t)
	m.openAtStart(path)
	assert.Equal(t, path, m.filename)
	assert.False(t, m.dirty())
	assert.Len(t, m.editor.Document().Arrows, 1)
}

func TestClearConfirmation(t *testing.T) {
	m := drawRect(newTestModel(t))
	m.filename = "named.json"

	m = update(m, key("n"))
	require.Equal(t, ModeConfirm, m.mode)
	m = update(m, key("n"))
	assert.Len(t, m.editor.Document().Shapes, 1)
	assert.Equal(t, "named.json", m.filename)

	m = update(m, key("n"))
	m = update(m, key("y"))
	assert.True(t, m.editor.Document().Empty())
	assert.Empty(t, m.filename)

	// nothing to lose, no question
	m = update(m, key("n"))
	assert.Equal(t, ModeCanvas, m.mode)
}

func TestClearWithoutConfirmations(t *testing.T) {
	m := drawRect(newTestModel(t))
	m.config.Confirmations = false

	m = update(m, key("n"))
	assert.Equal(t, ModeCanvas, m.mode)
	assert.True(t, m.editor.Document().Empty())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = drawRect(m)
	next, cmd := m.Update(key("q"))
	m = next.(model)
	assert.Nil(t, cmd)
	assert.Equal(t, ConfirmQuit, m.confirmAction)

	next, cmd = m.Update(key("n"))
	m = next.(model)
	assert.Nil(t, cmd)
	assert.Equal(t, ModeCanvas, m.mode)

	m = update(m, key("q"))
	_, cmd = m.Update(key("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCtrlCQuitsFromAnyMode(t *testing.T) {
	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}
	tests := []struct {
		name  string
		setup func(model) model
	}{
		{"prompt", func(m model) model { return update(m, key("o")) }},
		{"confirm", func(m model) model { return update(drawRect(m), key("n")) }},
		{"help", func(m model) model { return update(m, key("?")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.setup(newTestModel(t))
			require.NotEqual(t, ModeCanvas, m.mode)
			_, cmd := m.Update(ctrlC)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}

	// on the canvas unsaved work is still guarded
	m := drawRect(newTestModel(t))
	next, cmd := m.Update(ctrlC)
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, next.(model).mode)
}

func TestExportPrompt(t *testing.T) {
	m := drawRect(newTestModel(t))

	m = update(m, key("E"))
	require.Equal(t, ModePrompt, m.mode)
	assert.Equal(t, "flowchart.png", m.prompt.value())
	m = update(m, key("enter"))

	assert.Empty(t, m.errorMessage)
	assert.FileExists(t, filepath.Join(m.config.SaveDirectory, "flowchart.png"))
}

func TestExportEmptyCanvas(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key("E"))
	m = update(m, key("enter"))
	assert.Contains(t, m.errorMessage, "Export failed")
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.png")
	doc := diagram.NewDocument()
	doc.AddShape(diagram.Shape{Kind: diagram.Diamond, X: 0, Y: 0, Width: 80, Height: 60, Text: "ok?"})
	require.NoError(t, diagram.SaveFile(in, doc))

	require.NoError(t, exportFile(in, out))
	assert.FileExists(t, out)

	err := exportFile(filepath.Join(dir, "missing.json"), out)
	assert.ErrorIs(t, err, diagram.ErrSerialization)
}

func TestPanKeys(t *testing.T) {
	m := newTestModel(t)

	m = update(m, key("l"))
	assert.Equal(t, float64(panStep)*8, m.panX)
	m = update(m, key("J"))
	assert.Equal(t, float64(fastPanStep)*16, m.panY)
	m = update(m, key("left"))
	assert.Equal(t, 0.0, m.panX)

	m = update(m, key("0"))
	assert.Equal(t, 0.0, m.panX)
	assert.Equal(t, 0.0, m.panY)
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key("?"))
	require.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "flowdraw help")

	m = update(m, key("j"))
	assert.Equal(t, 1, m.helpScroll)

	m = update(m, key("?"))
	assert.Equal(t, ModeCanvas, m.mode)
	assert.Equal(t, 0, m.helpScroll)
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 30)
	assert.Contains(t, lines[0], "SELECT")
	assert.Contains(t, lines[0], "[new]")

	m = drawRect(m)
	view = m.View()
	assert.Contains(t, view, "[new]*")
	assert.Contains(t, view, "rectangle created")
	assert.Contains(t, view, "┌")

	m = update(m, key("o"))
	m = typeText(m, "x.json")
	view = m.View()
	assert.Contains(t, view, "Open:")
	assert.Contains(t, view, "x.json")
}
