package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"flowdraw/pkg/diagram"
	"flowdraw/pkg/render"
)

type model struct {
	width          int
	height         int
	editor         *diagram.Editor
	config         *Config
	logger         *slog.Logger
	filename       string
	savedDoc       diagram.Document
	panX           float64
	panY           float64
	mode           Mode
	prompt         promptState
	confirmAction  ConfirmAction
	pendingPath    string
	mouseDown      bool
	lastPressAt    time.Time
	lastPressCol   int
	lastPressRow   int
	helpScroll     int
	errorMessage   string
	successMessage string
}

func initialModel(config *Config, logger *slog.Logger) model {
	editor := diagram.NewEditor(diagram.WithLogger(logger))
	return model{
		editor:       editor,
		config:       config,
		logger:       logger,
		savedDoc:     editor.Document(),
		mode:         ModeCanvas,
		lastPressCol: -1,
		lastPressRow: -1,
	}
}

// openAtStart loads the file named on the command line.
func (m *model) openAtStart(filename string) {
	path := m.resolveOpenPath(filename)
	if err := m.editor.Load(path); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.filename = path
	m.savedDoc = m.editor.Document()
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		if m.mode != ModeCanvas {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		// ctrl+c always quits; on the canvas it still asks about unsaved work
		if msg.Type == tea.KeyCtrlC && m.mode != ModeCanvas {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeHelp:
			return m.updateHelp(msg)
		case ModePrompt:
			return m.updatePrompt(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateCanvas(msg)
		}
	}
	return m, nil
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) viewport() render.Viewport {
	rows := m.height - 2 // toolbar and status line
	if rows < 1 {
		rows = 1
	}
	cols := m.width
	if cols < 1 {
		cols = 1
	}
	return render.Viewport{
		Cols:  cols,
		Rows:  rows,
		CellW: m.config.CellWidth,
		CellH: m.config.CellHeight,
		PanX:  m.panX,
		PanY:  m.panY,
	}
}

func (m *model) dirty() bool {
	return !m.editor.Document().Equal(m.savedDoc)
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	vp := m.viewport()
	col, row := msg.X, msg.Y-1
	x, y := vp.CanvasPoint(col, row)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.panY -= panStep * m.config.CellHeight
	case msg.Button == tea.MouseButtonWheelDown:
		m.panY += panStep * m.config.CellHeight
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.mouseDown {
			m.editor.Drag(x, y)
			return
		}
		m.clearMessages()
		now := time.Now()
		double := col == m.lastPressCol && row == m.lastPressRow &&
			now.Sub(m.lastPressAt) <= doubleClickWindow
		m.lastPressAt, m.lastPressCol, m.lastPressRow = now, col, row
		if double {
			m.lastPressCol, m.lastPressRow = -1, -1
			if i, ok := m.editor.HitTest(x, y); ok {
				m.startEditText(i)
				return
			}
		}
		m.mouseDown = true
		m.editor.Press(x, y)
	case msg.Action == tea.MouseActionMotion:
		if m.mouseDown {
			m.editor.Drag(x, y)
		}
	case msg.Action == tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.editor.Release(x, y)
		}
	}
}

func (m model) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.clearMessages()
	key := msg.String()

	if kind, ok := shapeKeys[key]; ok {
		m.editor.SetShapeKind(kind)
		return m, nil
	}
	if kind, ok := arrowKeys[key]; ok {
		m.editor.SetArrowKind(kind)
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		if m.config.Confirmations && m.dirty() {
			m.confirm(ConfirmQuit)
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.mode = ModeHelp
		m.helpScroll = 0
	case "s", "esc":
		m.editor.SetMode(diagram.ModeSelect)
	case "e", "t":
		i, ok := m.editor.Selected()
		if !ok {
			m.errorMessage = "No selection - select a shape first"
			return m, nil
		}
		m.startEditText(i)
	case "x", "delete", "backspace":
		if err := m.editor.DeleteSelected(); err != nil {
			m.errorMessage = m.editor.Status()
		}
	case "u", "ctrl+z":
		m.editor.Undo()
	case "r", "ctrl+y":
		m.editor.Redo()
	case "n":
		if m.config.Confirmations && !m.editor.Document().Empty() {
			m.confirm(ConfirmClear)
			return m, nil
		}
		m.editor.Clear(nil)
		m.filename = ""
	case "ctrl+s":
		if m.filename != "" {
			m.saveTo(m.filename)
			return m, nil
		}
		m.startPrompt(PromptSavePath, "Save as: ", "flowchart.json")
	case "S":
		m.startPrompt(PromptSavePath, "Save as: ", filepath.Base(m.defaultName(".json")))
	case "o":
		m.startPrompt(PromptOpenPath, "Open: ", "")
	case "E":
		m.startPrompt(PromptExportPath, "Export PNG: ", filepath.Base(m.defaultName(".png")))
	case "y":
		m.copySelectedText()
	case "p":
		m.pasteIntoSelected()
	default:
		m.handlePan(key)
	}
	return m, nil
}

func (m *model) defaultName(ext string) string {
	if m.filename == "" {
		return "flowchart" + ext
	}
	return strings.TrimSuffix(m.filename, filepath.Ext(m.filename)) + ext
}

func (m *model) startPrompt(action PromptAction, label, initial string) {
	m.prompt = newPrompt(action, label, initial)
	m.mode = ModePrompt
}

func (m *model) startEditText(i int) {
	doc := m.editor.Document()
	m.editor.Select(i)
	m.startPrompt(PromptEditText, "Text: ", doc.Shapes[i].Text)
	m.prompt.shapeIdx = i
}

func (m *model) confirm(action ConfirmAction) {
	m.confirmAction = action
	m.mode = ModeConfirm
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.prompt
	switch {
	case msg.Type == tea.KeyEscape:
		if p.action == PromptEditText {
			m.editor.EditText(p.shapeIdx, textAnswer{ok: false})
		}
		m.mode = ModeCanvas
		return m, nil
	case msg.Type == tea.KeyCtrlS:
		m.commitPrompt()
		return m, nil
	case msg.Type == tea.KeyEnter:
		if p.action == PromptEditText {
			p.insert("\n")
			return m, nil
		}
		m.commitPrompt()
		return m, nil
	case msg.Type == tea.KeyBackspace:
		p.backspace()
	case msg.Type == tea.KeyDelete:
		p.deleteForward()
	case msg.Type == tea.KeyLeft:
		p.left()
	case msg.Type == tea.KeyRight:
		p.right()
	case msg.Type == tea.KeyHome || msg.Type == tea.KeyCtrlA:
		p.cursor = 0
	case msg.Type == tea.KeyEnd || msg.Type == tea.KeyCtrlE:
		p.cursor = len(p.text)
	case msg.Type == tea.KeySpace:
		p.insert(" ")
	case msg.Type == tea.KeyRunes:
		p.insert(string(msg.Runes))
	}
	return m, nil
}

func (m *model) commitPrompt() {
	p := m.prompt
	m.mode = ModeCanvas
	value := strings.TrimSpace(p.value())

	switch p.action {
	case PromptEditText:
		if err := m.editor.EditText(p.shapeIdx, textAnswer{text: p.value(), ok: true}); err != nil {
			m.errorMessage = err.Error()
		}
	case PromptSavePath:
		if value == "" {
			return
		}
		path := m.config.GetSavePath(value)
		if _, err := os.Stat(path); err == nil && path != m.filename && m.config.Confirmations {
			m.pendingPath = path
			m.confirm(ConfirmOverwriteFile)
			return
		}
		m.saveTo(path)
	case PromptOpenPath:
		if value == "" {
			return
		}
		m.openFrom(m.resolveOpenPath(value))
	case PromptExportPath:
		if value == "" {
			return
		}
		path := m.config.GetSavePath(value)
		if err := m.exportPNG(path); err != nil {
			m.errorMessage = fmt.Sprintf("Export failed: %v", err)
			return
		}
		m.successMessage = "Exported to " + path
	}
}

// resolveOpenPath prefers the save directory but falls back to the name as
// typed, so files outside it can still be opened.
func (m *model) resolveOpenPath(name string) string {
	path := m.config.GetSavePath(name)
	if _, err := os.Stat(path); err != nil {
		return name
	}
	return path
}

func (m *model) saveTo(path string) {
	if _, err := m.editor.SaveAs(pathAnswer{path: path, ok: true}); err != nil {
		m.errorMessage = m.editor.Status()
		return
	}
	m.logger.Info("saved", "file", path)
	m.filename = path
	m.savedDoc = m.editor.Document()
	m.successMessage = m.editor.Status()
}

func (m *model) openFrom(path string) {
	if _, err := m.editor.Open(pathAnswer{path: path, ok: true}); err != nil {
		m.errorMessage = m.editor.Status()
		return
	}
	m.logger.Info("loaded", "file", path)
	m.filename = path
	m.savedDoc = m.editor.Document()
	m.panX, m.panY = 0, 0
	m.successMessage = m.editor.Status()
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	yes := false
	switch msg.String() {
	case "y", "Y":
		yes = true
	case "n", "N", "esc":
	default:
		return m, nil
	}
	m.mode = ModeCanvas

	switch m.confirmAction {
	case ConfirmQuit:
		if yes {
			return m, tea.Quit
		}
	case ConfirmClear:
		if m.editor.Clear(confirmAnswer(yes)) {
			m.filename = ""
		}
	case ConfirmOverwriteFile:
		if yes {
			m.saveTo(m.pendingPath)
		}
		m.pendingPath = ""
	}
	return m, nil
}

func (m model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeCanvas
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

func (m *model) copySelectedText() {
	i, ok := m.editor.Selected()
	if !ok {
		m.errorMessage = "No selection - select a shape first"
		return
	}
	if err := writeClipboardText(m.editor.Document().Shapes[i].Text); err != nil {
		m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.successMessage = "Text copied"
}

func (m *model) pasteIntoSelected() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Paste failed: %v", err)
		return
	}
	err = m.editor.EditSelectedText(textAnswer{text: cleanClipboardText(text), ok: true})
	if errors.Is(err, diagram.ErrNoSelection) {
		m.errorMessage = m.editor.Status()
	}
}
