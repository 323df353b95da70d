package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flowdraw/pkg/diagram"
	"flowdraw/pkg/render"
)

var (
	toolbarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255"))
	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
)

var helpLines = []string{
	"flowdraw help",
	"=============",
	"",
	"Mouse:",
	"------",
	"  click            Select the topmost shape under the pointer (select mode)",
	"  drag             Move the selected shape, or draw in shape/arrow mode",
	"  double click     Edit the text of a shape",
	"  wheel            Pan up and down",
	"",
	"Tools:",
	"------",
	"  s / Esc          Select and move",
	"  1-7              Rectangle, oval, diamond, triangle, parallelogram, hexagon, star",
	"  ! @ # $ % ^ &    Straight, curved, dashed, double, bidirectional, thick, dotted arrow",
	"",
	"Editing:",
	"--------",
	"  e / t            Edit text of the selected shape (Enter: new line, Ctrl+S: done)",
	"  x / Delete       Delete the selected shape",
	"  u / Ctrl+Z       Undo",
	"  r / Ctrl+Y       Redo",
	"  y                Copy the selected shape's text to the clipboard",
	"  p                Paste the clipboard into the selected shape",
	"  n                New chart (clears the canvas)",
	"",
	"Files:",
	"------",
	"  Ctrl+S           Save",
	"  S                Save as",
	"  o                Open",
	"  E                Export PNG",
	"",
	"View:",
	"-----",
	"  h/j/k/l, arrows  Pan (Shift for faster)",
	"  0                Reset pan",
	"  ?                Toggle help",
	"  q                Quit",
}

func (m model) View() string {
	if m.mode == ModeHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.toolbarView())
	b.WriteString("\n")
	rows := render.Grid(m.editor.Scene(), m.viewport())
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m model) modeString() string {
	switch m.editor.Mode() {
	case diagram.ModeDrawShape:
		return fmt.Sprintf("%s %s", m.editor.Mode(), m.editor.ShapeKind())
	case diagram.ModeDrawArrow:
		return fmt.Sprintf("%s %s", m.editor.Mode(), m.editor.ArrowKind())
	default:
		return m.editor.Mode().String()
	}
}

func (m model) toolbarView() string {
	name := "[new]"
	if m.filename != "" {
		name = filepath.Base(m.filename)
	}
	if m.dirty() {
		name += "*"
	}
	h := m.editor.History()
	info := fmt.Sprintf(" %s │ history %d/%d │ ? help", name, h.Index()+1, h.Len())
	bar := modeStyle.Render(m.modeString()) + toolbarStyle.Render(info)
	width := m.width
	if width < 1 {
		return bar
	}
	return toolbarStyle.Width(width).Render(bar)
}

func (m model) statusView() string {
	switch m.mode {
	case ModePrompt:
		text := m.prompt.text
		before := strings.ReplaceAll(string(text[:m.prompt.cursor]), "\n", "⏎")
		at := " "
		after := ""
		if m.prompt.cursor < len(text) {
			at = strings.ReplaceAll(string(text[m.prompt.cursor]), "\n", "⏎")
			after = strings.ReplaceAll(string(text[m.prompt.cursor+1:]), "\n", "⏎")
		}
		return promptStyle.Render(m.prompt.label) + before + cursorStyle.Render(at) + after
	case ModeConfirm:
		return promptStyle.Render(m.confirmQuestion() + " (y/n)")
	}
	if m.errorMessage != "" {
		return errorStyle.Render(m.errorMessage)
	}
	if m.successMessage != "" {
		return successStyle.Render(m.successMessage)
	}
	return statusStyle.Render(m.editor.Status())
}

func (m model) confirmQuestion() string {
	switch m.confirmAction {
	case ConfirmClear:
		return "Are you sure you want to clear everything?"
	case ConfirmQuit:
		return "Quit without saving?"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("Overwrite %s?", filepath.Base(m.pendingPath))
	}
	return "Are you sure?"
}

func (m model) helpView() string {
	height := m.height
	if height < 1 {
		height = len(helpLines)
	}
	start := m.helpScroll
	end := start + height
	if end > len(helpLines) {
		end = len(helpLines)
	}
	return strings.Join(helpLines[start:end], "\n")
}
