package main

import "flowdraw/pkg/diagram"

// The terminal cannot block inside an editor call waiting for the user, so
// the modal prompts collect their answer first and hand it to the editor
// through these already-answered collaborators.

type textAnswer struct {
	text string
	ok   bool
}

func (a textAnswer) AskString(string, string) (string, bool) { return a.text, a.ok }

type confirmAnswer bool

func (a confirmAnswer) AskYesNo(string) bool { return bool(a) }

type pathAnswer struct {
	path string
	ok   bool
}

func (a pathAnswer) AskSavePath() (string, bool) { return a.path, a.ok }
func (a pathAnswer) AskOpenPath() (string, bool) { return a.path, a.ok }

var (
	_ diagram.TextPrompter = textAnswer{}
	_ diagram.Confirmer    = confirmAnswer(false)
	_ diagram.PathPrompter = pathAnswer{}
)

// promptState is the single-line input shown at the bottom of the screen.
type promptState struct {
	action   PromptAction
	label    string
	text     []rune
	cursor   int
	shapeIdx int
}

func newPrompt(action PromptAction, label, initial string) promptState {
	runes := []rune(initial)
	return promptState{action: action, label: label, text: runes, cursor: len(runes), shapeIdx: -1}
}

func (p *promptState) insert(s string) {
	in := []rune(s)
	text := make([]rune, 0, len(p.text)+len(in))
	text = append(text, p.text[:p.cursor]...)
	text = append(text, in...)
	text = append(text, p.text[p.cursor:]...)
	p.text = text
	p.cursor += len(in)
}

func (p *promptState) backspace() {
	if p.cursor == 0 {
		return
	}
	p.text = append(p.text[:p.cursor-1], p.text[p.cursor:]...)
	p.cursor--
}

func (p *promptState) deleteForward() {
	if p.cursor >= len(p.text) {
		return
	}
	p.text = append(p.text[:p.cursor], p.text[p.cursor+1:]...)
}

func (p *promptState) left() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *promptState) right() {
	if p.cursor < len(p.text) {
		p.cursor++
	}
}

func (p promptState) value() string { return string(p.text) }
