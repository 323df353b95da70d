package diagram

// TextPrompter asks the user for a line of text. ok is false when the user
// cancelled.
type TextPrompter interface {
	AskString(prompt, initial string) (text string, ok bool)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	AskYesNo(prompt string) bool
}

// PathPrompter asks the user for a file to write or read. ok is false when
// the user cancelled.
type PathPrompter interface {
	AskSavePath() (path string, ok bool)
	AskOpenPath() (path string, ok bool)
}

// TextPrompterFunc adapts a function to TextPrompter.
type TextPrompterFunc func(prompt, initial string) (string, bool)

func (f TextPrompterFunc) AskString(prompt, initial string) (string, bool) {
	return f(prompt, initial)
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) AskYesNo(prompt string) bool { return f(prompt) }
