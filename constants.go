package main

import (
	"time"

	"flowdraw/pkg/diagram"
)

type Mode int

const (
	ModeCanvas Mode = iota
	ModePrompt
	ModeConfirm
	ModeHelp
)

type PromptAction int

const (
	PromptEditText PromptAction = iota
	PromptSavePath
	PromptOpenPath
	PromptExportPath
)

type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

const (
	doubleClickWindow = 400 * time.Millisecond
	panStep           = 4 // cells per pan key press
	fastPanStep       = 16
)

// shapeKeys and arrowKeys select a drawing kind. Arrows sit on the shifted
// digits of a US keyboard.
var shapeKeys = map[string]diagram.ShapeKind{
	"1": diagram.Rectangle,
	"2": diagram.Oval,
	"3": diagram.Diamond,
	"4": diagram.Triangle,
	"5": diagram.Parallelogram,
	"6": diagram.Hexagon,
	"7": diagram.Star,
}

var arrowKeys = map[string]diagram.ArrowKind{
	"!": diagram.Straight,
	"@": diagram.Curved,
	"#": diagram.Dashed,
	"$": diagram.Double,
	"%": diagram.Bidirectional,
	"^": diagram.Thick,
	"&": diagram.Dotted,
}
