package main

import (
	"fmt"

	"flowdraw/pkg/diagram"
	"flowdraw/pkg/render"
)

// exportPNG renders the committed document without selection highlight.
func (m *model) exportPNG(filename string) error {
	cmds := diagram.DocumentCommands(m.editor.Document(), -1)
	if err := render.SavePNG(filename, cmds, render.DefaultOptions()); err != nil {
		return err
	}
	m.logger.Info("exported", "file", filename)
	return nil
}

// exportFile converts a saved chart to PNG without starting the terminal UI.
func exportFile(in, out string) error {
	doc, err := diagram.LoadFile(in)
	if err != nil {
		return fmt.Errorf("loading %s: %w", in, err)
	}
	if err := render.SavePNG(out, diagram.DocumentCommands(doc, -1), render.DefaultOptions()); err != nil {
		return fmt.Errorf("exporting %s: %w", out, err)
	}
	return nil
}
