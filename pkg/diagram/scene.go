package diagram

import "image/color"

// Op is the primitive a DrawCommand asks the surface to paint.
type Op int

const (
	OpRect Op = iota
	OpEllipse
	OpPolygon
	OpPolyline
	OpText
)

// Style carries the paint attributes of a command.
type Style struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	Filled      bool
	LineWidth   float64
	Dash        []float64
	Smooth      bool
	HeadStart   bool
	HeadEnd     bool
	Selected    bool
	Provisional bool
}

// DrawCommand is one item of a full redraw. Rect and ellipse commands use
// Box; polygons and polylines use Points; text is centered on Box.
type DrawCommand struct {
	Op     Op
	Box    Rect
	Points []Point
	Text   string
	Style  Style
}

// Bounds returns the extent of the command on the canvas.
func (c DrawCommand) Bounds() Rect {
	switch c.Op {
	case OpPolygon, OpPolyline:
		return BoundsOf(c.Points)
	default:
		return c.Box
	}
}

var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorBlack     = color.RGBA{0, 0, 0, 255}
	colorBlue      = color.RGBA{0, 0, 255, 255}
	colorLightBlue = color.RGBA{173, 216, 230, 255}
	colorGray      = color.RGBA{128, 128, 128, 255}
	colorLightGray = color.RGBA{211, 211, 211, 255}
)

const baseLineWidth = 2

var (
	shapeStyle       = Style{Fill: colorWhite, Stroke: colorBlack, Filled: true, LineWidth: baseLineWidth}
	selectedStyle    = Style{Fill: colorLightBlue, Stroke: colorBlue, Filled: true, LineWidth: baseLineWidth, Selected: true}
	provisionalShape = Style{Fill: colorLightGray, Stroke: colorGray, Filled: true, LineWidth: 1, Provisional: true}
	arrowStyle       = Style{Stroke: colorBlack, LineWidth: baseLineWidth}
	provisionalArrow = Style{Stroke: colorGray, LineWidth: 1, Provisional: true}
	labelStyle       = Style{Stroke: colorBlack}
)

// ShapeCommands returns the commands painting one shape and its label.
func ShapeCommands(s Shape, style Style) []DrawCommand {
	o := ShapeOutline(s.Kind, s.X, s.Y, s.Width, s.Height)
	cmd := DrawCommand{Box: o.Box, Style: style}
	switch o.Kind {
	case OutlineEllipse:
		cmd.Op = OpEllipse
	case OutlinePolygon:
		cmd.Op = OpPolygon
		cmd.Points = o.Points
	default:
		cmd.Op = OpRect
	}
	cmds := []DrawCommand{cmd}
	if s.Text != "" {
		cmds = append(cmds, DrawCommand{Op: OpText, Box: s.Bounds(), Text: s.Text, Style: labelStyle})
	}
	return cmds
}

// ArrowCommands returns one polyline command per stroke of the connector.
func ArrowCommands(a Arrow, style Style) []DrawCommand {
	strokes := ArrowPath(a.Kind, a.StartX, a.StartY, a.EndX, a.EndY)
	cmds := make([]DrawCommand, 0, len(strokes))
	for _, st := range strokes {
		s := style
		s.LineWidth = style.LineWidth * st.Width
		s.Dash = st.Dash
		s.Smooth = st.Smooth
		s.HeadStart = st.HeadStart
		s.HeadEnd = st.HeadEnd
		cmds = append(cmds, DrawCommand{Op: OpPolyline, Points: st.Points, Style: s})
	}
	return cmds
}

// DocumentCommands paints a whole document: shapes in order, then arrows.
// selected is the index of the highlighted shape, or -1.
func DocumentCommands(doc Document, selected int) []DrawCommand {
	cmds := make([]DrawCommand, 0, len(doc.Shapes)*2+len(doc.Arrows))
	for i, s := range doc.Shapes {
		style := shapeStyle
		if i == selected {
			style = selectedStyle
		}
		cmds = append(cmds, ShapeCommands(s, style)...)
	}
	for _, a := range doc.Arrows {
		cmds = append(cmds, ArrowCommands(a, arrowStyle)...)
	}
	return cmds
}
