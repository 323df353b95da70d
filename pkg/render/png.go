// Package render paints diagram draw commands onto concrete surfaces: a PNG
// image through gg, and a grid of terminal cells.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"flowdraw/pkg/diagram"
)

// ErrNothingToExport is returned when asked to paint an empty scene.
var ErrNothingToExport = errors.New("nothing to export")

// MaxImageSide bounds the pixel size of an exported image. Larger scenes
// are scaled down to fit.
const MaxImageSide = 16384

// Options controls PNG output.
type Options struct {
	Padding    float64 // canvas units around the scene
	Scale      float64 // pixels per canvas unit
	FontSize   float64
	HeadSize   float64 // arrowhead length in canvas units
	Background color.Color
}

func DefaultOptions() Options {
	return Options{
		Padding:    20,
		Scale:      1,
		FontSize:   12,
		HeadSize:   10,
		Background: color.White,
	}
}

// sceneBounds is the union of the extents of every command.
func sceneBounds(cmds []diagram.DrawCommand) diagram.Rect {
	b := cmds[0].Bounds()
	for _, c := range cmds[1:] {
		b = b.Union(c.Bounds())
	}
	return b
}

// Draw paints cmds onto a new context sized to fit them plus padding.
func Draw(cmds []diagram.DrawCommand, opts Options) (*gg.Context, error) {
	if len(cmds) == 0 {
		return nil, ErrNothingToExport
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	b := sceneBounds(cmds)
	minX := b.X - opts.Padding
	minY := b.Y - opts.Padding
	spanW := b.W + 2*opts.Padding
	spanH := b.H + 2*opts.Padding
	if math.IsNaN(spanW) || math.IsNaN(spanH) || math.IsInf(spanW, 0) || math.IsInf(spanH, 0) {
		return nil, fmt.Errorf("scene bounds %gx%g are not finite", spanW, spanH)
	}
	if longest := math.Max(spanW, spanH) * opts.Scale; longest > MaxImageSide {
		opts.Scale *= MaxImageSide / longest
	}
	width := min(int(math.Ceil(spanW*opts.Scale)), MaxImageSide)
	height := min(int(math.Ceil(spanH*opts.Scale)), MaxImageSide)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    math.Max(opts.FontSize*opts.Scale, 1),
		DPI:     72,
		Hinting: font.HintingFull,
	})

	dc := gg.NewContext(width, height)
	dc.SetColor(opts.Background)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetLineJoin(gg.LineJoinRound)

	p := painter{dc: dc, minX: minX, minY: minY, scale: opts.Scale, head: opts.HeadSize}
	for _, c := range cmds {
		p.paint(c)
	}
	return dc, nil
}

// EncodePNG paints cmds and writes the image to w.
func EncodePNG(w io.Writer, cmds []diagram.DrawCommand, opts Options) error {
	dc, err := Draw(cmds, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG paints cmds and writes the image to filename.
func SavePNG(filename string, cmds []diagram.DrawCommand, opts Options) error {
	dc, err := Draw(cmds, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

type painter struct {
	dc         *gg.Context
	minX, minY float64
	scale      float64
	head       float64
}

func (p painter) pt(q diagram.Point) (float64, float64) {
	return (q.X - p.minX) * p.scale, (q.Y - p.minY) * p.scale
}

func (p painter) paint(c diagram.DrawCommand) {
	dc := p.dc
	switch c.Op {
	case diagram.OpRect:
		x, y := p.pt(diagram.Point{X: c.Box.X, Y: c.Box.Y})
		dc.DrawRectangle(x, y, c.Box.W*p.scale, c.Box.H*p.scale)
		p.fillAndStroke(c.Style)
	case diagram.OpEllipse:
		cx, cy := p.pt(c.Box.Center())
		dc.DrawEllipse(cx, cy, c.Box.W/2*p.scale, c.Box.H/2*p.scale)
		p.fillAndStroke(c.Style)
	case diagram.OpPolygon:
		if len(c.Points) < 2 {
			return
		}
		p.trace(c.Points, false)
		dc.ClosePath()
		p.fillAndStroke(c.Style)
	case diagram.OpPolyline:
		p.polyline(c)
	case diagram.OpText:
		p.text(c)
	}
}

func (p painter) fillAndStroke(s diagram.Style) {
	dc := p.dc
	if s.Filled {
		dc.SetColor(s.Fill)
		dc.FillPreserve()
	}
	dc.SetColor(s.Stroke)
	dc.SetLineWidth(s.LineWidth * p.scale)
	dc.Stroke()
}

// trace adds the points to the current path. Smoothed paths use the points
// as quadratic control points through the midpoints between them.
func (p painter) trace(pts []diagram.Point, smooth bool) {
	dc := p.dc
	dc.MoveTo(p.pt(pts[0]))
	if !smooth || len(pts) < 3 {
		for _, q := range pts[1:] {
			dc.LineTo(p.pt(q))
		}
		return
	}
	for i := 1; i < len(pts)-1; i++ {
		end := pts[len(pts)-1]
		if i < len(pts)-2 {
			end = diagram.Point{X: (pts[i].X + pts[i+1].X) / 2, Y: (pts[i].Y + pts[i+1].Y) / 2}
		}
		cx, cy := p.pt(pts[i])
		ex, ey := p.pt(end)
		dc.QuadraticTo(cx, cy, ex, ey)
	}
}

func (p painter) polyline(c diagram.DrawCommand) {
	if len(c.Points) < 2 {
		return
	}
	dc := p.dc
	s := c.Style

	p.trace(c.Points, s.Smooth)
	dc.SetColor(s.Stroke)
	dc.SetLineWidth(s.LineWidth * p.scale)
	if len(s.Dash) > 0 {
		dash := make([]float64, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = d * p.scale
		}
		dc.SetDash(dash...)
	}
	dc.Stroke()
	dc.SetDash()

	n := len(c.Points)
	if s.HeadEnd {
		p.arrowHead(c.Points[n-2], c.Points[n-1], s)
	}
	if s.HeadStart {
		p.arrowHead(c.Points[1], c.Points[0], s)
	}
}

func (p painter) arrowHead(from, tip diagram.Point, s diagram.Style) {
	head := diagram.ArrowHead(from, tip, p.head+s.LineWidth)
	if head == nil {
		return
	}
	p.trace(head, false)
	p.dc.ClosePath()
	p.dc.SetColor(s.Stroke)
	p.dc.Fill()
}

func (p painter) text(c diagram.DrawCommand) {
	dc := p.dc
	lines := strings.Split(c.Text, "\n")
	lineHeight := dc.FontHeight() * 1.2
	cx, cy := p.pt(c.Box.Center())
	top := cy - lineHeight*float64(len(lines)-1)/2

	dc.SetColor(c.Style.Stroke)
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, top+float64(i)*lineHeight, 0.5, 0.5)
	}
}
