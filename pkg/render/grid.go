package render

import (
	"math"
	"strings"

	"flowdraw/pkg/diagram"
)

// Viewport maps canvas units onto terminal cells.
type Viewport struct {
	Cols, Rows   int
	CellW, CellH float64 // canvas units per cell
	PanX, PanY   float64 // canvas coordinate of the top-left cell
}

// CanvasPoint returns the canvas coordinate at the center of a cell.
func (v Viewport) CanvasPoint(col, row int) (float64, float64) {
	return v.PanX + (float64(col)+0.5)*v.CellW, v.PanY + (float64(row)+0.5)*v.CellH
}

// cellF returns the fractional cell position of p.
func (v Viewport) cellF(p diagram.Point) (float64, float64) {
	return (p.X - v.PanX) / v.CellW, (p.Y - v.PanY) / v.CellH
}

// cell returns the cell holding p. Positions past an edge collapse onto the
// first cell beyond it, so off-screen points stay off-screen and the result
// always fits in an int.
func (v Viewport) cell(p diagram.Point) (int, int) {
	x, y := v.cellF(p)
	return clampCell(math.Floor(x), v.Cols), clampCell(math.Floor(y), v.Rows)
}

func clampCell(f float64, n int) int {
	if f < -1 || math.IsNaN(f) {
		return -1
	}
	if f > float64(n) {
		return n
	}
	return int(f)
}

type glyphs struct {
	horiz, vert, down, up rune
	tl, tr, bl, br        rune
}

var (
	plainGlyphs       = glyphs{'─', '│', '╲', '╱', '┌', '┐', '└', '┘'}
	selectedGlyphs    = glyphs{'═', '║', '╲', '╱', '╔', '╗', '╚', '╝'}
	thickGlyphs       = glyphs{'━', '┃', '╲', '╱', '┏', '┓', '┗', '┛'}
	provisionalGlyphs = glyphs{'·', '·', '·', '·', '·', '·', '·', '·'}
	dottedGlyphs      = glyphs{'┄', '┆', '·', '·', '┄', '┄', '┄', '┄'}
)

const ellipseSegments = 32

// Grid rasterizes cmds into terminal rows, each exactly v.Cols runes wide.
// Later commands overwrite earlier ones, matching paint order.
func Grid(cmds []diagram.DrawCommand, v Viewport) []string {
	if v.Cols < 1 || v.Rows < 1 {
		return nil
	}
	if v.CellW <= 0 {
		v.CellW = 1
	}
	if v.CellH <= 0 {
		v.CellH = 1
	}

	g := grid{v: v, cells: make([][]rune, v.Rows)}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", v.Cols))
	}
	for _, c := range cmds {
		g.paint(c)
	}

	rows := make([]string, v.Rows)
	for i, r := range g.cells {
		rows[i] = string(r)
	}
	return rows
}

type grid struct {
	v     Viewport
	cells [][]rune
}

func (g *grid) set(col, row int, r rune) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col] = r
}

func glyphsFor(s diagram.Style) glyphs {
	switch {
	case s.Provisional:
		return provisionalGlyphs
	case s.Selected:
		return selectedGlyphs
	case len(s.Dash) > 0 && s.Dash[0] < 5:
		return dottedGlyphs
	case s.LineWidth > 2:
		return thickGlyphs
	default:
		return plainGlyphs
	}
}

func (g *grid) paint(c diagram.DrawCommand) {
	gl := glyphsFor(c.Style)
	switch c.Op {
	case diagram.OpRect:
		g.rect(c.Box, gl)
	case diagram.OpEllipse:
		g.closed(ellipsePoints(c.Box, ellipseSegments), gl)
	case diagram.OpPolygon:
		g.closed(c.Points, gl)
	case diagram.OpPolyline:
		g.polyline(c, gl)
	case diagram.OpText:
		g.text(c)
	}
}

func (g *grid) rect(b diagram.Rect, gl glyphs) {
	x0, y0 := g.v.cellF(diagram.Point{X: b.X, Y: b.Y})
	x1, y1 := g.v.cellF(diagram.Point{X: b.X + b.W, Y: b.Y + b.H})
	fc0, fr0 := math.Floor(x0), math.Floor(y0)
	fc1, fr1 := math.Floor(x1), math.Floor(y1)
	if fc1 <= fc0 {
		fc1 = fc0 + 1
	}
	if fr1 <= fr0 {
		fr1 = fr0 + 1
	}
	c0, c1 := clampCell(fc0, g.v.Cols), clampCell(fc1, g.v.Cols)
	r0, r1 := clampCell(fr0, g.v.Rows), clampCell(fr1, g.v.Rows)

	for c := c0 + 1; c < c1; c++ {
		g.set(c, r0, gl.horiz)
		g.set(c, r1, gl.horiz)
	}
	for r := r0 + 1; r < r1; r++ {
		g.set(c0, r, gl.vert)
		g.set(c1, r, gl.vert)
	}
	g.set(c0, r0, gl.tl)
	g.set(c1, r0, gl.tr)
	g.set(c0, r1, gl.bl)
	g.set(c1, r1, gl.br)
}

func (g *grid) closed(pts []diagram.Point, gl glyphs) {
	for i := range pts {
		g.line(pts[i], pts[(i+1)%len(pts)], gl, nil)
	}
}

func (g *grid) polyline(c diagram.DrawCommand, gl glyphs) {
	n := len(c.Points)
	if n < 2 {
		return
	}
	for i := 0; i < n-1; i++ {
		g.line(c.Points[i], c.Points[i+1], gl, c.Style.Dash)
	}
	if c.Style.HeadEnd {
		g.head(c.Points[n-2], c.Points[n-1])
	}
	if c.Style.HeadStart {
		g.head(c.Points[1], c.Points[0])
	}
}

// line walks the visible cells between a and b with Bresenham's algorithm.
// A dash pattern leaves every third cell blank.
func (g *grid) line(a, b diagram.Point, gl glyphs, dash []float64) {
	a, b, ok := g.clip(a, b)
	if !ok {
		return
	}
	x0, y0 := g.v.cell(a)
	x1, y1 := g.v.cell(b)
	r := lineGlyph(x1-x0, y1-y0, gl)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy
	for step := 0; ; step++ {
		if len(dash) == 0 || dash[0] < 5 || step%3 != 2 {
			g.set(x0, y0, r)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
}

// clip trims the segment ab to the viewport plus a one cell margin using
// Liang-Barsky. ok is false when nothing of it is visible.
func (g *grid) clip(a, b diagram.Point) (diagram.Point, diagram.Point, bool) {
	v := g.v
	minX, maxX := v.PanX-v.CellW, v.PanX+float64(v.Cols+1)*v.CellW
	minY, maxY := v.PanY-v.CellH, v.PanY+float64(v.Rows+1)*v.CellH
	dx, dy := b.X-a.X, b.Y-a.Y

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return a, b, false
	}
	return diagram.Point{X: a.X + t0*dx, Y: a.Y + t0*dy},
		diagram.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

func lineGlyph(dx, dy int, gl glyphs) rune {
	adx, ady := abs(dx), abs(dy)
	switch {
	case ady*2 <= adx:
		return gl.horiz
	case adx*2 <= ady:
		return gl.vert
	case (dx > 0) == (dy > 0):
		return gl.down
	default:
		return gl.up
	}
}

// head marks the tip cell with a glyph pointing away from from.
func (g *grid) head(from, tip diagram.Point) {
	dx := (tip.X - from.X) / g.v.CellW
	dy := (tip.Y - from.Y) / g.v.CellH
	if dx == 0 && dy == 0 {
		return
	}
	var r rune
	if math.Abs(dx) >= math.Abs(dy) {
		r = '>'
		if dx < 0 {
			r = '<'
		}
	} else {
		r = 'v'
		if dy < 0 {
			r = '^'
		}
	}
	col, row := g.v.cell(tip)
	g.set(col, row, r)
}

func (g *grid) text(c diagram.DrawCommand) {
	lines := strings.Split(c.Text, "\n")
	widest := 0
	for _, line := range lines {
		widest = max(widest, len([]rune(line)))
	}
	fx, fy := g.v.cellF(c.Box.Center())
	if fx+float64(widest) < 0 || fx-float64(widest) > float64(g.v.Cols) ||
		fy+float64(len(lines)) < 0 || fy-float64(len(lines)) > float64(g.v.Rows) {
		return
	}
	col, row := int(math.Floor(fx)), int(math.Floor(fy))
	top := row - (len(lines)-1)/2
	for i, line := range lines {
		runes := []rune(line)
		start := col - len(runes)/2
		for j, r := range runes {
			g.set(start+j, top+i, r)
		}
	}
}

// ellipsePoints approximates the ellipse inscribed in b with n vertices.
func ellipsePoints(b diagram.Rect, n int) []diagram.Point {
	c := b.Center()
	pts := make([]diagram.Point, n)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = diagram.Point{
			X: c.X + b.W/2*math.Cos(angle),
			Y: c.Y + b.H/2*math.Sin(angle),
		}
	}
	return pts
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
