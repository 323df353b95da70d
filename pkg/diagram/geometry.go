package diagram

import "math"

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box with its top-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// BoundsOf returns the bounding box of a point set.
func BoundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

const (
	// Provisional outlines never shrink below this while dragging.
	minFeedbackSize = 20
	// Committed shapes never shrink below this.
	minShapeWidth  = 50
	minShapeHeight = 30
	// Arrows need to travel further than this on some axis to be created.
	arrowDragThreshold = 10

	curveOffset  = 30.0
	doubleOffset = 3.0
	starPoints   = 10
	arrowHeadLen = 10.0
)

var (
	// dash patterns in canvas units, on/off
	dashLong  = []float64{5, 5}
	dashShort = []float64{2, 3}

	curveSamples = []float64{0.2, 0.4, 0.6, 0.8, 1.0}
)

// normalize returns the box spanned by two drag corners.
func normalize(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X: math.Min(x1, x2),
		Y: math.Min(y1, y2),
		W: math.Abs(x2 - x1),
		H: math.Abs(y2 - y1),
	}
}

// ProvisionalBox is the outline shown while a shape is being dragged out.
// Width and height are clamped to 20 for feedback only.
func ProvisionalBox(x1, y1, x2, y2 float64) Rect {
	r := normalize(x1, y1, x2, y2)
	r.W = math.Max(r.W, minFeedbackSize)
	r.H = math.Max(r.H, minFeedbackSize)
	return r
}

// CommitBox is the box a finished drag produces: at least 50 wide and 30
// high, anchored at the top-left of the dragged region.
func CommitBox(x1, y1, x2, y2 float64) Rect {
	r := normalize(x1, y1, x2, y2)
	r.W = math.Max(r.W, minShapeWidth)
	r.H = math.Max(r.H, minShapeHeight)
	return r
}

// ArrowDragAccepted reports whether a drag from (x1,y1) to (x2,y2) is long
// enough to become a connector.
func ArrowDragAccepted(x1, y1, x2, y2 float64) bool {
	return math.Abs(x2-x1) > arrowDragThreshold || math.Abs(y2-y1) > arrowDragThreshold
}

type OutlineKind int

const (
	OutlineRect OutlineKind = iota
	OutlineEllipse
	OutlinePolygon
)

// Outline is the renderable silhouette of a shape. Rectangles and ellipses
// are described by Box alone; polygons carry their vertices in Points.
type Outline struct {
	Kind   OutlineKind
	Box    Rect
	Points []Point
}

// ShapeOutline computes the outline of a shape of the given kind filling
// the box (x, y, w, h). Unknown kinds fall back to the bounding rectangle.
func ShapeOutline(kind ShapeKind, x, y, w, h float64) Outline {
	box := Rect{X: x, Y: y, W: w, H: h}
	x2, y2 := x+w, y+h
	c := box.Center()

	var pts []Point
	switch kind {
	case Oval:
		return Outline{Kind: OutlineEllipse, Box: box}
	case Diamond:
		pts = []Point{{c.X, y}, {x2, c.Y}, {c.X, y2}, {x, c.Y}}
	case Triangle:
		pts = []Point{{c.X, y}, {x2, y2}, {x, y2}}
	case Parallelogram:
		off := w / 4
		pts = []Point{{x + off, y}, {x2, y}, {x2 - off, y2}, {x, y2}}
	case Hexagon:
		third := w / 3
		pts = []Point{
			{x + third, y}, {x2 - third, y}, {x2, c.Y},
			{x2 - third, y2}, {x + third, y2}, {x, c.Y},
		}
	case Star:
		pts = starOutline(c, w, h)
	default:
		return Outline{Kind: OutlineRect, Box: box}
	}
	return Outline{Kind: OutlinePolygon, Box: box, Points: pts}
}

// starOutline alternates outer (w/2, h/2) and inner (w/4, h/4) radii,
// starting straight up and stepping 36 degrees.
func starOutline(c Point, w, h float64) []Point {
	pts := make([]Point, 0, starPoints)
	for i := 0; i < starPoints; i++ {
		angle := float64(i)*math.Pi/5 - math.Pi/2
		rx, ry := w/2, h/2
		if i%2 == 1 {
			rx, ry = w/4, h/4
		}
		pts = append(pts, Point{
			X: c.X + rx*math.Cos(angle),
			Y: c.Y + ry*math.Sin(angle),
		})
	}
	return pts
}

// Stroke is one polyline of a connector.
type Stroke struct {
	Points    []Point
	Width     float64 // multiplier of the base line width
	Dash      []float64
	Smooth    bool
	HeadStart bool
	HeadEnd   bool
}

// ArrowPath computes the strokes of a connector of the given kind from
// (x1,y1) to (x2,y2). A double connector of zero length has no strokes.
func ArrowPath(kind ArrowKind, x1, y1, x2, y2 float64) []Stroke {
	seg := []Point{{x1, y1}, {x2, y2}}
	switch kind {
	case Curved:
		return []Stroke{{Points: curvePoints(x1, y1, x2, y2), Width: 1, Smooth: true, HeadEnd: true}}
	case Dashed:
		return []Stroke{{Points: seg, Width: 1, Dash: dashLong, HeadEnd: true}}
	case Dotted:
		return []Stroke{{Points: seg, Width: 1, Dash: dashShort, HeadEnd: true}}
	case Thick:
		return []Stroke{{Points: seg, Width: 2, HeadEnd: true}}
	case Bidirectional:
		return []Stroke{{Points: seg, Width: 1, HeadStart: true, HeadEnd: true}}
	case Double:
		dx, dy := x2-x1, y2-y1
		length := math.Hypot(dx, dy)
		if length == 0 {
			return nil
		}
		ox := -dy / length * doubleOffset
		oy := dx / length * doubleOffset
		return []Stroke{
			{Points: []Point{{x1 + ox, y1 + oy}, {x2 + ox, y2 + oy}}, Width: 1, HeadEnd: true},
			{Points: []Point{{x1 - ox, y1 - oy}, {x2 - ox, y2 - oy}}, Width: 1, HeadEnd: true},
		}
	default:
		return []Stroke{{Points: seg, Width: 1, HeadEnd: true}}
	}
}

// CurveControl returns the control point of a curved connector: the
// midpoint pushed 30 units sideways and 30 units against the vertical
// direction of travel.
func CurveControl(x1, y1, x2, y2 float64) Point {
	mx, my := (x1+x2)/2, (y1+y2)/2
	cx := mx - curveOffset
	if (x2-x1)*(y2-y1) > 0 {
		cx = mx + curveOffset
	}
	cy := my + curveOffset
	if y2 > y1 {
		cy = my - curveOffset
	}
	return Point{X: cx, Y: cy}
}

// curvePoints samples the quadratic Bezier start, control, end at the
// start point plus t = 0.2, 0.4, 0.6, 0.8, 1.0.
func curvePoints(x1, y1, x2, y2 float64) []Point {
	ctrl := CurveControl(x1, y1, x2, y2)
	pts := make([]Point, 0, len(curveSamples)+1)
	pts = append(pts, Point{x1, y1})
	for _, t := range curveSamples {
		u := 1 - t
		pts = append(pts, Point{
			X: u*u*x1 + 2*u*t*ctrl.X + t*t*x2,
			Y: u*u*y1 + 2*u*t*ctrl.Y + t*t*y2,
		})
	}
	return pts
}

// ArrowHead returns the triangle of an arrowhead pointing at tip, coming
// from the direction of from. It returns nil when the two points coincide.
func ArrowHead(from, tip Point, size float64) []Point {
	dx := tip.X - from.X
	dy := tip.Y - from.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return nil
	}
	dx /= length
	dy /= length

	const spread = 0.5
	return []Point{
		tip,
		{X: tip.X - size*dx + size*dy*spread, Y: tip.Y - size*dy - size*dx*spread},
		{X: tip.X - size*dx - size*dy*spread, Y: tip.Y - size*dy + size*dx*spread},
	}
}
