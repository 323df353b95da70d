package diagram

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeOutlineBoxes(t *testing.T) {
	rect := ShapeOutline(Rectangle, 10, 20, 100, 50)
	assert.Equal(t, OutlineRect, rect.Kind)
	assert.Equal(t, Rect{10, 20, 100, 50}, rect.Box)
	assert.Empty(t, rect.Points)

	oval := ShapeOutline(Oval, 10, 20, 100, 50)
	assert.Equal(t, OutlineEllipse, oval.Kind)
	assert.Equal(t, Rect{10, 20, 100, 50}, oval.Box)

	unknown := ShapeOutline(ShapeKind("cloud"), 0, 0, 10, 10)
	assert.Equal(t, OutlineRect, unknown.Kind)
}

func TestShapeOutlinePolygons(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		want []Point
	}{
		{Diamond, []Point{{50, 0}, {100, 25}, {50, 50}, {0, 25}}},
		{Triangle, []Point{{50, 0}, {100, 50}, {0, 50}}},
		{Parallelogram, []Point{{25, 0}, {100, 0}, {75, 50}, {0, 50}}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			o := ShapeOutline(tt.kind, 0, 0, 100, 50)
			require.Equal(t, OutlinePolygon, o.Kind)
			assert.Equal(t, tt.want, o.Points)
		})
	}
}

func TestHexagonOutline(t *testing.T) {
	o := ShapeOutline(Hexagon, 0, 0, 90, 60)
	require.Len(t, o.Points, 6)
	want := []Point{{30, 0}, {60, 0}, {90, 30}, {60, 60}, {30, 60}, {0, 30}}
	for i, p := range want {
		assert.InDelta(t, p.X, o.Points[i].X, 1e-9, "point %d x", i)
		assert.InDelta(t, p.Y, o.Points[i].Y, 1e-9, "point %d y", i)
	}
}

func TestStarOutline(t *testing.T) {
	o := ShapeOutline(Star, 0, 0, 100, 100)
	require.Equal(t, OutlinePolygon, o.Kind)
	require.Len(t, o.Points, 10)

	// first vertex points straight up on the outer radius
	assert.InDelta(t, 50, o.Points[0].X, 1e-9)
	assert.InDelta(t, 0, o.Points[0].Y, 1e-9)

	// second vertex sits on the inner radius, 36 degrees further round
	angle := -54 * math.Pi / 180
	assert.InDelta(t, 50+25*math.Cos(angle), o.Points[1].X, 1e-9)
	assert.InDelta(t, 50+25*math.Sin(angle), o.Points[1].Y, 1e-9)

	for i, p := range o.Points {
		r := math.Hypot(p.X-50, p.Y-50)
		if i%2 == 0 {
			assert.InDelta(t, 50, r, 1e-9, "outer vertex %d", i)
		} else {
			assert.InDelta(t, 25, r, 1e-9, "inner vertex %d", i)
		}
	}
}

func TestArrowPathSingleStrokeKinds(t *testing.T) {
	tests := []struct {
		kind      ArrowKind
		width     float64
		dash      []float64
		headStart bool
	}{
		{Straight, 1, nil, false},
		{Dashed, 1, []float64{5, 5}, false},
		{Dotted, 1, []float64{2, 3}, false},
		{Thick, 2, nil, false},
		{Bidirectional, 1, nil, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			strokes := ArrowPath(tt.kind, 0, 0, 100, 40)
			require.Len(t, strokes, 1)
			s := strokes[0]
			assert.Equal(t, []Point{{0, 0}, {100, 40}}, s.Points)
			assert.Equal(t, tt.width, s.Width)
			assert.Equal(t, tt.dash, s.Dash)
			assert.Equal(t, tt.headStart, s.HeadStart)
			assert.True(t, s.HeadEnd)
		})
	}
}

func TestArrowPathDouble(t *testing.T) {
	strokes := ArrowPath(Double, 0, 0, 10, 0)
	require.Len(t, strokes, 2)
	assert.Equal(t, []Point{{0, 3}, {10, 3}}, strokes[0].Points)
	assert.Equal(t, []Point{{0, -3}, {10, -3}}, strokes[1].Points)
	for _, s := range strokes {
		assert.True(t, s.HeadEnd)
	}

	assert.Empty(t, ArrowPath(Double, 5, 5, 5, 5), "zero length double has no strokes")
}

func TestArrowPathCurved(t *testing.T) {
	strokes := ArrowPath(Curved, 0, 0, 100, 100)
	require.Len(t, strokes, 1)
	pts := strokes[0].Points
	require.Len(t, pts, 6)
	assert.True(t, strokes[0].Smooth)
	assert.True(t, strokes[0].HeadEnd)

	assert.Equal(t, Point{0, 0}, pts[0])
	assert.InDelta(t, 29.6, pts[1].X, 1e-9)
	assert.InDelta(t, 10.4, pts[1].Y, 1e-9)
	assert.InDelta(t, 100, pts[5].X, 1e-9)
	assert.InDelta(t, 100, pts[5].Y, 1e-9)
}

func TestCurveControl(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           Point
	}{
		{"down right", 0, 0, 100, 100, Point{80, 20}},
		{"up right", 0, 100, 100, 0, Point{20, 80}},
		{"down left", 100, 0, 0, 100, Point{20, 20}},
		{"horizontal", 0, 0, 100, 0, Point{20, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurveControl(tt.x1, tt.y1, tt.x2, tt.y2))
		})
	}
}

func TestDragBoxes(t *testing.T) {
	assert.Equal(t, Rect{10, 10, 20, 20}, ProvisionalBox(10, 10, 15, 15))
	assert.Equal(t, Rect{10, 10, 50, 30}, CommitBox(10, 10, 15, 15))
	assert.Equal(t, Rect{20, 40, 80, 60}, CommitBox(100, 100, 20, 40))
}

func TestArrowDragAccepted(t *testing.T) {
	assert.False(t, ArrowDragAccepted(10, 10, 15, 15))
	assert.False(t, ArrowDragAccepted(10, 10, 20, 20))
	assert.True(t, ArrowDragAccepted(10, 10, 25, 10))
	assert.True(t, ArrowDragAccepted(10, 10, 10, -1))
}

func TestArrowHead(t *testing.T) {
	head := ArrowHead(Point{0, 0}, Point{10, 0}, 6)
	require.Len(t, head, 3)
	assert.Equal(t, Point{10, 0}, head[0])
	assert.InDelta(t, 4, head[1].X, 1e-9)
	assert.InDelta(t, -3, head[1].Y, 1e-9)
	assert.InDelta(t, 4, head[2].X, 1e-9)
	assert.InDelta(t, 3, head[2].Y, 1e-9)

	assert.Nil(t, ArrowHead(Point{1, 1}, Point{1, 1}, 6))
}
