package diagram

// Shape is a flowchart node. X and Y are the top-left corner in canvas
// coordinates.
type Shape struct {
	Kind   ShapeKind `json:"shape_type"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Text   string    `json:"text"`
}

// Bounds returns the axis-aligned bounding box of the shape.
func (s Shape) Bounds() Rect {
	return Rect{X: s.X, Y: s.Y, W: s.Width, H: s.Height}
}

// Contains reports whether (x, y) lies inside the bounding box, edges
// included. The silhouette is not consulted: a click in the corner of a
// diamond's box still hits the diamond.
func (s Shape) Contains(x, y float64) bool {
	return s.X <= x && x <= s.X+s.Width && s.Y <= y && y <= s.Y+s.Height
}

// Arrow is a free-floating connector between two canvas points. It holds
// no reference to the shapes it visually joins.
type Arrow struct {
	Kind   ArrowKind `json:"arrow_type"`
	StartX float64   `json:"start_x"`
	StartY float64   `json:"start_y"`
	EndX   float64   `json:"end_x"`
	EndY   float64   `json:"end_y"`
}

// Document is the persisted diagram. Slice order is paint order: later
// entries are drawn on top and are hit-tested first.
type Document struct {
	Shapes []Shape `json:"shapes"`
	Arrows []Arrow `json:"arrows"`
}

func NewDocument() Document {
	return Document{
		Shapes: make([]Shape, 0),
		Arrows: make([]Arrow, 0),
	}
}

// Clone returns a copy that shares no backing arrays with d.
func (d Document) Clone() Document {
	c := Document{
		Shapes: make([]Shape, len(d.Shapes)),
		Arrows: make([]Arrow, len(d.Arrows)),
	}
	copy(c.Shapes, d.Shapes)
	copy(c.Arrows, d.Arrows)
	return c
}

func (d Document) Empty() bool {
	return len(d.Shapes) == 0 && len(d.Arrows) == 0
}

// Equal compares attribute-wise; a nil and an empty sequence are equal.
func (d Document) Equal(o Document) bool {
	if len(d.Shapes) != len(o.Shapes) || len(d.Arrows) != len(o.Arrows) {
		return false
	}
	for i := range d.Shapes {
		if d.Shapes[i] != o.Shapes[i] {
			return false
		}
	}
	for i := range d.Arrows {
		if d.Arrows[i] != o.Arrows[i] {
			return false
		}
	}
	return true
}

func (d *Document) AddShape(s Shape) int {
	d.Shapes = append(d.Shapes, s)
	return len(d.Shapes) - 1
}

func (d *Document) AddArrow(a Arrow) int {
	d.Arrows = append(d.Arrows, a)
	return len(d.Arrows) - 1
}

// RemoveShape deletes the shape at index i, keeping the order of the rest.
// Arrows are left alone.
func (d *Document) RemoveShape(i int) bool {
	if i < 0 || i >= len(d.Shapes) {
		return false
	}
	d.Shapes = append(d.Shapes[:i], d.Shapes[i+1:]...)
	return true
}

func (d *Document) Clear() {
	d.Shapes = d.Shapes[:0]
	d.Arrows = d.Arrows[:0]
}

// ShapeAt returns the index of the topmost shape whose bounding box
// contains (x, y).
func (d Document) ShapeAt(x, y float64) (int, bool) {
	for i := len(d.Shapes) - 1; i >= 0; i-- {
		if d.Shapes[i].Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
