package diagram

// ShapeKind names a flowchart node outline. The string value is what gets
// written to the shape_type field of a saved diagram.
type ShapeKind string

const (
	Rectangle     ShapeKind = "rectangle"
	Oval          ShapeKind = "oval"
	Diamond       ShapeKind = "diamond"
	Triangle      ShapeKind = "triangle"
	Parallelogram ShapeKind = "parallelogram"
	Hexagon       ShapeKind = "hexagon"
	Star          ShapeKind = "star"
)

// ShapeKinds lists every shape kind in toolbar order.
var ShapeKinds = []ShapeKind{Rectangle, Oval, Diamond, Triangle, Parallelogram, Hexagon, Star}

func (k ShapeKind) Valid() bool {
	for _, known := range ShapeKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ArrowKind names a connector style. The string value is what gets written
// to the arrow_type field of a saved diagram.
type ArrowKind string

const (
	Straight      ArrowKind = "straight"
	Curved        ArrowKind = "curved"
	Dashed        ArrowKind = "dashed"
	Double        ArrowKind = "double"
	Bidirectional ArrowKind = "bidirectional"
	Thick         ArrowKind = "thick"
	Dotted        ArrowKind = "dotted"
)

// ArrowKinds lists every connector kind in toolbar order.
var ArrowKinds = []ArrowKind{Straight, Curved, Dashed, Double, Bidirectional, Thick, Dotted}

func (k ArrowKind) Valid() bool {
	for _, known := range ArrowKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Mode is the interpretation applied to pointer gestures.
type Mode int

const (
	ModeSelect Mode = iota
	ModeDrawShape
	ModeDrawArrow
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "SELECT"
	case ModeDrawShape:
		return "SHAPE"
	case ModeDrawArrow:
		return "ARROW"
	default:
		return "UNKNOWN"
	}
}
