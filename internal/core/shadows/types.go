package shadows

// Point represents a 2D point in world space. Y increases upward.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Size is the full width and height of a rectangle.
type Size struct {
	W, H float64
}

// Rect is an oriented rectangle: a center, a full size, and a rotation
// about the axis perpendicular to the plane (radians, counter-clockwise).
type Rect struct {
	Center   Point
	Size     Size
	Rotation float64
}

// Polygon is a single ring of vertices without a repeated closing vertex.
type Polygon []Point

// Region is a set of rings combined under the even-odd rule. Rings
// produced by the boolean engine may describe holes inside other rings.
type Region []Polygon
