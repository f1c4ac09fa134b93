package shadows

import (
	"math"
	"sort"
)

// Vertices returns the four corners of the rectangle in local order
// bottom-left, bottom-right, top-right, top-left.
func (r Rect) Vertices() [4]Point {
	sin, cos := math.Sincos(r.Rotation)
	hw, hh := r.Size.W/2, r.Size.H/2
	local := [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var out [4]Point
	for i, l := range local {
		out[i] = Point{
			X: r.Center.X + l.X*cos - l.Y*sin,
			Y: r.Center.Y + l.X*sin + l.Y*cos,
		}
	}
	return out
}

// Polygon returns the rectangle as a counter-clockwise ring.
func (r Rect) Polygon() Polygon {
	v := r.Vertices()
	return Polygon(v[:])
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// cross returns the z component of (b-a) x (c-a). Positive when c is to the
// left of a->b.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// PointInPolygon tests if a point is inside a polygon using ray casting algorithm.
// Points exactly on an edge may fall either way; use ContainsPoint for an
// inclusive test.
func PointInPolygon(point Point, polygon Polygon) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// ContainsPoint reports whether p lies inside the polygon or on its boundary.
func ContainsPoint(polygon Polygon, p Point) bool {
	n := len(polygon)
	for i := 0; i < n; i++ {
		a, b := polygon[i], polygon[(i+1)%n]
		if cross(a, b, p) == 0 && onSegment(a, b, p) {
			return true
		}
	}
	return PointInPolygon(p, polygon)
}

// onSegment reports whether p, already known to be collinear with a-b, lies
// within the segment's bounding box.
func onSegment(a, b, p Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

// SegmentsIntersect reports whether segments p1-p2 and q1-q2 share at least
// one point, touching endpoints included.
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := sign(cross(q1, q2, p1))
	d2 := sign(cross(q1, q2, p2))
	d3 := sign(cross(p1, p2, q1))
	d4 := sign(cross(p1, p2, q2))

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	// Collinear and touching cases
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// SegmentIntersectsPolygon reports whether the segment a-b touches the
// polygon's area: either endpoint is inside, or the segment crosses an edge.
func SegmentIntersectsPolygon(a, b Point, polygon Polygon) bool {
	if ContainsPoint(polygon, a) || ContainsPoint(polygon, b) {
		return true
	}
	n := len(polygon)
	for i := 0; i < n; i++ {
		if SegmentsIntersect(a, b, polygon[i], polygon[(i+1)%n]) {
			return true
		}
	}
	return false
}

// ConvexHull returns the convex hull of points as a counter-clockwise ring
// starting at the lowest-x (then lowest-y) point. Duplicate and collinear
// points are dropped, so fewer than three vertices means the input was
// degenerate.
func ConvexHull(points []Point) Polygon {
	pts := make([]Point, 0, len(points))
	pts = append(pts, points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	unique := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			unique = append(unique, p)
		}
	}
	pts = unique
	if len(pts) < 3 {
		return Polygon(pts)
	}

	hull := make([]Point, 0, 2*len(pts))
	// Lower chain
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// Upper chain
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return Polygon(hull[:len(hull)-1])
}

// SignedArea returns the shoelace area of the ring, positive when the ring
// is counter-clockwise.
func SignedArea(polygon Polygon) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a, b := polygon[i], polygon[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// IsConvex reports whether the ring turns the same way at every vertex.
// Collinear vertices are tolerated.
func IsConvex(polygon Polygon) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	dir := 0
	for i := 0; i < n; i++ {
		s := sign(cross(polygon[i], polygon[(i+1)%n], polygon[(i+2)%n]))
		if s == 0 {
			continue
		}
		if dir == 0 {
			dir = s
		} else if s != dir {
			return false
		}
	}
	return dir != 0
}

// Area returns the area covered by the region under the even-odd rule:
// a ring nested inside an odd number of other rings is a hole.
func (r Region) Area() float64 {
	var total float64
	for i, ring := range r {
		if len(ring) < 3 {
			continue
		}
		a := math.Abs(SignedArea(ring))
		probe := Point{(ring[0].X + ring[1].X) / 2, (ring[0].Y + ring[1].Y) / 2}
		depth := 0
		for j, other := range r {
			if i != j && PointInPolygon(probe, other) {
				depth++
			}
		}
		if depth%2 == 1 {
			total -= a
		} else {
			total += a
		}
	}
	return total
}

// Empty reports whether the region has no rings.
func (r Region) Empty() bool {
	return len(r) == 0
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
