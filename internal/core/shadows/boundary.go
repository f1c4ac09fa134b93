package shadows

import (
	"fmt"
	"math"
)

// Boundary is the axis-aligned rectangle enclosing the world. Nothing is
// cast beyond it.
type Boundary struct {
	Min, Max Point
}

// CenteredBoundary returns a width x height boundary centred on the origin.
func CenteredBoundary(width, height float64) Boundary {
	return Boundary{
		Min: Point{-width / 2, -height / 2},
		Max: Point{width / 2, height / 2},
	}
}

func (b Boundary) Width() float64  { return b.Max.X - b.Min.X }
func (b Boundary) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies inside or on the boundary.
func (b Boundary) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ContainsStrict reports whether p lies strictly inside the boundary.
func (b Boundary) ContainsStrict(p Point) bool {
	return p.X > b.Min.X && p.X < b.Max.X && p.Y > b.Min.Y && p.Y < b.Max.Y
}

// Corners returns the four corners counter-clockwise from the top-right.
func (b Boundary) Corners() [4]Point {
	return [4]Point{
		{b.Max.X, b.Max.Y},
		{b.Min.X, b.Max.Y},
		{b.Min.X, b.Min.Y},
		{b.Max.X, b.Min.Y},
	}
}

// Polygon returns the boundary as a counter-clockwise ring.
func (b Boundary) Polygon() Polygon {
	c := b.Corners()
	return Polygon(c[:])
}

// IntersectBoundary returns the point where the ray from light through
// `through` leaves the boundary. The light must be strictly inside.
func IntersectBoundary(light, through Point, b Boundary) (Point, error) {
	if !finite(light) || !finite(through) {
		return Point{}, fmt.Errorf("ray from %v through %v: non-finite coordinate: %w", light, through, ErrDegenerateGeometry)
	}
	if !b.ContainsStrict(light) {
		return Point{}, fmt.Errorf("light %v not strictly inside boundary: %w", light, ErrDegenerateGeometry)
	}
	ray := through.Sub(light)
	if ray.X == 0 && ray.Y == 0 {
		return Point{}, fmt.Errorf("ray from %v has zero direction: %w", light, ErrDegenerateGeometry)
	}

	// Distance along the ray to the vertical edge it heads toward
	edgeX := b.Max.X
	if ray.X < 0 {
		edgeX = b.Min.X
	}
	s := math.Inf(1)
	if ray.X != 0 {
		s = (edgeX - light.X) / ray.X
	}

	// Distance along the ray to the horizontal edge it heads toward
	edgeY := b.Max.Y
	if ray.Y < 0 {
		edgeY = b.Min.Y
	}
	t := math.Inf(1)
	if ray.Y != 0 {
		t = (edgeY - light.Y) / ray.Y
	}

	if s < t {
		return Point{edgeX, clamp(light.Y+ray.Y*s, b.Min.Y, b.Max.Y)}, nil
	}
	return Point{clamp(light.X+ray.X*t, b.Min.X, b.Max.X), edgeY}, nil
}

// clamp keeps rounding error from pushing an exit point past a corner.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
