package shadows

import "fmt"

// CastShadow computes the region hidden from light by obstacle, bounded by
// the world. The result is the convex hull of the obstacle's corners, their
// projections onto the boundary, and every boundary corner whose line of
// sight from the light crosses the obstacle.
func CastShadow(light Point, obstacle Rect, b Boundary) (Polygon, error) {
	if !finite(light) || !finite(obstacle.Center) {
		return nil, fmt.Errorf("cast shadow: non-finite input: %w", ErrDegenerateGeometry)
	}
	if !b.ContainsStrict(light) {
		return nil, fmt.Errorf("cast shadow: light %v outside boundary: %w", light, ErrDegenerateGeometry)
	}

	corners := obstacle.Vertices()
	silhouette := Polygon(corners[:])
	for _, c := range corners {
		if !finite(c) || !b.Contains(c) {
			return nil, fmt.Errorf("cast shadow: obstacle corner %v outside boundary: %w", c, ErrDegenerateGeometry)
		}
	}
	if ContainsPoint(silhouette, light) {
		return nil, fmt.Errorf("cast shadow: light %v inside obstacle at %v: %w", light, obstacle.Center, ErrDegenerateGeometry)
	}

	points := make([]Point, 0, 12)
	points = append(points, corners[:]...)

	// Where each corner's ray hits the wall
	for _, c := range corners {
		hit, err := IntersectBoundary(light, c, b)
		if err != nil {
			return nil, fmt.Errorf("cast shadow: %w", err)
		}
		points = append(points, hit)
	}

	// World corners hidden behind the obstacle
	for _, wc := range b.Corners() {
		if SegmentIntersectsPolygon(light, wc, silhouette) {
			points = append(points, wc)
		}
	}

	hull := ConvexHull(points)
	if len(hull) < 3 || SignedArea(hull) <= 0 {
		return nil, fmt.Errorf("cast shadow: hull collapsed to %d vertices: %w", len(hull), ErrDegenerateGeometry)
	}
	return hull, nil
}
