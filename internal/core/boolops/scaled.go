// Package boolops performs union, intersection, difference and xor on shadow
// regions. Coordinates are snapped to an integer grid before clipping so the
// sweep never sees near-duplicate vertices or hairline slivers.
package boolops

import (
	"errors"
	"fmt"
	"math"

	polyclip "github.com/ctessum/polyclip-go"

	"chosenoffset.com/shadowcast/internal/core/shadows"
)

var (
	// ErrBooleanEngine wraps failures of the clipping primitive, including
	// malformed rings handed to it.
	ErrBooleanEngine = errors.New("boolean engine failure")

	// ErrUnsupportedOperation is returned for an Op the engine does not know.
	ErrUnsupportedOperation = errors.New("unsupported boolean operation")

	// ErrInvalidScale is returned when the snapping scale is not a positive
	// finite number.
	ErrInvalidScale = errors.New("invalid snapping scale")
)

// DefaultScale snaps to a tenth of a world unit.
const DefaultScale = 10.0

// Op selects a boolean set operation.
type Op int

const (
	Union Op = iota
	Intersection
	Difference
	Xor
)

func (o Op) String() string {
	switch o {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	case Xor:
		return "xor"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

func (o Op) clipOp() (polyclip.Op, bool) {
	switch o {
	case Union:
		return polyclip.UNION, true
	case Intersection:
		return polyclip.INTERSECTION, true
	case Difference:
		return polyclip.DIFFERENCE, true
	case Xor:
		return polyclip.XOR, true
	}
	return 0, false
}

// ScaledUnion returns the area covered by a or b.
func ScaledUnion(a, b shadows.Region, scale float64) (shadows.Region, error) {
	return Apply(Union, a, b, scale)
}

// ScaledIntersection returns the area covered by both a and b.
func ScaledIntersection(a, b shadows.Region, scale float64) (shadows.Region, error) {
	return Apply(Intersection, a, b, scale)
}

// ScaledDifference returns the area covered by a but not b.
func ScaledDifference(a, b shadows.Region, scale float64) (shadows.Region, error) {
	return Apply(Difference, a, b, scale)
}

// ScaledXor returns the area covered by exactly one of a and b.
func ScaledXor(a, b shadows.Region, scale float64) (shadows.Region, error) {
	return Apply(Xor, a, b, scale)
}

// Apply multiplies both operands by scale, rounds every coordinate to the
// nearest integer, runs op, and divides the result by scale. Rings that
// collapse on the grid are dropped; they are smaller than the precision the
// caller asked for.
func Apply(op Op, a, b shadows.Region, scale float64) (shadows.Region, error) {
	clipOp, ok := op.clipOp()
	if !ok {
		return nil, fmt.Errorf("%v: %w", op, ErrUnsupportedOperation)
	}
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return nil, fmt.Errorf("%v with scale %v: %w", op, scale, ErrInvalidScale)
	}

	p, err := snap(a, scale)
	if err != nil {
		return nil, fmt.Errorf("%v: subject: %w", op, err)
	}
	q, err := snap(b, scale)
	if err != nil {
		return nil, fmt.Errorf("%v: clipping: %w", op, err)
	}

	var out polyclip.Polygon
	switch {
	case len(p) == 0 || len(q) == 0:
		out = trivial(op, p, q)
	default:
		out, err = construct(clipOp, p, q)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", op, err)
		}
	}
	return unsnap(out, scale), nil
}

// trivial answers op when at least one operand is empty without calling
// into the clipper.
func trivial(op Op, p, q polyclip.Polygon) polyclip.Polygon {
	switch op {
	case Union, Xor:
		if len(p) == 0 {
			return q
		}
		return p
	case Difference:
		return p
	}
	return nil
}

func construct(op polyclip.Op, p, q polyclip.Polygon) (out polyclip.Polygon, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBooleanEngine, r)
		}
	}()
	return p.Construct(op, q), nil
}

// snap converts a region to grid coordinates.
func snap(r shadows.Region, scale float64) (polyclip.Polygon, error) {
	out := make(polyclip.Polygon, 0, len(r))
	for i, ring := range r {
		if len(ring) < 3 {
			return nil, fmt.Errorf("ring %d has %d vertices: %w", i, len(ring), ErrBooleanEngine)
		}
		c := make(polyclip.Contour, 0, len(ring))
		for _, v := range ring {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
				return nil, fmt.Errorf("ring %d has non-finite vertex: %w", i, ErrBooleanEngine)
			}
			c = appendDistinct(c, polyclip.Point{X: math.Round(v.X * scale), Y: math.Round(v.Y * scale)})
		}
		if c = closeRing(c); c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// unsnap converts clipper output back to world units.
func unsnap(p polyclip.Polygon, scale float64) shadows.Region {
	if len(p) == 0 {
		return shadows.Region{}
	}
	out := make(shadows.Region, 0, len(p))
	for _, c := range p {
		c = closeRing(c)
		if c == nil {
			continue
		}
		ring := make(shadows.Polygon, len(c))
		for i, v := range c {
			ring[i] = shadows.Point{X: v.X / scale, Y: v.Y / scale}
		}
		out = append(out, ring)
	}
	return out
}

func appendDistinct(c polyclip.Contour, p polyclip.Point) polyclip.Contour {
	if n := len(c); n > 0 && c[n-1] == p {
		return c
	}
	return append(c, p)
}

// closeRing drops a repeated closing vertex and reports nil for rings with
// no area left.
func closeRing(c polyclip.Contour) polyclip.Contour {
	for len(c) > 1 && c[0] == c[len(c)-1] {
		c = c[:len(c)-1]
	}
	if len(c) < 3 {
		return nil
	}
	var twice float64
	for i := range c {
		a, b := c[i], c[(i+1)%len(c)]
		twice += a.X*b.Y - b.X*a.Y
	}
	if twice == 0 {
		return nil
	}
	return c
}
