package shadows

import "errors"

// ErrDegenerateGeometry reports input for which no shadow shape is defined:
// a light on or inside an obstacle, a zero-length ray, a light outside the
// world, or a hull that collapses to fewer than three vertices.
var ErrDegenerateGeometry = errors.New("degenerate geometry")
