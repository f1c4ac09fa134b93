package game

import (
	"chosenoffset.com/shadowcast/internal/core/shadows"
	"chosenoffset.com/shadowcast/internal/render"
)

const (
	minZoom     = 0.2
	maxZoom     = 3.0
	zoomInStep  = 0.85
	zoomOutStep = 1.15
)

// Camera maps the y-up world onto the y-down screen. Scale is world units
// per pixel, so a smaller scale is zoomed in.
type Camera struct {
	X, Y  float64 // world point shown at the centre of the screen
	Scale float64

	halfW, halfH float64 // pan limits
	panSpeed     float64 // world units per second
}

// NewCamera creates a camera centred on a world of the given boundary.
func NewCamera(b shadows.Boundary) *Camera {
	return &Camera{
		Scale:    1,
		halfW:    b.Width() / 2,
		halfH:    b.Height() / 2,
		panSpeed: b.Width() / 2,
	}
}

// HandleInput applies wheel zoom, arrow-key panning and the reset key.
func (c *Camera) HandleInput(input render.InputManager, dt float64) {
	if input.IsKeyJustPressed(render.KeyDigit0) {
		c.Reset()
		return
	}

	_, wy := input.Wheel()
	switch {
	case wy > 0:
		c.Zoom(zoomInStep)
	case wy < 0:
		c.Zoom(zoomOutStep)
	}

	var dx, dy float64
	if input.IsKeyPressed(render.KeyLeft) {
		dx--
	}
	if input.IsKeyPressed(render.KeyRight) {
		dx++
	}
	if input.IsKeyPressed(render.KeyUp) {
		dy++
	}
	if input.IsKeyPressed(render.KeyDown) {
		dy--
	}
	c.Pan(dx*c.panSpeed*dt, dy*c.panSpeed*dt)
}

// Zoom multiplies the scale by factor, keeping it within the zoom limits.
func (c *Camera) Zoom(factor float64) {
	c.Scale = clamp(c.Scale*factor, minZoom, maxZoom)
}

// Pan moves the camera by a world-space offset, keeping it over the world.
func (c *Camera) Pan(dx, dy float64) {
	c.X = clamp(c.X+dx, -c.halfW, c.halfW)
	c.Y = clamp(c.Y+dy, -c.halfH, c.halfH)
}

// Reset recentres the camera at scale 1.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Scale = 1
}

// WorldToScreen converts a world point to screen pixels for a screen of
// size w x h.
func (c *Camera) WorldToScreen(p shadows.Point, w, h int) render.Vec2 {
	return render.Vec2{
		X: float32((p.X-c.X)/c.Scale + float64(w)/2),
		Y: float32(float64(h)/2 - (p.Y-c.Y)/c.Scale),
	}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(x, y float64, w, h int) shadows.Point {
	return shadows.Point{
		X: (x-float64(w)/2)*c.Scale + c.X,
		Y: (float64(h)/2-y)*c.Scale + c.Y,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
