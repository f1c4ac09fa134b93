package lighting

import (
	"math"

	"chosenoffset.com/shadowcast/internal/core/shadows"
)

// Orbit moves a light around Center at its current distance.
type Orbit struct {
	Center shadows.Point
	Angle  float64 // current phase in radians
	Speed  float64 // radians per second; 0 holds the light still
}

// Light represents a single point light in the world. Radius is only used
// for drawing and picking; shadows treat the light as a point.
type Light struct {
	Position shadows.Point
	Radius   float64
	Orbit    Orbit
	Dragging bool

	distance float64 // orbit radius captured when the orbit was anchored
}

// Manager handles all light sources in the scene
type Manager struct {
	lights   []*Light
	dragging int // index of the dragged light, -1 when none
}

// NewManager creates a new lighting manager
func NewManager() *Manager {
	return &Manager{
		lights:   make([]*Light, 0),
		dragging: -1,
	}
}

// Add places a light at pos that orbits center at speed rad/s. The orbit
// phase is taken from pos, so the light does not jump on the first update.
func (m *Manager) Add(pos shadows.Point, radius float64, center shadows.Point, speed float64) int {
	l := &Light{
		Position: pos,
		Radius:   radius,
		Orbit:    Orbit{Center: center, Speed: speed},
	}
	anchor(l)
	m.lights = append(m.lights, l)
	return len(m.lights) - 1
}

// Remove deletes the light at index i. Out-of-range indexes are ignored.
func (m *Manager) Remove(i int) {
	if i < 0 || i >= len(m.lights) {
		return
	}
	m.lights = append(m.lights[:i], m.lights[i+1:]...)
	switch {
	case m.dragging == i:
		m.dragging = -1
	case m.dragging > i:
		m.dragging--
	}
}

// Len returns the number of lights.
func (m *Manager) Len() int {
	return len(m.lights)
}

// Get returns a copy of the light at index i.
func (m *Manager) Get(i int) (Light, bool) {
	if i < 0 || i >= len(m.lights) {
		return Light{}, false
	}
	return *m.lights[i], true
}

// Positions returns the current light positions in insertion order.
func (m *Manager) Positions() []shadows.Point {
	out := make([]shadows.Point, len(m.lights))
	for i, l := range m.lights {
		out[i] = l.Position
	}
	return out
}

// Update advances every orbiting light by dt seconds. A dragged light stays
// where the cursor put it.
func (m *Manager) Update(dt float64) {
	for _, l := range m.lights {
		if l.Dragging || l.Orbit.Speed == 0 || l.distance == 0 {
			continue
		}
		l.Orbit.Angle = math.Mod(l.Orbit.Angle+l.Orbit.Speed*dt, 2*math.Pi)
		sin, cos := math.Sincos(l.Orbit.Angle)
		l.Position = shadows.Point{
			X: l.Orbit.Center.X + l.distance*cos,
			Y: l.Orbit.Center.Y + l.distance*sin,
		}
	}
}

// Constrain moves every light that is not being dragged to fn(position).
// The orbit keeps its radius, so a clamped light resumes its circle once the
// circle is back in range.
func (m *Manager) Constrain(fn func(shadows.Point) shadows.Point) {
	for _, l := range m.lights {
		if !l.Dragging {
			l.Position = fn(l.Position)
		}
	}
}

// HitTest returns the index of the first light whose square pick area
// contains p, or -1.
func (m *Manager) HitTest(p shadows.Point) int {
	for i, l := range m.lights {
		if math.Abs(p.X-l.Position.X) <= l.Radius && math.Abs(p.Y-l.Position.Y) <= l.Radius {
			return i
		}
	}
	return -1
}

// BeginDrag grabs the light under p. It does nothing if a light is already
// being dragged or nothing is under p.
func (m *Manager) BeginDrag(p shadows.Point) bool {
	if m.dragging >= 0 {
		return false
	}
	i := m.HitTest(p)
	if i < 0 {
		return false
	}
	m.dragging = i
	m.lights[i].Dragging = true
	return true
}

// DragTo moves the dragged light to p.
func (m *Manager) DragTo(p shadows.Point) {
	if m.dragging < 0 {
		return
	}
	m.lights[m.dragging].Position = p
}

// EndDrag releases the dragged light and re-anchors its orbit at the new
// position.
func (m *Manager) EndDrag() {
	if m.dragging < 0 {
		return
	}
	l := m.lights[m.dragging]
	l.Dragging = false
	anchor(l)
	m.dragging = -1
}

// Dragging returns the index of the dragged light, or -1.
func (m *Manager) Dragging() int {
	return m.dragging
}

func anchor(l *Light) {
	d := l.Position.Sub(l.Orbit.Center)
	l.distance = math.Hypot(d.X, d.Y)
	l.Orbit.Angle = math.Atan2(d.Y, d.X)
}
