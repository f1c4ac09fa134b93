package lighting

import (
	"math"
	"testing"

	"chosenoffset.com/shadowcast/internal/core/shadows"
)

func TestOrbitKeepsDistance(t *testing.T) {
	m := NewManager()
	m.Add(shadows.Point{X: 400, Y: 0}, 10, shadows.Point{}, 0.4)

	for i := 0; i < 120; i++ {
		m.Update(1.0 / 60.0)
	}

	l, ok := m.Get(0)
	if !ok {
		t.Fatal("light missing")
	}
	if d := shadows.Distance(l.Position, shadows.Point{}); math.Abs(d-400) > 1e-9 {
		t.Errorf("orbit radius drifted to %f", d)
	}
	if math.Abs(l.Orbit.Angle-0.8) > 1e-9 {
		t.Errorf("expected angle 0.8 after 2s at 0.4 rad/s, got %f", l.Orbit.Angle)
	}
}

func TestStationaryLight(t *testing.T) {
	m := NewManager()
	m.Add(shadows.Point{X: -400, Y: 0}, 10, shadows.Point{}, 0)
	m.Update(1)

	if got := m.Positions()[0]; got != (shadows.Point{X: -400, Y: 0}) {
		t.Errorf("stationary light moved to %v", got)
	}
}

func TestDragLifecycle(t *testing.T) {
	m := NewManager()
	m.Add(shadows.Point{X: 400, Y: 0}, 10, shadows.Point{}, 0.4)
	m.Add(shadows.Point{X: -400, Y: 0}, 10, shadows.Point{}, -0.35)

	if m.BeginDrag(shadows.Point{X: 0, Y: 0}) {
		t.Fatal("grabbed a light from empty space")
	}
	if !m.BeginDrag(shadows.Point{X: -395, Y: 8}) {
		t.Fatal("expected to grab the second light")
	}
	if m.Dragging() != 1 {
		t.Fatalf("expected light 1 dragged, got %d", m.Dragging())
	}
	if m.BeginDrag(shadows.Point{X: 400, Y: 0}) {
		t.Error("grabbed a second light while dragging")
	}

	m.DragTo(shadows.Point{X: 0, Y: 200})
	m.Update(1)
	if got := m.Positions()[1]; got != (shadows.Point{X: 0, Y: 200}) {
		t.Errorf("dragged light orbited away to %v", got)
	}

	m.EndDrag()
	if m.Dragging() != -1 {
		t.Error("drag not released")
	}
	l, _ := m.Get(1)
	if math.Abs(l.Orbit.Angle-math.Pi/2) > 1e-9 {
		t.Errorf("orbit not re-anchored, angle %f", l.Orbit.Angle)
	}

	m.Update(1)
	if d := shadows.Distance(m.Positions()[1], shadows.Point{}); math.Abs(d-200) > 1e-9 {
		t.Errorf("expected new orbit radius 200, got %f", d)
	}
}

func TestRemoveAdjustsDrag(t *testing.T) {
	m := NewManager()
	m.Add(shadows.Point{X: 100, Y: 0}, 10, shadows.Point{}, 0)
	m.Add(shadows.Point{X: 200, Y: 0}, 10, shadows.Point{}, 0)
	m.BeginDrag(shadows.Point{X: 200, Y: 0})

	m.Remove(0)
	if m.Len() != 1 || m.Dragging() != 0 {
		t.Errorf("expected drag index 0 after removal, got %d", m.Dragging())
	}
	m.Remove(0)
	if m.Dragging() != -1 {
		t.Error("removing the dragged light should release the drag")
	}
	m.Remove(5)
}

func TestConstrainSkipsDraggedLight(t *testing.T) {
	m := NewManager()
	m.Add(shadows.Point{X: 400, Y: 0}, 10, shadows.Point{}, 0)
	m.Add(shadows.Point{X: -400, Y: 0}, 10, shadows.Point{}, 0)
	m.BeginDrag(shadows.Point{X: -400, Y: 0})

	m.Constrain(func(p shadows.Point) shadows.Point {
		return shadows.Point{X: math.Min(p.X, 100), Y: p.Y}
	})

	got := m.Positions()
	if got[0] != (shadows.Point{X: 100, Y: 0}) {
		t.Errorf("expected light 0 clamped to x=100, got %v", got[0])
	}
	if got[1] != (shadows.Point{X: -400, Y: 0}) {
		t.Errorf("dragged light should not be constrained, got %v", got[1])
	}
}
