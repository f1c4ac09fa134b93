package game

import (
	"chosenoffset.com/shadowcast/internal/config"
	"chosenoffset.com/shadowcast/internal/core/shadows"
	"chosenoffset.com/shadowcast/internal/render/lighting"
)

// Scene is the static world plus its movable lights.
type Scene struct {
	Boundary  shadows.Boundary
	Obstacles []shadows.Rect
	Lights    *lighting.Manager
}

// NewScene builds a scene from the configured world. Every light orbits the
// world origin.
func NewScene(cfg *config.Config) *Scene {
	s := &Scene{
		Boundary:  cfg.Boundary(),
		Obstacles: cfg.Obstacles(),
		Lights:    lighting.NewManager(),
	}
	for _, l := range cfg.Scene.Lights {
		s.Lights.Add(shadows.Point{X: l.X, Y: l.Y}, l.Radius, shadows.Point{}, l.OrbitSpeed)
	}
	return s
}

// Advance moves the orbiting lights forward by dt seconds. A light dropped
// on an orbit wider than the world slides along the wall instead of leaving.
func (s *Scene) Advance(dt float64) {
	s.Lights.Update(dt)
	s.Lights.Constrain(s.keepInside)
}

// keepInside pulls p just inside the world so a dragged light never sits on
// or beyond the boundary.
func (s *Scene) keepInside(p shadows.Point) shadows.Point {
	const inset = 1e-3
	return shadows.Point{
		X: clamp(p.X, s.Boundary.Min.X+inset, s.Boundary.Max.X-inset),
		Y: clamp(p.Y, s.Boundary.Min.Y+inset, s.Boundary.Max.Y-inset),
	}
}
