// Package config handles loading and validating the viewer configuration.
package config

import (
	"errors"
	"fmt"
	"math"

	"chosenoffset.com/shadowcast/internal/core/shadows"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	World   WorldConfig   `yaml:"world"`
	Shadows ShadowsConfig `yaml:"shadows"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// WorldConfig sizes the world boundary, centred on the origin.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShadowsConfig tunes the shadow computation.
type ShadowsConfig struct {
	Scale   float64 `yaml:"scale"`   // boolean-engine snapping grid, cells per world unit
	Workers int     `yaml:"workers"` // concurrent lights, 0 = unlimited
}

// SceneConfig lists the lights and obstacles placed at startup.
type SceneConfig struct {
	Lights    []LightConfig    `yaml:"lights"`
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

// LightConfig places a light. OrbitSpeed is in radians per second around the
// world origin.
type LightConfig struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Radius     float64 `yaml:"radius"`
	OrbitSpeed float64 `yaml:"orbit_speed"`
}

// ObstacleConfig places a rectangular obstacle. Rotation is in degrees.
type ObstacleConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Rotation float64 `yaml:"rotation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the demo scene: two stationary lights and
// three obstacles in a 960x720 world.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "Shadowcast",
		},
		World: WorldConfig{
			Width:  960,
			Height: 720,
		},
		Shadows: ShadowsConfig{
			Scale:   10,
			Workers: 0,
		},
		Scene: SceneConfig{
			Lights: []LightConfig{
				{X: 400, Y: 0, Radius: 10},
				{X: -400, Y: 0, Radius: 10},
			},
			Obstacles: []ObstacleConfig{
				{X: 0, Y: -200, Width: 60, Height: 100, Rotation: 0},
				{X: -50, Y: 50, Width: 10, Height: 300, Rotation: -60},
				{X: -350, Y: -250, Width: 20, Height: 70, Rotation: -45},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the shadow core cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %vx%v must be positive", c.World.Width, c.World.Height))
	}
	if c.Shadows.Scale <= 0 || math.IsInf(c.Shadows.Scale, 0) || math.IsNaN(c.Shadows.Scale) {
		errs = append(errs, fmt.Errorf("shadows.scale %v must be a positive number", c.Shadows.Scale))
	}
	if c.Shadows.Workers < 0 {
		errs = append(errs, fmt.Errorf("shadows.workers %d must not be negative", c.Shadows.Workers))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	b := c.Boundary()
	for i, l := range c.Scene.Lights {
		if !b.ContainsStrict(shadows.Point{X: l.X, Y: l.Y}) {
			errs = append(errs, fmt.Errorf("scene.lights[%d] at (%v, %v) is outside the world", i, l.X, l.Y))
			continue
		}
		// Orbits are centred on the world origin.
		if r := math.Hypot(l.X, l.Y); l.OrbitSpeed != 0 && r >= math.Min(b.Width(), b.Height())/2 {
			errs = append(errs, fmt.Errorf("scene.lights[%d] orbit radius %v leaves the world", i, r))
		}
	}
	for i, o := range c.Scene.Obstacles {
		if o.Width < 0 || o.Height < 0 {
			errs = append(errs, fmt.Errorf("scene.obstacles[%d] has negative size", i))
		}
	}
	return errors.Join(errs...)
}

// Boundary returns the world boundary.
func (c *Config) Boundary() shadows.Boundary {
	return shadows.CenteredBoundary(c.World.Width, c.World.Height)
}

// Obstacles converts the configured obstacles to core rectangles.
func (c *Config) Obstacles() []shadows.Rect {
	out := make([]shadows.Rect, len(c.Scene.Obstacles))
	for i, o := range c.Scene.Obstacles {
		out[i] = shadows.Rect{
			Center:   shadows.Point{X: o.X, Y: o.Y},
			Size:     shadows.Size{W: o.Width, H: o.Height},
			Rotation: o.Rotation * math.Pi / 180,
		}
	}
	return out
}
