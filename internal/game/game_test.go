package game

import (
	"errors"
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"chosenoffset.com/shadowcast/internal/config"
	"chosenoffset.com/shadowcast/internal/core/boolops"
	"chosenoffset.com/shadowcast/internal/core/shadows"
	"chosenoffset.com/shadowcast/internal/render"
)

type fakeInput struct {
	pressed      map[render.Key]bool
	justPressed  map[render.Key]bool
	mouse        map[render.MouseButton]bool
	mouseJust    map[render.MouseButton]bool
	mouseRelease map[render.MouseButton]bool
	cx, cy       int
	wheelY       float64
}

func newFakeInput() *fakeInput {
	f := &fakeInput{}
	f.clear()
	return f
}

// clear resets the per-tick edge state.
func (f *fakeInput) clear() {
	f.pressed = map[render.Key]bool{}
	f.justPressed = map[render.Key]bool{}
	f.mouse = map[render.MouseButton]bool{}
	f.mouseJust = map[render.MouseButton]bool{}
	f.mouseRelease = map[render.MouseButton]bool{}
	f.wheelY = 0
}

func (f *fakeInput) IsKeyPressed(k render.Key) bool { return f.pressed[k] }
func (f *fakeInput) IsKeyJustPressed(k render.Key) bool { return f.justPressed[k] }
func (f *fakeInput) GetCursorPosition() (int, int) { return f.cx, f.cy }
func (f *fakeInput) IsMouseButtonPressed(b render.MouseButton) bool {
	return f.mouse[b]
}
func (f *fakeInput) IsMouseButtonJustPressed(b render.MouseButton) bool {
	return f.mouseJust[b]
}
func (f *fakeInput) IsMouseButtonJustReleased(b render.MouseButton) bool {
	return f.mouseRelease[b]
}
func (f *fakeInput) Wheel() (float64, float64) { return 0, f.wheelY }

type drawCall struct {
	op  string
	clr color.Color
	n   int // rings or text length
}

type fakeRenderer struct {
	calls []drawCall
}

func (r *fakeRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.calls = append(r.calls, drawCall{op: "circle", clr: clr})
}
func (r *fakeRenderer) StrokeCircle(dst render.Image, x, y, radius, width float32, clr color.Color) {
	r.calls = append(r.calls, drawCall{op: "stroke-circle", clr: clr})
}
func (r *fakeRenderer) FillPolygons(dst render.Image, rings [][]render.Vec2, clr color.Color) {
	r.calls = append(r.calls, drawCall{op: "fill", clr: clr, n: len(rings)})
}
func (r *fakeRenderer) StrokePolygon(dst render.Image, ring []render.Vec2, width float32, clr color.Color) {
	r.calls = append(r.calls, drawCall{op: "stroke", clr: clr})
}
func (r *fakeRenderer) DrawText(dst render.Image, text string, x, y int) {
	r.calls = append(r.calls, drawCall{op: "text", n: len(text)})
}

type fakeImage struct {
	w, h int
	fill color.Color
}

func (i *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, i.w, i.h) }
func (i *fakeImage) Size() (int, int) { return i.w, i.h }
func (i *fakeImage) Fill(clr color.Color) { i.fill = clr }

func newTestGame(t *testing.T) (*Game, *fakeInput, *fakeRenderer) {
	t.Helper()
	in := newFakeInput()
	r := &fakeRenderer{}
	return NewGame(config.Default(), r, in, nil), in, r
}

func TestUpdateEscapeQuits(t *testing.T) {
	g, in, _ := newTestGame(t)
	in.justPressed[render.KeyEscape] = true

	if err := g.Update(); !errors.Is(err, render.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if g.FrameCount != 0 {
		t.Errorf("quit tick should not advance the frame, got %d", g.FrameCount)
	}
}

func TestUpdateComputesShadows(t *testing.T) {
	g, _, _ := newTestGame(t)

	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if g.Result.Union.Empty() {
		t.Fatal("default scene should cast shadows")
	}
	if got := len(g.Result.PerLight); got != 2 {
		t.Errorf("expected 2 per-light regions, got %d", got)
	}
	if g.Result.Intersection.Area() > g.Result.Union.Area()+1e-6 {
		t.Errorf("intersection area %v exceeds union area %v",
			g.Result.Intersection.Area(), g.Result.Union.Area())
	}
}

// orbitingConfig is the default scene with both lights orbiting inside the
// world.
func orbitingConfig() *config.Config {
	cfg := config.Default()
	cfg.Scene.Lights[0].X, cfg.Scene.Lights[0].OrbitSpeed = 300, 0.40
	cfg.Scene.Lights[1].X, cfg.Scene.Lights[1].OrbitSpeed = -300, -0.35
	return cfg
}

func TestUpdateAdvancesOrbits(t *testing.T) {
	cfg := orbitingConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("orbiting config should validate: %v", err)
	}
	g := NewGame(cfg, &fakeRenderer{}, newFakeInput(), nil)
	before := g.Scene.Lights.Positions()

	for i := 0; i < 30; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	after := g.Scene.Lights.Positions()
	for i := range before {
		if before[i] == after[i] {
			t.Errorf("light %d did not move", i)
		}
		r0 := math.Hypot(before[i].X, before[i].Y)
		r1 := math.Hypot(after[i].X, after[i].Y)
		if math.Abs(r0-r1) > 1e-9 {
			t.Errorf("light %d orbit radius changed from %v to %v", i, r0, r1)
		}
	}
}

func TestOrbitsNeverSkipPairs(t *testing.T) {
	for name, cfg := range map[string]*config.Config{
		"default":  config.Default(),
		"orbiting": orbitingConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			g := NewGame(cfg, &fakeRenderer{}, newFakeInput(), nil)

			// 2*pi / 0.35 rad/s is just under 18 s of ticks.
			for i := 0; i < 18*60; i++ {
				g.Scene.Advance(tickSeconds)
				if i%30 != 0 {
					continue
				}
				g.Recompute()
				if g.LastErr != nil {
					t.Fatalf("tick %d: %v", i, g.LastErr)
				}
				if n := len(g.Result.Skipped); n != 0 {
					t.Fatalf("tick %d: %d pairs skipped, lights at %v", i, n, g.Scene.Lights.Positions())
				}
				if g.Result.Union.Empty() {
					t.Fatalf("tick %d: no shadows", i)
				}
			}
		})
	}
}

func TestDroppedWideOrbitStaysInside(t *testing.T) {
	s := NewScene(orbitingConfig())
	s.Lights.BeginDrag(shadows.Point{X: 300, Y: 0})
	s.Lights.DragTo(shadows.Point{X: 470, Y: 0})
	s.Lights.EndDrag()

	for i := 0; i < 10*60; i++ {
		s.Advance(tickSeconds)
		for j, p := range s.Lights.Positions() {
			if !s.Boundary.ContainsStrict(p) {
				t.Fatalf("tick %d: light %d left the world at %v", i, j, p)
			}
		}
	}
}

func TestUpdateKeepsPreviousFrameOnError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	g := NewGame(config.Default(), &fakeRenderer{}, newFakeInput(), zap.New(core))

	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	prev := g.Result

	g.Aggregator.Scale = -1
	if err := g.Update(); err != nil {
		t.Fatalf("a failed frame must not stop the loop: %v", err)
	}
	if !errors.Is(g.LastErr, boolops.ErrInvalidScale) {
		t.Errorf("expected ErrInvalidScale, got %v", g.LastErr)
	}
	if !reflect.DeepEqual(g.Result, prev) {
		t.Error("previous result should be kept")
	}

	// Repeated failures are logged once.
	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := logs.FilterMessage("shadow computation failed, keeping previous frame").Len(); n != 1 {
		t.Errorf("expected 1 warning, got %d", n)
	}

	g.Aggregator.Scale = boolops.DefaultScale
	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if g.LastErr != nil {
		t.Errorf("error should clear after a good frame, got %v", g.LastErr)
	}
}

func TestDragLight(t *testing.T) {
	g, in, _ := newTestGame(t)
	light, _ := g.Scene.Lights.Get(0)
	p := g.Camera.WorldToScreen(light.Position, g.ScreenWidth, g.ScreenHeight)

	// Grab.
	in.cx, in.cy = int(p.X), int(p.Y)
	in.mouseJust[render.MouseButtonLeft] = true
	in.mouse[render.MouseButtonLeft] = true
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.Scene.Lights.Dragging() != 0 {
		t.Fatalf("expected light 0 to be dragged, got %d", g.Scene.Lights.Dragging())
	}

	// Move. A dragged light does not orbit.
	in.clear()
	in.mouse[render.MouseButtonLeft] = true
	target := shadows.Point{X: 300, Y: 100}
	tp := g.Camera.WorldToScreen(target, g.ScreenWidth, g.ScreenHeight)
	in.cx, in.cy = int(tp.X), int(tp.Y)
	for i := 0; i < 3; i++ {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := g.Scene.Lights.Get(0)
	if got.Position != target {
		t.Errorf("expected dragged light at %v, got %v", target, got.Position)
	}

	// Drop.
	in.clear()
	in.mouseRelease[render.MouseButtonLeft] = true
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.Scene.Lights.Dragging() != -1 {
		t.Error("light should be released")
	}
	got, _ = g.Scene.Lights.Get(0)
	if r := math.Hypot(got.Position.X, got.Position.Y); math.Abs(r-math.Hypot(300, 100)) > 1e-9 {
		t.Errorf("dropped light should orbit at its new radius, got %v", r)
	}
}

func TestDragClampsToWorld(t *testing.T) {
	g, in, _ := newTestGame(t)
	light, _ := g.Scene.Lights.Get(0)
	p := g.Camera.WorldToScreen(light.Position, g.ScreenWidth, g.ScreenHeight)

	in.cx, in.cy = int(p.X), int(p.Y)
	in.mouseJust[render.MouseButtonLeft] = true
	in.mouse[render.MouseButtonLeft] = true
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}

	in.clear()
	in.mouse[render.MouseButtonLeft] = true
	in.cx, in.cy = g.ScreenWidth+500, -500
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}

	got, _ := g.Scene.Lights.Get(0)
	if !g.Scene.Boundary.ContainsStrict(got.Position) {
		t.Errorf("dragged light left the world: %v", got.Position)
	}
	if len(g.Result.Skipped) != 0 {
		t.Errorf("clamped light should not produce skipped pairs, got %d", len(g.Result.Skipped))
	}
}

func TestDebugToggle(t *testing.T) {
	g, in, r := newTestGame(t)
	in.justPressed[render.KeyF1] = true
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if !g.ShowDebug {
		t.Fatal("F1 should enable the overlay")
	}

	g.Draw(&fakeImage{w: g.ScreenWidth, h: g.ScreenHeight})
	last := r.calls[len(r.calls)-1]
	if last.op != "text" || last.n == 0 {
		t.Errorf("expected debug text last, got %+v", last)
	}

	rings := 0
	for _, region := range g.Result.PerLight {
		rings += len(region)
	}
	strokes := 0
	for _, c := range r.calls {
		if c.op == "stroke" {
			strokes++
		}
	}
	if rings == 0 || strokes != rings {
		t.Errorf("expected one outline per shadow ring (%d), got %d", rings, strokes)
	}
}

func TestDrawOrder(t *testing.T) {
	g, _, r := newTestGame(t)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}

	screen := &fakeImage{w: g.ScreenWidth, h: g.ScreenHeight}
	g.Draw(screen)

	if screen.fill != colorShadow {
		t.Errorf("expected shadow clear colour, got %v", screen.fill)
	}

	want := []drawCall{{op: "fill", clr: colorWorld, n: 1}}
	if !g.Result.Union.Empty() {
		want = append(want, drawCall{op: "fill", clr: colorUnion, n: len(g.Result.Union)})
	}
	if !g.Result.Intersection.Empty() {
		want = append(want, drawCall{op: "fill", clr: colorIntersection, n: len(g.Result.Intersection)})
	}
	for range g.Scene.Obstacles {
		want = append(want, drawCall{op: "fill", clr: colorObstacle, n: 1})
	}
	for i := 0; i < g.Scene.Lights.Len(); i++ {
		want = append(want, drawCall{op: "circle", clr: colorLight})
	}

	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("draw calls:\n got  %+v\n want %+v", r.calls, want)
	}
}

func TestLayout(t *testing.T) {
	g, _, _ := newTestGame(t)
	w, h := g.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Errorf("expected 640x480, got %dx%d", w, h)
	}
	if g.ScreenWidth != 640 || g.ScreenHeight != 480 {
		t.Error("layout should update the screen size")
	}
}

func TestNewSceneFromConfig(t *testing.T) {
	cfg := config.Default()
	s := NewScene(cfg)

	if s.Lights.Len() != len(cfg.Scene.Lights) {
		t.Errorf("expected %d lights, got %d", len(cfg.Scene.Lights), s.Lights.Len())
	}
	if len(s.Obstacles) != len(cfg.Scene.Obstacles) {
		t.Errorf("expected %d obstacles, got %d", len(cfg.Scene.Obstacles), len(s.Obstacles))
	}
	l, _ := s.Lights.Get(1)
	if l.Orbit.Speed != 0 || l.Position != (shadows.Point{X: -400, Y: 0}) {
		t.Errorf("unexpected light %+v", l)
	}
}
