// Package game runs the interactive shadow viewer: input, orbiting lights,
// per-frame shadow aggregation and drawing.
package game

import (
	"context"

	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/config"
	"chosenoffset.com/shadowcast/internal/core/aggregate"
	"chosenoffset.com/shadowcast/internal/render"
)

// Game holds all viewer state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Renderer     render.Renderer
	InputMgr     render.InputManager

	Camera     *Camera
	Scene      *Scene
	Aggregator *aggregate.Aggregator

	// Result is the last successfully computed frame.
	Result aggregate.Result

	ShowDebug  bool
	FrameCount int
	LastErr    error

	log *zap.Logger
}

// NewGame creates a viewer for cfg. A nil logger disables logging.
func NewGame(cfg *config.Config, r render.Renderer, input render.InputManager, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	scene := NewScene(cfg)
	return &Game{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Renderer:     r,
		InputMgr:     input,
		Camera:       NewCamera(scene.Boundary),
		Scene:        scene,
		Aggregator: &aggregate.Aggregator{
			Scale:   cfg.Shadows.Scale,
			Workers: cfg.Shadows.Workers,
			Logger:  log.Named("aggregate"),
		},
		log: log,
	}
}

// Update handles one tick: quit, camera, drag, orbits, then shadows.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyF1) {
		g.ShowDebug = !g.ShowDebug
	}

	g.Camera.HandleInput(g.InputMgr, tickSeconds)
	g.updateDrag()
	g.Scene.Advance(tickSeconds)
	g.Recompute()

	g.FrameCount++
	return nil
}

// Layout returns the viewer's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ScreenWidth, g.ScreenHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Recompute runs the aggregator over the current light positions. On
// failure the previous result stays on screen.
func (g *Game) Recompute() {
	res, err := g.Aggregator.Compute(context.Background(), g.Scene.Lights.Positions(), g.Scene.Obstacles, g.Scene.Boundary)
	if err != nil {
		if g.LastErr == nil || g.LastErr.Error() != err.Error() {
			g.log.Warn("shadow computation failed, keeping previous frame", zap.Error(err))
		}
		g.LastErr = err
		return
	}
	g.LastErr = nil
	g.Result = res
}

func (g *Game) updateDrag() {
	lights := g.Scene.Lights
	cx, cy := g.InputMgr.GetCursorPosition()
	cursor := g.Camera.ScreenToWorld(float64(cx), float64(cy), g.ScreenWidth, g.ScreenHeight)

	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		if lights.BeginDrag(cursor) {
			g.log.Debug("light grabbed", zap.Int("light", lights.Dragging()))
		}
	}
	if lights.Dragging() < 0 {
		return
	}
	if g.InputMgr.IsMouseButtonPressed(render.MouseButtonLeft) {
		lights.DragTo(g.Scene.keepInside(cursor))
	}
	if g.InputMgr.IsMouseButtonJustReleased(render.MouseButtonLeft) {
		g.log.Debug("light dropped", zap.Int("light", lights.Dragging()))
		lights.EndDrag()
	}
}
