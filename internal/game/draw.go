package game

import (
	"fmt"

	"chosenoffset.com/shadowcast/internal/core/shadows"
	"chosenoffset.com/shadowcast/internal/render"
)

// Draw renders the world, shadows, obstacles and lights, back to front.
func (g *Game) Draw(screen render.Image) {
	w, h := screen.Size()
	screen.Fill(colorShadow)

	g.Renderer.FillPolygons(screen, g.rings(shadows.Region{g.Scene.Boundary.Polygon()}, w, h), colorWorld)
	if !g.Result.Union.Empty() {
		g.Renderer.FillPolygons(screen, g.rings(g.Result.Union, w, h), colorUnion)
	}
	if !g.Result.Intersection.Empty() {
		g.Renderer.FillPolygons(screen, g.rings(g.Result.Intersection, w, h), colorIntersection)
	}
	for _, o := range g.Scene.Obstacles {
		g.Renderer.FillPolygons(screen, g.rings(shadows.Region{o.Polygon()}, w, h), colorObstacle)
	}
	g.drawLights(screen, w, h)

	if g.ShowDebug {
		g.drawLightOutlines(screen, w, h)
		g.drawDebug(screen)
	}
}

// drawLightOutlines traces each light's own shadow region.
func (g *Game) drawLightOutlines(screen render.Image, w, h int) {
	for _, region := range g.Result.PerLight {
		for _, ring := range g.rings(region, w, h) {
			g.Renderer.StrokePolygon(screen, ring, 1, colorLight)
		}
	}
}

func (g *Game) drawLights(screen render.Image, w, h int) {
	for i := 0; i < g.Scene.Lights.Len(); i++ {
		l, _ := g.Scene.Lights.Get(i)
		p := g.Camera.WorldToScreen(l.Position, w, h)
		r := float32(l.Radius / g.Camera.Scale)
		g.Renderer.FillCircle(screen, p.X, p.Y, r, colorLight)
		if l.Dragging {
			g.Renderer.StrokeCircle(screen, p.X, p.Y, r+2, 2, colorLightOutline)
		}
	}
}

func (g *Game) drawDebug(screen render.Image) {
	text := fmt.Sprintf("lights: %d  obstacles: %d\nunion rings: %d  area: %.0f\nintersection rings: %d  area: %.0f\nskipped pairs: %d  zoom: %.2f",
		g.Scene.Lights.Len(), len(g.Scene.Obstacles),
		len(g.Result.Union), g.Result.Union.Area(),
		len(g.Result.Intersection), g.Result.Intersection.Area(),
		len(g.Result.Skipped), g.Camera.Scale)
	if g.LastErr != nil {
		text += "\nerror: " + g.LastErr.Error()
	}
	g.Renderer.DrawText(screen, text, 8, 8)
}

// rings projects a region to screen space.
func (g *Game) rings(r shadows.Region, w, h int) [][]render.Vec2 {
	out := make([][]render.Vec2, 0, len(r))
	for _, poly := range r {
		ring := make([]render.Vec2, len(poly))
		for i, p := range poly {
			ring[i] = g.Camera.WorldToScreen(p, w, h)
		}
		out = append(out, ring)
	}
	return out
}
