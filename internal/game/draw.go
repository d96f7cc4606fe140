package game

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/fieldofview/internal/core/geometry"
	"chosenoffset.com/fieldofview/internal/render"
)

var (
	backgroundColor = color.NRGBA{200, 196, 184, 255}
	obstacleColor   = color.NRGBA{60, 60, 72, 255}
	hullColor       = color.NRGBA{220, 60, 60, 255}
	viewerColor     = color.NRGBA{40, 120, 220, 255}
)

// Draw renders the scene to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	// Shadows first so obstacle outlines stay visible on top
	for _, obstacle := range g.Obstacles {
		obstacle.Mesh.Draw(screen, g.WhiteImg, &render.DrawTrianglesOptions{AntiAlias: true})
	}

	for _, obstacle := range g.Obstacles {
		g.drawLoop(screen, obstacle.Outline.Vertices, obstacleColor)
		if g.ShowHull {
			g.drawLoop(screen, obstacle.Hull, hullColor)
		}
	}

	g.drawViewer(screen)
	g.drawUI(screen)
}

func (g *Game) drawLoop(screen render.Image, loop []geometry.Point, clr color.Color) {
	for i := range loop {
		x0, y0 := g.WorldToScreen(loop[i])
		x1, y1 := g.WorldToScreen(loop[(i+1)%len(loop)])
		g.Renderer.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, clr)
	}
}

func (g *Game) drawViewer(screen render.Image) {
	x, y := g.WorldToScreen(g.Viewer.Pos)
	r := g.Viewer.Radius
	g.Renderer.FillCircle(screen, float32(x), float32(y), float32(r), viewerColor)

	// Heading marker
	hx := x + math.Cos(g.Viewer.Heading)*r*2
	hy := y + math.Sin(g.Viewer.Heading)*r*2
	g.Renderer.StrokeLine(screen, float32(x), float32(y), float32(hx), float32(hy), 2, viewerColor)
}

func (g *Game) drawUI(screen render.Image) {
	status := fmt.Sprintf("obstacles: %d active / %d   viewer: (%.0f, %.0f)   [H] hull overlay",
		g.Field.Active(), len(g.Obstacles), g.Viewer.Pos.X, g.Viewer.Pos.Y)
	g.Renderer.DrawText(screen, status, 8, 8)

	for i, msg := range g.Messages {
		g.Renderer.DrawText(screen, msg.Text, 8, 28+i*16)
	}
}
