package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"chosenoffset.com/fieldofview/internal/config"
	"chosenoffset.com/fieldofview/internal/core/geometry"
	"chosenoffset.com/fieldofview/internal/core/shadows"
	"chosenoffset.com/fieldofview/internal/render"
	"chosenoffset.com/fieldofview/internal/world/shapes"
)

// ErrQuit is returned from Update when the player asks to leave.
var ErrQuit = errors.New("quit")

// Obstacle pairs an outline with its caster and the mesh its shadow is
// uploaded into.
type Obstacle struct {
	Outline shapes.Outline
	Caster  *shadows.Caster
	Mesh    render.Mesh
	Hull    []geometry.Point // Copy of the last hull, for the overlay

	Disabled bool // Set once the caster gave up and the mesh was cleared
}

// Game holds the scene state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Config       *config.Config
	Viewer       Viewer
	Camera       Camera
	Field        *shadows.Field
	Obstacles    []*Obstacle
	ShadowColor  color.NRGBA
	WhiteImg     render.Image
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Logger       *log.Logger

	// Scene reloads arrive here from the file watcher
	reloads chan *config.Config

	// UI state
	Messages []Message
	ShowHull bool

	// Debug
	FrameCount int
}

// NewGame builds a scene from cfg.
func NewGame(cfg *config.Config, r render.Renderer, input render.InputManager, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Renderer:     r,
		InputMgr:     input,
		Logger:       logger,
		reloads:      make(chan *config.Config, 1),
	}

	g.WhiteImg = r.NewImage(3, 3)
	g.WhiteImg.Fill(color.White)

	if err := g.load(cfg); err != nil {
		return nil, err
	}
	g.Camera.Pos = g.Viewer.Pos
	return g, nil
}

// load replaces the scene contents with cfg. The viewer keeps its position
// across reloads of the same game.
func (g *Game) load(cfg *config.Config) error {
	shadowColor, err := config.ParseColor(cfg.Shadow.Color)
	if err != nil {
		return err
	}

	outlines, err := shapes.Collect(cfg.Sources()...)
	if err != nil {
		return fmt.Errorf("failed to load obstacles: %w", err)
	}

	field := shadows.NewField(&g.Viewer, cfg.Shadow.Parallel)
	obstacles := make([]*Obstacle, 0, len(outlines))
	for i, outline := range outlines {
		name := outline.Name
		if name == "" {
			name = fmt.Sprintf("obstacle-%d", i)
		}

		opts := append(cfg.CasterOptions(), shadows.WithName(name), shadows.WithLogger(g.Logger))
		caster := shadows.NewCaster(outline.Vertices, opts...)
		field.Add(caster)
		obstacles = append(obstacles, &Obstacle{Outline: outline, Caster: caster})
	}

	if g.Config == nil {
		g.Viewer.Pos = cfg.ViewerStart()
	}
	g.Viewer.Speed = cfg.Viewer.Speed
	g.Viewer.Radius = cfg.Viewer.Radius
	g.Camera.Damp = cfg.Camera.Damp

	g.Config = cfg
	g.Field = field
	g.Obstacles = obstacles
	g.ShadowColor = shadowColor

	g.Logger.Printf("Loaded scene with %d obstacles (%s hull, parallel=%v)",
		len(obstacles), cfg.Shadow.Algorithm, cfg.Shadow.Parallel)
	return nil
}

// Reload queues a new scene to be applied at the start of the next Update.
// It is safe to call from another goroutine; only the latest pending scene
// is kept.
func (g *Game) Reload(cfg *config.Config) {
	for {
		select {
		case g.reloads <- cfg:
			return
		default:
		}
		// Drop the stale pending scene
		select {
		case <-g.reloads:
		default:
		}
	}
}

// Update handles scene logic updates.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0
	g.FrameCount++

	select {
	case cfg := <-g.reloads:
		if err := g.load(cfg); err != nil {
			g.ShowMessage(fmt.Sprintf("Reload failed: %v", err))
		} else {
			g.ShowMessage("Scene reloaded")
		}
	default:
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyH) {
		g.ShowHull = !g.ShowHull
	}

	g.updateMessages(dt)
	g.moveViewer(dt)
	g.Camera.Follow(g.Viewer.Pos, dt)

	return g.castShadows()
}

// Layout returns the scene's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) moveViewer(dt float64) {
	var dir geometry.Point
	if g.InputMgr.IsKeyPressed(render.KeyW) || g.InputMgr.IsKeyPressed(render.KeyUp) {
		dir.Y--
	}
	if g.InputMgr.IsKeyPressed(render.KeyS) || g.InputMgr.IsKeyPressed(render.KeyDown) {
		dir.Y++
	}
	if g.InputMgr.IsKeyPressed(render.KeyA) || g.InputMgr.IsKeyPressed(render.KeyLeft) {
		dir.X--
	}
	if g.InputMgr.IsKeyPressed(render.KeyD) || g.InputMgr.IsKeyPressed(render.KeyRight) {
		dir.X++
	}

	if length := math.Hypot(dir.X, dir.Y); length > 0 {
		next := g.Viewer.Pos.Add(dir.Scale(g.Viewer.Speed * dt / length))
		// Obstacles are solid, but a viewer stranded inside one by a reload
		// can still walk out
		if !g.insideObstacle(next) || g.insideObstacle(g.Viewer.Pos) {
			g.Viewer.Pos = next
		}
	}

	// Face the cursor
	cx, cy := g.InputMgr.GetCursorPosition()
	cursor := g.ScreenToWorld(float64(cx), float64(cy))
	if diff := cursor.Sub(g.Viewer.Pos); diff != (geometry.Point{}) {
		g.Viewer.Heading = math.Atan2(diff.Y, diff.X)
	}
}

// insideObstacle reports whether p lies within any obstacle outline.
func (g *Game) insideObstacle(p geometry.Point) bool {
	for _, o := range g.Obstacles {
		if len(o.Outline.Vertices) >= 3 && geometry.PointInPolygon(p, o.Outline.Vertices) {
			return true
		}
	}
	return false
}

// castShadows ticks every caster and uploads the results into the meshes.
func (g *Game) castShadows() error {
	results, err := g.Field.Tick(context.Background())
	if err != nil {
		return err
	}

	for i, obstacle := range g.Obstacles {
		shadow := results[i]
		if shadow.N == 0 {
			if obstacle.Caster.State() == shadows.StateDisabled && !obstacle.Disabled {
				obstacle.Disabled = true
				obstacle.Mesh.Clear()
				obstacle.Hull = nil
				g.ShowMessage(fmt.Sprintf("Shadow of %s disabled: %v", obstacle.Caster.Name(), obstacle.Caster.Err()))
			}
			continue
		}

		vertices := make([]render.Vertex, shadow.N)
		for j, p := range shadow.Hull {
			vertices[j] = g.shadowVertex(p)
		}
		indices, err := shadows.FanIndices(shadow.Fan)
		if err != nil {
			return fmt.Errorf("shadow mesh for %s: %w", obstacle.Caster.Name(), err)
		}
		if err := obstacle.Mesh.Apply(vertices, indices); err != nil {
			return fmt.Errorf("shadow mesh for %s: %w", obstacle.Caster.Name(), err)
		}
		obstacle.Hull = append(obstacle.Hull[:0], shadow.Hull...)
	}

	return nil
}

func (g *Game) shadowVertex(p geometry.Point) render.Vertex {
	sx, sy := g.WorldToScreen(p)
	return render.Vertex{
		DstX:   float32(sx),
		DstY:   float32(sy),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(g.ShadowColor.R) / 255,
		ColorG: float32(g.ShadowColor.G) / 255,
		ColorB: float32(g.ShadowColor.B) / 255,
		ColorA: float32(g.ShadowColor.A) / 255,
	}
}

// WorldToScreen converts world coordinates to screen pixels for the current camera.
func (g *Game) WorldToScreen(p geometry.Point) (float64, float64) {
	return p.X - g.Camera.Pos.X + float64(g.ScreenWidth)/2,
		p.Y - g.Camera.Pos.Y + float64(g.ScreenHeight)/2
}

// ScreenToWorld converts screen pixels to world coordinates.
func (g *Game) ScreenToWorld(x, y float64) geometry.Point {
	return geometry.Point{
		X: x + g.Camera.Pos.X - float64(g.ScreenWidth)/2,
		Y: y + g.Camera.Pos.Y - float64(g.ScreenHeight)/2,
	}
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})

	g.Logger.Printf("Message: %s", text)
}
