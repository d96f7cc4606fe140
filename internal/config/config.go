// Package config holds the scene description for the field of view demo.
// Scenes are loaded from TOML files; anything the file leaves out keeps its
// default.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"chosenoffset.com/fieldofview/internal/core/geometry"
	"chosenoffset.com/fieldofview/internal/core/shadows"
	"chosenoffset.com/fieldofview/internal/world/shapes"
)

// Config holds the whole scene
type Config struct {
	Window    WindowConfig     `toml:"window"`
	Viewer    ViewerConfig     `toml:"viewer"`
	Camera    CameraConfig     `toml:"camera"`
	Shadow    ShadowConfig     `toml:"shadow"`
	Obstacles []ObstacleConfig `toml:"obstacles"`
	Tiles     TilesConfig      `toml:"tiles"`
	GeoJSON   []GeoJSONConfig  `toml:"geojson"`
}

// WindowConfig sizes the demo window
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// ViewerConfig places the viewer and sets how fast it moves
type ViewerConfig struct {
	Start  []float64 `toml:"start"`  // [x, y] in world units
	Speed  float64   `toml:"speed"`  // World units per second
	Radius float64   `toml:"radius"` // Marker radius
}

// CameraConfig controls how the camera follows the viewer
type CameraConfig struct {
	Damp float64 `toml:"damp"` // Fraction of the remaining distance closed per second
}

// ShadowConfig tunes the shadow casters
type ShadowConfig struct {
	ProjectionScale float64 `toml:"projection_scale"`
	Algorithm       string  `toml:"algorithm"` // "monotone" or "graham"
	Parallel        bool    `toml:"parallel"`  // Tick casters on separate goroutines
	Color           string  `toml:"color"`     // Hex RRGGBBAA
}

// ObstacleConfig is a literal polygon obstacle in local coordinates
type ObstacleConfig struct {
	Name     string      `toml:"name"`
	Vertices [][]float64 `toml:"vertices"`
	Position []float64   `toml:"position"`
	Rotation float64     `toml:"rotation"` // Degrees, counter-clockwise
	Scale    []float64   `toml:"scale"`
}

// TilesConfig is an ASCII map whose blocking regions become obstacles
type TilesConfig struct {
	Size     float64   `toml:"size"`
	Origin   []float64 `toml:"origin"`
	Blocking string    `toml:"blocking"`
	Rows     []string  `toml:"rows"`
}

// GeoJSONConfig points at a GeoJSON file of obstacle polygons
type GeoJSONConfig struct {
	Path     string    `toml:"path"` // Relative to the scene file
	Position []float64 `toml:"position"`
	Rotation float64   `toml:"rotation"`
	Scale    []float64 `toml:"scale"`
}

// DefaultConfig returns a small scene with a few obstacles
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "Field of View",
		},
		Viewer: ViewerConfig{
			Start:  []float64{0, 0},
			Speed:  240,
			Radius: 8,
		},
		Camera: CameraConfig{
			Damp: 4,
		},
		Shadow: ShadowConfig{
			ProjectionScale: shadows.DefaultProjectionScale,
			Algorithm:       "monotone",
			Color:           "101018ff",
		},
		Obstacles: []ObstacleConfig{
			{
				Name:     "crate",
				Vertices: [][]float64{{-30, -30}, {30, -30}, {30, 30}, {-30, 30}},
				Position: []float64{200, 120},
			},
			{
				Name:     "pillar",
				Vertices: [][]float64{{0, -25}, {24, -8}, {15, 20}, {-15, 20}, {-24, -8}},
				Position: []float64{-180, -60},
			},
			{
				Name:     "wall",
				Vertices: [][]float64{{-80, -8}, {80, -8}, {80, 8}, {-80, 8}},
				Position: []float64{40, -220},
				Rotation: 15,
			},
		},
	}
}

// LoadConfig loads a scene from a TOML file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene config %s: %w", path, err)
	}

	// GeoJSON paths are relative to the scene file
	dir := filepath.Dir(path)
	for i := range config.GeoJSON {
		if p := config.GeoJSON[i].Path; p != "" && !filepath.IsAbs(p) {
			config.GeoJSON[i].Path = filepath.Join(dir, p)
		}
	}

	return config, nil
}

// ParseConfig decodes TOML on top of the defaults and validates the result.
// The default obstacles only apply when there is no scene file at all.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	config.Obstacles = nil
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges and vector lengths
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Viewer.Speed < 0 {
		return fmt.Errorf("viewer speed must not be negative: %v", c.Viewer.Speed)
	}
	if c.Camera.Damp <= 0 {
		return fmt.Errorf("camera damp must be positive: %v", c.Camera.Damp)
	}
	if c.Shadow.ProjectionScale <= 1 {
		return fmt.Errorf("projection scale must be greater than 1: %v", c.Shadow.ProjectionScale)
	}
	if _, err := shadows.ParseHullAlgorithm(c.Shadow.Algorithm); err != nil {
		return err
	}
	if _, err := ParseColor(c.Shadow.Color); err != nil {
		return err
	}
	if _, err := vec(c.Viewer.Start, geometry.Point{}); err != nil {
		return fmt.Errorf("viewer start: %w", err)
	}

	for i, o := range c.Obstacles {
		if _, err := o.Outline(); err != nil {
			return fmt.Errorf("obstacle %d (%s): %w", i, o.Name, err)
		}
	}
	for i, g := range c.GeoJSON {
		if g.Path == "" {
			return fmt.Errorf("geojson %d: path is required", i)
		}
		if _, err := transform(g.Position, g.Rotation, g.Scale); err != nil {
			return fmt.Errorf("geojson %d: %w", i, err)
		}
	}
	if len(c.Tiles.Rows) > 0 && c.Tiles.Size <= 0 {
		return fmt.Errorf("tiles: invalid size %v", c.Tiles.Size)
	}
	if _, err := vec(c.Tiles.Origin, geometry.Point{}); err != nil {
		return fmt.Errorf("tiles origin: %w", err)
	}

	return nil
}

// ViewerStart returns the viewer start position
func (c *Config) ViewerStart() geometry.Point {
	p, _ := vec(c.Viewer.Start, geometry.Point{})
	return p
}

// Outline returns the obstacle in world space
func (o ObstacleConfig) Outline() (shapes.Outline, error) {
	tr, err := transform(o.Position, o.Rotation, o.Scale)
	if err != nil {
		return shapes.Outline{}, err
	}

	local := shapes.Outline{Name: o.Name}
	for i, v := range o.Vertices {
		p, err := vec(v, geometry.Point{})
		if err != nil {
			return shapes.Outline{}, fmt.Errorf("vertex %d: %w", i, err)
		}
		local.Vertices = append(local.Vertices, p)
	}

	return tr.ApplyAll(local), nil
}

// Sources lists every shape source the scene declares
func (c *Config) Sources() []shapes.Source {
	var sources []shapes.Source

	var static shapes.Static
	for _, o := range c.Obstacles {
		outline, err := o.Outline()
		if err != nil {
			// Validate already rejected these
			continue
		}
		static = append(static, outline)
	}
	if len(static) > 0 {
		sources = append(sources, static)
	}

	if len(c.Tiles.Rows) > 0 {
		origin, _ := vec(c.Tiles.Origin, geometry.Point{})
		sources = append(sources, &shapes.TileGrid{
			Rows:     c.Tiles.Rows,
			TileSize: c.Tiles.Size,
			Origin:   origin,
			Blocking: c.Tiles.Blocking,
		})
	}

	for _, g := range c.GeoJSON {
		tr, _ := transform(g.Position, g.Rotation, g.Scale)
		sources = append(sources, shapes.GeoJSONFile{Path: g.Path, Transform: tr})
	}

	return sources
}

// CasterOptions converts the shadow settings into caster options
func (c *Config) CasterOptions() []shadows.Option {
	algorithm, _ := shadows.ParseHullAlgorithm(c.Shadow.Algorithm)
	return []shadows.Option{
		shadows.WithProjectionScale(c.Shadow.ProjectionScale),
		shadows.WithHullAlgorithm(algorithm),
	}
}

// vec reads an optional [x, y] pair
func vec(v []float64, def geometry.Point) (geometry.Point, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 2:
		return geometry.Point{X: v[0], Y: v[1]}, nil
	}
	return geometry.Point{}, fmt.Errorf("expected [x, y], got %d values", len(v))
}

func transform(position []float64, rotation float64, scale []float64) (shapes.Transform, error) {
	pos, err := vec(position, geometry.Point{})
	if err != nil {
		return shapes.Transform{}, fmt.Errorf("position: %w", err)
	}
	sc, err := vec(scale, geometry.Point{X: 1, Y: 1})
	if err != nil {
		return shapes.Transform{}, fmt.Errorf("scale: %w", err)
	}
	return shapes.Transform{
		Position: pos,
		Rotation: rotation * math.Pi / 180,
		Scale:    sc,
	}, nil
}
