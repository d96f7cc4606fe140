// Package shapes supplies obstacle outlines to the shadow casters. Every
// source hands out vertices already in world space.
package shapes

import (
	"math"

	"chosenoffset.com/fieldofview/internal/core/geometry"
)

// Outline is the vertex list of one obstacle.
type Outline struct {
	Name     string
	Vertices []geometry.Point
}

// Source produces obstacle outlines once at scene setup.
type Source interface {
	Outlines() ([]Outline, error)
}

// Static is a Source over a fixed list of outlines.
type Static []Outline

// Outlines returns the list unchanged.
func (s Static) Outlines() ([]Outline, error) {
	return s, nil
}

// Transform places a local outline in the world: scale, then rotate
// (radians, counter-clockwise), then translate.
type Transform struct {
	Position geometry.Point
	Rotation float64
	Scale    geometry.Point
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{Scale: geometry.Point{X: 1, Y: 1}}

// Apply maps a local point to world space.
func (t Transform) Apply(p geometry.Point) geometry.Point {
	x := p.X * t.Scale.X
	y := p.Y * t.Scale.Y

	sin, cos := math.Sincos(t.Rotation)
	return geometry.Point{
		X: x*cos - y*sin + t.Position.X,
		Y: x*sin + y*cos + t.Position.Y,
	}
}

// ApplyAll maps every vertex of an outline, returning a new outline.
func (t Transform) ApplyAll(o Outline) Outline {
	out := Outline{
		Name:     o.Name,
		Vertices: make([]geometry.Point, len(o.Vertices)),
	}
	for i, v := range o.Vertices {
		out.Vertices[i] = t.Apply(v)
	}
	return out
}

// Collect gathers outlines from several sources in order.
func Collect(sources ...Source) ([]Outline, error) {
	var all []Outline
	for _, src := range sources {
		outlines, err := src.Outlines()
		if err != nil {
			return nil, err
		}
		all = append(all, outlines...)
	}
	return all, nil
}
