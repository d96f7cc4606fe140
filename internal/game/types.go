package game

import (
	"chosenoffset.com/fieldofview/internal/core/geometry"
)

// Viewer is the moving viewpoint the shadows are cast from.
type Viewer struct {
	Pos     geometry.Point
	Heading float64 // Radians, towards the cursor
	Speed   float64 // World units per second
	Radius  float64
}

// ViewerPosition implements shadows.ViewerSource.
func (v *Viewer) ViewerPosition() geometry.Point {
	return v.Pos
}

// Camera tracks the viewport center in world coordinates.
type Camera struct {
	Pos  geometry.Point
	Damp float64
}

// Follow moves the camera a damped step towards target.
func (c *Camera) Follow(target geometry.Point, dt float64) {
	t := min(max(c.Damp*dt, 0), 1)
	c.Pos = c.Pos.Add(target.Sub(c.Pos).Scale(t))
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}
