package geometry

import "math"

// Turn returns the cross product of the edge vectors (b-a) and (c-b).
// Positive means a left (counter-clockwise) turn at b, negative a right
// turn, zero collinear.
func Turn(a, b, c Point) float64 {
	v1 := b.Sub(a)
	v2 := c.Sub(b)
	return v1.X*v2.Y - v2.X*v1.Y
}

// TurnNormalized is Turn with both edge vectors scaled to unit length, so the
// result only depends on the directions of the two edges. A zero-length edge
// has no direction and yields 0.
func TurnNormalized(a, b, c Point) float64 {
	v1 := b.Sub(a)
	v2 := c.Sub(b)

	l1 := math.Hypot(v1.X, v1.Y)
	l2 := math.Hypot(v2.X, v2.Y)
	if l1 == 0 || l2 == 0 {
		return 0
	}

	v1 = v1.Scale(1 / l1)
	v2 = v2.Scale(1 / l2)
	return v1.X*v2.Y - v2.X*v1.Y
}

// sign reduces an orientation value to -1, 0 or 1.
func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
