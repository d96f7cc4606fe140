package geometry

import "fmt"

// IsSimplePolygon reports whether no two non-adjacent edges of the closed
// polygon intersect. Every edge pair is tested, O(n^2).
func IsSimplePolygon(vertices []Point) (bool, error) {
	n := len(vertices)
	if n < 3 {
		return false, fmt.Errorf("%w: got %d", ErrTooFewVertices, n)
	}

	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		for j := i + 2; j < n; j++ {
			// First and last edges share vertex 0
			if i == 0 && j == n-1 {
				continue
			}
			c, d := vertices[j], vertices[(j+1)%n]
			if SegmentsIntersect(a, b, c, d) {
				return false, nil
			}
		}
	}

	return true, nil
}

// SegmentsIntersect reports whether segment ab and segment cd share at least
// one point. Touching endpoints and overlapping collinear segments count.
func SegmentsIntersect(a, b, c, d Point) bool {
	ab := sign(Turn(a, b, c)) * sign(Turn(a, b, d))
	cd := sign(Turn(c, d, a)) * sign(Turn(c, d, b))

	if ab == 0 && cd == 0 {
		// Collinear: compare the ranges along the line
		if b.Less(a) {
			a, b = b, a
		}
		if d.Less(c) {
			c, d = d, c
		}
		return !(b.Less(c) || d.Less(a))
	}

	return ab <= 0 && cd <= 0
}

// IsConvexPolygon reports whether every consecutive vertex triple of the
// closed polygon turns the same way as the first one.
func IsConvexPolygon(vertices []Point) (bool, error) {
	n := len(vertices)
	if n < 3 {
		return false, fmt.Errorf("%w: got %d", ErrTooFewVertices, n)
	}

	ref := sign(Turn(vertices[0], vertices[1], vertices[2]))
	for i := 1; i < n; i++ {
		if sign(Turn(vertices[i], vertices[(i+1)%n], vertices[(i+2)%n])) != ref {
			return false, nil
		}
	}

	return true, nil
}

// Area returns the signed shoelace area of the closed polygon.
// Counter-clockwise polygons have positive area.
func Area(vertices []Point) float64 {
	var sum float64
	j := len(vertices) - 1
	for i := range vertices {
		sum += vertices[j].X*vertices[i].Y - vertices[i].X*vertices[j].Y
		j = i
	}
	return sum / 2
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(point Point, polygon []Point) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}
