package geometry

import (
	"fmt"
	"sort"
)

// GrahamScan computes the same hull as ConvexHull with the Graham scan
// formulation. Points are sorted by polar angle around the lowest point,
// nearer points first on ties, and non-left turns are popped. The result is
// rotated to begin at the smallest (X, Y) point so both algorithms agree
// vertex for vertex.
func GrahamScan(points []Point) ([]Point, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(points))
	}
	if err := checkFinite(points); err != nil {
		return nil, err
	}

	pts := sortedUnique(points)

	// Pivot is the lowest point, leftmost on ties. Every other point then
	// lies at a polar angle in [0, pi) which keeps the cross product
	// comparison a strict ordering.
	pi := 0
	for i, p := range pts {
		if p.Y < pts[pi].Y || (p.Y == pts[pi].Y && p.X < pts[pi].X) {
			pi = i
		}
	}
	pivot := pts[pi]

	rest := make([]Point, 0, len(pts)-1)
	rest = append(rest, pts[:pi]...)
	rest = append(rest, pts[pi+1:]...)

	sort.Slice(rest, func(i, j int) bool {
		if c := Turn(pivot, rest[i], rest[j]); c != 0 {
			return c > 0
		}
		return distanceSq(pivot, rest[i]) < distanceSq(pivot, rest[j])
	})

	stack := make([]Point, 0, len(pts))
	stack = append(stack, pivot)
	for _, p := range rest {
		for len(stack) >= 2 && Turn(stack[len(stack)-2], stack[len(stack)-1], p) <= 0 {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, p)
	}

	// Closing edge back to the pivot
	for len(stack) >= 3 && Turn(stack[len(stack)-2], stack[len(stack)-1], pivot) <= 0 {
		stack = stack[:len(stack)-1]
	}

	return rotateToMin(stack), nil
}

// rotateToMin rotates a closed vertex loop so it starts at its smallest point.
func rotateToMin(loop []Point) []Point {
	start := 0
	for i, p := range loop {
		if p.Less(loop[start]) {
			start = i
		}
	}

	out := make([]Point, 0, len(loop))
	out = append(out, loop[start:]...)
	out = append(out, loop[:start]...)
	return out
}

func distanceSq(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// GrahamScanInto is GrahamScan writing into dst, with the same
// ErrOutputTooSmall contract as ConvexHullInto.
func GrahamScanInto(dst, points []Point) (int, error) {
	hull, err := GrahamScan(points)
	if err != nil {
		return 0, err
	}
	if len(hull) > len(dst) {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrOutputTooSmall, len(hull), len(dst))
	}
	return copy(dst, hull), nil
}
