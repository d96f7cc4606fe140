package geometry

import (
	"fmt"
	"math"
	"sort"
)

// ConvexHull returns the convex hull of points using the monotone chain
// algorithm. The hull starts at the point with the smallest (X, Y) and winds
// counter-clockwise (every Turn along it is positive in a y-up frame).
// Collinear boundary points and exact duplicates are dropped, so an
// all-collinear input yields a two point hull.
func ConvexHull(points []Point) ([]Point, error) {
	dst := make([]Point, len(points))
	n, err := ConvexHullInto(dst, points)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// ConvexHullInto writes the convex hull of points into dst and returns the
// number of hull vertices. It fails with ErrOutputTooSmall if the hull does
// not fit in len(dst), and with ErrNonFinite on NaN or infinite input.
// The points slice is not modified.
func ConvexHullInto(dst, points []Point) (int, error) {
	if len(points) < 3 {
		return 0, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(points))
	}
	if err := checkFinite(points); err != nil {
		return 0, err
	}

	sorted := sortedUnique(points)

	// Lower chain, left to right
	stack := make([]Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(stack) >= 2 && Turn(stack[len(stack)-2], stack[len(stack)-1], p) <= 0 {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, p)
	}

	// Upper chain, right to left. The rightmost point is already on the
	// stack and the upper pass must never pop past it.
	base := len(stack)
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(stack) > base && Turn(stack[len(stack)-2], stack[len(stack)-1], p) <= 0 {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, p)
	}

	hull := distinct(stack)
	if len(hull) > len(dst) {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrOutputTooSmall, len(hull), len(dst))
	}

	return copy(dst, hull), nil
}

// checkFinite rejects NaN and infinite coordinates.
func checkFinite(points []Point) error {
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: point %d is %v", ErrNonFinite, i, p)
		}
	}
	return nil
}

// sortedUnique returns a sorted copy of points with exact duplicates removed.
func sortedUnique(points []Point) []Point {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})

	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// distinct removes repeated points, keeping the first occurrence of each.
// The two chains share their first and last points.
func distinct(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := points[:0]
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
