package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestTurn(t *testing.T) {
	a, b := Point{0, 0}, Point{1, 0}

	if got := Turn(a, b, Point{1, 1}); got <= 0 {
		t.Errorf("Expected left turn to be positive, got %v", got)
	}
	if got := Turn(a, b, Point{1, -1}); got >= 0 {
		t.Errorf("Expected right turn to be negative, got %v", got)
	}
	if got := Turn(a, b, Point{5, 0}); got != 0 {
		t.Errorf("Expected collinear to be zero, got %v", got)
	}
}

func TestTurnNormalizedIgnoresLength(t *testing.T) {
	short := TurnNormalized(Point{0, 0}, Point{1, 0}, Point{1, 1})
	long := TurnNormalized(Point{0, 0}, Point{10, 0}, Point{10, 100})

	if math.Abs(short-1) > 1e-12 || math.Abs(long-1) > 1e-12 {
		t.Errorf("Expected both right angles to give 1, got %v and %v", short, long)
	}
	if got := TurnNormalized(Point{1, 1}, Point{1, 1}, Point{2, 2}); got != 0 {
		t.Errorf("Expected zero-length edge to give 0, got %v", got)
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Point
		want       bool
	}{
		{"crossing", Point{0, 0}, Point{2, 2}, Point{0, 2}, Point{2, 0}, true},
		{"parallel", Point{0, 0}, Point{2, 0}, Point{0, 1}, Point{2, 1}, false},
		{"collinear overlapping", Point{0, 0}, Point{2, 0}, Point{1, 0}, Point{3, 0}, true},
		{"collinear touching", Point{0, 0}, Point{1, 0}, Point{1, 0}, Point{2, 0}, true},
		{"collinear disjoint", Point{0, 0}, Point{1, 0}, Point{2, 0}, Point{3, 0}, false},
		{"endpoint on segment", Point{0, 0}, Point{2, 0}, Point{1, 0}, Point{1, 5}, true},
		{"apart", Point{0, 0}, Point{1, 1}, Point{3, 0}, Point{4, -2}, false},
	}

	for _, tt := range tests {
		if got := SegmentsIntersect(tt.a, tt.b, tt.c, tt.d); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestIsSimplePolygon(t *testing.T) {
	bowtie := []Point{{0, 0}, {1, 1}, {1, 0}, {0, 1}}
	simple, err := IsSimplePolygon(bowtie)
	if err != nil {
		t.Fatalf("IsSimplePolygon failed: %v", err)
	}
	if simple {
		t.Error("Expected bowtie to be self-intersecting")
	}

	quad := []Point{{0, 0}, {2, 0}, {3, 2}, {0, 1}}
	simple, err = IsSimplePolygon(quad)
	if err != nil {
		t.Fatalf("IsSimplePolygon failed: %v", err)
	}
	if !simple {
		t.Error("Expected convex quadrilateral to be simple")
	}

	if _, err := IsSimplePolygon([]Point{{0, 0}, {1, 1}}); !errors.Is(err, ErrTooFewVertices) {
		t.Errorf("Expected ErrTooFewVertices, got %v", err)
	}
}

func TestIsConvexPolygon(t *testing.T) {
	convex, err := IsConvexPolygon([]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	if err != nil || !convex {
		t.Errorf("Expected square to be convex, got %v (err %v)", convex, err)
	}

	// Clockwise square is convex too
	convex, err = IsConvexPolygon([]Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}})
	if err != nil || !convex {
		t.Errorf("Expected clockwise square to be convex, got %v (err %v)", convex, err)
	}

	arrow := []Point{{0, 0}, {2, 1}, {0, 2}, {1, 1}}
	convex, err = IsConvexPolygon(arrow)
	if err != nil {
		t.Fatalf("IsConvexPolygon failed: %v", err)
	}
	if convex {
		t.Error("Expected arrow head to be concave")
	}

	for _, vertices := range [][]Point{{{0, 0}}, {{0, 0}, {1, 0}}} {
		if _, err := IsConvexPolygon(vertices); !errors.Is(err, ErrTooFewVertices) {
			t.Errorf("Expected ErrTooFewVertices for %d vertices, got %v", len(vertices), err)
		}
	}
}

func TestArea(t *testing.T) {
	ccw := []Point{{0, 0}, {2, 0}, {2, 3}, {0, 3}}
	if got := Area(ccw); got != 6 {
		t.Errorf("Expected area 6, got %v", got)
	}

	cw := []Point{{0, 0}, {0, 3}, {2, 3}, {2, 0}}
	if got := Area(cw); got != -6 {
		t.Errorf("Expected area -6, got %v", got)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}

	if !PointInPolygon(Point{2, 2}, square) {
		t.Error("Expected center to be inside")
	}
	if PointInPolygon(Point{5, 2}, square) {
		t.Error("Expected (5,2) to be outside")
	}
}
