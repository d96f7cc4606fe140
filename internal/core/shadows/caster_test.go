package shadows

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"

	"chosenoffset.com/fieldofview/internal/core/geometry"
)

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func square(x, y, size float64) []geometry.Point {
	return []geometry.Point{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	}
}

func TestNewCasterBuffers(t *testing.T) {
	c := NewCaster(square(0, 0, 1), WithLogger(quietLogger()))

	if len(c.work) != 8 {
		t.Errorf("Expected working buffer of 8, got %d", len(c.work))
	}
	if len(c.hull) != 8 {
		t.Errorf("Expected hull buffer of 8, got %d", len(c.hull))
	}
	if c.State() != StateActive {
		t.Errorf("Expected active caster, got %v", c.State())
	}
}

func TestComputeShadowProjectsVertices(t *testing.T) {
	base := square(2, 2, 1)
	c := NewCaster(base, WithProjectionScale(10), WithLogger(quietLogger()))
	viewer := geometry.Point{X: 0, Y: 0}

	if _, err := c.ComputeShadow(viewer); err != nil {
		t.Fatalf("ComputeShadow failed: %v", err)
	}

	for i, v := range base {
		if c.work[i] != v {
			t.Errorf("work[%d]: expected base vertex %v, got %v", i, v, c.work[i])
		}
		want := v.Sub(viewer).Scale(10)
		if c.work[len(base)+i] != want {
			t.Errorf("work[%d]: expected projection %v, got %v", len(base)+i, want, c.work[len(base)+i])
		}
	}
}

func TestComputeShadowFanCoversHull(t *testing.T) {
	c := NewCaster(square(3, 1, 2), WithLogger(quietLogger()))

	shadow, err := c.ComputeShadow(geometry.Point{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("ComputeShadow failed: %v", err)
	}
	if shadow.N != len(shadow.Hull) {
		t.Fatalf("N=%d but hull has %d vertices", shadow.N, len(shadow.Hull))
	}
	if len(shadow.Fan) != shadow.N-2 {
		t.Fatalf("Expected %d triangles, got %d", shadow.N-2, len(shadow.Fan))
	}

	convex, err := geometry.IsConvexPolygon(shadow.Hull)
	if err != nil || !convex {
		t.Fatalf("Shadow hull is not convex: %v (err %v)", shadow.Hull, err)
	}

	var fanArea float64
	for _, tri := range shadow.Fan {
		fanArea += geometry.Area([]geometry.Point{
			shadow.Hull[tri[0]], shadow.Hull[tri[1]], shadow.Hull[tri[2]],
		})
	}
	hullArea := geometry.Area(shadow.Hull)
	if math.Abs(fanArea-hullArea) > 1e-6*math.Abs(hullArea) {
		t.Errorf("Fan area %v does not match hull area %v", fanArea, hullArea)
	}
	if hullArea <= 0 {
		t.Errorf("Expected counter-clockwise hull with positive area, got %v", hullArea)
	}
}

func TestComputeShadowGrahamMatchesMonotone(t *testing.T) {
	base := []geometry.Point{{X: 1, Y: 4}, {X: 3, Y: 5}, {X: 4, Y: 3}, {X: 2, Y: 2}, {X: 2.5, Y: 3.5}}
	viewer := geometry.Point{X: -2, Y: 1}

	mono := NewCaster(base, WithLogger(quietLogger()))
	graham := NewCaster(base, WithHullAlgorithm(HullGrahamScan), WithLogger(quietLogger()))

	a, err := mono.ComputeShadow(viewer)
	if err != nil {
		t.Fatalf("monotone ComputeShadow failed: %v", err)
	}
	b, err := graham.ComputeShadow(viewer)
	if err != nil {
		t.Fatalf("graham ComputeShadow failed: %v", err)
	}

	if a.N != b.N {
		t.Fatalf("Hull sizes differ: %d vs %d", a.N, b.N)
	}
	for i := range a.Hull {
		if a.Hull[i] != b.Hull[i] {
			t.Errorf("Hull[%d] differs: %v vs %v", i, a.Hull[i], b.Hull[i])
		}
	}
}

func TestSinglePointObstacleDisables(t *testing.T) {
	var logs bytes.Buffer
	c := NewCaster([]geometry.Point{{X: 1, Y: 1}}, WithName("pebble"), WithLogger(log.New(&logs, "", 0)))

	_, err := c.ComputeShadow(geometry.Point{})
	if !errors.Is(err, geometry.ErrInsufficientPoints) {
		t.Fatalf("Expected ErrInsufficientPoints, got %v", err)
	}
	if c.State() != StateDisabled {
		t.Fatalf("Expected disabled caster, got %v", c.State())
	}
	if !strings.Contains(logs.String(), "pebble") {
		t.Errorf("Expected disable to be logged with the caster name, got %q", logs.String())
	}

	for i := 0; i < 3; i++ {
		if _, err := c.ComputeShadow(geometry.Point{X: float64(i)}); !errors.Is(err, ErrDisabled) {
			t.Errorf("Tick %d: expected ErrDisabled, got %v", i, err)
		}
	}
	if c.Computations() != 1 {
		t.Errorf("Expected 1 hull computation, got %d", c.Computations())
	}
	if !errors.Is(c.Err(), geometry.ErrInsufficientPoints) {
		t.Errorf("Expected Err to keep the cause, got %v", c.Err())
	}
}

func TestCollinearObstacleDisables(t *testing.T) {
	base := []geometry.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	c := NewCaster(base, WithLogger(quietLogger()))

	// Viewer on the obstacle's own line: every point is collinear
	_, err := c.ComputeShadow(geometry.Point{X: -5, Y: 0})
	if !errors.Is(err, ErrDegenerateHull) {
		t.Fatalf("Expected ErrDegenerateHull, got %v", err)
	}
	if c.State() != StateDisabled {
		t.Fatalf("Expected disabled caster, got %v", c.State())
	}

	// Moving off the line does not bring it back
	if _, err := c.ComputeShadow(geometry.Point{X: 0, Y: 5}); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}
	if c.Computations() != 1 {
		t.Errorf("Expected 1 hull computation, got %d", c.Computations())
	}
}

func TestOversizedObstacleDisables(t *testing.T) {
	base := make([]geometry.Point, MaxBaseVertices+1)
	for i := range base {
		base[i] = geometry.Point{X: float64(i), Y: float64(i % 7)}
	}
	c := NewCaster(base, WithLogger(quietLogger()))

	_, err := c.ComputeShadow(geometry.Point{X: -10, Y: -10})
	if !errors.Is(err, ErrTooManyVertices) {
		t.Fatalf("Expected ErrTooManyVertices, got %v", err)
	}
	if c.State() != StateDisabled {
		t.Errorf("Expected disabled caster, got %v", c.State())
	}
	if c.Computations() != 0 {
		t.Errorf("Expected no hull computation, got %d", c.Computations())
	}
}

func TestTwoVertexObstacleCastsShadow(t *testing.T) {
	c := NewCaster([]geometry.Point{{X: 1, Y: 1}, {X: 2, Y: 1}}, WithLogger(quietLogger()))

	shadow, err := c.ComputeShadow(geometry.Point{X: 1.5, Y: -3})
	if err != nil {
		t.Fatalf("ComputeShadow failed: %v", err)
	}
	if shadow.N != 4 {
		t.Errorf("Expected a quadrilateral shadow, got %d vertices: %v", shadow.N, shadow.Hull)
	}
}

func TestParseHullAlgorithm(t *testing.T) {
	tests := map[string]HullAlgorithm{
		"":         HullMonotoneChain,
		"monotone": HullMonotoneChain,
		"Graham":   HullGrahamScan,
	}
	for name, want := range tests {
		got, err := ParseHullAlgorithm(name)
		if err != nil {
			t.Errorf("ParseHullAlgorithm(%q) failed: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseHullAlgorithm(%q): expected %v, got %v", name, want, got)
		}
	}

	if _, err := ParseHullAlgorithm("quickhull"); err == nil {
		t.Error("Expected error for unknown algorithm")
	}
}
