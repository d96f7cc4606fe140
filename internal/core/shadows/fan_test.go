package shadows

import (
	"errors"
	"testing"
)

func TestTriangleFan(t *testing.T) {
	fan := TriangleFan(5)

	want := []Triangle{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}
	if len(fan) != len(want) {
		t.Fatalf("Expected %d triangles, got %d", len(want), len(fan))
	}
	for i := range want {
		if fan[i] != want[i] {
			t.Errorf("Triangle %d: expected %v, got %v", i, want[i], fan[i])
		}
	}

	if fan := TriangleFan(2); fan != nil {
		t.Errorf("Expected no triangles for 2 vertices, got %v", fan)
	}
}

func TestFanIndices(t *testing.T) {
	indices, err := FanIndices(TriangleFan(4))
	if err != nil {
		t.Fatalf("FanIndices failed: %v", err)
	}

	want := []uint16{0, 1, 2, 0, 2, 3}
	if len(indices) != len(want) {
		t.Fatalf("Expected %d indices, got %d", len(want), len(indices))
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("Index %d: expected %d, got %d", i, want[i], indices[i])
		}
	}
}

func TestFanIndicesOverflow(t *testing.T) {
	// 65537 hull vertices put the last index one past the uint16 range
	fan := TriangleFan(1<<16 + 1)

	if _, err := FanIndices(fan); !errors.Is(err, ErrTooManyVertices) {
		t.Errorf("Expected ErrTooManyVertices, got %v", err)
	}
	if _, err := FanIndices(fan[:len(fan)-1]); err != nil {
		t.Errorf("Expected the largest 16-bit fan to fit, got %v", err)
	}
}
