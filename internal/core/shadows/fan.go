package shadows

import (
	"fmt"
	"math"
)

// TriangleFan returns the n-2 triangles (0, i+1, i+2) covering an n vertex
// convex hull. The hull vertices must be in winding order.
func TriangleFan(n int) []Triangle {
	if n < 3 {
		return nil
	}
	return AppendFan(make([]Triangle, 0, n-2), n)
}

// AppendFan appends the fan triangles of an n vertex hull to dst.
func AppendFan(dst []Triangle, n int) []Triangle {
	for i := 0; i < n-2; i++ {
		dst = append(dst, Triangle{0, i + 1, i + 2})
	}
	return dst
}

// FanIndices flattens a fan into a 16-bit index list for triangle upload.
func FanIndices(fan []Triangle) ([]uint16, error) {
	indices := make([]uint16, 0, len(fan)*3)
	for _, tri := range fan {
		for _, idx := range tri {
			if idx < 0 || idx > math.MaxUint16 {
				return nil, fmt.Errorf("%w: index %d", ErrTooManyVertices, idx)
			}
			indices = append(indices, uint16(idx))
		}
	}
	return indices, nil
}
