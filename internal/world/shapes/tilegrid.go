package shapes

import (
	"fmt"
	"math"
	"strings"

	"chosenoffset.com/fieldofview/internal/core/geometry"
)

// TileGrid turns an ASCII map into obstacles: every contiguous region of
// sight-blocking tiles becomes one outline, the corners of its outer
// perimeter in boundary order. Holes inside a region are ignored.
type TileGrid struct {
	Rows     []string
	TileSize float64
	Origin   geometry.Point
	Blocking string // Runes that block sight, "#" when empty
}

// Coord represents a tile coordinate.
type Coord struct {
	X, Y int
}

type edgeType int

const (
	edgeTop edgeType = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// segment is one exposed tile edge, possibly merged with colinear neighbours.
type segment struct {
	A, B     geometry.Point
	EdgeType edgeType
}

// BlocksSight reports whether the tile at (x, y) blocks sight. Tiles outside
// the grid never do.
func (g *TileGrid) BlocksSight(x, y int) bool {
	if y < 0 || y >= len(g.Rows) || x < 0 {
		return false
	}
	row := []rune(g.Rows[y])
	if x >= len(row) {
		return false
	}
	blocking := g.Blocking
	if blocking == "" {
		blocking = "#"
	}
	return strings.ContainsRune(blocking, row[x])
}

// Outlines extracts one outline per contiguous blocking region.
func (g *TileGrid) Outlines() ([]Outline, error) {
	if g.TileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size %v", g.TileSize)
	}

	width := 0
	for _, row := range g.Rows {
		width = max(width, len([]rune(row)))
	}

	var outlines []Outline
	for i, region := range g.findContiguousRegions(width, len(g.Rows)) {
		perimeter := g.extractPerimeterSegments(region)
		merged := mergeColinearSegments(perimeter)

		loops, err := boundaryLoops(merged)
		if err != nil {
			return nil, fmt.Errorf("tiles region %d: %w", i, err)
		}
		corners := outerLoop(loops)

		simple, err := geometry.IsSimplePolygon(corners)
		if err != nil {
			return nil, fmt.Errorf("tiles region %d: %w", i, err)
		}
		if !simple {
			return nil, fmt.Errorf("tiles region %d: outline %v is not simple", i, corners)
		}

		outlines = append(outlines, Outline{
			Name:     fmt.Sprintf("tiles-%d", i),
			Vertices: corners,
		})
	}
	return outlines, nil
}

// findContiguousRegions identifies all connected regions of sight-blocking tiles
func (g *TileGrid) findContiguousRegions(width, height int) [][]Coord {
	visited := make(map[Coord]bool)
	var regions [][]Coord

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			coord := Coord{X: x, Y: y}
			if visited[coord] || !g.BlocksSight(x, y) {
				continue
			}

			region := g.floodFill(coord, width, height, visited)
			if len(region) > 0 {
				regions = append(regions, region)
			}
		}
	}

	return regions
}

// floodFill performs BFS to find all connected sight-blocking tiles
func (g *TileGrid) floodFill(start Coord, width, height int, visited map[Coord]bool) []Coord {
	var region []Coord
	queue := []Coord{start}
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		region = append(region, current)

		// 4-connected, no diagonals
		neighbors := []Coord{
			{X: current.X, Y: current.Y - 1},
			{X: current.X + 1, Y: current.Y},
			{X: current.X, Y: current.Y + 1},
			{X: current.X - 1, Y: current.Y},
		}

		for _, neighbor := range neighbors {
			if neighbor.X < 0 || neighbor.X >= width || neighbor.Y < 0 || neighbor.Y >= height {
				continue
			}
			if visited[neighbor] || !g.BlocksSight(neighbor.X, neighbor.Y) {
				continue
			}

			visited[neighbor] = true
			queue = append(queue, neighbor)
		}
	}

	return region
}

// extractPerimeterSegments finds all exposed edges of a region
func (g *TileGrid) extractPerimeterSegments(region []Coord) []segment {
	var segments []segment

	regionSet := make(map[Coord]bool, len(region))
	for _, coord := range region {
		regionSet[coord] = true
	}

	size := g.TileSize
	for _, coord := range region {
		// Neighbouring tiles must produce bit-identical shared corners
		left := g.Origin.X + float64(coord.X)*size
		top := g.Origin.Y + float64(coord.Y)*size
		right := g.Origin.X + float64(coord.X+1)*size
		bottom := g.Origin.Y + float64(coord.Y+1)*size

		if !regionSet[Coord{X: coord.X, Y: coord.Y - 1}] {
			segments = append(segments, segment{
				A:        geometry.Point{X: left, Y: top},
				B:        geometry.Point{X: right, Y: top},
				EdgeType: edgeTop,
			})
		}
		if !regionSet[Coord{X: coord.X + 1, Y: coord.Y}] {
			segments = append(segments, segment{
				A:        geometry.Point{X: right, Y: top},
				B:        geometry.Point{X: right, Y: bottom},
				EdgeType: edgeRight,
			})
		}
		if !regionSet[Coord{X: coord.X, Y: coord.Y + 1}] {
			segments = append(segments, segment{
				A:        geometry.Point{X: right, Y: bottom},
				B:        geometry.Point{X: left, Y: bottom},
				EdgeType: edgeBottom,
			})
		}
		if !regionSet[Coord{X: coord.X - 1, Y: coord.Y}] {
			segments = append(segments, segment{
				A:        geometry.Point{X: left, Y: bottom},
				B:        geometry.Point{X: left, Y: top},
				EdgeType: edgeLeft,
			})
		}
	}

	return segments
}

// mergeColinearSegments combines adjacent parallel segments into longer segments
func mergeColinearSegments(segments []segment) []segment {
	if len(segments) == 0 {
		return segments
	}

	merged := make([]bool, len(segments))
	var result []segment

	for i := 0; i < len(segments); i++ {
		if merged[i] {
			continue
		}

		current := segments[i]
		merged[i] = true

		extended := true
		for extended {
			extended = false

			for j := 0; j < len(segments); j++ {
				if merged[j] || i == j {
					continue
				}

				if canMergeSegments(current, segments[j]) {
					current = mergeSegments(current, segments[j])
					merged[j] = true
					extended = true
					break
				}
			}
		}

		result = append(result, current)
	}

	return result
}

// canMergeSegments checks if two segments are adjacent and colinear
func canMergeSegments(seg1, seg2 segment) bool {
	if seg1.EdgeType != seg2.EdgeType {
		return false
	}

	const epsilon = 0.001

	switch seg1.EdgeType {
	case edgeTop, edgeBottom:
		if math.Abs(seg1.A.Y-seg2.A.Y) > epsilon {
			return false
		}
		return touches(seg1.A.X, seg1.B.X, seg2.A.X, seg2.B.X, epsilon)

	case edgeLeft, edgeRight:
		if math.Abs(seg1.A.X-seg2.A.X) > epsilon {
			return false
		}
		return touches(seg1.A.Y, seg1.B.Y, seg2.A.Y, seg2.B.Y, epsilon)
	}

	return false
}

// touches reports whether two 1-D ranges share an endpoint.
func touches(a1, a2, b1, b2, epsilon float64) bool {
	return math.Abs(a2-b1) < epsilon || math.Abs(a1-b2) < epsilon ||
		math.Abs(a1-b1) < epsilon || math.Abs(a2-b2) < epsilon
}

// mergeSegments combines two adjacent colinear segments into one, keeping
// the direction of the first.
func mergeSegments(seg1, seg2 segment) segment {
	result := seg1

	switch seg1.EdgeType {
	case edgeTop:
		result.A.X = min(seg1.A.X, seg1.B.X, seg2.A.X, seg2.B.X)
		result.B.X = max(seg1.A.X, seg1.B.X, seg2.A.X, seg2.B.X)
	case edgeBottom:
		result.A.X = max(seg1.A.X, seg1.B.X, seg2.A.X, seg2.B.X)
		result.B.X = min(seg1.A.X, seg1.B.X, seg2.A.X, seg2.B.X)
	case edgeRight:
		result.A.Y = min(seg1.A.Y, seg1.B.Y, seg2.A.Y, seg2.B.Y)
		result.B.Y = max(seg1.A.Y, seg1.B.Y, seg2.A.Y, seg2.B.Y)
	case edgeLeft:
		result.A.Y = max(seg1.A.Y, seg1.B.Y, seg2.A.Y, seg2.B.Y)
		result.B.Y = min(seg1.A.Y, seg1.B.Y, seg2.A.Y, seg2.B.Y)
	}

	return result
}

// boundaryLoops chains segments end to start into closed loops. Every
// perimeter edge keeps the region on the same side, so each loop is one
// boundary: the outside or a hole. Where two diagonal tiles meet at a single
// corner the walk takes the turn with the smallest Turn value, which keeps
// every loop from crossing itself there.
func boundaryLoops(segments []segment) ([][]geometry.Point, error) {
	starts := make(map[geometry.Point][]int, len(segments))
	for i, seg := range segments {
		starts[seg.A] = append(starts[seg.A], i)
	}

	used := make([]bool, len(segments))
	var loops [][]geometry.Point
	for first := range segments {
		if used[first] {
			continue
		}

		var loop []geometry.Point
		cur := first
		for {
			used[cur] = true
			seg := segments[cur]
			loop = append(loop, seg.A)

			next := -1
			for _, j := range starts[seg.B] {
				if next < 0 || geometry.Turn(seg.A, seg.B, segments[j].B) < geometry.Turn(seg.A, seg.B, segments[next].B) {
					next = j
				}
			}
			if next == first {
				break
			}
			if next < 0 || used[next] {
				return nil, fmt.Errorf("perimeter does not close at %v", seg.B)
			}
			cur = next
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// outerLoop picks the loop enclosing the largest area, the region's outside
// boundary.
func outerLoop(loops [][]geometry.Point) []geometry.Point {
	var outer []geometry.Point
	best := 0.0
	for _, loop := range loops {
		if area := math.Abs(geometry.Area(loop)); outer == nil || area > best {
			outer, best = loop, area
		}
	}
	return outer
}
