package shapes

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"chosenoffset.com/fieldofview/internal/core/geometry"
)

// GeoJSONFile reads obstacle outlines from a GeoJSON FeatureCollection.
// Polygon features contribute their exterior ring, MultiPolygon features
// one outline per polygon. Other geometry types are skipped.
type GeoJSONFile struct {
	Path      string
	Transform Transform
}

// Outlines parses the file and maps every ring through the transform.
func (f GeoJSONFile) Outlines() ([]Outline, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read obstacle geojson %s: %w", f.Path, err)
	}

	outlines, err := ParseGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse obstacle geojson %s: %w", f.Path, err)
	}

	for i := range outlines {
		outlines[i] = f.Transform.ApplyAll(outlines[i])
	}
	return outlines, nil
}

// ParseGeoJSON extracts outlines from FeatureCollection bytes. Features are
// named by their "name" property, or by position when it is missing.
func ParseGeoJSON(data []byte) ([]Outline, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	var outlines []Outline
	for i, feature := range fc.Features {
		name := feature.Properties.MustString("name", fmt.Sprintf("feature-%d", i))

		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				outlines = append(outlines, Outline{Name: name, Vertices: ringVertices(g[0])})
			}
		case orb.MultiPolygon:
			for j, poly := range g {
				if len(poly) == 0 {
					continue
				}
				outlines = append(outlines, Outline{
					Name:     fmt.Sprintf("%s-%d", name, j),
					Vertices: ringVertices(poly[0]),
				})
			}
		}
	}

	return outlines, nil
}

// ringVertices converts a ring, dropping the closing point when it repeats
// the first.
func ringVertices(ring orb.Ring) []geometry.Point {
	if len(ring) > 1 && ring.Closed() {
		ring = ring[:len(ring)-1]
	}

	vertices := make([]geometry.Point, len(ring))
	for i, p := range ring {
		vertices[i] = geometry.Point{X: p.X(), Y: p.Y()}
	}
	return vertices
}
