package geometry

import "errors"

var (
	// ErrInsufficientPoints is returned when a hull is requested for fewer than 3 points.
	ErrInsufficientPoints = errors.New("geometry: too few points for a convex hull")

	// ErrOutputTooSmall is returned when the hull does not fit the destination buffer.
	ErrOutputTooSmall = errors.New("geometry: result buffer too small for hull")

	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("geometry: non-finite coordinate")

	// ErrTooFewVertices is returned by polygon tests given fewer than 3 vertices.
	ErrTooFewVertices = errors.New("geometry: too few vertices for a polygon")
)
