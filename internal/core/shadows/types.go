package shadows

import (
	"errors"
	"fmt"
	"strings"

	"chosenoffset.com/fieldofview/internal/core/geometry"
)

// Triangle holds three indices into a hull.
type Triangle [3]int

// Shadow is the result of one ComputeShadow call. Hull and Fan alias the
// caster's buffers and are only valid until its next ComputeShadow.
type Shadow struct {
	Hull []geometry.Point
	Fan  []Triangle
	N    int // Number of hull vertices
}

// State is the operating state of a Caster.
type State int

const (
	// StateActive casters compute a shadow every tick.
	StateActive State = iota
	// StateDisabled casters hit a geometry failure and never compute again.
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// HullAlgorithm selects the convex hull formulation a caster uses.
type HullAlgorithm int

const (
	HullMonotoneChain HullAlgorithm = iota
	HullGrahamScan
)

func (a HullAlgorithm) String() string {
	switch a {
	case HullMonotoneChain:
		return "monotone"
	case HullGrahamScan:
		return "graham"
	default:
		return fmt.Sprintf("HullAlgorithm(%d)", int(a))
	}
}

// ParseHullAlgorithm parses "monotone" or "graham". An empty name means monotone.
func ParseHullAlgorithm(name string) (HullAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "monotone", "monotone_chain", "andrew":
		return HullMonotoneChain, nil
	case "graham", "graham_scan":
		return HullGrahamScan, nil
	}
	return 0, fmt.Errorf("unknown hull algorithm %q", name)
}

var (
	// ErrDegenerateHull is returned when the hull has fewer than 3 vertices,
	// e.g. for a collinear obstacle seen along its own line.
	ErrDegenerateHull = errors.New("shadows: degenerate hull")

	// ErrDisabled is returned by ComputeShadow once the caster is disabled.
	ErrDisabled = errors.New("shadows: caster disabled")

	// ErrTooManyVertices is returned when a hull index would not fit the
	// 16-bit index buffer used for triangle upload.
	ErrTooManyVertices = errors.New("shadows: too many vertices for 16-bit indices")
)
