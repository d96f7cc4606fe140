package shadows

import (
	"fmt"
	"log"
	"math"

	"chosenoffset.com/fieldofview/internal/core/geometry"
)

// DefaultProjectionScale pushes the projected copy of each vertex far enough
// out that it behaves as if at infinity for typical scene sizes.
const DefaultProjectionScale = 50.0

// MaxBaseVertices is the largest obstacle whose projected point set still
// indexes into a 16-bit triangle buffer.
const MaxBaseVertices = (math.MaxUint16 + 1) / 2

// Caster computes the shadow of one obstacle. It owns its buffers
// exclusively, so separate casters can run concurrently. A single Caster is
// not safe for concurrent use.
type Caster struct {
	name      string
	base      []geometry.Point
	work      []geometry.Point // base vertices followed by their projections
	hull      []geometry.Point
	fan       []Triangle
	scale     float64
	algorithm HullAlgorithm
	logger    *log.Logger

	state State
	cause error

	computations int
}

// Option configures a Caster.
type Option func(*Caster)

// WithName labels the caster in log output.
func WithName(name string) Option {
	return func(c *Caster) {
		c.name = name
	}
}

// WithProjectionScale overrides DefaultProjectionScale.
func WithProjectionScale(scale float64) Option {
	return func(c *Caster) {
		c.scale = scale
	}
}

// WithHullAlgorithm selects the hull formulation.
func WithHullAlgorithm(a HullAlgorithm) Option {
	return func(c *Caster) {
		c.algorithm = a
	}
}

// WithLogger sets the logger used when the caster disables itself.
func WithLogger(l *log.Logger) Option {
	return func(c *Caster) {
		c.logger = l
	}
}

// NewCaster captures the obstacle's base vertices, already in world space,
// and sizes the working and hull buffers to 2x the vertex count.
func NewCaster(base []geometry.Point, opts ...Option) *Caster {
	c := &Caster{
		base:   append([]geometry.Point(nil), base...),
		scale:  DefaultProjectionScale,
		logger: log.Default(),
		state:  StateActive,
	}
	for _, opt := range opts {
		opt(c)
	}

	size := 2 * len(base)
	c.work = make([]geometry.Point, size)
	c.hull = make([]geometry.Point, size)
	if size >= 3 {
		c.fan = make([]Triangle, 0, size-2)
	}
	return c
}

// Name returns the caster label.
func (c *Caster) Name() string {
	return c.name
}

// State returns the current operating state.
func (c *Caster) State() State {
	return c.state
}

// Err returns the failure that disabled the caster, or nil.
func (c *Caster) Err() error {
	return c.cause
}

// Computations returns the number of hull computations attempted so far.
func (c *Caster) Computations() int {
	return c.computations
}

// Base returns the captured base vertices.
func (c *Caster) Base() []geometry.Point {
	return c.base
}

// ComputeShadow builds the projected point set for the given viewer, hulls
// it and triangulates the hull into a fan. Any geometry failure disables
// the caster for good; later calls return ErrDisabled without computing.
func (c *Caster) ComputeShadow(viewer geometry.Point) (Shadow, error) {
	if c.state == StateDisabled {
		return Shadow{}, ErrDisabled
	}

	n := len(c.base)
	if n > MaxBaseVertices {
		err := fmt.Errorf("%w: %d base vertices, max %d", ErrTooManyVertices, n, MaxBaseVertices)
		c.disable(err)
		return Shadow{}, err
	}

	copy(c.work[:n], c.base)
	for i, v := range c.base {
		c.work[n+i] = v.Sub(viewer).Scale(c.scale)
	}

	c.computations++
	hullN, err := c.hullInto(c.hull, c.work)
	if err == nil && hullN < 3 {
		err = fmt.Errorf("%w: %d vertices", ErrDegenerateHull, hullN)
	}
	if err != nil {
		c.disable(err)
		return Shadow{}, err
	}

	c.fan = AppendFan(c.fan[:0], hullN)
	return Shadow{
		Hull: c.hull[:hullN],
		Fan:  c.fan,
		N:    hullN,
	}, nil
}

func (c *Caster) hullInto(dst, points []geometry.Point) (int, error) {
	if c.algorithm == HullGrahamScan {
		return geometry.GrahamScanInto(dst, points)
	}
	return geometry.ConvexHullInto(dst, points)
}

func (c *Caster) disable(err error) {
	c.state = StateDisabled
	c.cause = err
	if c.logger != nil {
		c.logger.Printf("shadow caster %q disabled: %v", c.name, err)
	}
}
