package shadows

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"chosenoffset.com/fieldofview/internal/core/geometry"
)

// ViewerSource supplies the viewer position once per tick.
type ViewerSource interface {
	ViewerPosition() geometry.Point
}

// ViewerFunc adapts a function to ViewerSource.
type ViewerFunc func() geometry.Point

// ViewerPosition calls f.
func (f ViewerFunc) ViewerPosition() geometry.Point {
	return f()
}

// Field holds the casters of a scene and ticks them against one viewer.
type Field struct {
	viewer   ViewerSource
	casters  []*Caster
	parallel bool
}

// NewField creates a field. With parallel set, casters are ticked on
// separate goroutines; they share no mutable state.
func NewField(viewer ViewerSource, parallel bool) *Field {
	return &Field{
		viewer:   viewer,
		parallel: parallel,
	}
}

// Add registers a caster.
func (f *Field) Add(c *Caster) {
	f.casters = append(f.casters, c)
}

// Casters returns the registered casters.
func (f *Field) Casters() []*Caster {
	return f.casters
}

// Active returns the number of casters still computing shadows.
func (f *Field) Active() int {
	count := 0
	for _, c := range f.casters {
		if c.State() == StateActive {
			count++
		}
	}
	return count
}

// Tick computes one shadow per caster for the current viewer position.
// Results are indexed like Casters; disabled casters get a zero Shadow.
// Caster failures are not returned, they only disable the caster. The only
// error is ctx being done before all casters ran.
func (f *Field) Tick(ctx context.Context) ([]Shadow, error) {
	viewer := f.viewer.ViewerPosition()
	results := make([]Shadow, len(f.casters))

	if !f.parallel {
		for i, c := range f.casters {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			results[i], _ = c.ComputeShadow(viewer)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range f.casters {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine writes only its own slot
			results[i], _ = c.ComputeShadow(viewer)
			return nil
		})
	}
	return results, g.Wait()
}
