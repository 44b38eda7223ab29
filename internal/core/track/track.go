// Package track owns a user-drawn racetrack from the first drawn point to
// its finalized, immutable geometry.
package track

import (
	"fmt"

	"honnef.co/go/curve"

	"chosenoffset.com/airacing/internal/core/boundary"
	"chosenoffset.com/airacing/internal/core/field"
	"chosenoffset.com/airacing/internal/core/geom"
	"chosenoffset.com/airacing/internal/core/spline"
)

// MinPoints is the fewest distinct centerline points Finalize accepts.
const MinPoints = 3

// Options configures how a track is finalized.
type Options struct {
	Width, Height int // canvas, in track units
	HalfWidth     float64
	Repair        boundary.RepairPolicy
	Smoother      *spline.Smoother
	FieldKind     string
	Resolution    float64
}

// Track is a centerline being drawn, or once finalized, the derived
// boundaries and membership field. A finalized track is never mutated.
type Track struct {
	opts Options

	centerline geom.Polyline
	inner      geom.Polyline
	outer      geom.Polyline
	region     curve.BezPath
	field      field.Field
	finalized  bool
}

// New returns an empty track in drawing mode.
func New(opts Options) *Track {
	if opts.Smoother == nil {
		opts.Smoother = spline.DefaultSmoother()
	}
	return &Track{opts: opts}
}

// AddPoint appends p to the centerline if the track is still being drawn
// and p differs from the last accepted point.
func (t *Track) AddPoint(p geom.Point) bool {
	if t.finalized {
		return false
	}
	if n := len(t.centerline); n > 0 && t.centerline[n-1] == p {
		return false
	}
	t.centerline = append(t.centerline, p)
	return true
}

// Finalize smooths the centerline into a closed curve and derives the
// boundaries and membership field. It reports whether the track is
// finalized: with fewer than MinPoints distinct points it returns false and
// the track stays editable. Calls after a successful Finalize do nothing.
func (t *Track) Finalize() (bool, error) {
	if t.finalized {
		return true, nil
	}
	if t.centerline.Distinct() < MinPoints {
		return false, nil
	}

	center := t.opts.Smoother.Smooth(t.centerline.Closed())
	gen := &boundary.Generator{
		HalfWidth: t.opts.HalfWidth,
		Repair:    t.opts.Repair,
		Smoother:  t.opts.Smoother,
	}
	inner, outer := gen.Generate(center)
	if inner == nil {
		return false, nil
	}

	f, err := field.New(t.opts.FieldKind, inner, outer, t.opts.Width, t.opts.Height, t.opts.Resolution)
	if err != nil {
		return false, fmt.Errorf("failed to build track field: %w", err)
	}

	t.centerline = center
	t.inner = inner
	t.outer = outer
	t.region = field.Region(inner, outer)
	t.field = f
	t.finalized = true
	return true, nil
}

// Finalized reports whether Finalize has succeeded.
func (t *Track) Finalized() bool { return t.finalized }

// Centerline returns the drawn points, or the smoothed closed centerline
// once finalized. Callers must not modify it.
func (t *Track) Centerline() geom.Polyline { return t.centerline }

// Inner returns the inner boundary, nil until finalized.
func (t *Track) Inner() geom.Polyline { return t.inner }

// Outer returns the outer boundary, nil until finalized.
func (t *Track) Outer() geom.Polyline { return t.outer }

// Region returns the fill path of the drivable surface, nil until finalized.
func (t *Track) Region() curve.BezPath { return t.region }

// Field returns the membership field, nil until finalized.
func (t *Track) Field() field.Field { return t.field }

// HalfWidth returns the distance from the centerline to either boundary.
func (t *Track) HalfWidth() float64 { return t.opts.HalfWidth }

// Start returns the first centerline point of a finalized track.
func (t *Track) Start() (geom.Point, bool) {
	if !t.finalized || len(t.centerline) == 0 {
		return geom.Point{}, false
	}
	return t.centerline[0], true
}

// Contains reports whether (x, y) is on the track surface. It is false for
// every point while the track is being drawn.
func (t *Track) Contains(x, y float64) bool {
	if !t.finalized {
		return false
	}
	return t.field.Contains(x, y)
}
