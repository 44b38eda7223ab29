// Package field answers whether a point lies on the drivable surface of a
// finalized track.
package field

import (
	"errors"
	"fmt"
	"image"

	"honnef.co/go/curve"

	"chosenoffset.com/airacing/internal/core/geom"
)

// ErrUnknownKind is returned by New for an unsupported field kind.
var ErrUnknownKind = errors.New("unknown field kind")

const (
	KindMask    = "mask"
	KindPolygon = "polygon"
)

// Field is a membership test for the track surface. Points outside the
// canvas are never on the surface.
type Field interface {
	Contains(x, y float64) bool
	// Bounds is the canvas in track units.
	Bounds() image.Rectangle
}

// Region returns the drivable surface as a path: the outer boundary followed
// by the reversed inner boundary. Filled with the non-zero rule it covers
// the band between the two curves.
func Region(inner, outer geom.Polyline) curve.BezPath {
	var path curve.BezPath
	outer.AppendTo(&path)
	inner.Reversed().AppendTo(&path)
	return path
}

// New builds a field of the given kind over a width x height canvas.
// Resolution is only used by the mask kind, in cells per unit.
func New(kind string, inner, outer geom.Polyline, width, height int, resolution float64) (Field, error) {
	switch kind {
	case KindMask, "":
		return NewMask(inner, outer, width, height, resolution), nil
	case KindPolygon:
		return NewPolygon(inner, outer, width, height), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// inCanvas reports whether (x, y) lies in [0, w) x [0, h). NaN is outside.
func inCanvas(x, y float64, w, h int) bool {
	return x >= 0 && x < float64(w) && y >= 0 && y < float64(h)
}
