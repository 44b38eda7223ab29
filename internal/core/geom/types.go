// Package geom holds the 2D primitives shared by the track pipeline.
// Points and vectors are the honnef.co/go/curve types so the vector
// arithmetic is the library's.
package geom

import (
	"math"

	"honnef.co/go/curve"
)

// Point is a position in screen coordinates (y grows downward).
type Point = curve.Point

// Vec is a displacement in screen coordinates.
type Vec = curve.Vec2

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return curve.Pt(x, y)
}

// Direction returns the unit vector for a heading given in degrees.
// Heading 0 points along +x and positive headings turn counter-clockwise
// on screen, hence the negated y.
func Direction(deg float64) Vec {
	s, c := math.Sincos(deg * math.Pi / 180)
	return curve.Vec(c, -s)
}
