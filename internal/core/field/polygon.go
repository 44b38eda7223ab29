package field

import (
	"image"

	"honnef.co/go/curve"

	"chosenoffset.com/airacing/internal/core/geom"
)

// Polygon tests membership directly against the boundary rings with the
// even-odd rule. It is exact but costs O(P) per query.
type Polygon struct {
	width, height int
	inner, outer  geom.Polyline
	box           curve.Rect
}

// NewPolygon builds an exact field over a width x height canvas.
func NewPolygon(inner, outer geom.Polyline, width, height int) *Polygon {
	return &Polygon{
		width:  width,
		height: height,
		inner:  inner,
		outer:  outer,
		box:    outer.Bounds().Union(inner.Bounds()),
	}
}

// Contains reports whether (x, y) is inside exactly one of the two rings.
func (p *Polygon) Contains(x, y float64) bool {
	if !inCanvas(x, y, p.width, p.height) {
		return false
	}
	if x < p.box.X0 || x > p.box.X1 || y < p.box.Y0 || y > p.box.Y1 {
		return false
	}
	pt := geom.Pt(x, y)
	return geom.PointInPolygon(pt, p.outer) != geom.PointInPolygon(pt, p.inner)
}

// Bounds returns the canvas in track units.
func (p *Polygon) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}
