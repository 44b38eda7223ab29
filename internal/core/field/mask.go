package field

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
	"honnef.co/go/curve"

	"chosenoffset.com/airacing/internal/core/geom"
)

// coverageThreshold is the alpha at which a cell counts as on-track.
const coverageThreshold = 0x80

// Mask is the track region rasterized once into an alpha mask. Lookups are
// a scale, a bounds check and a single byte read.
type Mask struct {
	width, height int
	resolution    float64
	alpha         *image.Alpha
}

// NewMask rasterizes the band between inner and outer onto a canvas of
// width x height units at resolution cells per unit (1 if not positive).
func NewMask(inner, outer geom.Polyline, width, height int, resolution float64) *Mask {
	if resolution <= 0 {
		resolution = 1
	}
	cw := int(math.Ceil(float64(width) * resolution))
	ch := int(math.Ceil(float64(height) * resolution))

	m := &Mask{
		width:      width,
		height:     height,
		resolution: resolution,
		alpha:      image.NewAlpha(image.Rect(0, 0, cw, ch)),
	}
	if cw == 0 || ch == 0 {
		return m
	}

	z := vector.NewRasterizer(cw, ch)
	z.DrawOp = draw.Src
	for el := range Region(inner, outer).Elements() {
		switch el.Kind {
		case curve.MoveToKind:
			z.MoveTo(float32(el.P0.X*resolution), float32(el.P0.Y*resolution))
		case curve.LineToKind:
			z.LineTo(float32(el.P0.X*resolution), float32(el.P0.Y*resolution))
		case curve.ClosePathKind:
			z.ClosePath()
		}
	}
	z.Draw(m.alpha, m.alpha.Bounds(), image.Opaque, image.Point{})
	return m
}

// Contains reports whether (x, y) is on the track surface.
func (m *Mask) Contains(x, y float64) bool {
	if !inCanvas(x, y, m.width, m.height) {
		return false
	}
	ix := int(x * m.resolution)
	iy := int(y * m.resolution)
	r := m.alpha.Rect
	if ix >= r.Max.X || iy >= r.Max.Y {
		return false
	}
	return m.alpha.Pix[iy*m.alpha.Stride+ix] >= coverageThreshold
}

// Bounds returns the canvas in track units.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Alpha returns the rasterized mask. Callers must not modify it.
func (m *Mask) Alpha() *image.Alpha {
	return m.alpha
}
