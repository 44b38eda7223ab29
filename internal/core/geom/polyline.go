package geom

import (
	"slices"

	"honnef.co/go/curve"
)

// Polyline is an ordered sequence of points. A closed polyline repeats its
// first point at the end.
type Polyline []Point

// IsClosed reports whether the last point repeats the first.
func (p Polyline) IsClosed() bool {
	return len(p) >= 2 && p[0] == p[len(p)-1]
}

// Closed returns a copy of p that ends with its first point.
func (p Polyline) Closed() Polyline {
	out := slices.Clone(p)
	if len(out) > 0 && !out.IsClosed() {
		out = append(out, out[0])
	}
	return out
}

// Open returns a copy of p without the duplicated closing point.
func (p Polyline) Open() Polyline {
	if p.IsClosed() {
		return slices.Clone(p[:len(p)-1])
	}
	return slices.Clone(p)
}

// Reversed returns a copy of p in reverse order.
func (p Polyline) Reversed() Polyline {
	out := slices.Clone(p)
	slices.Reverse(out)
	return out
}

// Distinct counts the points left after collapsing consecutive duplicates,
// including a closing duplicate.
func (p Polyline) Distinct() int {
	n := 0
	for i, pt := range p {
		if i > 0 && pt == p[i-1] {
			continue
		}
		n++
	}
	if n > 1 && p[0] == p[len(p)-1] {
		n--
	}
	return n
}

// Bounds returns the bounding box of p. An empty polyline has a zero box.
func (p Polyline) Bounds() curve.Rect {
	if len(p) == 0 {
		return curve.Rect{}
	}
	r := curve.Rect{X0: p[0].X, Y0: p[0].Y, X1: p[0].X, Y1: p[0].Y}
	for _, pt := range p[1:] {
		r = r.UnionPoint(pt)
	}
	return r
}

// Path converts p into a single closed subpath.
func (p Polyline) Path() curve.BezPath {
	var path curve.BezPath
	p.AppendTo(&path)
	return path
}

// AppendTo appends p to path as a new closed subpath. The closing duplicate,
// if any, is left to ClosePath.
func (p Polyline) AppendTo(path *curve.BezPath) {
	pts := p
	if pts.IsClosed() {
		pts = pts[:len(pts)-1]
	}
	if len(pts) == 0 {
		return
	}
	path.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		path.LineTo(pt)
	}
	path.ClosePath()
}
