package sensor

import (
	"math"

	"chosenoffset.com/airacing/internal/core/geom"
)

// Segment is one straight wall edge.
type Segment struct {
	A, B geom.Point
}

// Walls is the set of edges a ray can stop at.
type Walls []Segment

// WallsFrom returns the edges of each polyline, including the edge back to
// the first point when the polyline is closed.
func WallsFrom(lines ...geom.Polyline) Walls {
	var walls Walls
	for _, line := range lines {
		for i := 1; i < len(line); i++ {
			if line[i] == line[i-1] {
				continue
			}
			walls = append(walls, Segment{A: line[i-1], B: line[i]})
		}
	}
	return walls
}

// CanvasWalls returns the four edges of a width x height canvas.
func CanvasWalls(width, height int) Walls {
	w, h := float64(width), float64(height)
	return Walls{
		{A: geom.Pt(0, 0), B: geom.Pt(w, 0)},
		{A: geom.Pt(w, 0), B: geom.Pt(w, h)},
		{A: geom.Pt(w, h), B: geom.Pt(0, h)},
		{A: geom.Pt(0, h), B: geom.Pt(0, 0)},
	}
}

// Merge joins runs of consecutive edges that are nearly colinear: an edge
// is absorbed while every interior vertex of the run stays within tolerance
// of the straight line from the start of the run to its end.
func (w Walls) Merge(tolerance float64) Walls {
	if len(w) == 0 {
		return w
	}

	var result Walls
	start := 0
	for start < len(w) {
		current := w[start]
		end := start + 1

		// Absorb edges chained end to start while the vertices stay on the line.
		for end < len(w) && w[end].A == current.B {
			candidate := Segment{A: current.A, B: w[end].B}
			if !withinLine(candidate, w[start:end+1], tolerance) {
				break
			}
			current = candidate
			end++
		}

		result = append(result, current)
		start = end
	}
	return result
}

// withinLine reports whether every vertex of run lies within tolerance of
// seg.
func withinLine(seg Segment, run Walls, tolerance float64) bool {
	axis := seg.B.Sub(seg.A)
	length := axis.Hypot()
	if length == 0 {
		return false
	}
	for _, s := range run[1:] {
		if math.Abs(axis.Cross(s.A.Sub(seg.A)))/length > tolerance {
			return false
		}
	}
	return true
}

// Intersect returns the distance along dir from origin to seg, if the ray
// hits it. dir must be a unit vector for the distance to be in track units.
func Intersect(origin geom.Point, dir geom.Vec, seg Segment) (float64, bool) {
	// origin + t*dir = seg.A + u*(seg.B - seg.A), solved with cross products
	span := seg.B.Sub(seg.A)
	denominator := dir.Cross(span)
	if math.Abs(denominator) < 1e-10 {
		// Ray and segment are parallel
		return 0, false
	}

	diff := seg.A.Sub(origin)
	t := diff.Cross(span) / denominator
	u := diff.Cross(dir) / denominator

	if u >= 0 && u <= 1 && t >= 0 {
		return t, true
	}
	return 0, false
}

// CastWalls is CastInto measured exactly against wall edges instead of by
// stepping through a field. Each reading is the distance to the nearest
// edge hit, capped at MaxRange. Readings are only meaningful from a point
// enclosed by the walls.
func (c *Caster) CastWalls(dst []float64, walls Walls, pos geom.Point, heading float64) []float64 {
	if cap(dst) < len(c.Angles) {
		dst = make([]float64, len(c.Angles))
	}
	dst = dst[:len(c.Angles)]
	for i, angle := range c.Angles {
		dir := geom.Direction(heading + angle)
		closest := float64(c.MaxRange)
		for _, seg := range walls {
			if dist, ok := Intersect(pos, dir, seg); ok && dist < closest {
				closest = dist
			}
		}
		dst[i] = closest
	}
	return dst
}
