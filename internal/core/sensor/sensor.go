// Package sensor casts a fixed fan of distance rays against a track field.
package sensor

import (
	"chosenoffset.com/airacing/internal/core/field"
	"chosenoffset.com/airacing/internal/core/geom"
)

const DefaultMaxRange = 200

// Ray casting modes.
const (
	ModeMarch = "march" // sample the field at every unit step
	ModeExact = "exact" // intersect the boundary edges
)

// DefaultAngles are the ray offsets in degrees relative to the heading.
var DefaultAngles = []float64{-45, -20, 0, 20, 45}

// Caster casts one ray per angle. It holds no per-agent state and may be
// shared.
type Caster struct {
	Angles   []float64
	MaxRange int
	// Walls, when set, replaces field sampling with CastWalls against
	// these edges.
	Walls Walls
}

// DefaultCaster returns the five-ray caster with a range of 200 units.
func DefaultCaster() *Caster {
	return &Caster{
		Angles:   append([]float64(nil), DefaultAngles...),
		MaxRange: DefaultMaxRange,
	}
}

// Cast returns, per angle, the distance to the first point off the track.
func (c *Caster) Cast(f field.Field, pos geom.Point, heading float64) []float64 {
	return c.CastInto(make([]float64, len(c.Angles)), f, pos, heading)
}

// CastInto is Cast writing into dst, which is grown if needed and returned.
func (c *Caster) CastInto(dst []float64, f field.Field, pos geom.Point, heading float64) []float64 {
	if c.Walls != nil {
		return c.CastWalls(dst, c.Walls, pos, heading)
	}
	if cap(dst) < len(c.Angles) {
		dst = make([]float64, len(c.Angles))
	}
	dst = dst[:len(c.Angles)]
	for i, angle := range c.Angles {
		dst[i] = float64(c.march(f, pos, geom.Direction(heading+angle)))
	}
	return dst
}

// march steps one unit at a time along dir and returns the first integer
// distance whose sample point fails the field. If every sample in range is
// on the track the range itself is returned.
func (c *Caster) march(f field.Field, pos geom.Point, dir geom.Vec) int {
	for dist := 1; dist <= c.MaxRange; dist++ {
		d := float64(dist)
		if !f.Contains(pos.X+dir.X*d, pos.Y+dir.Y*d) {
			return dist
		}
	}
	return c.MaxRange
}

// Endpoints returns where each ray stopped, for drawing debug lines.
func (c *Caster) Endpoints(pos geom.Point, heading float64, readings []float64) []geom.Point {
	n := min(len(c.Angles), len(readings))
	ends := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		ends[i] = pos.Translate(geom.Direction(heading + c.Angles[i]).Mul(readings[i]))
	}
	return ends
}
