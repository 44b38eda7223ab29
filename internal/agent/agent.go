package agent

import (
	"math"

	"chosenoffset.com/airacing/internal/core/field"
	"chosenoffset.com/airacing/internal/core/geom"
	"chosenoffset.com/airacing/internal/core/sensor"
)

// Pose is where an agent is and where it is pointing. Heading is in degrees.
type Pose struct {
	Pos     geom.Point
	Heading float64
	Speed   float64
}

// Agent is a single car. It is driven by one goroutine; nothing in it is
// safe for concurrent use.
type Agent struct {
	name   string
	start  Pose
	pose   Pose
	policy Policy
	caster *sensor.Caster
	field  field.Field
	width  int
	height int
	sweep  bool

	readings []float64
	collided bool
	resets   int
}

// New places an agent at start heading along +x. The canvas size bounds
// where the agent may drive regardless of what the field reports.
func New(name string, start geom.Point, speed float64, policy Policy, caster *sensor.Caster, f field.Field, width, height int) *Agent {
	a := &Agent{
		name:     name,
		start:    Pose{Pos: start, Speed: speed},
		policy:   policy,
		caster:   caster,
		field:    f,
		width:    width,
		height:   height,
		readings: make([]float64, len(caster.Angles)),
	}
	a.reset()
	return a
}

// SetSweep makes collision checks test every unit step along a move
// instead of only the position moved to.
func (a *Agent) SetSweep(sweep bool) { a.sweep = sweep }

// Update advances the agent one tick: sense, steer, move, then check for a
// collision. A colliding agent is put back at its start pose before Update
// returns, and Update reports true.
func (a *Agent) Update() bool {
	a.readings = a.caster.CastInto(a.readings, a.field, a.pose.Pos, a.pose.Heading)
	a.pose.Heading += a.policy(a.readings)

	dir := geom.Direction(a.pose.Heading)
	from := a.pose.Pos
	a.pose.Pos = from.Translate(dir.Mul(a.pose.Speed))

	a.collided = !a.clear(from, dir)
	if !a.collided {
		return false
	}
	a.resets++
	a.reset()
	return true
}

// clear reports whether the move from along dir stayed on the track.
func (a *Agent) clear(from geom.Point, dir geom.Vec) bool {
	if a.sweep {
		for step := 1.0; step < a.pose.Speed; step++ {
			if !a.onTrack(from.Translate(dir.Mul(step))) {
				return false
			}
		}
	}
	return a.onTrack(a.pose.Pos)
}

func (a *Agent) onTrack(p geom.Point) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	if p.X < 0 || p.Y < 0 || p.X >= float64(a.width) || p.Y >= float64(a.height) {
		return false
	}
	return a.field.Contains(p.X, p.Y)
}

func (a *Agent) reset() {
	a.pose = a.start
	a.collided = false
	for i := range a.readings {
		a.readings[i] = float64(a.caster.MaxRange)
	}
}

func (a *Agent) Name() string { return a.name }

func (a *Agent) Pose() Pose { return a.pose }

func (a *Agent) Start() Pose { return a.start }

// Readings returns the ray distances from the last sense step. The slice is
// reused by the next Update.
func (a *Agent) Readings() []float64 { return a.readings }

// RayEnds returns where each ray of the last sense step stopped, measured
// from the current position.
func (a *Agent) RayEnds() []geom.Point {
	return a.caster.Endpoints(a.pose.Pos, a.pose.Heading, a.readings)
}

// Collided reports whether the agent is currently off the track. A collision
// is cleared by the reset in the same Update, so this only reads true between
// the move and the reset; callers count collisions through Update or Resets.
func (a *Agent) Collided() bool { return a.collided }

// Resets counts the collisions since the agent was created.
func (a *Agent) Resets() int { return a.resets }

// Fleet is the set of agents on a track, updated in order.
type Fleet []*Agent

// Update ticks every agent once and returns how many of them reset.
func (f Fleet) Update() int {
	resets := 0
	for _, a := range f {
		if a.Update() {
			resets++
		}
	}
	return resets
}
