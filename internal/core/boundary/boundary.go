// Package boundary derives the inner and outer edges of a track from its
// closed centerline.
package boundary

import (
	"fmt"
	"strings"

	"chosenoffset.com/airacing/internal/core/geom"
	"chosenoffset.com/airacing/internal/core/spline"
)

// RepairPolicy selects the separation the overlap repair restores.
type RepairPolicy int

const (
	// RepairOff disables overlap repair.
	RepairOff RepairPolicy = iota
	// RepairHalfWidth widens pinched pairs back to the half-width.
	RepairHalfWidth
	// RepairFullWidth widens pinched pairs back to the full track width.
	RepairFullWidth
)

func (p RepairPolicy) String() string {
	switch p {
	case RepairOff:
		return "off"
	case RepairHalfWidth:
		return "half"
	case RepairFullWidth:
		return "full"
	default:
		return fmt.Sprintf("RepairPolicy(%d)", int(p))
	}
}

// ParseRepairPolicy parses "off", "half" or "full".
func ParseRepairPolicy(s string) (RepairPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "":
		return RepairOff, nil
	case "half":
		return RepairHalfWidth, nil
	case "full":
		return RepairFullWidth, nil
	}
	return RepairOff, fmt.Errorf("unknown repair policy %q", s)
}

// Generator offsets a centerline into two boundary curves.
type Generator struct {
	HalfWidth float64
	Repair    RepairPolicy
	// Smoother re-smooths each boundary after repair. Nil skips re-smoothing.
	Smoother *spline.Smoother
}

// Target returns the separation the repair step restores, or 0 when repair
// is off.
func (g *Generator) Target() float64 {
	switch g.Repair {
	case RepairHalfWidth:
		return g.HalfWidth
	case RepairFullWidth:
		return 2 * g.HalfWidth
	}
	return 0
}

// Generate returns the inner and outer boundaries of center, which should be
// closed. Both results are closed.
func (g *Generator) Generate(center geom.Polyline) (inner, outer geom.Polyline) {
	inner, outer = Offset(center, g.HalfWidth)
	if inner == nil {
		return nil, nil
	}
	if g.Repair != RepairOff {
		inner, outer = RepairOverlap(inner, outer, g.Target())
	}
	if g.Smoother != nil {
		inner = g.Smoother.Smooth(inner)
		outer = g.Smoother.Smooth(outer)
	}
	return inner, outer
}

// Offset shifts the start of every segment of center by halfWidth along the
// segment normal, to both sides. Segments wrap from the last point back to
// the first. Zero-length segments contribute no point. Both curves are
// closed by repeating their first point; nil is returned when every segment
// is degenerate.
func Offset(center geom.Polyline, halfWidth float64) (inner, outer geom.Polyline) {
	n := len(center)
	if n < 2 {
		return nil, nil
	}
	inner = make(geom.Polyline, 0, n+1)
	outer = make(geom.Polyline, 0, n+1)

	for i := 0; i < n; i++ {
		p1 := center[i]
		p2 := center[(i+1)%n]

		dir := p2.Sub(p1)
		length := dir.Hypot()
		if length == 0 {
			continue
		}
		offset := dir.Div(length).Turn90().Mul(halfWidth)

		inner = append(inner, p1.Translate(offset))
		outer = append(outer, p1.Translate(offset.Negate()))
	}
	if len(inner) == 0 {
		return nil, nil
	}

	inner = append(inner, inner[0])
	outer = append(outer, outer[0])
	return inner, outer
}

// RepairOverlap pushes matched inner/outer pairs that are closer than target
// apart along their common axis, about their midpoint, until they are exactly
// target apart. Pairs already far enough apart, and coincident pairs (no
// axis), are kept. The inputs are not modified.
func RepairOverlap(inner, outer geom.Polyline, target float64) (geom.Polyline, geom.Polyline) {
	n := min(len(inner), len(outer))
	adjInner := make(geom.Polyline, n)
	adjOuter := make(geom.Polyline, n)

	for i := 0; i < n; i++ {
		pIn, pOut := inner[i], outer[i]
		mid := pIn.Midpoint(pOut)
		distance := pIn.Distance(pOut)

		if distance < target && distance > 0 {
			scale := target / distance
			adjInner[i] = mid.Translate(pIn.Sub(mid).Mul(scale))
			adjOuter[i] = mid.Translate(pOut.Sub(mid).Mul(scale))
			continue
		}
		adjInner[i] = pIn
		adjOuter[i] = pOut
	}
	return adjInner, adjOuter
}
