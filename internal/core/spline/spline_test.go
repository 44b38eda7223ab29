package spline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/airacing/internal/core/geom"
)

func meanRadius(pts geom.Polyline, c geom.Point) float64 {
	sum := 0.0
	for _, p := range pts {
		sum += p.Distance(c)
	}
	return sum / float64(len(pts))
}

func TestSmoothTooFewPoints(t *testing.T) {
	s := DefaultSmoother()
	in := geom.Polyline{geom.Pt(1, 1), geom.Pt(5, 5), geom.Pt(5, 5)}
	out := s.Smooth(in)
	assert.Equal(t, in, out)
}

func TestSmoothClosedCircle(t *testing.T) {
	c := geom.Pt(540, 540)
	in := geom.Circle(c, 100, 12).Closed()

	out := DefaultSmoother().Smooth(in)
	require.Len(t, out, DefaultSamples)
	assert.Equal(t, out[0], out[len(out)-1], "closed output must end where it starts")

	for i, p := range out {
		assert.InDelta(t, 100, p.Distance(c), 1.5, "point %d strays from the circle", i)
	}
}

func TestSmoothClosedHasNoSeam(t *testing.T) {
	c := geom.Pt(300, 300)
	out := DefaultSmoother().Smooth(geom.Circle(c, 120, 16).Closed())
	require.Len(t, out, DefaultSamples)

	// Step lengths across the wrap must look like any other step.
	first := out[0].Distance(out[1])
	wrap := out[len(out)-2].Distance(out[len(out)-1])
	mid := out[100].Distance(out[101])
	assert.InDelta(t, mid, first, mid*0.25)
	assert.InDelta(t, mid, wrap, mid*0.25)
}

func TestSmoothToleranceControlsShrink(t *testing.T) {
	c := geom.Pt(0, 0)
	in := geom.Circle(c, 100, 12).Closed()

	tight := (&Smoother{Tolerance: 0, Samples: 100, MaxControlPoints: 64}).Smooth(in)
	loose := (&Smoother{Tolerance: 1000, Samples: 100, MaxControlPoints: 64}).Smooth(in)

	assert.InDelta(t, 100, meanRadius(tight, c), 0.5)
	assert.Less(t, meanRadius(loose, c), meanRadius(tight, c)-1)
}

func TestSmoothOpenInterpolatesEnds(t *testing.T) {
	in := geom.Polyline{
		geom.Pt(10, 10), geom.Pt(40, 25), geom.Pt(80, 20), geom.Pt(80, 20), geom.Pt(120, 60),
	}
	out := (&Smoother{Tolerance: 2, Samples: 50}).Smooth(in)
	require.Len(t, out, 50)

	assert.InDelta(t, 10, out[0].X, 1e-9)
	assert.InDelta(t, 10, out[0].Y, 1e-9)
	assert.InDelta(t, 120, out[49].X, 1e-9)
	assert.InDelta(t, 60, out[49].Y, 1e-9)
}

func TestSmoothIsDeterministic(t *testing.T) {
	in := geom.Polyline{
		geom.Pt(100, 100), geom.Pt(200, 90), geom.Pt(310, 140), geom.Pt(290, 260),
		geom.Pt(180, 300), geom.Pt(90, 220), geom.Pt(100, 100),
	}
	s := DefaultSmoother()
	if d := cmp.Diff(s.Smooth(in), s.Smooth(in)); d != "" {
		t.Errorf("Smooth is not deterministic (-first +second):\n%s", d)
	}
}

func TestBasisIsPartitionOfUnity(t *testing.T) {
	for _, tt := range []float64{0, 0.1, 0.25, 0.5, 0.999, 1} {
		_, w := basis(8, tt)
		assert.InDelta(t, 1, w[0]+w[1]+w[2]+w[3], 1e-12, "t=%v", tt)
	}
}
