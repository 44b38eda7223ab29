package sensor

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/airacing/internal/core/field"
	"chosenoffset.com/airacing/internal/core/geom"
)

// fieldFunc adapts a predicate to field.Field.
type fieldFunc func(x, y float64) bool

func (f fieldFunc) Contains(x, y float64) bool { return f(x, y) }
func (f fieldFunc) Bounds() image.Rectangle     { return image.Rect(0, 0, 1080, 1080) }

func TestCastAgainstWall(t *testing.T) {
	wall := fieldFunc(func(x, y float64) bool { return x < 100 })
	c := DefaultCaster()

	got := c.Cast(wall, geom.Pt(50, 500), 0)
	// 50/cos(45°) = 70.7 and 50/cos(20°) = 53.2: first integer step past it.
	want := []float64{71, 54, 50, 54, 71}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("readings mismatch (-want +got):\n%s", d)
	}
}

func TestCastOpenAndClosed(t *testing.T) {
	c := DefaultCaster()

	open := fieldFunc(func(x, y float64) bool { return true })
	for i, r := range c.Cast(open, geom.Pt(0, 0), 33) {
		assert.Equal(t, float64(DefaultMaxRange), r, "ray %d", i)
	}

	closed := fieldFunc(func(x, y float64) bool { return false })
	for i, r := range c.Cast(closed, geom.Pt(0, 0), 33) {
		assert.Equal(t, 1.0, r, "ray %d", i)
	}
}

func TestCastOrderFollowsAngles(t *testing.T) {
	band := fieldFunc(func(x, y float64) bool { return x > 0 && x < 100 })
	c := &Caster{Angles: []float64{0, 180}, MaxRange: 500}

	got := c.Cast(band, geom.Pt(30, 10), 0)
	assert.Equal(t, []float64{70, 30}, got)

	got = c.Cast(band, geom.Pt(30, 10), 180)
	assert.Equal(t, []float64{30, 70}, got)
}

func TestCastIsDeterministic(t *testing.T) {
	inner := geom.Circle(geom.Pt(540, 540), 160, 120).Closed()
	outer := geom.Circle(geom.Pt(540, 540), 240, 120).Closed()
	f := field.NewMask(inner, outer, 1080, 1080, 1)
	c := DefaultCaster()

	first := c.Cast(f, geom.Pt(740, 540), 90)
	for i := 0; i < 10; i++ {
		if d := cmp.Diff(first, c.Cast(f, geom.Pt(740, 540), 90)); d != "" {
			t.Fatalf("cast %d differs:\n%s", i, d)
		}
	}
}

func TestCastIntoReusesBuffer(t *testing.T) {
	wall := fieldFunc(func(x, y float64) bool { return x < 100 })
	c := DefaultCaster()

	buf := make([]float64, 0, 8)
	out := c.CastInto(buf, wall, geom.Pt(50, 500), 0)
	require.Len(t, out, 5)
	assert.Same(t, &buf[:1][0], &out[0], "buffer with enough capacity is reused")
}

func TestEndpoints(t *testing.T) {
	c := &Caster{Angles: []float64{0, 90}, MaxRange: 200}
	ends := c.Endpoints(geom.Pt(10, 10), 0, []float64{20, 5})
	require.Len(t, ends, 2)
	assert.InDelta(t, 30, ends[0].X, 1e-9)
	assert.InDelta(t, 10, ends[0].Y, 1e-9)
	assert.InDelta(t, 10, ends[1].X, 1e-9)
	assert.InDelta(t, 5, ends[1].Y, 1e-9, "90 degrees points up the screen")
}
