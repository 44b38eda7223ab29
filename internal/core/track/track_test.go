package track

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/airacing/internal/core/boundary"
	"chosenoffset.com/airacing/internal/core/field"
	"chosenoffset.com/airacing/internal/core/geom"
	"chosenoffset.com/airacing/internal/core/sensor"
	"chosenoffset.com/airacing/internal/core/spline"
)

var center = geom.Pt(540, 540)

func options() Options {
	return Options{
		Width:      1080,
		Height:     1080,
		HalfWidth:  40,
		Repair:     boundary.RepairFullWidth,
		FieldKind:  field.KindMask,
		Resolution: 1,
	}
}

func drawn(tr *Track, pts geom.Polyline) {
	for _, p := range pts {
		tr.AddPoint(p)
	}
}

func TestAddPointRejectsRepeats(t *testing.T) {
	tr := New(options())
	assert.True(t, tr.AddPoint(geom.Pt(10, 10)))
	assert.False(t, tr.AddPoint(geom.Pt(10, 10)))
	assert.True(t, tr.AddPoint(geom.Pt(11, 10)))
	assert.True(t, tr.AddPoint(geom.Pt(10, 10)), "only the last point counts as a repeat")
	assert.Len(t, tr.Centerline(), 3)
}

func TestFinalizeNeedsThreePoints(t *testing.T) {
	tr := New(options())
	tr.AddPoint(geom.Pt(100, 100))
	tr.AddPoint(geom.Pt(200, 100))

	ok, err := tr.Finalize()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, tr.Finalized())
	assert.Nil(t, tr.Field())
	assert.False(t, tr.Contains(150, 100))

	// Still editable.
	assert.True(t, tr.AddPoint(geom.Pt(150, 200)))
	ok, err = tr.Finalize()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFinalizeBuildsGeometry(t *testing.T) {
	tr := New(options())
	drawn(tr, geom.Circle(center, 300, 60))

	ok, err := tr.Finalize()
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, tr.Finalized())
	assert.Len(t, tr.Inner(), spline.DefaultSamples)
	assert.Len(t, tr.Outer(), spline.DefaultSamples)
	assert.Len(t, tr.Centerline(), spline.DefaultSamples)
	assert.True(t, tr.Centerline().IsClosed())
	assert.NotEmpty(t, tr.Region())

	start, ok := tr.Start()
	require.True(t, ok)
	assert.True(t, tr.Contains(start.X, start.Y), "the start point is on the track")
	assert.False(t, tr.Contains(center.X, center.Y))
}

func TestFinalizeIsOneShot(t *testing.T) {
	tr := New(options())
	drawn(tr, geom.Circle(center, 300, 30))
	_, err := tr.Finalize()
	require.NoError(t, err)

	inner := tr.Inner()
	assert.False(t, tr.AddPoint(geom.Pt(1, 1)), "finalized tracks reject points")

	ok, err := tr.Finalize()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, &inner[0], &tr.Inner()[0], "second Finalize must not recompute")
}

func TestFinalizeUnknownField(t *testing.T) {
	opts := options()
	opts.FieldKind = "quadtree"
	tr := New(opts)
	drawn(tr, geom.Circle(center, 300, 30))

	ok, err := tr.Finalize()
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, field.ErrUnknownKind))
	assert.False(t, tr.Finalized())
	assert.True(t, tr.AddPoint(geom.Pt(1, 1)))
}

// A circle of radius 100 sampled at 12 points with a track 10 wide: the
// boundaries sit near radius 95 and 105, and a ray fired outward from the
// centerline leaves the surface after about half the width.
func TestSmallCircleScenario(t *testing.T) {
	for _, kind := range []string{field.KindMask, field.KindPolygon} {
		t.Run(kind, func(t *testing.T) {
			opts := options()
			opts.HalfWidth = 5
			opts.FieldKind = kind
			tr := New(opts)
			drawn(tr, geom.Circle(center, 100, 12))

			ok, err := tr.Finalize()
			require.NoError(t, err)
			require.True(t, ok)

			for i := range tr.Inner() {
				assert.InDelta(t, 105, tr.Inner()[i].Distance(center), 1.5, "inner %d", i)
				assert.InDelta(t, 95, tr.Outer()[i].Distance(center), 1.5, "outer %d", i)
			}

			start, _ := tr.Start()
			assert.InDelta(t, 640, start.X, 1.5)
			assert.InDelta(t, 540, start.Y, 1.5)

			caster := sensor.DefaultCaster()
			readings := caster.Cast(tr.Field(), start, 0)
			assert.InDelta(t, 5, readings[2], 2, "centre ray")

			for i, r := range caster.Cast(tr.Field(), center, 0) {
				assert.Equal(t, 1.0, r, "ray %d from the hole", i)
			}
		})
	}
}

func TestRepairPoliciesAllFinalize(t *testing.T) {
	for _, policy := range []boundary.RepairPolicy{boundary.RepairOff, boundary.RepairHalfWidth, boundary.RepairFullWidth} {
		opts := options()
		opts.Repair = policy
		tr := New(opts)
		drawn(tr, geom.Polyline{
			geom.Pt(200, 200), geom.Pt(800, 220), geom.Pt(850, 600), geom.Pt(500, 520),
			geom.Pt(230, 800),
		})
		ok, err := tr.Finalize()
		require.NoError(t, err, policy.String())
		assert.True(t, ok, policy.String())
		assert.Len(t, tr.Inner(), spline.DefaultSamples, policy.String())
	}
}
