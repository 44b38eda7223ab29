package sensor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/airacing/internal/core/geom"
)

func TestIntersect(t *testing.T) {
	wall := Segment{A: geom.Pt(5, -1), B: geom.Pt(5, 1)}

	dist, ok := Intersect(geom.Pt(0, 0), geom.Direction(0), wall)
	require.True(t, ok)
	assert.InDelta(t, 5, dist, 1e-12)

	_, ok = Intersect(geom.Pt(0, 0), geom.Direction(180), wall)
	assert.False(t, ok, "behind the ray")

	_, ok = Intersect(geom.Pt(0, 5), geom.Direction(0), wall)
	assert.False(t, ok, "past the end of the segment")

	_, ok = Intersect(geom.Pt(0, 0), geom.Direction(90), wall)
	assert.False(t, ok, "parallel")
}

func TestWallsFrom(t *testing.T) {
	square := geom.Polyline{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}.Closed()
	walls := WallsFrom(square, geom.Polyline{geom.Pt(3, 3), geom.Pt(3, 3)})
	assert.Len(t, walls, 4, "degenerate edges are dropped")
	assert.Equal(t, Segment{A: geom.Pt(0, 10), B: geom.Pt(0, 0)}, walls[3])
	assert.Len(t, CanvasWalls(100, 50), 4)
}

func TestMergeColinear(t *testing.T) {
	line := geom.Polyline{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0.001), geom.Pt(3, 0), geom.Pt(3, 5)}
	walls := WallsFrom(line).Merge(0.01)
	require.Len(t, walls, 2)
	assert.Equal(t, Segment{A: geom.Pt(0, 0), B: geom.Pt(3, 0)}, walls[0])
	assert.Equal(t, Segment{A: geom.Pt(3, 0), B: geom.Pt(3, 5)}, walls[1])

	assert.Len(t, WallsFrom(line).Merge(0), 4, "zero tolerance keeps bent edges")
	assert.Empty(t, Walls(nil).Merge(1))
}

func TestCastWallsMatchesMarch(t *testing.T) {
	c := DefaultCaster()
	walls := append(WallsFrom(geom.Polyline{geom.Pt(100, -500), geom.Pt(100, 500)}), CanvasWalls(1080, 1080)...)
	got := c.CastWalls(nil, walls, geom.Pt(50, 50), 0)

	// Exact distances to x=100 from x=50, against the marched integers.
	want := []float64{50 / 0.7071067811865476, 50 / 0.9396926207859084, 50, 50 / 0.9396926207859084, 50 / 0.7071067811865476}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("CastWalls mismatch (-want +got):\n%s", diff)
	}

	wall := fieldFunc(func(x, y float64) bool { return x < 100 })
	marched := c.Cast(wall, geom.Pt(50, 50), 0)
	for i := range got {
		assert.InDelta(t, got[i], marched[i], 1, "ray %d", i)
	}
}

func TestCastWallsCapsRange(t *testing.T) {
	c := DefaultCaster()
	got := c.CastWalls(nil, CanvasWalls(1080, 1080), geom.Pt(540, 540), 0)
	assert.Equal(t, []float64{200, 200, 200, 200, 200}, got)
}

func TestCastIntoUsesWalls(t *testing.T) {
	c := DefaultCaster()
	c.Walls = WallsFrom(geom.Polyline{geom.Pt(100, -500), geom.Pt(100, 500)})
	everywhere := fieldFunc(func(x, y float64) bool { return true })
	got := c.Cast(everywhere, geom.Pt(90, 50), 0)
	assert.InDelta(t, 10, got[2], 1e-9)
}
