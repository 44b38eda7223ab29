package geom

// PointInPolygon tests if a point is inside a polygon using the ray casting
// (crossing number) rule. The polygon may or may not repeat its first point.
func PointInPolygon(point Point, polygon Polyline) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Circle samples n points on a circle, counter-clockwise on screen,
// starting at angle 0. The result is open.
func Circle(center Point, radius float64, n int) Polyline {
	pts := make(Polyline, 0, n)
	for i := 0; i < n; i++ {
		deg := 360 * float64(i) / float64(n)
		pts = append(pts, center.Translate(Direction(deg).Mul(radius)))
	}
	return pts
}
