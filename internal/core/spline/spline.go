// Package spline fits smooth curves through noisy ordered point sequences and
// resamples them to a fixed number of points.
//
// Closed input (first point repeated at the end) is fitted with a periodic
// cubic B-spline, so the resampled curve has no seam. The amount of smoothing
// is controlled by a tolerance on the residual sum of squares, the same
// criterion scipy's splprep uses for its s parameter.
package spline

import (
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"chosenoffset.com/airacing/internal/core/geom"
)

const (
	DefaultTolerance        = 2.0
	DefaultSamples          = 200
	DefaultMaxControlPoints = 128

	// Search range for the smoothing weight, as powers of ten.
	minLogLambda = -10.0
	maxLogLambda = 6.0
	bisectSteps  = 40
)

// Smoother fits a smoothing spline and resamples it.
type Smoother struct {
	// Tolerance is the largest residual sum of squares (over both
	// coordinates) the fit may leave.
	Tolerance float64
	// Samples is the number of output points.
	Samples int
	// MaxControlPoints caps the size of the periodic basis.
	MaxControlPoints int
}

// DefaultSmoother returns the smoother used by the track pipeline.
func DefaultSmoother() *Smoother {
	return &Smoother{
		Tolerance:        DefaultTolerance,
		Samples:          DefaultSamples,
		MaxControlPoints: DefaultMaxControlPoints,
	}
}

// Smooth returns Samples points on a smooth curve approximating pts.
// Output points are spaced uniformly in the curve parameter, not in arc
// length. With fewer than 3 distinct points the input is returned unchanged.
func (s *Smoother) Smooth(pts geom.Polyline) geom.Polyline {
	if pts.Distinct() < 3 || s.Samples < 2 {
		return append(geom.Polyline(nil), pts...)
	}
	if pts.IsClosed() {
		out, ok := s.smoothClosed(pts.Open())
		if !ok {
			return append(geom.Polyline(nil), pts...)
		}
		return out
	}
	out, ok := s.smoothOpen(pts)
	if !ok {
		return append(geom.Polyline(nil), pts...)
	}
	return out
}

// chordSites returns the cumulative chord length parameter of each point,
// normalized by the total length. When closed, the total includes the
// segment back to the first point.
func chordSites(pts geom.Polyline, closed bool) ([]float64, float64) {
	sites := make([]float64, len(pts))
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Distance(pts[i-1])
		sites[i] = total
	}
	if closed {
		total += pts[0].Distance(pts[len(pts)-1])
	}
	if total == 0 {
		return nil, 0
	}
	for i := range sites {
		sites[i] /= total
	}
	return sites, total
}

// smoothOpen interpolates each coordinate with a natural cubic spline over
// the chord-length parameter.
func (s *Smoother) smoothOpen(pts geom.Polyline) (geom.Polyline, bool) {
	// Strictly increasing sites are required, so drop repeated points.
	uniq := make(geom.Polyline, 0, len(pts))
	for i, p := range pts {
		if i > 0 && p == pts[i-1] {
			continue
		}
		uniq = append(uniq, p)
	}
	sites, _ := chordSites(uniq, false)
	if sites == nil {
		return nil, false
	}

	xs := make([]float64, len(uniq))
	ys := make([]float64, len(uniq))
	for i, p := range uniq {
		xs[i], ys[i] = p.X, p.Y
	}

	var fx, fy interp.NaturalCubic
	if err := fx.Fit(sites, xs); err != nil {
		return nil, false
	}
	if err := fy.Fit(sites, ys); err != nil {
		return nil, false
	}

	out := make(geom.Polyline, s.Samples)
	for k := range out {
		u := float64(k) / float64(s.Samples-1)
		out[k] = geom.Pt(fx.Predict(u), fy.Predict(u))
	}
	return out, true
}

// smoothClosed fits a periodic cubic B-spline to pts, which must not repeat
// the first point.
func (s *Smoother) smoothClosed(pts geom.Polyline) (geom.Polyline, bool) {
	sites, _ := chordSites(pts, true)
	if sites == nil {
		return nil, false
	}

	k := len(pts)
	if s.MaxControlPoints > 0 && k > s.MaxControlPoints {
		k = s.MaxControlPoints
	}
	if k < 4 {
		k = 4
	}

	fit := newPeriodicFit(k, sites, pts)
	spl, ok := fit.solveWithin(s.Tolerance)
	if !ok {
		return nil, false
	}

	out := make(geom.Polyline, s.Samples)
	for i := 0; i < s.Samples-1; i++ {
		out[i] = spl.eval(float64(i) / float64(s.Samples-1))
	}
	out[s.Samples-1] = out[0]
	return out, true
}

// periodic is a uniform periodic cubic B-spline with control points cx, cy.
type periodic struct {
	cx, cy []float64
}

// basis returns the four control indices and weights active at t in [0, 1).
func basis(k int, t float64) (idx [4]int, w [4]float64) {
	t -= math.Floor(t)
	x := t * float64(k)
	i := int(x)
	if i >= k {
		i = k - 1
	}
	f := x - float64(i)
	f2 := f * f
	f3 := f2 * f
	w[0] = (1 - 3*f + 3*f2 - f3) / 6
	w[1] = (3*f3 - 6*f2 + 4) / 6
	w[2] = (-3*f3 + 3*f2 + 3*f + 1) / 6
	w[3] = f3 / 6
	for m := 0; m < 4; m++ {
		idx[m] = ((i+m-1)%k + k) % k
	}
	return idx, w
}

func (p periodic) eval(t float64) geom.Point {
	idx, w := basis(len(p.cx), t)
	var x, y float64
	for m := 0; m < 4; m++ {
		x += w[m] * p.cx[idx[m]]
		y += w[m] * p.cy[idx[m]]
	}
	return geom.Pt(x, y)
}

// periodicFit holds the normal equations of the penalized least squares
// problem (BᵀB + λ·DᵀD) c = Bᵀy, where D is the periodic second difference.
type periodicFit struct {
	k       int
	sites   []float64
	pts     geom.Polyline
	btb     *mat.SymDense
	penalty *mat.SymDense
	btx     *mat.VecDense
	bty     *mat.VecDense
}

// newPeriodicFit requires k >= 4 so the four active basis indices, and the
// three stencil indices, are always distinct.
func newPeriodicFit(k int, sites []float64, pts geom.Polyline) *periodicFit {
	f := &periodicFit{
		k:       k,
		sites:   sites,
		pts:     pts,
		btb:     mat.NewSymDense(k, nil),
		penalty: mat.NewSymDense(k, nil),
		btx:     mat.NewVecDense(k, nil),
		bty:     mat.NewVecDense(k, nil),
	}

	for i, t := range sites {
		idx, w := basis(k, t)
		for a := 0; a < 4; a++ {
			f.btx.SetVec(idx[a], f.btx.AtVec(idx[a])+w[a]*pts[i].X)
			f.bty.SetVec(idx[a], f.bty.AtVec(idx[a])+w[a]*pts[i].Y)
			for b := a; b < 4; b++ {
				ia, ib := idx[a], idx[b]
				f.btb.SetSym(ia, ib, f.btb.At(ia, ib)+w[a]*w[b])
			}
		}
	}

	stencil := [3]float64{1, -2, 1}
	for j := 0; j < k; j++ {
		var idx [3]int
		for m := range idx {
			idx[m] = (j + m - 1 + k) % k
		}
		for a := 0; a < 3; a++ {
			for b := a; b < 3; b++ {
				ia, ib := idx[a], idx[b]
				f.penalty.SetSym(ia, ib, f.penalty.At(ia, ib)+stencil[a]*stencil[b])
			}
		}
	}
	return f
}

// solve returns the spline for smoothing weight lambda.
func (f *periodicFit) solve(lambda float64) (periodic, bool) {
	m := mat.NewSymDense(f.k, nil)
	for i := 0; i < f.k; i++ {
		for j := i; j < f.k; j++ {
			m.SetSym(i, j, f.btb.At(i, j)+lambda*f.penalty.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(m); !ok {
		return periodic{}, false
	}
	cx := mat.NewVecDense(f.k, nil)
	cy := mat.NewVecDense(f.k, nil)
	if err := chol.SolveVecTo(cx, f.btx); err != nil {
		return periodic{}, false
	}
	if err := chol.SolveVecTo(cy, f.bty); err != nil {
		return periodic{}, false
	}
	return periodic{cx: cx.RawVector().Data, cy: cy.RawVector().Data}, true
}

// residual is the sum of squared distances between the data and the spline
// at the data sites.
func (f *periodicFit) residual(p periodic) float64 {
	sum := 0.0
	for i, t := range f.sites {
		sum += p.eval(t).DistanceSquared(f.pts[i])
	}
	return sum
}

// solveWithin returns the smoothest spline whose residual does not exceed
// tol. If no weight in range meets tol, the closest fit is returned.
func (f *periodicFit) solveWithin(tol float64) (periodic, bool) {
	// Nearly interpolating systems can be too ill-conditioned to factorize
	// when sites cluster; step up until one succeeds.
	lo := minLogLambda
	best, ok := f.solve(math.Pow(10, lo))
	for !ok && lo < maxLogLambda {
		lo++
		best, ok = f.solve(math.Pow(10, lo))
	}
	if !ok {
		return periodic{}, false
	}
	if f.residual(best) > tol {
		return best, true
	}
	if p, ok := f.solve(math.Pow(10, maxLogLambda)); ok && f.residual(p) <= tol {
		return p, true
	}

	hi := maxLogLambda
	for i := 0; i < bisectSteps; i++ {
		mid := (lo + hi) / 2
		p, ok := f.solve(math.Pow(10, mid))
		if ok && f.residual(p) <= tol {
			best, lo = p, mid
		} else {
			hi = mid
		}
	}
	return best, true
}
