// Package preview runs a session without a window and exports the result
// as images: a plot of the track with each car's trail, and the raw
// membership mask.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"chosenoffset.com/airacing/internal/agent"
	"chosenoffset.com/airacing/internal/core/geom"
	"chosenoffset.com/airacing/internal/core/track"
)

// Ellipse returns n points around center standing in for a hand-drawn
// loop. Each point is pushed along its radius by up to wobble units; rng may
// be nil when wobble is 0. The result is open: the first point is not
// repeated.
func Ellipse(center geom.Point, rx, ry float64, n int, wobble float64, rng *rand.Rand) geom.Polyline {
	pts := make(geom.Polyline, n)
	for i := range pts {
		dir := geom.Direction(360 * float64(i) / float64(n))
		jitter := 0.0
		if wobble > 0 {
			jitter = (rng.Float64()*2 - 1) * wobble
		}
		pts[i] = geom.Pt(center.X+dir.X*(rx+jitter), center.Y+dir.Y*(ry+jitter))
	}
	return pts
}

// Trail is the path one car drove. A reset starts a new segment at the
// car's start position.
type Trail struct {
	Name     string
	Segments []geom.Polyline
	Resets   int
}

// Record ticks the fleet the given number of times and returns one trail
// per agent, in fleet order.
func Record(fleet agent.Fleet, ticks int) []Trail {
	trails := make([]Trail, len(fleet))
	for i, a := range fleet {
		trails[i] = Trail{
			Name:     a.Name(),
			Segments: []geom.Polyline{{a.Pose().Pos}},
		}
	}

	for tick := 0; tick < ticks; tick++ {
		for i, a := range fleet {
			tr := &trails[i]
			if a.Update() {
				tr.Resets++
				tr.Segments = append(tr.Segments, geom.Polyline{a.Pose().Pos})
				continue
			}
			last := len(tr.Segments) - 1
			tr.Segments[last] = append(tr.Segments[last], a.Pose().Pos)
		}
	}
	return trails
}

func xys(pts geom.Polyline) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return out
}

// Plot draws the track boundaries, the centerline and the trails, with the
// y axis pointing down as on screen. colors[i] is used for trails[i]; trails
// without a color are drawn black.
func Plot(tr *track.Track, trails []Trail, colors []color.Color) (*plot.Plot, error) {
	if !tr.Finalized() {
		return nil, fmt.Errorf("track is not finalized")
	}

	p := plot.New()
	p.Title.Text = "Track"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	for _, boundary := range []geom.Polyline{tr.Inner(), tr.Outer()} {
		line, err := plotter.NewLine(xys(boundary))
		if err != nil {
			return nil, fmt.Errorf("failed to plot boundary: %w", err)
		}
		line.Color = color.Black
		line.Width = vg.Points(1.5)
		p.Add(line)
	}

	center, err := plotter.NewLine(xys(tr.Centerline()))
	if err != nil {
		return nil, fmt.Errorf("failed to plot centerline: %w", err)
	}
	center.Color = color.Gray{Y: 160}
	center.Width = vg.Points(1)
	center.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(center)

	for i, trail := range trails {
		var clr color.Color = color.Black
		if i < len(colors) {
			clr = colors[i]
		}
		for j, seg := range trail.Segments {
			if len(seg) < 2 {
				continue
			}
			line, err := plotter.NewLine(xys(seg))
			if err != nil {
				return nil, fmt.Errorf("failed to plot trail %s: %w", trail.Name, err)
			}
			line.Color = clr
			line.Width = vg.Points(1)
			p.Add(line)
			if j == 0 {
				p.Legend.Add(fmt.Sprintf("%s (%d resets)", trail.Name, trail.Resets), line)
			}
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// SavePlot writes the plot to file. The image keeps the canvas aspect ratio
// with the longer side at 8 inches.
func SavePlot(p *plot.Plot, width, height int, file string) error {
	w, h := 8*vg.Inch, 8*vg.Inch
	if width > height {
		h = vg.Length(float64(h) * float64(height) / float64(width))
	} else if height > width {
		w = vg.Length(float64(w) * float64(width) / float64(height))
	}
	if err := p.Save(w, h, file); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// WriteMask writes a membership mask as a grayscale PNG, white on track.
func WriteMask(alpha *image.Alpha, file string) error {
	gray := image.NewGray(alpha.Bounds())
	for i, a := range alpha.Pix {
		if a >= 0x80 {
			gray.Pix[i] = 0xff
		}
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create mask file: %w", err)
	}
	if err := png.Encode(f, gray); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode mask: %w", err)
	}
	return f.Close()
}

// Summary returns the mean number of resets per agent per thousand ticks,
// or 0 when nothing ran.
func Summary(trails []Trail, ticks int) float64 {
	if len(trails) == 0 || ticks <= 0 {
		return 0
	}
	total := 0
	for _, t := range trails {
		total += t.Resets
	}
	return 1000 * float64(total) / float64(len(trails)) / float64(ticks)
}
