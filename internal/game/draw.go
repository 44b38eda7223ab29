package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/airacing/internal/render"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	surfaceColor    = color.RGBA{50, 50, 50, 255}
	lineColor       = color.RGBA{255, 255, 255, 255}
	draftColor      = color.RGBA{120, 120, 120, 255}
	rayColor        = color.RGBA{255, 0, 0, 255}
)

const (
	carRadius   = 5
	lineWidth   = 3
	labelX      = 10
	labelY      = 10
	labelStride = 30
	charWidth   = 6 // debug font
)

// Draw renders the session to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	if g.Track.Finalized() {
		g.drawTrack(screen)
		g.drawCars(screen)
	} else {
		g.drawCenterline(screen)
	}

	g.drawLabels(screen)
	g.drawUI(screen)
}

func (g *Game) drawCenterline(screen render.Image) {
	pts := g.Track.Centerline()
	if len(pts) < 2 {
		return
	}
	g.Renderer.StrokePolyline(screen, pts, false, 1, draftColor)
	g.Renderer.StrokePolyline(screen, g.Preview(), false, lineWidth, lineColor)
}

func (g *Game) drawTrack(screen render.Image) {
	g.Renderer.FillPath(screen, g.Track.Region(), surfaceColor)
	g.Renderer.StrokePolyline(screen, g.Track.Inner(), true, lineWidth, lineColor)
	g.Renderer.StrokePolyline(screen, g.Track.Outer(), true, lineWidth, lineColor)
}

func (g *Game) drawCars(screen render.Image) {
	for i, a := range g.Fleet {
		pos := a.Pose().Pos
		if g.ShowRays {
			for _, end := range a.RayEnds() {
				g.Renderer.StrokeLine(screen, float32(pos.X), float32(pos.Y), float32(end.X), float32(end.Y), 1, rayColor)
			}
		}
		g.Renderer.FillCircle(screen, float32(pos.X), float32(pos.Y), carRadius, g.Config.Agents[i].RGBA())
	}
}

// drawLabels stacks one legend line per configured car. The debug font is
// always white, so each line is followed by a swatch in the car's color.
func (g *Game) drawLabels(screen render.Image) {
	for i, ac := range g.Config.Agents {
		text := ac.Label
		if i < len(g.Fleet) {
			text = fmt.Sprintf("%s  resets: %d", ac.Label, g.Fleet[i].Resets())
		}
		y := labelY + i*labelStride
		g.Renderer.DrawText(screen, text, labelX, y)

		swatchX := labelX + len(text)*charWidth + 2*carRadius
		g.Renderer.FillCircle(screen, float32(swatchX), float32(y+8), carRadius, ac.RGBA())
	}
}

func (g *Game) drawUI(screen render.Image) {
	_, h := screen.Size()

	hint := "Draw with the mouse, Space to finish"
	if g.State == StateRacing {
		hint = fmt.Sprintf("Tick %d  R: new track  D: rays", g.Ticks)
	}
	g.Renderer.DrawText(screen, hint, labelX, h-20)

	for i, msg := range g.Messages {
		g.Renderer.DrawText(screen, msg.Text, labelX, h-40-i*16)
	}
}
