package game

import (
	"fmt"
	"log"
	"math/rand"

	"chosenoffset.com/airacing/internal/agent"
	"chosenoffset.com/airacing/internal/core/geom"
	"chosenoffset.com/airacing/internal/core/spline"
	"chosenoffset.com/airacing/internal/core/track"
	"chosenoffset.com/airacing/internal/render"
	"chosenoffset.com/airacing/internal/simulation"
)

// Game holds the session state: the track being drawn or raced on, and the
// cars once it is finalized.
type Game struct {
	Config   *simulation.Config
	Renderer render.Renderer
	InputMgr render.InputManager

	State State
	Track *track.Track
	Fleet agent.Fleet

	// ShowRays draws each car's sensor rays.
	ShowRays bool

	// UI state
	Messages []Message

	// Debug
	Ticks int

	rng       *rand.Rand
	trackOpts track.Options

	// Smoothed preview of the centerline while drawing, rebuilt when the
	// number of drawn points changes.
	preview    geom.Polyline
	previewLen int
	smoother   *spline.Smoother
}

// New creates a session in drawing mode.
func New(cfg *simulation.Config, r render.Renderer, input render.InputManager) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	opts, err := cfg.TrackOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return &Game{
		Config:    cfg,
		Renderer:  r,
		InputMgr:  input,
		State:     StateDrawing,
		Track:     track.New(opts),
		ShowRays:  cfg.ShowRays,
		rng:       cfg.NewRand(),
		trackOpts: opts,
		smoother:  opts.Smoother,
	}, nil
}

// Update handles input and advances the simulation by one tick.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 TPS)
	dt := 1.0 / 60.0
	g.updateMessages(dt)

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrTerminated
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyD) {
		g.ShowRays = !g.ShowRays
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyR) {
		g.NewTrack()
		return nil
	}

	switch g.State {
	case StateDrawing:
		g.updateDrawing()
	case StateRacing:
		g.Fleet.Update()
		g.Ticks++
	}
	return nil
}

func (g *Game) updateDrawing() {
	// Held button covers both the initial click and dragging.
	if g.InputMgr.IsMouseButtonPressed(render.MouseButtonLeft) {
		x, y := g.InputMgr.GetCursorPosition()
		g.Track.AddPoint(geom.Pt(float64(x), float64(y)))
	}

	if g.InputMgr.IsKeyJustPressed(render.KeySpace) {
		g.FinalizeTrack()
	}
}

// FinalizeTrack finalizes the drawn track and places the cars on it. With
// too few points, or if the track cannot be built, the session stays in
// drawing mode.
func (g *Game) FinalizeTrack() {
	ok, err := g.Track.Finalize()
	if err != nil {
		log.Printf("Failed to finalize track: %v", err)
		g.ShowMessage("Could not build the track")
		return
	}
	if !ok {
		g.ShowMessage(fmt.Sprintf("Draw at least %d points first", track.MinPoints))
		return
	}

	fleet, err := g.Config.SpawnFleet(g.Track, g.rng)
	if err != nil {
		log.Printf("Failed to spawn fleet: %v", err)
		g.ShowMessage("Could not place the cars")
		return
	}
	g.Fleet = fleet
	g.State = StateRacing
	g.Ticks = 0

	start, _ := g.Track.Start()
	log.Printf("Track finalized, %d cars starting at (%.1f, %.1f)", len(fleet), start.X, start.Y)
}

// NewTrack discards the current track and cars and returns to drawing mode.
func (g *Game) NewTrack() {
	g.Track = track.New(g.trackOpts)
	g.Fleet = nil
	g.State = StateDrawing
	g.preview = nil
	g.previewLen = 0
	g.ShowMessage("New track")
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Config.Canvas.Width, g.Config.Canvas.Height
}

// Preview returns the smoothed centerline drawn while the track is open.
func (g *Game) Preview() geom.Polyline {
	pts := g.Track.Centerline()
	if len(pts) != g.previewLen {
		g.preview = g.smoother.Smooth(pts)
		g.previewLen = len(pts)
	}
	return g.preview
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})

	log.Printf("Message: %s", text)
}
