// Package simulation provides configuration for a racing session: the
// canvas, how a drawn track is turned into geometry, the sensor fan, and the
// cars placed on the track once it is finalized.
package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"time"

	"chosenoffset.com/airacing/internal/agent"
	"chosenoffset.com/airacing/internal/core/boundary"
	"chosenoffset.com/airacing/internal/core/field"
	"chosenoffset.com/airacing/internal/core/geom"
	"chosenoffset.com/airacing/internal/core/sensor"
	"chosenoffset.com/airacing/internal/core/spline"
	"chosenoffset.com/airacing/internal/core/track"
)

// Config holds all settings for a session
type Config struct {
	Canvas CanvasConfig  `json:"canvas"`
	Track  TrackConfig   `json:"track"`
	Sensor SensorConfig  `json:"sensor"`
	Agents []AgentConfig `json:"agents"`

	Speed    float64 `json:"speed"`     // Units moved per tick by every car
	Seed     int64   `json:"seed"`      // Random seed, 0 picks one from the clock
	Sweep    bool    `json:"sweep"`     // Test every unit step of a move for collisions
	ShowRays bool    `json:"show_rays"` // Draw sensor rays
}

// CanvasConfig is the drawing surface, in track units (pixels at scale 1)
type CanvasConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TrackConfig defines how a drawn centerline becomes a track
type TrackConfig struct {
	Width            float64 `json:"width"`              // Full track width
	Repair           string  `json:"repair"`             // Overlap repair: "off", "half" or "full"
	SmoothTolerance  float64 `json:"smooth_tolerance"`   // Largest residual sum of squares of a fit
	Samples          int     `json:"samples"`            // Points per smoothed curve
	MaxControlPoints int     `json:"max_control_points"` // Cap on spline basis size
	Field            string  `json:"field"`              // "mask" or "polygon"
	Resolution       float64 `json:"resolution"`         // Mask cells per unit
}

// HalfWidth is the distance from the centerline to either boundary
func (t TrackConfig) HalfWidth() float64 {
	return t.Width / 2
}

// SensorConfig defines the ray fan every car uses
type SensorConfig struct {
	Angles   []float64 `json:"angles"`    // Ray offsets in degrees, left to right
	MaxRange int       `json:"max_range"` // Longest reading
	Mode     string    `json:"mode"`      // "march" samples the field, "exact" intersects boundary edges
	// Largest deviation, in units, when merging nearly straight boundary
	// edges for exact mode
	MergeTolerance float64 `json:"merge_tolerance"`
}

// AgentConfig places one car relative to the track start
type AgentConfig struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`  // Legend text
	Policy  string   `json:"policy"` // "simple" or "advanced"
	OffsetX float64  `json:"offset_x"`
	OffsetY float64  `json:"offset_y"`
	Color   [3]uint8 `json:"color"`
}

// RGBA returns the car's opaque draw color
func (a AgentConfig) RGBA() color.RGBA {
	return color.RGBA{R: a.Color[0], G: a.Color[1], B: a.Color[2], A: 0xff}
}

// DefaultConfig returns the classic three-car session
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 1080, Height: 1080},
		Track: TrackConfig{
			Width:            80,
			Repair:           boundary.RepairFullWidth.String(),
			SmoothTolerance:  spline.DefaultTolerance,
			Samples:          spline.DefaultSamples,
			MaxControlPoints: spline.DefaultMaxControlPoints,
			Field:            field.KindMask,
			Resolution:       1,
		},
		Sensor: SensorConfig{
			Angles:         append([]float64(nil), sensor.DefaultAngles...),
			MaxRange:       sensor.DefaultMaxRange,
			Mode:           sensor.ModeMarch,
			MergeTolerance: 0.05,
		},
		Agents: []AgentConfig{
			{Name: "red", Label: "Red: Simple", Policy: "simple", Color: [3]uint8{255, 0, 0}},
			{Name: "blue", Label: "Blue: Advanced", Policy: "advanced", OffsetX: 10, OffsetY: 10, Color: [3]uint8{0, 0, 255}},
			{Name: "green", Label: "Green: Advanced", Policy: "advanced", OffsetX: -10, OffsetY: -10, Color: [3]uint8{0, 255, 0}},
		},
		Speed:    2,
		ShowRays: true,
	}
}

// LoadConfig loads session config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Track.Width <= 0 {
		errs = append(errs, fmt.Errorf("track width must be positive, got %v", c.Track.Width))
	}
	if c.Track.Samples < 3 {
		errs = append(errs, fmt.Errorf("track samples must be at least 3, got %d", c.Track.Samples))
	}
	if c.Track.Resolution <= 0 {
		errs = append(errs, fmt.Errorf("track resolution must be positive, got %v", c.Track.Resolution))
	}
	if _, err := boundary.ParseRepairPolicy(c.Track.Repair); err != nil {
		errs = append(errs, err)
	}
	switch c.Track.Field {
	case field.KindMask, field.KindPolygon:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", field.ErrUnknownKind, c.Track.Field))
	}
	// Both steering policies read exactly five rays.
	if len(c.Sensor.Angles) != 5 {
		errs = append(errs, fmt.Errorf("sensor needs 5 angles, got %d", len(c.Sensor.Angles)))
	}
	if c.Sensor.MaxRange < 1 {
		errs = append(errs, fmt.Errorf("sensor range must be at least 1, got %d", c.Sensor.MaxRange))
	}
	switch c.Sensor.Mode {
	case sensor.ModeMarch, sensor.ModeExact:
	default:
		errs = append(errs, fmt.Errorf("unknown sensor mode %q", c.Sensor.Mode))
	}
	if c.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed must be positive, got %v", c.Speed))
	}
	for _, a := range c.Agents {
		if _, err := agent.ByName(a.Policy, nil); err != nil {
			errs = append(errs, fmt.Errorf("agent %s: %w", a.Name, err))
		}
	}
	return errors.Join(errs...)
}

// TrackOptions returns the options for a new track
func (c *Config) TrackOptions() (track.Options, error) {
	repair, err := boundary.ParseRepairPolicy(c.Track.Repair)
	if err != nil {
		return track.Options{}, err
	}
	return track.Options{
		Width:     c.Canvas.Width,
		Height:    c.Canvas.Height,
		HalfWidth: c.Track.HalfWidth(),
		Repair:    repair,
		Smoother: &spline.Smoother{
			Tolerance:        c.Track.SmoothTolerance,
			Samples:          c.Track.Samples,
			MaxControlPoints: c.Track.MaxControlPoints,
		},
		FieldKind:  c.Track.Field,
		Resolution: c.Track.Resolution,
	}, nil
}

// Caster returns the sensor fan
func (c *Config) Caster() *sensor.Caster {
	return &sensor.Caster{
		Angles:   append([]float64(nil), c.Sensor.Angles...),
		MaxRange: c.Sensor.MaxRange,
	}
}

// NewRand returns the session's random source
func (c *Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SpawnFleet places the configured cars on a finalized track, in config
// order, at the track start plus each car's offset
func (c *Config) SpawnFleet(tr *track.Track, rng *rand.Rand) (agent.Fleet, error) {
	start, ok := tr.Start()
	if !ok {
		return nil, fmt.Errorf("track is not finalized")
	}

	caster := c.Caster()
	if c.Sensor.Mode == sensor.ModeExact {
		walls := sensor.WallsFrom(tr.Inner(), tr.Outer()).Merge(c.Sensor.MergeTolerance)
		caster.Walls = append(walls, sensor.CanvasWalls(c.Canvas.Width, c.Canvas.Height)...)
	}
	fleet := make(agent.Fleet, 0, len(c.Agents))
	for _, ac := range c.Agents {
		policy, err := agent.ByName(ac.Policy, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create agent %s: %w", ac.Name, err)
		}
		pos := geom.Pt(start.X+ac.OffsetX, start.Y+ac.OffsetY)
		a := agent.New(ac.Name, pos, c.Speed, policy, caster, tr.Field(), c.Canvas.Width, c.Canvas.Height)
		a.SetSweep(c.Sweep)
		fleet = append(fleet, a)
	}
	return fleet, nil
}
