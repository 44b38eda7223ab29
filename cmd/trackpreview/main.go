package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"chosenoffset.com/airacing/internal/core/field"
	"chosenoffset.com/airacing/internal/core/geom"
	"chosenoffset.com/airacing/internal/core/track"
	"chosenoffset.com/airacing/internal/preview"
	"chosenoffset.com/airacing/internal/simulation"
)

func main() {
	configPath := flag.String("config", "airacing.json", "Session config file (defaults are used if it does not exist)")
	ticks := flag.Int("ticks", 600, "Simulation ticks to run")
	out := flag.String("out", "track.png", "Plot output file")
	maskOut := flag.String("mask", "", "Also write the membership mask to this PNG file")
	rx := flag.Float64("rx", 380, "Horizontal radius of the generated loop")
	ry := flag.Float64("ry", 280, "Vertical radius of the generated loop")
	points := flag.Int("points", 40, "Points in the generated loop")
	wobble := flag.Float64("wobble", 15, "Largest random radial offset of each point")
	flag.Parse()

	fmt.Println("AIRacing Track Preview")
	fmt.Println("======================")

	if err := run(*configPath, *ticks, *out, *maskOut, *rx, *ry, *points, *wobble); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, ticks int, out, maskOut string, rx, ry float64, points int, wobble float64) error {
	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		return err
	}
	opts, err := cfg.TrackOptions()
	if err != nil {
		return err
	}
	rng := cfg.NewRand()

	center := geom.Pt(float64(cfg.Canvas.Width)/2, float64(cfg.Canvas.Height)/2)
	tr := track.New(opts)
	for _, p := range preview.Ellipse(center, rx, ry, points, wobble, rng) {
		tr.AddPoint(p)
	}
	ok, err := tr.Finalize()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("need at least %d distinct points, got %d", track.MinPoints, tr.Centerline().Distinct())
	}

	fleet, err := cfg.SpawnFleet(tr, rng)
	if err != nil {
		return err
	}
	trails := preview.Record(fleet, ticks)

	colors := make([]color.Color, len(cfg.Agents))
	for i, ac := range cfg.Agents {
		colors[i] = ac.RGBA()
	}
	p, err := preview.Plot(tr, trails, colors)
	if err != nil {
		return err
	}
	if err := preview.SavePlot(p, cfg.Canvas.Width, cfg.Canvas.Height, out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)

	if maskOut != "" {
		mask, ok := tr.Field().(*field.Mask)
		if !ok {
			return fmt.Errorf("field kind %q has no mask to export", cfg.Track.Field)
		}
		if err := preview.WriteMask(mask.Alpha(), maskOut); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", maskOut)
	}

	fmt.Println()
	for i, trail := range trails {
		fmt.Printf("%-16s %4d resets\n", cfg.Agents[i].Label, trail.Resets)
	}
	fmt.Printf("%.2f resets per car per 1000 ticks over %d ticks\n", preview.Summary(trails, ticks), ticks)
	return nil
}
