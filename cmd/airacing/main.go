package main

import (
	"flag"
	"log"

	"chosenoffset.com/airacing/internal/game"
	ebitenrender "chosenoffset.com/airacing/internal/render/ebiten"
	"chosenoffset.com/airacing/internal/simulation"
)

func main() {
	configPath := flag.String("config", "airacing.json", "Session config file (defaults are used if it does not exist)")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g, err := game.New(cfg, renderer, inputMgr)
	if err != nil {
		log.Fatal(err)
	}

	// Set up the window
	engine.SetWindowSize(cfg.Canvas.Width, cfg.Canvas.Height)
	engine.SetWindowTitle("AIRacing")
	engine.SetWindowResizable(false)
	engine.SetTPS(60)

	log.Println("Draw a loop with the mouse and press Space to race")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
