package main

import (
	"errors"
	"flag"
	"log"

	"chosenoffset.com/fieldofview/internal/config"
	"chosenoffset.com/fieldofview/internal/game"
	ebitenrender "chosenoffset.com/fieldofview/internal/render/ebiten"
)

func main() {
	flag.Parse()

	cfg, err := loadScene(*sceneFlag)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g, err := game.NewGame(cfg, renderer, inputMgr, log.Default())
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	if *watchFlag {
		stop, err := watchScene(*sceneFlag, g)
		if err != nil {
			log.Printf("Warning: scene hot reload disabled: %v", err)
		} else {
			defer stop()
		}
	}

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	log.Println("Starting scene...")
	if err := engine.RunGame(g); err != nil && !errors.Is(err, game.ErrQuit) {
		log.Fatal(err)
	}
}

// loadScene reads the scene file and applies command-line overrides.
func loadScene(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if *algorithmFlag != "" {
		cfg.Shadow.Algorithm = *algorithmFlag
	}
	if *parallelFlag {
		cfg.Shadow.Parallel = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
