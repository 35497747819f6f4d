package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"layerstage/internal/anchor"
	"layerstage/internal/asset"
	"layerstage/internal/config"
	"layerstage/internal/logging"
	"layerstage/internal/pipeline"
	"layerstage/internal/render/live"
	"layerstage/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene file (default: scene.json in base dir)")
	baseDir := flag.String("base", "", "Base directory (default: working directory)")
	windowSize := flag.Int("window", 768, "Window size in pixels")
	verbose := flag.Bool("v", false, "Enable diagnostic logging")

	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{BaseDir: *baseDir, ScenePath: *sceneFile})

	file, err := scene.LoadFile(cfg.ScenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	cache := asset.NewCache(asset.BuildIndex(cfg.AssetDir))
	scn := scene.Build(file, cache, anchor.NewCache())
	if len(scn.Layers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: scene has no renderable layers")
		os.Exit(1)
	}

	game := live.New(pipeline.New(scn), cache, color.Black)
	if err := live.Run(game, "layerstage preview", *windowSize); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
