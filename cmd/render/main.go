package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"layerstage/internal/anchor"
	"layerstage/internal/asset"
	"layerstage/internal/batch"
	"layerstage/internal/config"
	"layerstage/internal/logging"
	"layerstage/internal/pipeline"
	"layerstage/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene file (default: scene.json in base dir)")
	baseDir := flag.String("base", "", "Base directory (default: working directory)")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	fps := flag.Int("fps", 0, "Frames per second (default: 30)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	animated := flag.Bool("animated", false, "Write one animated WebP instead of frame files")
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
	cfg.Resolve(config.Flags{
		BaseDir:   *baseDir,
		ScenePath: *sceneFile,
		OutputDir: *outputDir,
		FPS:       *fps,
		Workers:   *workers,
	})
	if *animated {
		cfg.Animated = true
	}

	file, err := scene.LoadFile(cfg.ScenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	index := asset.BuildIndex(cfg.AssetDir)
	cache := asset.NewCache(index)
	fmt.Printf("Assets: %d indexed\n", index.Len())

	scn := scene.Build(file, cache, anchor.NewCache())
	if len(scn.Layers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: scene has no renderable layers")
		os.Exit(1)
	}

	engine := pipeline.New(scn)

	fmt.Printf("Stage %.0f px, layers: %d, frames: %d @ %d fps, workers: %d\n",
		scn.StageSize, len(engine.Layers()), int(cfg.DurationSec*float64(cfg.FPS)), cfg.FPS, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results, err := batch.Run(batch.Config{
		Engine:      engine,
		Source:      cache,
		OutputDir:   cfg.OutputDir,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		FPS:         cfg.FPS,
		Duration:    time.Duration(cfg.DurationSec * float64(time.Second)),
		StartMs:     time.Now().UnixMilli(),
		Animated:    cfg.Animated,
		Workers:     cfg.Workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
		}
	}
	fmt.Printf("Rendered: %d/%d frames\n", success, len(results))
	if failed > 0 {
		limit := 20
		for _, r := range results {
			if r.Success || limit == 0 {
				continue
			}
			fmt.Printf("  frame %d: %s\n", r.Frame, r.Error)
			limit--
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, scn.StageSize, cfg.RenderSize, cfg.FPS, engine.Layers(), results, cfg.Animated); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
