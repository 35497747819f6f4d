package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"layerstage/internal/anchor"
	"layerstage/internal/asset"
	"layerstage/internal/config"
	"layerstage/internal/logging"
	"layerstage/internal/pipeline"
	"layerstage/internal/scene"
)

// inspect prints the resolved geometry and motion of every layer in a
// scene, plus one computed frame, for debugging scene files.
func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene file (default: scene.json in base dir)")
	baseDir := flag.String("base", "", "Base directory (default: working directory)")

	flag.Parse()

	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

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

	fmt.Printf("Stage: %.0f px, layers: %d\n\n", scn.StageSize, len(scn.Layers))

	for _, l := range scn.Layers {
		c := l.Config
		m := l.Mapping
		fmt.Printf("Layer %q (z=%d, image=%s)\n", c.ID, c.ZOrder, c.Image)
		fmt.Printf("  size: %.0fx%.0f  position: (%.1f, %.1f)  scale: %v  angle: %.1f\n",
			m.ImageDimensions.Width, m.ImageDimensions.Height,
			c.Position.X, c.Position.Y, c.ScaleVec(), c.Angle)
		fmt.Printf("  tip: (%.1f, %.1f)  base: (%.1f, %.1f)  axis: %.1f°  display rotation: %.1f°\n",
			m.ImageTip.X, m.ImageTip.Y, m.ImageBase.X, m.ImageBase.Y,
			m.DisplayAxisAngle, m.DisplayRotation)
		if c.Spin != nil {
			fmt.Printf("  spin: %+v\n", l.SpinSpeed)
		}
		if c.Orbit != nil {
			fmt.Printf("  orbit: %+v orient=%v\n", l.OrbitSpeed, c.Orbit.Orient)
		}
		if c.Clock != nil {
			fmt.Printf("  clock: mode=%q center=(%.1f, %.1f) offset=%.1f smooth=%v\n",
				c.Clock.Motion, c.Clock.Center.X, c.Clock.Center.Y, c.Clock.Offset, c.Clock.Smooth)
		}
		if c.Pulse != nil {
			fmt.Printf("  pulse: %+v\n", *c.Pulse)
		}
		if c.Fade != nil {
			fmt.Printf("  fade: %+v\n", *c.Fade)
		}
	}

	engine := pipeline.New(scn)
	engine.NextFrame()
	fmt.Println("\nFrame at now:")
	for _, snap := range engine.Frame(time.Now().UnixMilli()) {
		fmt.Printf("  %-16s pos=(%8.2f, %8.2f) rot=%7.2f scale=(%.3f, %.3f) opacity=%.2f visible=%v\n",
			snap.ID, snap.X, snap.Y, snap.Rotation, snap.ScaleX, snap.ScaleY, snap.Opacity, snap.Visible)
	}
}
